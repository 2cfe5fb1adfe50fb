// Copyright © 2025 The declnav authors

package resolve

import (
	"sort"
	"strings"

	"github.com/declnav/declnav/syntax"
)

// Relation explains how a resolved declaration relates to the queried node.
type Relation int

const (
	// Alias marks a declaration that renames the real target: a
	// using-declaration, typedef, namespace alias, or alias template.
	Alias Relation = iota
	// Underlying marks the declaration an alias re-exposes.
	Underlying
	// TemplateInstantiation marks a concrete specialization the front end
	// produced from a pattern.
	TemplateInstantiation
	// TemplatePattern marks the generic template a specialization was
	// produced from.
	TemplatePattern

	numRelations
)

func (r Relation) String() string {
	switch r {
	case Alias:
		return "alias"
	case Underlying:
		return "underlying"
	case TemplateInstantiation:
		return "instantiation"
	case TemplatePattern:
		return "pattern"
	default:
		return "invalid"
	}
}

// RelationSet is a set over the closed Relation enumeration.
type RelationSet uint8

// Relations builds a set from its arguments.
func Relations(rs ...Relation) RelationSet {
	var s RelationSet
	for _, r := range rs {
		s |= 1 << uint(r)
	}
	return s
}

// Has reports membership.
func (s RelationSet) Has(r Relation) bool { return s&(1<<uint(r)) != 0 }

// Union returns the set union.
func (s RelationSet) Union(o RelationSet) RelationSet { return s | o }

// Empty reports whether no relation is present.
func (s RelationSet) Empty() bool { return s == 0 }

func (s RelationSet) String() string {
	if s == 0 {
		return "{}"
	}
	var names []string
	for r := Relation(0); r < numRelations; r++ {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}

// Target is one resolved declaration with the relations accumulated across
// every resolution path that reached it.
type Target struct {
	Decl      *syntax.Decl
	Relations RelationSet
}

// TargetSet is a set of targets deduplicated by declaration identity.
// Insertion order is preserved so repeated queries produce identical
// output, but equality is order-independent.
type TargetSet struct {
	targets []Target
}

// Add inserts a declaration with the given relations, unioning relations
// when the declaration is already present. Nil declarations are ignored.
func (ts *TargetSet) Add(d *syntax.Decl, rels RelationSet) {
	if d == nil {
		return
	}
	for i := range ts.targets {
		if ts.targets[i].Decl == d {
			ts.targets[i].Relations = ts.targets[i].Relations.Union(rels)
			return
		}
	}
	ts.targets = append(ts.targets, Target{Decl: d, Relations: rels})
}

// Targets returns the entries in insertion order. The returned slice is
// shared; callers must not mutate it.
func (ts TargetSet) Targets() []Target { return ts.targets }

// Len returns the number of distinct declarations in the set.
func (ts TargetSet) Len() int { return len(ts.targets) }

// Empty reports whether the set has no entries.
func (ts TargetSet) Empty() bool { return len(ts.targets) == 0 }

// Decls returns the declarations in insertion order, without relations.
func (ts TargetSet) Decls() []*syntax.Decl {
	ds := make([]*syntax.Decl, 0, len(ts.targets))
	for _, t := range ts.targets {
		ds = append(ds, t.Decl)
	}
	return ds
}

// Equal compares two sets ignoring order.
func (ts TargetSet) Equal(o TargetSet) bool {
	if len(ts.targets) != len(o.targets) {
		return false
	}
	for _, t := range ts.targets {
		matched := false
		for _, u := range o.targets {
			if t.Decl == u.Decl && t.Relations == u.Relations {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// String renders the set sorted by display name for stable test output.
func (ts TargetSet) String() string {
	entries := make([]string, 0, len(ts.targets))
	for _, t := range ts.targets {
		s := t.Decl.DisplayName()
		if !t.Relations.Empty() {
			s += " " + t.Relations.String()
		}
		entries = append(entries, s)
	}
	sort.Strings(entries)
	return "{" + strings.Join(entries, ", ") + "}"
}
