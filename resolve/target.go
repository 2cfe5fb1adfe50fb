// Copyright © 2025 The declnav authors

// Package resolve answers two questions about an already type-checked
// syntax tree: which declarations a node designates (Targets), and where
// every explicit, user-written name inside a subtree is and what it
// resolves to (CollectReferences).
//
// Both engines are pure with respect to the tree: no mutation, no hidden
// state, re-entrant. Malformed or partially resolved input degrades to
// empty target sets, never a panic.
package resolve

import (
	"fmt"

	"github.com/declnav/declnav/syntax"
)

// Context carries per-query state that would otherwise be ambient: the
// tree under inspection and the contract-violation hook. It is immutable
// and safe to share between queries against the same tree.
type Context struct {
	tree *syntax.Tree

	// onViolation observes front-end/engine contract violations (a node
	// claiming a category the engine cannot dispatch). Resolution still
	// degrades to an empty result; the hook exists so debug builds and
	// tests can fail loudly.
	onViolation func(msg string)
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithViolationHook installs fn to observe contract violations.
func WithViolationHook(fn func(msg string)) ContextOption {
	return func(c *Context) { c.onViolation = fn }
}

// NewContext creates a query context for tree.
func NewContext(tree *syntax.Tree, opts ...ContextOption) *Context {
	c := &Context{tree: tree}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tree returns the tree this context was built for.
func (c *Context) Tree() *syntax.Tree { return c.tree }

func (c *Context) violate(format string, args ...any) {
	if c != nil && c.onViolation != nil {
		c.onViolation(fmt.Sprintf(format, args...))
	}
}

// Targets resolves a node to the set of declarations it designates, each
// tagged with how it relates to the node. The function is total over every
// node kind: categories whose declaration cannot be recovered from the
// tree (deduced types, bare template-parameter type references, protocol
// names inside a composite type without their own node) yield an empty
// set. That is a documented limitation, not an error.
func Targets(ctx *Context, n *syntax.Node) TargetSet {
	var ts TargetSet
	if n == nil {
		return ts
	}
	switch n.Kind {
	case syntax.KindDeclRef, syntax.KindMemberAccess, syntax.KindCaptureRef,
		syntax.KindCtorInit, syntax.KindDesignatedInit,
		syntax.KindQualifier, syntax.KindTypeRef,
		syntax.KindMessageSend, syntax.KindIvarAccess,
		syntax.KindProtocolLiteral, syntax.KindInterfaceTypeRef:
		// One directly known declaration; aliases and template
		// specializations expand into tagged entries.
		report(&ts, n.Decl, 0)

	case syntax.KindUsingDecl:
		// The using-declaration itself plus every overload it actually
		// introduces. Overloads it does not shadow never appear.
		if n.Decl == nil {
			break
		}
		ts.Add(n.Decl, Relations(Alias))
		for _, sh := range n.Decl.Underlying {
			if sh.Kind == syntax.DeclUsingShadow {
				for _, u := range sh.Underlying {
					report(&ts, u, Relations(Underlying))
				}
			} else {
				report(&ts, sh, Relations(Underlying))
			}
		}

	case syntax.KindOverloadRef:
		// Dependent reference: every visible candidate, untagged.
		// Ambiguity is signaled by cardinality, not by a relation.
		for _, cand := range n.Candidates {
			ts.Add(cand, 0)
		}

	case syntax.KindPropertyAccess:
		switch {
		case n.Decl != nil:
			report(&ts, n.Decl, 0)
		case n.Write && n.Setter != nil:
			report(&ts, n.Setter, 0)
		default:
			report(&ts, n.Getter, 0)
		}

	case syntax.KindCompositeTypeRef:
		// A composite type resolves to the protocols that have their own
		// sub-reference. A protocol named without a dedicated node is a
		// known gap and contributes nothing.
		for _, cand := range n.Candidates {
			report(&ts, cand, 0)
		}

	case syntax.KindDecltypeRef:
		// The declared entity behind the inspected expression's type.
		report(&ts, n.Decl, Relations(Underlying))

	case syntax.KindTemplateParamTypeRef, syntax.KindDeducedTypeRef:
		// Known gap: the underlying declaration is not reliably
		// recoverable from the tree.

	case syntax.KindBlock, syntax.KindCall, syntax.KindAssign,
		syntax.KindDeclStmt, syntax.KindCast:
		// Structural nodes designate nothing.

	default:
		ctx.violate("targets: undispatchable node kind %v", n.Kind)
	}
	return ts
}

// report adds d with the given relations, expanding alias layers and
// template specialization links. Relations union across layers: an alias
// template specialization contributes Alias|TemplatePattern for the alias
// and Underlying combined with the instantiation tags for its expansion.
func report(ts *TargetSet, d *syntax.Decl, rels RelationSet) {
	if d == nil {
		return
	}
	switch d.Kind {
	case syntax.DeclUsingShadow:
		if d.Introducer != nil {
			ts.Add(d.Introducer, rels.Union(Relations(Alias)))
		}
		for _, u := range d.Underlying {
			report(ts, u, rels.Union(Relations(Underlying)))
		}

	case syntax.DeclUsing:
		ts.Add(d, rels.Union(Relations(Alias)))
		for _, sh := range d.Underlying {
			if sh.Kind == syntax.DeclUsingShadow {
				for _, u := range sh.Underlying {
					report(ts, u, rels.Union(Relations(Underlying)))
				}
			} else {
				report(ts, sh, rels.Union(Relations(Underlying)))
			}
		}

	case syntax.DeclNamespaceAlias, syntax.DeclTypeAlias:
		ts.Add(d, rels.Union(Relations(Alias)))
		for _, u := range d.Underlying {
			report(ts, u, rels.Union(Relations(Underlying)))
		}

	case syntax.DeclAliasTemplate:
		// Referencing a specialization of an alias template designates
		// the alias as both the renaming layer and the pattern the
		// specialization was formed from.
		ts.Add(d, rels.Union(Relations(Alias, TemplatePattern)))
		for _, u := range d.Underlying {
			report(ts, u, rels.Union(Relations(Underlying)))
		}

	default:
		reportTemplate(ts, d, rels)
	}
}

// reportTemplate splits an implicit specialization into the concrete
// instantiation and its pattern. An explicit (user-written) specialization
// stays a single untagged entry: the user referenced exactly what they
// wrote.
func reportTemplate(ts *TargetSet, d *syntax.Decl, rels RelationSet) {
	if d.SpecializedFrom != nil && !d.ExplicitSpecialization {
		ts.Add(d, rels.Union(Relations(TemplateInstantiation)))
		ts.Add(d.SpecializedFrom, rels.Union(Relations(TemplatePattern)))
		return
	}
	ts.Add(d, rels)
}

// ExplicitTargets narrows a node's target set for navigation features:
// relations outside mask disqualify an entry, instantiations are preferred
// over patterns, and patterns are the fallback when no concrete entry
// survives. Navigation wants the alias the user wrote (mask Alias) or the
// declaration behind it (mask Underlying), never both.
func ExplicitTargets(ctx *Context, n *syntax.Node, mask RelationSet) []*syntax.Decl {
	full := Targets(ctx, n)
	mask = mask.Union(Relations(TemplateInstantiation, TemplatePattern))

	var decls, patterns []*syntax.Decl
	sawInstantiation := false
	for _, t := range full.Targets() {
		if t.Relations&^mask != 0 {
			continue
		}
		if t.Relations.Has(TemplatePattern) {
			patterns = append(patterns, t.Decl)
			continue
		}
		if t.Relations.Has(TemplateInstantiation) {
			sawInstantiation = true
		}
		decls = append(decls, t.Decl)
	}
	if len(decls) == 0 && !sawInstantiation {
		decls = patterns
	}
	return decls
}
