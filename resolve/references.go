// Copyright © 2025 The declnav authors

package resolve

import (
	"fmt"
	"strings"

	"github.com/declnav/declnav/syntax"
)

// Reference records one explicit, user-written name inside a queried
// subtree: where it is, what qualifying path precedes it, and what it
// resolves to.
type Reference struct {
	Name string

	// NameLoc is the position of the written name token. Names produced
	// by a macro are anchored at the macro's expansion point.
	NameLoc syntax.Location

	// Qualifier is the qualifying text consumed immediately before the
	// name. It may be rewritten to the canonical spelling of the
	// qualified entity ("struct S::") rather than echoing the source.
	Qualifier string

	// Targets holds the declarations the name resolves to, narrowed for
	// navigation (see ExplicitTargets). An unresolved reference has an
	// empty target list, never a missing record.
	Targets []*syntax.Decl

	// Node is the reference-bearing node, for callers that need to
	// re-resolve with full relation tags.
	Node *syntax.Node
}

// String renders the record in the dump format used by tests and the CLI:
//
//	targets = {a, b}, qualifier = 'ns::'
func (r Reference) String() string {
	names := make([]string, 0, len(r.Targets))
	for _, d := range r.Targets {
		names = append(names, d.DisplayName())
	}
	s := fmt.Sprintf("targets = {%s}", strings.Join(names, ", "))
	if r.Qualifier != "" {
		s += fmt.Sprintf(", qualifier = '%s'", r.Qualifier)
	}
	return s
}

// CollectReferences visits every node reachable from root and calls sink
// exactly once per explicit name reference. Compiler-synthesized nodes are
// traversed for their explicit children but emit nothing themselves. Each
// segment of a qualifying path produces its own record, before the record
// of the name it qualifies.
//
// Records are emitted in tree order, which can diverge from source order;
// callers needing source order sort by NameLoc. One unresolvable reference
// yields an empty Targets list and never aborts the rest of the walk. The
// traversal keeps an explicit work list, so tree depth is not limited by
// the call stack.
func CollectReferences(ctx *Context, root *syntax.Node, sink func(Reference)) {
	if root == nil || sink == nil {
		return
	}
	stack := []*syntax.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if !n.Implicit {
			emitReferences(ctx, n, sink)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// emitReferences reports the qualifier segments and the name of a single
// reference-bearing node.
func emitReferences(ctx *Context, n *syntax.Node, sink func(Reference)) {
	if !n.Kind.NameBearing() || n.Name == "" {
		return
	}
	prefix := ""
	for _, q := range n.Qual {
		if q.Name != "" && !q.Implicit {
			sink(Reference{
				Name:      q.Name,
				NameLoc:   q.NameLoc.Spelled(),
				Qualifier: prefix,
				Targets:   NavigationTargets(ctx, q),
				Node:      q,
			})
		}
		prefix = extendQualifier(prefix, q)
	}
	sink(Reference{
		Name:      n.Name,
		NameLoc:   n.NameLoc.Spelled(),
		Qualifier: prefix,
		Targets:   NavigationTargets(ctx, n),
		Node:      n,
	})
}

// NavigationTargets narrows a node's target set the way navigation
// features expect: prefer the alias the user wrote, except for
// using-declarations themselves, where the interesting targets are the
// declarations being re-exported.
func NavigationTargets(ctx *Context, n *syntax.Node) []*syntax.Decl {
	mask := Relations(Alias)
	if n.Kind == syntax.KindUsingDecl {
		mask = Relations(Underlying)
	}
	return ExplicitTargets(ctx, n, mask)
}

// extendQualifier appends one path segment to the accumulated qualifier
// text. A type segment rewrites the prefix to the canonical spelling of
// the type ("struct S::"); namespace-like segments accumulate verbatim.
func extendQualifier(prefix string, q *syntax.Node) string {
	name := q.Name
	if name == "" && q.Decl != nil {
		name = q.Decl.Name
	}
	if name == "" {
		return prefix
	}
	kind := syntax.DeclInvalid
	if q.Decl != nil {
		kind = q.Decl.Kind
	}
	switch kind {
	case syntax.DeclRecord:
		return "struct " + name + "::"
	case syntax.DeclInterface:
		return "interface " + name + "::"
	default:
		return prefix + name + "::"
	}
}
