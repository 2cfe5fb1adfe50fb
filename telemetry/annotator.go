// Copyright © 2025 The declnav authors

package telemetry

import (
	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

// Annotator runs resolution queries inside trace spans. Implementations
// mirror the resolve package's two entry points so call sites swap in an
// annotator without changing shape.
type Annotator interface {
	Targets(rctx *resolve.Context, n *syntax.Node) resolve.TargetSet
	CollectReferences(rctx *resolve.Context, root *syntax.Node, sink func(resolve.Reference))
}

type noopAnnotator struct{}

// NewNoopAnnotator passes queries through untouched.
func NewNoopAnnotator() Annotator {
	return noopAnnotator{}
}

func (noopAnnotator) Targets(rctx *resolve.Context, n *syntax.Node) resolve.TargetSet {
	return resolve.Targets(rctx, n)
}

func (noopAnnotator) CollectReferences(rctx *resolve.Context, root *syntax.Node, sink func(resolve.Reference)) {
	resolve.CollectReferences(rctx, root, sink)
}
