// Copyright © 2025 The declnav authors

package telemetry

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

type ocAnnotator struct {
	currentContext context.Context
}

// NewOpenCensusAnnotator instruments resolution queries with OpenCensus
// spans, for hosts still exporting through an OpenCensus pipeline.
func NewOpenCensusAnnotator(parentContext context.Context) Annotator {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return &ocAnnotator{currentContext: parentContext}
}

func (p *ocAnnotator) Targets(rctx *resolve.Context, n *syntax.Node) resolve.TargetSet {
	ctx, span := trace.StartSpan(p.currentContext, "resolve.targets")
	defer span.End()
	oldContext := p.currentContext
	p.currentContext = ctx
	defer func() { p.currentContext = oldContext }()

	ts := resolve.Targets(rctx, n)
	span.AddAttributes(ocNodeAttributes(n)...)
	span.AddAttributes(trace.Int64Attribute("declnav.targets", int64(ts.Len())))
	return ts
}

func (p *ocAnnotator) CollectReferences(rctx *resolve.Context, root *syntax.Node, sink func(resolve.Reference)) {
	ctx, span := trace.StartSpan(p.currentContext, "resolve.references")
	defer span.End()
	oldContext := p.currentContext
	p.currentContext = ctx
	defer func() { p.currentContext = oldContext }()

	count := 0
	resolve.CollectReferences(rctx, root, func(r resolve.Reference) {
		count++
		sink(r)
	})
	span.AddAttributes(ocNodeAttributes(root)...)
	span.AddAttributes(trace.Int64Attribute("declnav.references", int64(count)))
}

func ocNodeAttributes(n *syntax.Node) []trace.Attribute {
	if n == nil {
		return nil
	}
	attrs := []trace.Attribute{
		trace.StringAttribute("declnav.node.kind", n.Kind.String()),
	}
	if loc := n.NameLoc.Spelled(); loc.IsValid() {
		attrs = append(attrs,
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		)
	}
	return attrs
}
