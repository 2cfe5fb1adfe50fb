// Copyright © 2025 The declnav authors

// Package telemetry wraps resolution queries in trace spans so callers can
// see where navigation time goes. OpenTelemetry and OpenCensus backends are
// provided; both are inert until the host program installs an exporter.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey = "otelParentTracer"
)

type otelAnnotator struct {
	currentContext context.Context
}

// NewOpenTelemetryAnnotator instruments resolution queries with spans on the
// global OpenTelemetry tracer provider. Spans nest under whatever span is
// already live on parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context) Annotator {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return &otelAnnotator{currentContext: parentContext}
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "declnav"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Targets(rctx *resolve.Context, n *syntax.Node) resolve.TargetSet {
	ctx, span := contextTracer(p.currentContext).Start(p.currentContext, "resolve.targets")
	defer span.End()
	oldContext := p.currentContext
	p.currentContext = ctx
	defer func() { p.currentContext = oldContext }()

	ts := resolve.Targets(rctx, n)
	span.SetAttributes(append(nodeAttributes(n),
		attribute.Int("declnav.targets", ts.Len()),
	)...)
	return ts
}

func (p *otelAnnotator) CollectReferences(rctx *resolve.Context, root *syntax.Node, sink func(resolve.Reference)) {
	ctx, span := contextTracer(p.currentContext).Start(p.currentContext, "resolve.references")
	defer span.End()
	oldContext := p.currentContext
	p.currentContext = ctx
	defer func() { p.currentContext = oldContext }()

	count := 0
	resolve.CollectReferences(rctx, root, func(r resolve.Reference) {
		count++
		sink(r)
	})
	span.SetAttributes(append(nodeAttributes(root),
		attribute.Int("declnav.references", count),
	)...)
}

func nodeAttributes(n *syntax.Node) []attribute.KeyValue {
	if n == nil {
		return nil
	}
	attrs := []attribute.KeyValue{
		attribute.String("declnav.node.kind", n.Kind.String()),
	}
	if n.Name != "" {
		attrs = append(attrs, semconv.CodeFunction(n.Name))
	}
	if loc := n.NameLoc.Spelled(); loc.IsValid() {
		attrs = append(attrs,
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
			semconv.CodeColumn(loc.Col),
		)
	}
	return attrs
}
