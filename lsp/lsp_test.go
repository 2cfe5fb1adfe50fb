// Copyright © 2025 The declnav authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/declnav/declnav/syntax"
	"github.com/declnav/declnav/telemetry"
)

// testDoc declares one variable, one qualified reference to it, and one
// bare reference.
//
//	1: int x;
//	2: a::x = 1;
//	3: x;
const testDoc = `
(decl ns (kind namespace) (name a))
(decl x (kind var) (name x) (sig "int x") (at 1:5))
(tree
  (block
    (assign
      (declref (name x) (decl x) (at 2:4)
        (qual (qualifier (name a) (decl ns) (at 2:1)))))
    (declref (name x) (decl x) (at 3:1))))
`

func testServer() *Server {
	return New(WithAnnotator(telemetry.NewNoopAnnotator()))
}

func openDoc(s *Server, uri, content string) *Document {
	return s.docs.Open(uri, 1, content)
}

// mockContext returns a minimal glsp.Context for testing.
func mockContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
	}
}

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

// --- Position conversion tests ---

func TestPositionConversion(t *testing.T) {
	t.Run("1-based to 0-based", func(t *testing.T) {
		pos := toLSPPosition(syntax.Location{File: "t.decl", Line: 1, Col: 1})
		assert.Equal(t, protocol.UInteger(0), pos.Line)
		assert.Equal(t, protocol.UInteger(0), pos.Character)
	})
	t.Run("multi-digit", func(t *testing.T) {
		pos := toLSPPosition(syntax.Location{File: "t.decl", Line: 5, Col: 10})
		assert.Equal(t, protocol.UInteger(4), pos.Line)
		assert.Equal(t, protocol.UInteger(9), pos.Character)
	})
	t.Run("zero values clamp", func(t *testing.T) {
		pos := toLSPPosition(syntax.Location{File: "t.decl"})
		assert.Equal(t, protocol.UInteger(0), pos.Line)
		assert.Equal(t, protocol.UInteger(0), pos.Character)
	})
}

func TestPositionRange(t *testing.T) {
	r := toLSPRange(syntax.Location{File: "t.decl", Line: 1, Col: 1}, 5)
	assert.Equal(t, protocol.UInteger(0), r.Start.Character)
	assert.Equal(t, protocol.UInteger(5), r.End.Character)
}

// --- Document lifecycle tests ---

func TestDidOpenPublishesParseError(t *testing.T) {
	s := testServer()
	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     "file:///bad.decl",
			Version: 1,
			Text:    "(decl d (kind gizmo)) (tree (block))",
		},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unknown kind")
}

func TestDidOpenCleanParse(t *testing.T) {
	s := testServer()
	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     "file:///ok.decl",
			Version: 1,
			Text:    testDoc,
		},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)
}

func TestParseErrorKeepsLastGoodTree(t *testing.T) {
	s := testServer()
	doc := openDoc(s, "file:///t.decl", testDoc)
	require.NotNil(t, doc.Tree())

	s.docs.Change("file:///t.decl", 2, "(broken")
	assert.NotNil(t, doc.Tree(), "navigation keeps working during a bad edit")
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := testServer()
	ctx, captured := capturingContext()
	s.captureNotify(ctx)
	openDoc(s, "file:///t.decl", testDoc)

	err := s.textDocumentDidClose(mockContext(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)
	assert.Nil(t, s.docs.Get("file:///t.decl"))
}

// --- Feature tests ---

func TestDefinition(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	// Cursor on the x in "a::x" (source line 2, column 4).
	result, err := s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
			Position:     protocol.Position{Line: 1, Character: 3},
		},
	})
	require.NoError(t, err)
	locs, ok := result.([]protocol.Location)
	require.True(t, ok, "definition result should be []Location, got %T", result)
	require.Len(t, locs, 1)
	assert.Equal(t, "file:///t.decl", locs[0].URI)
	assert.Equal(t, protocol.UInteger(0), locs[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(4), locs[0].Range.Start.Character)
}

func TestDefinitionMiss(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	result, err := s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
			Position:     protocol.Position{Line: 50, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReferences(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	locs, err := s.textDocumentReferences(mockContext(), &protocol.ReferenceParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
			Position:     protocol.Position{Line: 1, Character: 3},
		},
		Context: protocol.ReferenceContext{IncludeDeclaration: true},
	})
	require.NoError(t, err)
	require.Len(t, locs, 3)

	// Declaration first, then both reference sites in source order.
	assert.Equal(t, protocol.UInteger(0), locs[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(1), locs[1].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(2), locs[2].Range.Start.Line)
}

func TestReferencesWithoutDeclaration(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	locs, err := s.textDocumentReferences(mockContext(), &protocol.ReferenceParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
			Position:     protocol.Position{Line: 2, Character: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, locs, 2)
}

func TestHover(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///t.decl"},
			Position:     protocol.Position{Line: 1, Character: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "**declref** `x`")
	assert.Contains(t, content.Value, "int x")
	assert.Contains(t, content.Value, "t.decl:1:5")
}

func TestHoverMiss(t *testing.T) {
	s := testServer()
	openDoc(s, "file:///t.decl", testDoc)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.decl"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}
