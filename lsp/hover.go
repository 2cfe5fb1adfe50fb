// Copyright © 2025 The declnav authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

const hoverWrapWidth = 72

// textDocumentHover handles the textDocument/hover request.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	tree := doc.Tree()
	if tree == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	col := int(params.Position.Character)

	node := nodeAtPosition(doc, line, col)
	if node == nil {
		return nil, nil
	}

	rctx := resolve.NewContext(tree)
	ts := s.annotator.Targets(rctx, node)
	content := buildHoverContent(node, ts)
	if content == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

// buildHoverContent builds Markdown hover text for a reference and its
// resolved targets, including the relation tags linking them to the name.
func buildHoverContent(node *syntax.Node, ts resolve.TargetSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", node.Kind, node.Name)

	for _, tgt := range ts.Targets() {
		sig := tgt.Decl.DisplayName()
		if !tgt.Relations.Empty() {
			sig = fmt.Sprintf("%s  %v", sig, tgt.Relations)
		}
		fmt.Fprintf(&sb, "\n\n```\n%s\n```",
			indent.String(wordwrap.String(sig, hoverWrapWidth), 2))
		if tgt.Decl.Loc.IsValid() {
			fmt.Fprintf(&sb, "\n*Declared at %s*", tgt.Decl.Loc)
		}
	}
	if ts.Empty() {
		sb.WriteString("\n\n*Unresolved*")
	}

	return sb.String()
}
