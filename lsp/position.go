// Copyright © 2025 The declnav authors

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/declnav/declnav/syntax"
)

// toLSPPosition converts a 1-based source location to a 0-based LSP position.
func toLSPPosition(loc syntax.Location) protocol.Position {
	line := loc.Line
	col := loc.Col
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(col),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// toLSPRange converts a source location to an LSP range spanning nameLen
// characters.
func toLSPRange(loc syntax.Location, nameLen int) protocol.Range {
	start := toLSPPosition(loc)
	return protocol.Range{
		Start: start,
		End: protocol.Position{
			Line:      start.Line,
			Character: start.Character + safeUint(nameLen),
		},
	}
}

// nodeAtPosition finds the innermost name-bearing node at a 0-based LSP
// position in the document's tree.
func nodeAtPosition(doc *Document, line, col int) *syntax.Node {
	tree := doc.Tree()
	if tree == nil {
		return nil
	}
	return tree.NodeAt(line+1, col+1)
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
