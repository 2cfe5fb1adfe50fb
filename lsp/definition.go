// Copyright © 2025 The declnav authors

package lsp

import (
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/declnav/declnav/resolve"
)

// textDocumentDefinition handles the textDocument/definition request.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
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
	var locs []protocol.Location
	for _, d := range resolve.NavigationTargets(rctx, node) {
		if !d.Loc.IsValid() {
			continue
		}
		locs = append(locs, protocol.Location{
			URI:   s.resolveURI(params.TextDocument.URI, d.Loc.File),
			Range: toLSPRange(d.Loc, len(d.Name)),
		})
	}
	if len(locs) == 0 {
		return nil, nil
	}
	return locs, nil
}

// resolveURI resolves a file path from resolution into a document URI.
// If the file matches the current document, the original URI is returned.
func (s *Server) resolveURI(currentURI, file string) string {
	if file == "" || file == uriToPath(currentURI) {
		return currentURI
	}
	path := file
	if !filepath.IsAbs(path) && s.rootPath != "" {
		path = filepath.Join(s.rootPath, path)
	}
	return pathToURI(path)
}
