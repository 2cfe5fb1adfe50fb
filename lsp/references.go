// Copyright © 2025 The declnav authors

package lsp

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

// textDocumentReferences handles the textDocument/references request. It
// enumerates every explicit reference in the document and keeps those
// sharing a target with the reference under the cursor.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
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
	wanted := map[*syntax.Decl]bool{}
	for _, d := range resolve.NavigationTargets(rctx, node) {
		wanted[d] = true
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	var refs []resolve.Reference
	s.annotator.CollectReferences(rctx, tree.Root, func(r resolve.Reference) {
		for _, d := range r.Targets {
			if wanted[d] {
				refs = append(refs, r)
				return
			}
		}
	})
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].NameLoc.Before(refs[j].NameLoc)
	})

	var locs []protocol.Location
	if params.Context.IncludeDeclaration {
		for _, ref := range refs {
			for _, d := range ref.Targets {
				if wanted[d] && d.Loc.IsValid() {
					wanted[d] = false // each declaration listed once
					locs = append(locs, protocol.Location{
						URI:   s.resolveURI(params.TextDocument.URI, d.Loc.File),
						Range: toLSPRange(d.Loc, len(d.Name)),
					})
				}
			}
		}
	}
	for _, ref := range refs {
		locs = append(locs, protocol.Location{
			URI:   s.resolveURI(params.TextDocument.URI, ref.NameLoc.File),
			Range: toLSPRange(ref.NameLoc, len(ref.Name)),
		})
	}
	return locs, nil
}
