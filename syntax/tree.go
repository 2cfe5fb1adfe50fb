// Copyright © 2025 The declnav authors

// Package syntax defines the contract between a semantic front end and the
// reference-resolution engines: an immutable tree of categorized nodes over
// an opaque, identity-compared symbol table.
//
// The real front end that builds and type-checks trees is out of scope;
// tests and the fixture loader construct trees directly through this
// package.
package syntax

// Tree is one source unit's fully resolved syntax tree together with the
// symbol table entries it references. Trees are immutable once built; the
// resolution engines never mutate one.
type Tree struct {
	File  string
	Root  *Node
	Decls []*Decl
}

// NewTree creates a tree rooted at root for the named source unit.
func NewTree(file string, root *Node, decls ...*Decl) *Tree {
	return &Tree{File: file, Root: root, Decls: decls}
}

// DeclNamed returns the first symbol table entry with the given name, or
// nil. Intended for tests and interactive tooling, not resolution.
func (t *Tree) DeclNamed(name string) *Decl {
	for _, d := range t.Decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// NodeAt returns the innermost name-bearing node whose written name spans
// the given 1-based position, or nil. Qualifier segments are candidates
// too, so a position inside "a::" of "a::b::c" selects the "a" segment.
func (t *Tree) NodeAt(line, col int) *Node {
	var found *Node
	Walk(t.Root, func(n *Node) {
		if n.Implicit || !n.Kind.NameBearing() || n.Name == "" {
			return
		}
		loc := n.NameLoc.Spelled()
		if loc.Line != line {
			return
		}
		if col >= loc.Col && col < loc.Col+len(n.Name) {
			found = n
		}
	})
	return found
}
