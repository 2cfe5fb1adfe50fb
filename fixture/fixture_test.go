// Copyright © 2025 The declnav authors

package fixture

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
)

func TestParse_Decls(t *testing.T) {
	tree, err := Parse("f.decl", []byte(`
		; using foo::f introduces one shadow for foo::f(int)
		(decl f-int (kind func) (name f) (sig "void f(int)") (at 1:6))
		(decl u (kind using) (name f) (sig "using foo::f") (underlying sh))
		(decl sh (kind using-shadow) (name f) (of u) (underlying f-int))
		(decl vec (kind record) (name vector))
		(decl vec-int (kind record) (name vector) (sig "vector<int>") (from vec))
		(decl vec-bool (kind record) (name vector) (from vec) (explicit))
		(tree (block))
	`))
	require.NoError(t, err)
	require.Len(t, tree.Decls, 6)

	u := tree.DeclNamed("f")
	require.NotNil(t, u)
	assert.Equal(t, syntax.DeclFunc, u.Kind, "first decl with the name wins lookup")

	sh := tree.Decls[2]
	assert.Equal(t, syntax.DeclUsingShadow, sh.Kind)
	assert.Equal(t, tree.Decls[1], sh.Introducer)
	require.Len(t, sh.Underlying, 1)
	assert.Equal(t, "void f(int)", sh.Underlying[0].Signature)
	assert.Equal(t, []*syntax.Decl{sh}, tree.Decls[1].Underlying)

	vecInt := tree.Decls[4]
	assert.Equal(t, tree.Decls[3], vecInt.SpecializedFrom)
	assert.False(t, vecInt.ExplicitSpecialization)
	assert.True(t, tree.Decls[5].ExplicitSpecialization)

	assert.Equal(t, syntax.Location{File: "f.decl", Line: 1, Col: 6}, tree.Decls[0].Loc)
}

func TestParse_Nodes(t *testing.T) {
	tree, err := Parse("f.decl", []byte(`
		(decl ns (kind namespace) (name a))
		(decl s (kind record) (name S))
		(decl mt (kind type-alias) (name type))
		(decl f1 (kind func) (name func) (sig "void func(int)"))
		(decl f2 (kind func) (name func) (sig "void func(char)"))
		(decl g (kind method) (name x) (sig "getter"))
		(tree
		  (block
		    (typeref (name type) (decl mt) (at 3:11)
		      (qual
		        (qualifier (name a) (decl ns) (at 3:2))
		        (qualifier (name S) (decl s) (at 3:4))))
		    (overload (name func) (at 4:1) (candidates f1 f2))
		    (member (name begin) (implicit)
		      (call (declref (name v) (at 5:1))))
		    (property (name x) (getter g) (write) (at 6:1))
		    (declref (name DONE) (at 1:9) (expanded-at 7:3))))
	`))
	require.NoError(t, err)

	root := tree.Root
	require.Equal(t, syntax.KindBlock, root.Kind)
	require.Len(t, root.Children, 5)

	ref := root.Children[0]
	assert.Equal(t, syntax.KindTypeRef, ref.Kind)
	assert.Equal(t, "type", ref.Name)
	require.Len(t, ref.Qual, 2)
	assert.Equal(t, "a", ref.Qual[0].Name)
	assert.Equal(t, tree.DeclNamed("S"), ref.Qual[1].Decl)

	ovl := root.Children[1]
	require.Len(t, ovl.Candidates, 2)
	assert.Equal(t, "void func(char)", ovl.Candidates[1].Signature)

	mem := root.Children[2]
	assert.True(t, mem.Implicit)
	require.Len(t, mem.Children, 1)
	assert.Equal(t, syntax.KindCall, mem.Children[0].Kind)

	prop := root.Children[3]
	assert.True(t, prop.Write)
	assert.Equal(t, tree.DeclNamed("x"), prop.Getter)
	assert.Nil(t, prop.Setter)

	macro := root.Children[4]
	require.NotNil(t, macro.NameLoc.Expansion)
	assert.Equal(t, syntax.Location{File: "f.decl", Line: 7, Col: 3},
		macro.NameLoc.Spelled())
}

func TestParse_ExpansionBeforeAt(t *testing.T) {
	// Property order must not matter for macro anchoring.
	tree, err := Parse("f.decl", []byte(`
		(tree (block (declref (name X) (expanded-at 7:3) (at 1:9))))
	`))
	require.NoError(t, err)
	n := tree.Root.Children[0]
	assert.Equal(t, 1, n.NameLoc.Line)
	require.NotNil(t, n.NameLoc.Expansion)
	assert.Equal(t, 7, n.NameLoc.Expansion.Line)
}

func TestParse_StringAtoms(t *testing.T) {
	tree, err := Parse("f.decl", []byte(`
		(decl d (kind var) (name "weird name") (sig "T operator\"\"_x(int)"))
		(tree (block))
	`))
	require.NoError(t, err)
	assert.Equal(t, "weird name", tree.Decls[0].Name)
	assert.Equal(t, `T operator""_x(int)`, tree.Decls[0].Signature)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown decl kind", `(decl d (kind gizmo)) (tree (block))`, "unknown kind"},
		{"duplicate label", `(decl d (kind var)) (decl d (kind var)) (tree (block))`, "duplicate decl label"},
		{"unknown label", `(decl d (kind var) (of ghost)) (tree (block))`, "unknown decl label"},
		{"missing tree", `(decl d (kind var))`, "missing tree"},
		{"two trees", `(tree (block)) (tree (block))`, "multiple tree"},
		{"unknown toplevel", `(thing)`, "expected (decl ...) or (tree ...)"},
		{"unknown node kind", `(tree (gizmo))`, "unknown node kind"},
		{"unknown node prop", `(tree (block (declref (color red))))`, "unknown property"},
		{"bad location", `(tree (block (declref (at nowhere))))`, "location wants LINE:COL"},
		{"zero location", `(tree (block (declref (at 0:4))))`, "location wants LINE:COL"},
		{"bad qual segment", `(tree (block (declref (qual (declref)))))`, "qual segments must be qualifier nodes"},
		{"trailing garbage", `(tree (block)) )`, "unexpected source text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("f.decl", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "f.decl")
		})
	}
}

// Parsed fixtures must drive the resolution engines directly.
func TestParse_ResolvesEndToEnd(t *testing.T) {
	tree, err := Parse("f.decl", []byte(`
		; a::x = 1;
		(decl ns (kind namespace) (name a))
		(decl x (kind var) (name x) (sig "int x"))
		(tree
		  (block
		    (assign
		      (declref (name x) (decl x) (at 2:4)
		        (qual (qualifier (name a) (decl ns) (at 2:1)))))))
	`))
	require.NoError(t, err)

	ctx := resolve.NewContext(tree)
	var refs []resolve.Reference
	resolve.CollectReferences(ctx, tree.Root, func(r resolve.Reference) {
		refs = append(refs, r)
	})
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].NameLoc.Before(refs[j].NameLoc)
	})

	require.Len(t, refs, 2)
	assert.Equal(t, "a", refs[0].Name)
	assert.Equal(t, "", refs[0].Qualifier)
	assert.Equal(t, "x", refs[1].Name)
	assert.Equal(t, "a::", refs[1].Qualifier)
	require.Len(t, refs[1].Targets, 1)
	assert.Equal(t, "int x", refs[1].Targets[0].Signature)
}
