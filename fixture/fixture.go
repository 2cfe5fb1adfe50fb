// Copyright © 2025 The declnav authors

/*
Package fixture loads syntax trees from a declarative s-expression format.

A fixture declares a symbol table and one tree. Declarations come first and
are referenced by label:

	; a::b::S::type y;
	(decl ns-a (kind namespace) (name a) (sig "a"))
	(decl ns-b (kind namespace) (name b) (sig "a::b"))
	(decl s (kind record) (name S) (sig "a::b::S") (at 1:32))
	(decl mt (kind type-alias) (name type) (sig "a::b::S::type"))
	(tree
	  (block
	    (typeref (name type) (decl mt) (at 3:11)
	      (qual
	        (qualifier (name a) (decl ns-a) (at 3:2))
	        (qualifier (name b) (decl ns-b) (at 3:5))
	        (qualifier (name S) (decl s) (at 3:8))))))

Declaration properties: kind, name, sig, at, underlying, of (the
introducing using-declaration of a shadow), from (the template pattern a
specialization was produced from), explicit. Node properties: name, decl,
at, expanded-at (macro expansion point), implicit, write, getter, setter,
candidates, qual. Any other list whose head is a node kind is a child
node. Kind spellings match the String forms of syntax.DeclKind and
syntax.NodeKind.
*/
package fixture

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/declnav/declnav/syntax"
)

// ParseFile loads a fixture from disk.
func ParseFile(path string) (*syntax.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, src)
}

// Parse builds a tree from fixture source. The file name seeds every
// location in the result.
func Parse(file string, src []byte) (*syntax.Tree, error) {
	forms, err := parseForms(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	in := &interp{file: file, decls: map[string]*syntax.Decl{}}
	return in.run(forms)
}

// form is one parsed s-expression: either an atom (symbol or string
// literal) or a list.
type form struct {
	atom   string
	isStr  bool
	isList bool
	list   []*form
}

func (f *form) head() string {
	if f == nil || !f.isList || len(f.list) == 0 || f.list[0].isList {
		return ""
	}
	return f.list[0].atom
}

// --- parsing ---

func parseForms(src []byte) ([]*form, error) {
	s := parsec.NewScanner(src)
	s = s.TrackLineno()
	parser := newParser()

	var forms []*form
	node, s := parser(s)
	for node != nil {
		if f := rootForm(node); f != nil {
			forms = append(forms, f)
		}
		node, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return forms, nil
}

// rootForm unwraps the nested node slices produced by combinators with a
// nil callback. Comments unwrap to nothing.
func rootForm(node parsec.ParsecNode) *form {
	switch n := node.(type) {
	case *form:
		return n
	case []parsec.ParsecNode:
		for _, c := range n {
			if f := rootForm(c); f != nil {
				return f
			}
		}
	}
	return nil
}

func newParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	lineComment := parsec.Token(`;[^\n]*`, "COMMENT")
	symbol := parsec.Token(`[^\s()";]+`, "SYMBOL")
	term := parsec.OrdChoice(makeTerm,
		parsec.String(),
		symbol,
	)
	var expr parsec.Parser // forward declaration allows recursive lists
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(makeList, openP, exprList, closeP)
	expr = parsec.OrdChoice(nil, lineComment, term, sexpr)
	return expr
}

func makeTerm(nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch t := nodes[0].(type) {
	case string:
		return &form{atom: unquote(t), isStr: true}
	case *parsec.Terminal:
		return &form{atom: t.Value}
	}
	return nil
}

func makeList(nodes []parsec.ParsecNode) parsec.ParsecNode {
	f := &form{isList: true}
	var add func(ns []parsec.ParsecNode)
	add = func(ns []parsec.ParsecNode) {
		for _, n := range ns {
			switch n := n.(type) {
			case *form:
				f.list = append(f.list, n)
			case []parsec.ParsecNode:
				add(n)
			case *parsec.Terminal:
				if n.Name == "COMMENT" {
					continue
				}
				// parens and stray terminals are dropped
			}
		}
	}
	add(nodes)
	return f
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.Trim(s, `"`)
}

// --- interpretation ---

var declKinds = map[string]syntax.DeclKind{
	"func":            syntax.DeclFunc,
	"var":             syntax.DeclVar,
	"record":          syntax.DeclRecord,
	"field":           syntax.DeclField,
	"namespace":       syntax.DeclNamespace,
	"namespace-alias": syntax.DeclNamespaceAlias,
	"type-alias":      syntax.DeclTypeAlias,
	"alias-template":  syntax.DeclAliasTemplate,
	"using":           syntax.DeclUsing,
	"using-shadow":    syntax.DeclUsingShadow,
	"template-param":  syntax.DeclTemplateParam,
	"method":          syntax.DeclMethod,
	"property":        syntax.DeclProperty,
	"ivar":            syntax.DeclIvar,
	"protocol":        syntax.DeclProtocol,
	"interface":       syntax.DeclInterface,
}

var nodeKinds = map[string]syntax.NodeKind{
	"declref":    syntax.KindDeclRef,
	"member":     syntax.KindMemberAccess,
	"capture":    syntax.KindCaptureRef,
	"usingdecl":  syntax.KindUsingDecl,
	"ctorinit":   syntax.KindCtorInit,
	"designated": syntax.KindDesignatedInit,
	"qualifier":  syntax.KindQualifier,
	"typeref":    syntax.KindTypeRef,
	"tparamtype": syntax.KindTemplateParamTypeRef,
	"deduced":    syntax.KindDeducedTypeRef,
	"decltype":   syntax.KindDecltypeRef,
	"overload":   syntax.KindOverloadRef,
	"message":    syntax.KindMessageSend,
	"property":   syntax.KindPropertyAccess,
	"ivar":       syntax.KindIvarAccess,
	"protocol":   syntax.KindProtocolLiteral,
	"interface":  syntax.KindInterfaceTypeRef,
	"composite":  syntax.KindCompositeTypeRef,
	"block":      syntax.KindBlock,
	"call":       syntax.KindCall,
	"assign":     syntax.KindAssign,
	"declstmt":   syntax.KindDeclStmt,
	"cast":       syntax.KindCast,
}

// declLinks defers label resolution until every declaration shell exists,
// so fixtures can reference forward.
type declLinks struct {
	label      string
	underlying []string
	of         string
	from       string
}

type interp struct {
	file  string
	decls map[string]*syntax.Decl
	order []*syntax.Decl
	links []declLinks
	tree  *form
}

func (in *interp) run(forms []*form) (*syntax.Tree, error) {
	for _, f := range forms {
		switch f.head() {
		case "decl":
			if err := in.addDecl(f); err != nil {
				return nil, err
			}
		case "tree":
			if in.tree != nil {
				return nil, fmt.Errorf("%s: multiple tree forms", in.file)
			}
			in.tree = f
		default:
			return nil, fmt.Errorf("%s: expected (decl ...) or (tree ...), got %q", in.file, f.head())
		}
	}
	if err := in.linkDecls(); err != nil {
		return nil, err
	}
	if in.tree == nil {
		return nil, fmt.Errorf("%s: missing tree form", in.file)
	}
	if len(in.tree.list) != 2 {
		return nil, fmt.Errorf("%s: tree form wants exactly one root node", in.file)
	}
	root, err := in.buildNode(in.tree.list[1])
	if err != nil {
		return nil, err
	}
	return syntax.NewTree(in.file, root, in.order...), nil
}

func (in *interp) addDecl(f *form) error {
	if len(f.list) < 2 || f.list[1].isList {
		return fmt.Errorf("%s: decl form wants a label", in.file)
	}
	label := f.list[1].atom
	if _, dup := in.decls[label]; dup {
		return fmt.Errorf("%s: duplicate decl label %q", in.file, label)
	}
	d := &syntax.Decl{}
	links := declLinks{label: label}
	for _, prop := range f.list[2:] {
		if !prop.isList {
			return fmt.Errorf("%s: decl %s: expected property list, got %q", in.file, label, prop.atom)
		}
		args := prop.list[1:]
		switch prop.head() {
		case "kind":
			k, err := in.oneAtom(label, prop)
			if err != nil {
				return err
			}
			kind, ok := declKinds[k]
			if !ok {
				return fmt.Errorf("%s: decl %s: unknown kind %q", in.file, label, k)
			}
			d.Kind = kind
		case "name":
			v, err := in.oneAtom(label, prop)
			if err != nil {
				return err
			}
			d.Name = v
		case "sig":
			v, err := in.oneAtom(label, prop)
			if err != nil {
				return err
			}
			d.Signature = v
		case "at":
			loc, err := in.location(label, prop)
			if err != nil {
				return err
			}
			d.Loc = loc
		case "underlying":
			for _, a := range args {
				links.underlying = append(links.underlying, a.atom)
			}
		case "of":
			v, err := in.oneAtom(label, prop)
			if err != nil {
				return err
			}
			links.of = v
		case "from":
			v, err := in.oneAtom(label, prop)
			if err != nil {
				return err
			}
			links.from = v
		case "explicit":
			d.ExplicitSpecialization = true
		default:
			return fmt.Errorf("%s: decl %s: unknown property %q", in.file, label, prop.head())
		}
	}
	if d.Name == "" {
		d.Name = label
	}
	in.decls[label] = d
	in.order = append(in.order, d)
	in.links = append(in.links, links)
	return nil
}

func (in *interp) linkDecls() error {
	for _, l := range in.links {
		d := in.decls[l.label]
		for _, u := range l.underlying {
			t, err := in.lookup(l.label, u)
			if err != nil {
				return err
			}
			d.Underlying = append(d.Underlying, t)
		}
		if l.of != "" {
			t, err := in.lookup(l.label, l.of)
			if err != nil {
				return err
			}
			d.Introducer = t
		}
		if l.from != "" {
			t, err := in.lookup(l.label, l.from)
			if err != nil {
				return err
			}
			d.SpecializedFrom = t
		}
	}
	return nil
}

func (in *interp) lookup(owner, label string) (*syntax.Decl, error) {
	d, ok := in.decls[label]
	if !ok {
		return nil, fmt.Errorf("%s: decl %s: unknown decl label %q", in.file, owner, label)
	}
	return d, nil
}

func (in *interp) buildNode(f *form) (*syntax.Node, error) {
	head := f.head()
	kind, ok := nodeKinds[head]
	if !ok {
		return nil, fmt.Errorf("%s: unknown node kind %q", in.file, head)
	}
	n := &syntax.Node{Kind: kind}
	for _, item := range f.list[1:] {
		if !item.isList {
			return nil, fmt.Errorf("%s: %s node: unexpected atom %q", in.file, head, item.atom)
		}
		switch item.head() {
		case "name":
			v, err := in.oneAtom(head, item)
			if err != nil {
				return nil, err
			}
			n.Name = v
		case "at":
			loc, err := in.location(head, item)
			if err != nil {
				return nil, err
			}
			loc.Expansion = n.NameLoc.Expansion
			n.NameLoc = loc
		case "expanded-at":
			loc, err := in.location(head, item)
			if err != nil {
				return nil, err
			}
			n.NameLoc.Expansion = &loc
		case "decl":
			v, err := in.oneAtom(head, item)
			if err != nil {
				return nil, err
			}
			d, err := in.lookup(head, v)
			if err != nil {
				return nil, err
			}
			n.Decl = d
		case "getter", "setter":
			v, err := in.oneAtom(head, item)
			if err != nil {
				return nil, err
			}
			d, err := in.lookup(head, v)
			if err != nil {
				return nil, err
			}
			if item.head() == "getter" {
				n.Getter = d
			} else {
				n.Setter = d
			}
		case "candidates":
			for _, a := range item.list[1:] {
				d, err := in.lookup(head, a.atom)
				if err != nil {
					return nil, err
				}
				n.Candidates = append(n.Candidates, d)
			}
		case "implicit":
			n.Implicit = true
		case "write":
			n.Write = true
		case "qual":
			for _, q := range item.list[1:] {
				seg, err := in.buildNode(q)
				if err != nil {
					return nil, err
				}
				if seg.Kind != syntax.KindQualifier {
					return nil, fmt.Errorf("%s: %s node: qual segments must be qualifier nodes", in.file, head)
				}
				n.Qual = append(n.Qual, seg)
			}
		default:
			if _, child := nodeKinds[item.head()]; child {
				c, err := in.buildNode(item)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, c)
				continue
			}
			return nil, fmt.Errorf("%s: %s node: unknown property %q", in.file, head, item.head())
		}
	}
	return n, nil
}

func (in *interp) oneAtom(owner string, prop *form) (string, error) {
	if len(prop.list) != 2 || prop.list[1].isList {
		return "", fmt.Errorf("%s: %s: property %q wants one atom", in.file, owner, prop.head())
	}
	return prop.list[1].atom, nil
}

func (in *interp) location(owner string, prop *form) (syntax.Location, error) {
	v, err := in.oneAtom(owner, prop)
	if err != nil {
		return syntax.Location{}, err
	}
	line, col, ok := strings.Cut(v, ":")
	if !ok {
		return syntax.Location{}, fmt.Errorf("%s: %s: location wants LINE:COL, got %q", in.file, owner, v)
	}
	l, err1 := strconv.Atoi(line)
	c, err2 := strconv.Atoi(col)
	if err1 != nil || err2 != nil || l < 1 || c < 1 {
		return syntax.Location{}, fmt.Errorf("%s: %s: location wants LINE:COL, got %q", in.file, owner, v)
	}
	return syntax.Location{File: in.file, Line: l, Col: c}, nil
}
