// Copyright © 2025 The declnav authors

package syntax

// DeclKind classifies a declaration in the front end's symbol table.
type DeclKind int

const (
	DeclInvalid        DeclKind = iota
	DeclFunc                    // function or function template
	DeclVar                     // variable or variable template
	DeclRecord                  // struct/class/union, possibly a specialization
	DeclField                   // record member
	DeclNamespace               // namespace
	DeclNamespaceAlias          // namespace alias (namespace b = a)
	DeclTypeAlias               // typedef or using-alias
	DeclAliasTemplate           // alias template (template<...> using X = ...)
	DeclUsing                   // using-declaration
	DeclUsingShadow             // one overload introduced by a using-declaration
	DeclTemplateParam           // template parameter (type or non-type)
	DeclMethod                  // object-model method
	DeclProperty                // object-model property
	DeclIvar                    // object-model instance variable
	DeclProtocol                // object-model protocol
	DeclInterface               // object-model interface
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunc:
		return "func"
	case DeclVar:
		return "var"
	case DeclRecord:
		return "record"
	case DeclField:
		return "field"
	case DeclNamespace:
		return "namespace"
	case DeclNamespaceAlias:
		return "namespace-alias"
	case DeclTypeAlias:
		return "type-alias"
	case DeclAliasTemplate:
		return "alias-template"
	case DeclUsing:
		return "using"
	case DeclUsingShadow:
		return "using-shadow"
	case DeclTemplateParam:
		return "template-param"
	case DeclMethod:
		return "method"
	case DeclProperty:
		return "property"
	case DeclIvar:
		return "ivar"
	case DeclProtocol:
		return "protocol"
	case DeclInterface:
		return "interface"
	default:
		return "invalid"
	}
}

// Decl is a handle into the front end's symbol table. Handles are compared
// by pointer identity; the resolution engines never create, mutate, or
// destroy one.
type Decl struct {
	Kind      DeclKind
	Name      string
	Signature string // human-readable signature, e.g. "int f(int)"
	Loc       Location

	// Underlying lists what an alias-like declaration re-exposes: the
	// aliased type of a typedef, the target namespace of a namespace
	// alias, the expansion of an alias template, the shadows of a
	// using-declaration, or the shadowed declaration of a using-shadow.
	Underlying []*Decl

	// Introducer is the using-declaration that created a using-shadow.
	Introducer *Decl

	// SpecializedFrom links a template specialization to the pattern it
	// was produced from. Nil for non-template declarations and primary
	// templates.
	SpecializedFrom *Decl

	// ExplicitSpecialization marks a specialization the user wrote out,
	// as opposed to one the front end instantiated.
	ExplicitSpecialization bool
}

// DisplayName returns the signature when one is recorded and the bare name
// otherwise.
func (d *Decl) DisplayName() string {
	if d == nil {
		return ""
	}
	if d.Signature != "" {
		return d.Signature
	}
	return d.Name
}

// IsAliasLike reports whether the declaration re-exposes another
// declaration rather than defining one.
func (d *Decl) IsAliasLike() bool {
	switch d.Kind {
	case DeclNamespaceAlias, DeclTypeAlias, DeclAliasTemplate, DeclUsing, DeclUsingShadow:
		return true
	}
	return false
}
