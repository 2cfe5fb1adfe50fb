// Copyright © 2025 The declnav authors

package syntax

// NodeKind is the closed set of syntactic/semantic categories the front end
// can produce. Dispatch in the resolution engine is an exhaustive switch
// over this enumeration, so a new front-end category forces a visible
// update to the resolution table.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Name-bearing categories.
	KindDeclRef              // expression name referring to one declaration
	KindMemberAccess         // member access resolved to one declaration
	KindCaptureRef           // use of a lambda-captured name
	KindUsingDecl            // using-declaration introducing overloads
	KindCtorInit             // constructor initializer-list entry
	KindDesignatedInit       // designated-initializer field
	KindQualifier            // one segment of a qualifying path
	KindTypeRef              // named type used as a type
	KindTemplateParamTypeRef // bare template-parameter type reference
	KindDeducedTypeRef       // deduced-from-initializer type (auto)
	KindDecltypeRef          // decltype(expr) type reference
	KindOverloadRef          // unresolved (dependent) name or member access
	KindMessageSend          // object-model message send
	KindPropertyAccess       // object-model property access
	KindIvarAccess           // object-model instance-variable access
	KindProtocolLiteral      // object-model protocol literal expression
	KindInterfaceTypeRef     // object-model interface type reference
	KindCompositeTypeRef     // object-model composite type (base plus protocols)

	// Structural categories carrying no name of their own.
	KindBlock
	KindCall
	KindAssign
	KindDeclStmt
	KindCast
)

func (k NodeKind) String() string {
	switch k {
	case KindDeclRef:
		return "declref"
	case KindMemberAccess:
		return "member"
	case KindCaptureRef:
		return "capture"
	case KindUsingDecl:
		return "usingdecl"
	case KindCtorInit:
		return "ctorinit"
	case KindDesignatedInit:
		return "designated"
	case KindQualifier:
		return "qualifier"
	case KindTypeRef:
		return "typeref"
	case KindTemplateParamTypeRef:
		return "tparamtype"
	case KindDeducedTypeRef:
		return "deduced"
	case KindDecltypeRef:
		return "decltype"
	case KindOverloadRef:
		return "overload"
	case KindMessageSend:
		return "message"
	case KindPropertyAccess:
		return "property"
	case KindIvarAccess:
		return "ivar"
	case KindProtocolLiteral:
		return "protocol"
	case KindInterfaceTypeRef:
		return "interface"
	case KindCompositeTypeRef:
		return "composite"
	case KindBlock:
		return "block"
	case KindCall:
		return "call"
	case KindAssign:
		return "assign"
	case KindDeclStmt:
		return "declstmt"
	case KindCast:
		return "cast"
	default:
		return "invalid"
	}
}

// NameBearing reports whether nodes of this kind can designate a written
// name. Structural kinds only group children.
func (k NodeKind) NameBearing() bool {
	switch k {
	case KindDeclRef, KindMemberAccess, KindCaptureRef, KindUsingDecl,
		KindCtorInit, KindDesignatedInit, KindQualifier, KindTypeRef,
		KindTemplateParamTypeRef, KindDeducedTypeRef, KindDecltypeRef,
		KindOverloadRef, KindMessageSend, KindPropertyAccess,
		KindIvarAccess, KindProtocolLiteral, KindInterfaceTypeRef,
		KindCompositeTypeRef:
		return true
	}
	return false
}

// Node is one node of the front end's immutable, fully type-checked tree.
// The resolution layer borrows nodes read-only for the duration of a query.
type Node struct {
	Kind NodeKind

	// Implicit marks nodes the front end synthesized (implicit
	// conversions, loop-protocol calls, default-constructor calls). They
	// are traversed for their explicit children but never reported.
	Implicit bool

	// Name is the written name token, empty for structural nodes.
	Name    string
	NameLoc Location

	// Decl is the directly referenced declaration when the front end
	// resolved the node to exactly one.
	Decl *Decl

	// Candidates holds the visible overload set of an unresolved
	// reference, or the protocols named by a composite type.
	Candidates []*Decl

	// Qual lists the explicit qualifying path segments written
	// immediately before the name, outermost first. Segments have kind
	// KindQualifier.
	Qual []*Node

	// Write marks a property access that is the target of an assignment.
	Write bool

	// Getter and Setter are the accessors of a property access without a
	// declared property.
	Getter *Decl
	Setter *Decl

	Children []*Node
}

// Walk calls fn for every node reachable from n in depth-first order,
// qualifier segments before the node that owns them, children after.
// Traversal uses an explicit work list so deeply nested input cannot
// exhaust the call stack.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		for _, q := range cur.Qual {
			fn(q)
		}
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}
