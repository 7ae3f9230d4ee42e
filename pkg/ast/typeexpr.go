package ast

import "github.com/glyphlang/glyphc/pkg/diag"

// TypeExpr is the syntactic type expression the parser builds from
// the type grammar; pkg/sema resolves one of these against a
// package's symbol table to produce a pkg/types.Type. Keeping the two
// separate mirrors procyon's split between parsed ast.Class (raw
// names) and the later ir.Program (resolved types).
type TypeExpr interface {
	Node
	typeExpr()
}

// NominalType is a named type with optional 🐚-prefixed generic
// arguments: a class, value type, enum, protocol or generic-variable
// reference (disambiguated during resolution, not parsing).
type NominalType struct {
	Position    diag.Position
	PackageName []rune // non-nil when qualified, e.g. an aliased import
	Name        []rune
	GenericArgs []TypeExpr
}

func (n *NominalType) Pos() diag.Position { return n.Position }
func (*NominalType) typeExpr()            {}

// MultiProtocolType is Protocol {🍆 Protocol}+.
type MultiProtocolType struct {
	Position diag.Position
	Members  []TypeExpr
}

func (m *MultiProtocolType) Pos() diag.Position { return m.Position }
func (*MultiProtocolType) typeExpr()            {}

// CallableType is 🍇 [ParamTypes] ➡️ RetType 🍉.
type CallableType struct {
	Position diag.Position
	Params   []TypeExpr
	ErrType  TypeExpr // optional
	Result   TypeExpr
}

func (c *CallableType) Pos() diag.Position { return c.Position }
func (*CallableType) typeExpr()            {}

// OptionalType is 🍬 T.
type OptionalType struct {
	Position diag.Position
	Inner    TypeExpr
}

func (o *OptionalType) Pos() diag.Position { return o.Position }
func (*OptionalType) typeExpr()            {}

// ErrorUnionType is 🚨 ErrEnum T.
type ErrorUnionType struct {
	Position  diag.Position
	ErrorEnum TypeExpr
	Success   TypeExpr
}

func (e *ErrorUnionType) Pos() diag.Position { return e.Position }
func (*ErrorUnionType) typeExpr()            {}

// MetaType is 🔲 T, a first-class reference to a type itself.
type MetaType struct {
	Position diag.Position
	Inner    TypeExpr
}

func (m *MetaType) Pos() diag.Position { return m.Position }
func (*MetaType) typeExpr()            {}
