package ast

import (
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

// Expr is implemented by every expression node. ExpressionType is nil
// as produced by pkg/parser and filled in by pkg/sema's type-checking
// pass (analysis step 2); boxing insertion (step 7) then wraps an Expr
// in one of the conversion nodes below when its ExpressionType's
// storage does not match the context it flows into.
type Expr interface {
	Node
	expr()
	Type() *types.Type
	SetType(*types.Type)
}

// ExprBase factors the ExpressionType slot shared by every expression
// node, the way procyon's pkg/ir.Expression does.
type ExprBase struct {
	Position diag.Position
	TypeInfo *types.Type
}

func (e *ExprBase) Pos() diag.Position   { return e.Position }
func (*ExprBase) expr()                  {}
func (e *ExprBase) Type() *types.Type    { return e.TypeInfo }
func (e *ExprBase) SetType(t *types.Type) { e.TypeInfo = t }

// At builds an ExprBase carrying only a position, the common case
// pkg/parser constructs every node with.
func At(pos diag.Position) ExprBase { return ExprBase{Position: pos} }

// IntegerLiteral is an Integer token's numeric value.
type IntegerLiteral struct {
	ExprBase
	Value int64
}

// DoubleLiteral is a floating-point literal.
type DoubleLiteral struct {
	ExprBase
	Value float64
}

// SymbolLiteral is a `🔟x` single-grapheme literal.
type SymbolLiteral struct {
	ExprBase
	Value rune
}

// StringLiteral is a `🔤...🔤` literal with no interpolation.
type StringLiteral struct {
	ExprBase
	Value string
}

// Concatenate is `🔤 text 🧲 expr 🧲 text 🔤` (with any number of
// 🧲-delimited embedded expressions), a string built from interpolated
// parts (literal runs and embedded expressions).
type Concatenate struct {
	ExprBase
	Parts []Expr
}

// ListLiteral is `🍨 element* 🍆`.
type ListLiteral struct {
	ExprBase
	Elements []Expr
}

// DictionaryLiteral is `🍯 (key value)* 🍆`.
type DictionaryLiteral struct {
	ExprBase
	Keys   []Expr
	Values []Expr
}

// TrueLiteral is `👍`.
type TrueLiteral struct{ ExprBase }

// FalseLiteral is `👎`.
type FalseLiteral struct{ ExprBase }

// NothingnessLiteral is `👽`, the Optional "no value" literal.
type NothingnessLiteral struct{ ExprBase }

// ThisLiteral is `👇`, the implicit receiver.
type ThisLiteral struct{ ExprBase }

// GetVariable reads a local, parameter, or (after resolution) an
// instance variable accessed via an implicit receiver.
type GetVariable struct {
	ExprBase
	Name []rune
}

// MetaTypeInstantiation calls a type method or initializer on a
// 🔲-meta-type value rather than on a statically known type.
type MetaTypeInstantiation struct {
	ExprBase
	MetaType Expr
	Method   []rune
	Args     []Expr
}

// Cast is `callee 🔲 TypeExpr`, a runtime-checked down/cross-cast.
type Cast struct {
	ExprBase
	Callee Expr
	Target TypeExpr
}

// ConditionalAssignment is `optional 🎲 fallback`, the short-circuit
// Optional-coalescing operator.
type ConditionalAssignment struct {
	ExprBase
	Optional Expr
	Fallback Expr
}

// TypeMethod is `Type🔲 name(args)`, a call to a type (class) method.
type TypeMethod struct {
	ExprBase
	Receiver TypeExpr
	Name     []rune
	Mood     Mood
	Args     []Expr
}

// SuperMethod is `⤴️ name args❗️`, calling an overridden superclass
// method from within an override.
type SuperMethod struct {
	ExprBase
	Name []rune
	Mood Mood
	Args []Expr
}

// CallableCall invokes a first-class callable value.
type CallableCall struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// CaptureMethod partially applies an instance method into a callable
// without invoking it.
type CaptureMethod struct {
	ExprBase
	Receiver Expr
	Name     []rune
}

// CaptureTypeMethod partially applies a type method into a callable.
type CaptureTypeMethod struct {
	ExprBase
	Receiver TypeExpr
	Name     []rune
}

// Method is `receiver name args❗️` (`args❓` for an interrogative call),
// an instance method call; the prefix operators ➖ and 😜 parse to the
// same node with IsOperator set, while binary operators parse to
// BinaryOperator.
type Method struct {
	ExprBase
	Receiver   Expr
	Name       []rune
	IsOperator bool
	Mood       Mood
	Args       []Expr
}

// BinaryOperator is `left op right`. pkg/sema types it through the
// method named by the operator on the left operand's type (or, when
// there is none, as the left operand's type) and keeps the node as it
// is; it is not rewritten into a Method.
type BinaryOperator struct {
	ExprBase
	Operator rune
	Left     Expr
	Right    Expr
}

// Initialization is `🆕 Type args❗️` or `🆕 Type args❓`, constructing
// a new instance via an initializer.
type Initialization struct {
	ExprBase
	Target TypeExpr
	Mood   Mood
	Args   []Expr
}

// Closure is an inline `🍇 params [➡️ result] body 🍉` callable
// literal capturing its enclosing scope.
type Closure struct {
	ExprBase
	Params     []*Parameter
	ReturnType TypeExpr
	ErrorType  TypeExpr
	Body       *Block
}

// IsNothingness is `expr 👽` (optionally followed by ❓), testing an
// Optional for absence.
type IsNothingness struct {
	ExprBase
	Operand Expr
}

// IsError is `expr 🚨❓`, testing an error-union expression for the
// error arm.
type IsError struct {
	ExprBase
	Operand Expr
}

// Unwrap is `expr❗️`, force-unwrapping an Optional or error-union
// expression, raising a runtime fault on failure.
type Unwrap struct {
	ExprBase
	Operand Expr
}

// MetaTypeFromInstance is `expr🔲`, reifying an expression's runtime
// type as a first-class meta-type value.
type MetaTypeFromInstance struct {
	ExprBase
	Operand Expr
}

// --- boxing-conversion nodes   ---
// pkg/sema's boxing-insertion pass wraps an already type-checked Expr
// in one of these when the storage its static type implies does not
// match the storage its context expects. Each carries the original
// expression plus the resolved source/target pkg/types.Type so
// internal/astdump can render the conversion explicitly.

// SimpleToSimpleOptional lifts a plain value into its Optional form
// without a storage change (still unboxed).
type SimpleToSimpleOptional struct {
	ExprBase
	Operand Expr
}

// BoxToSimpleOptional unboxes a Box value into a SimpleOptional slot.
type BoxToSimpleOptional struct {
	ExprBase
	Operand Expr
}

// SimpleToBox boxes a plain value behind its declared interface.
type SimpleToBox struct {
	ExprBase
	Operand  Expr
	Iface    types.Type
}

// SimpleOptionalToBox boxes a SimpleOptional value.
type SimpleOptionalToBox struct {
	ExprBase
	Operand Expr
	Iface   types.Type
}

// BoxToSimple unboxes a Box value back to its simple storage.
type BoxToSimple struct {
	ExprBase
	Operand Expr
}

// Dereference converts a reference-flagged value into a plain value
// (the reference flag).
type Dereference struct {
	ExprBase
	Operand Expr
}

// StoreTemporarily spills a value into an addressable temporary so it
// can be passed where a reference is expected (e.g. a mutating
// value-type method receiver).
type StoreTemporarily struct {
	ExprBase
	Operand Expr
}

// CallableBox wraps a callable value whose signature storage does not
// match the expected callable type in a thunk that performs the
// necessary per-argument/result boxing at call time.
type CallableBox struct {
	ExprBase
	Operand  Expr
	Expected types.Type
}
