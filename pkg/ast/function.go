package ast

import "github.com/glyphlang/glyphc/pkg/diag"

// Mood qualifies how a function may be called — imperative, an
// escalating "‼️" call, or interrogative — grounded on the original
// compiler's Mood enum (original_source/Compiler/Functions/Mood.hpp).
// A call's closing token
// (EndArgumentList vs EndInterrogativeArgumentList) must match the
// callee's declared Mood.
type Mood int

const (
	Imperative Mood = iota
	Escalating
	Interrogative
)

func (m Mood) String() string {
	switch m {
	case Imperative:
		return "Imperative"
	case Escalating:
		return "Escalating"
	case Interrogative:
		return "Interrogative"
	default:
		return "Unknown"
	}
}

// FunctionKind distinguishes the function roles a definition can declare.
type FunctionKind int

const (
	ObjectMethod FunctionKind = iota
	ClassMethod
	ValueTypeMethod
	ValueTypeInitializer
	ObjectInitializer
	Deinitializer
	PlainFunction
	BoxingLayer
)

func (k FunctionKind) String() string {
	switch k {
	case ObjectMethod:
		return "ObjectMethod"
	case ClassMethod:
		return "ClassMethod"
	case ValueTypeMethod:
		return "ValueTypeMethod"
	case ValueTypeInitializer:
		return "ValueTypeInitializer"
	case ObjectInitializer:
		return "ObjectInitializer"
	case Deinitializer:
		return "Deinitializer"
	case PlainFunction:
		return "Function"
	case BoxingLayer:
		return "BoxingLayer"
	default:
		return "Unknown"
	}
}

// AccessLevel is the method/instance-variable visibility level used by
// AccessError checks.
type AccessLevel int

const (
	Public AccessLevel = iota
	Protected
	Private
)

func (a AccessLevel) String() string {
	switch a {
	case Public:
		return "Public"
	case Protected:
		return "Protected"
	case Private:
		return "Private"
	default:
		return "Unknown"
	}
}

// GenericParam is a generic parameter on a type definition or function:
// a name, an optional constraint, and whether it rejects boxing (must
// be stored simply, forcing a reification copy per the GLOSSARY).
type GenericParam struct {
	Position      diag.Position
	Name          []rune
	Constraint    TypeExpr
	RejectsBoxing bool
}

// Parameter is a function argument; AutoAssign records the "baby
// bottle" prefix that auto-assigns an initializer argument to the
// instance variable of the same name.
type Parameter struct {
	Position   diag.Position
	Name       []rune
	Type       TypeExpr
	AutoAssign bool
}

// Function is a declared method or initializer, still carrying syntactic
// (unresolved) types; pkg/sema resolves ReturnType/ErrorType/parameter
// types and replaces Body with a type-checked, boxing-inserted tree
// during analysis — the same node is reused in place, as procyon's
// pkg/ir.Method reuses fields filled in progressively by its builder
// then its codegen pass.
type Function struct {
	Position   diag.Position
	Name       []rune
	IsOperator bool // method name is an operator code point, not an identifier

	Mood       Mood
	Access     AccessLevel
	Final      bool
	Overriding bool
	Mutating   bool
	Deprecated bool

	Params        []*Parameter
	ReturnType    TypeExpr
	ErrorType     TypeExpr
	GenericParams []*GenericParam

	Kind         FunctionKind
	AutoAssigns  [][]rune // instance variable names auto-assigned on entry
	ExternalName string

	Body *Block
}

func (f *Function) Pos() diag.Position { return f.Position }
