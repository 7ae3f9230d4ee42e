// Package symbols is the arena of TypeDefinitions and the
// per-package symbol tables that resolve (namespace, name) pairs to
// them. It is the DefId arena pkg/types.DefId indexes
// into, and implements pkg/types.DefinitionResolver so the type model
// never needs to import it back — the same "arena + indices, no
// back-pointer cycles" shape pkg/types asks for, grounded on
// procyon's pkg/ir.Builder owning a flat Scope/Program pair rather than
// a web of pointers.
package symbols

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

// DefKind discriminates the TypeDefinition subclasses.
type DefKind int

const (
	DefClass DefKind = iota
	DefValueType
	DefEnum
	DefProtocol
	DefExtension
)

func (k DefKind) String() string {
	switch k {
	case DefClass:
		return "Class"
	case DefValueType:
		return "ValueType"
	case DefEnum:
		return "Enum"
	case DefProtocol:
		return "Protocol"
	case DefExtension:
		return "Extension"
	default:
		return "Unknown"
	}
}

// InstanceVar is a resolved instance/class variable slot on a
// definition: name, resolved type, and optional initializer expression.
type InstanceVar struct {
	Position diag.Position
	Name     string
	Type     types.Type
	Default  ast.Expr
	ClassVar bool
}

// EnumCase is a resolved enum member: name, backing integer, doc.
type EnumCase struct {
	Name  string
	Value int
	Doc   string
}

// Conformance records a declared protocol conformance awaiting
// dispatch-table population by pkg/sema (the preparation pass step 4).
// Implementations is filled in by pkg/sema's BuildConformances:
// one *ast.Function per protocol method, which may be the concrete
// method itself (compatible storage) or a synthesised boxing layer.
type Conformance struct {
	Protocol        *NominalRef
	Implementations map[string]*ast.Function
}

// NominalRef is a not-yet-or-already-resolved reference to another
// definition together with its generic arguments, used for superclass
// and conformance links before and after resolution.
type NominalRef struct {
	Name []rune
	Def  types.DefId
	Args []types.Type
}

// Definition is a resolved TypeDefinition, generalised across all
// five subclass shapes into one struct (the same "one struct, tagged by
// Kind" trade pkg/types.Type already makes, rather than five Go types
// needing a type-switch at every call site).
type Definition struct {
	ID   types.DefId
	Kind DefKind

	Name    string
	Package string
	Doc     string
	Export  bool
	Pos     diag.Position

	InstanceVars []InstanceVar
	Methods      map[string]*ast.Function // includes type-methods, keyed with a "$" class-method prefix
	Initializers map[string]*ast.Function

	Conformances []*Conformance

	GenericParams []*ast.GenericParam

	Super     *NominalRef // Class only
	SuperArgs []types.Type

	// Class-only fields.
	Final               bool
	Foreign             bool
	InheritsInitializers bool
	RequiredInitializers map[string]bool
	SubclassPresent      bool

	// ValueType-only field.
	Primitive bool

	// Enum-only field.
	EnumValues []EnumCase

	// Extension-only field: the definition it contributes to.
	ExtendsName string
}

// MethodKey builds the map key a class-method (type-method) is stored
// under, disambiguated from an instance method of the same name.
func MethodKey(name string, isClassMethod bool) string {
	if isClassMethod {
		return "$" + name
	}
	return name
}

// Method looks up an instance or class method by name.
func (d *Definition) Method(name string, isClassMethod bool) (*ast.Function, bool) {
	fn, ok := d.Methods[MethodKey(name, isClassMethod)]
	return fn, ok
}
