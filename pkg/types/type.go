// Package types implements the tagged-sum type model:
// subtype compatibility, identity, generic resolution and storage-form
// derivation. It deliberately knows nothing about pkg/ast or pkg/symbols
// — type definitions are referenced by opaque DefId, and anything that
// needs to walk a definition's shape (superclass, conformances) goes
// through the small DefinitionResolver interface, exactly the "arena +
// indices, no back-pointer cycles" guidance of this Design Notes.
package types

import "sort"

// DefId is an opaque handle into whatever arena owns TypeDefinitions
// (pkg/symbols.DefinitionTable in this module).
type DefId int

// Kind discriminates the arms of the Type tagged sum.
type Kind int

const (
	KindClass Kind = iota
	KindValueType
	KindEnum
	KindProtocol
	KindMultiProtocol
	KindOptional
	KindError
	KindCallable
	KindGenericVariable
	KindLocalGenericVariable
	KindTypeAsValue
	KindBox
	KindSomething
	KindSomeobject
	KindNoReturn
	KindStorageExpectation
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindValueType:
		return "ValueType"
	case KindEnum:
		return "Enum"
	case KindProtocol:
		return "Protocol"
	case KindMultiProtocol:
		return "MultiProtocol"
	case KindOptional:
		return "Optional"
	case KindError:
		return "Error"
	case KindCallable:
		return "Callable"
	case KindGenericVariable:
		return "GenericVariable"
	case KindLocalGenericVariable:
		return "LocalGenericVariable"
	case KindTypeAsValue:
		return "TypeAsValue"
	case KindBox:
		return "Box"
	case KindSomething:
		return "Something"
	case KindSomeobject:
		return "Someobject"
	case KindNoReturn:
		return "NoReturn"
	case KindStorageExpectation:
		return "StorageExpectation"
	default:
		return "Unknown"
	}
}

// Type is the tagged sum itself: every arm's payload is represented as a
// field on one shared struct rather than as sixteen Go types, which
// keeps resolve_on/compatibility pattern matching a single switch over
// Kind instead of a type-switch over sixteen wrapper types — the same
// trade procyon's pkg/ir.Type enum makes at a smaller scale.
type Type struct {
	Kind Kind

	// Class, ValueType, Protocol
	Def  DefId
	Args []Type

	// Optional, Box (inner), TypeAsValue (inner)
	Inner *Type

	// Box only: the interface view boxed values are seen through.
	Iface *Type

	// MultiProtocol
	Members []Type

	// Error
	ErrorEnum *Type
	Success   *Type

	// Callable
	Params []Type
	Result *Type
	Err    *Type // optional error type of a throwing callable

	// GenericVariable / LocalGenericVariable
	Index      int
	OwningDef  DefId  // GenericVariable
	OwningFunc string // LocalGenericVariable: a stable function identity key

	// Flags stored alongside the kind, not encoded into it.
	Reference bool
	Mutable   bool
}

// Something, Someobject, NoReturn and StorageExpectation are singletons
// in spirit; these constructors just return a value of the right kind.
func Something() Type            { return Type{Kind: KindSomething} }
func Someobject() Type           { return Type{Kind: KindSomeobject} }
func NoReturn() Type             { return Type{Kind: KindNoReturn} }
func StorageExpectationType() Type { return Type{Kind: KindStorageExpectation} }

func Class(def DefId, args []Type) Type {
	return Type{Kind: KindClass, Def: def, Args: args}
}

func ValueType(def DefId, args []Type) Type {
	return Type{Kind: KindValueType, Def: def, Args: args}
}

func Enum(def DefId) Type {
	return Type{Kind: KindEnum, Def: def}
}

func Protocol(def DefId, args []Type) Type {
	return Type{Kind: KindProtocol, Def: def, Args: args}
}

// MultiProtocol builds a conjunction of protocols, sorted and
// deduplicated by definition id (documented invariant); an empty result
// is rejected, per the documented boundary behaviour.
func MultiProtocol(members []Type) (Type, bool) {
	uniq := make(map[DefId]Type, len(members))
	for _, m := range members {
		uniq[m.Def] = m
	}
	if len(uniq) == 0 {
		return Type{}, false
	}
	out := make([]Type, 0, len(uniq))
	for _, m := range uniq {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def < out[j].Def })
	return Type{Kind: KindMultiProtocol, Members: out}, true
}

// Optional never wraps Optional or Box (documented invariant): wrapping
// an already-optional type returns it unchanged, and wrapping a Box
// should instead be expressed as Box(Optional(T), iface) by the caller.
func Optional(inner Type) Type {
	if inner.Kind == KindOptional {
		return inner
	}
	return Type{Kind: KindOptional, Inner: &inner}
}

func ErrorUnion(errorEnum, success Type) Type {
	return Type{Kind: KindError, ErrorEnum: &errorEnum, Success: &success}
}

func Callable(result Type, errType *Type, params []Type) Type {
	return Type{Kind: KindCallable, Result: &result, Err: errType, Params: params}
}

func GenericVariable(index int, owningDef DefId) Type {
	return Type{Kind: KindGenericVariable, Index: index, OwningDef: owningDef}
}

func LocalGenericVariable(index int, owningFunc string) Type {
	return Type{Kind: KindLocalGenericVariable, Index: index, OwningFunc: owningFunc}
}

func TypeAsValue(inner Type) Type {
	return Type{Kind: KindTypeAsValue, Inner: &inner}
}

// Box never nests (documented invariant): boxing an already-boxed value
// just rewraps it under the new interface view rather than nesting.
func Box(inner, iface Type) Type {
	if inner.Kind == KindBox {
		inner = *inner.Inner
	}
	return Type{Kind: KindBox, Inner: &inner, Iface: &iface}
}

// IsOptional, IsBox are small convenience predicates used throughout
// pkg/sema's boxing insertion.
func (t Type) IsOptional() bool { return t.Kind == KindOptional }
func (t Type) IsBox() bool      { return t.Kind == KindBox }

func (t Type) String() string {
	switch t.Kind {
	case KindOptional:
		return "Optional(" + t.Inner.String() + ")"
	case KindBox:
		return "Box(" + t.Inner.String() + ")"
	default:
		return t.Kind.String()
	}
}
