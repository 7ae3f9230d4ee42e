package types

import "testing"

// fakeResolver is a minimal DefinitionResolver for table-driven tests,
// in chazu-procyon's plain-struct-fixture style rather than a mock
// library (chazu-procyon has no interface-mocking dependency anywhere
// in its test suite).
type fakeResolver struct {
	super       map[DefId]DefId
	conformsTo  map[DefId][]Conformance
}

func (f *fakeResolver) SuperOf(id DefId) (DefId, bool) {
	d, ok := f.super[id]
	return d, ok
}

func (f *fakeResolver) ConformsTo(id DefId) []Conformance {
	return f.conformsTo[id]
}

const (
	defAnimal DefId = iota + 1
	defDog
	defEquatable
)

func TestCompatible_Reflexive(t *testing.T) {
	defs := &fakeResolver{}
	tests := []Type{
		Class(defAnimal, nil),
		ValueType(defAnimal, nil),
		Something(),
		Someobject(),
		Optional(Class(defAnimal, nil)),
		Callable(Class(defAnimal, nil), nil, []Type{Class(defAnimal, nil)}),
	}
	for _, tt := range tests {
		if !Compatible(tt, tt, nil, defs) {
			t.Errorf("Compatible(%v, %v) = false, want true (reflexivity)", tt, tt)
		}
	}
}

func TestCompatible_ClassHierarchy(t *testing.T) {
	defs := &fakeResolver{super: map[DefId]DefId{defDog: defAnimal}}
	dog := Class(defDog, nil)
	animal := Class(defAnimal, nil)
	if !Compatible(dog, animal, nil, defs) {
		t.Error("Dog should be compatible with Animal via inheritance")
	}
	if Compatible(animal, dog, nil, defs) {
		t.Error("Animal should not be compatible with Dog")
	}
}

func TestCompatible_Something(t *testing.T) {
	defs := &fakeResolver{}
	if !Compatible(Class(defAnimal, nil), Something(), nil, defs) {
		t.Error("anything should be compatible with Something")
	}
}

func TestCompatible_Optional(t *testing.T) {
	defs := &fakeResolver{super: map[DefId]DefId{defDog: defAnimal}}
	dog := Class(defDog, nil)
	animal := Class(defAnimal, nil)
	if !Compatible(dog, Optional(animal), nil, defs) {
		t.Error("a ≼ b should imply a ≼ Optional(b)")
	}
	if Compatible(Optional(dog), animal, nil, defs) {
		t.Error("Optional(a) ≼ b should not hold")
	}
}

func TestCompatible_Box(t *testing.T) {
	defs := &fakeResolver{}
	iface := Protocol(defEquatable, nil)
	boxed := Box(Class(defAnimal, nil), iface)
	defs.conformsTo = map[DefId][]Conformance{defAnimal: {{Protocol: defEquatable}}}
	if !Compatible(boxed, iface, nil, defs) {
		t.Error("Box(a) ≼ b should hold when unbox(a) ≼ b")
	}
}

func TestOptional_NeverNests(t *testing.T) {
	inner := Class(defAnimal, nil)
	once := Optional(inner)
	twice := Optional(once)
	if !Identical(once, twice) {
		t.Error("Optional(Optional(T)) must collapse to Optional(T)")
	}
}

func TestBox_NeverNests(t *testing.T) {
	iface := Protocol(defEquatable, nil)
	inner := Class(defAnimal, nil)
	once := Box(inner, iface)
	twice := Box(once, iface)
	if twice.Inner.Kind == KindBox {
		t.Error("Box must never nest, documented invariant")
	}
}

func TestMultiProtocol_RejectsEmpty(t *testing.T) {
	if _, ok := MultiProtocol(nil); ok {
		t.Error("an empty MultiProtocol literal must be rejected")
	}
}

func TestResolveOn_Idempotent(t *testing.T) {
	ctx := &Context{HasCallee: true, CalleeDef: defAnimal, CalleeArgs: []Type{Class(defDog, nil)}}
	tv := GenericVariable(0, defAnimal)
	once := ResolveOn(tv, ctx)
	twice := ResolveOn(once, ctx)
	if !Identical(once, twice) {
		t.Error("resolve_on should be idempotent")
	}
}

func TestStorageOf_ErrorDominatedBySuccess(t *testing.T) {
	iface := Protocol(defEquatable, nil)
	boxedSuccess := Box(Class(defAnimal, nil), iface)
	errType := ErrorUnion(Enum(defAnimal), boxedSuccess)
	if got := StorageOf(errType); got != StorageBox {
		t.Errorf("StorageOf(Error(E, Box(T))) = %s, want Box", got)
	}
}
