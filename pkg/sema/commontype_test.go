package sema

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

func newSiblingArena() (*symbols.DefinitionTable, types.Type, types.Type) {
	dt := symbols.NewDefinitionTable()
	animal := dt.Add(&symbols.Definition{Kind: symbols.DefClass, Name: "Animal"})
	named := dt.Add(&symbols.Definition{Kind: symbols.DefProtocol, Name: "Named"})
	dog := dt.Add(&symbols.Definition{
		Kind: symbols.DefClass, Name: "Dog", Super: &symbols.NominalRef{Def: animal},
		Conformances: []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: named}}},
	})
	cat := dt.Add(&symbols.Definition{
		Kind: symbols.DefClass, Name: "Cat", Super: &symbols.NominalRef{Def: animal},
		Conformances: []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: named}}},
	})
	return dt, types.Class(dog, nil), types.Class(cat, nil)
}

func TestCommonTypeFinder_SingleTypeIsItself(t *testing.T) {
	dt, dog, _ := newSiblingArena()
	a := NewAnalyser(dt, &diag.Sink{})
	f := NewCommonTypeFinder(a)
	f.AddType(dog, nil)
	got := f.CommonType(diag.Position{})
	if !types.Identical(got, dog) {
		t.Fatalf("common type of a single element should be itself, got %v", got)
	}
}

func TestCommonTypeFinder_SiblingClassesNarrowToSharedProtocol(t *testing.T) {
	dt, dog, cat := newSiblingArena()
	sink := &diag.Sink{}
	a := NewAnalyser(dt, sink)
	f := NewCommonTypeFinder(a)
	f.AddType(dog, nil)
	f.AddType(cat, nil)
	got := f.CommonType(diag.Position{})
	if got.Kind != types.KindProtocol {
		t.Fatalf("expected the shared Named protocol, got %v", got)
	}
}

func TestCommonTypeFinder_UnrelatedTypesWidenToSomething(t *testing.T) {
	dt, dog, _ := newSiblingArena()
	intID := dt.Add(&symbols.Definition{Kind: symbols.DefValueType, Name: "Int"})
	sink := &diag.Sink{}
	a := NewAnalyser(dt, sink)
	f := NewCommonTypeFinder(a)
	f.AddType(dog, nil)
	f.AddType(types.ValueType(intID, nil), nil)
	got := f.CommonType(diag.Position{})
	if got.Kind != types.KindSomething {
		t.Fatalf("expected Something for unrelated types, got %v", got)
	}
	if len(sink.Warnings) != 1 {
		t.Fatalf("expected one ambiguity warning, got %d", len(sink.Warnings))
	}
}

func TestCommonTypeFinder_NothingAddedWarnsAmbiguous(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	sink := &diag.Sink{}
	a := NewAnalyser(dt, sink)
	f := NewCommonTypeFinder(a)
	f.CommonType(diag.Position{Line: 7})
	if len(sink.Warnings) != 1 {
		t.Fatalf("expected an ambiguity warning when nothing was added, got %d", len(sink.Warnings))
	}
}
