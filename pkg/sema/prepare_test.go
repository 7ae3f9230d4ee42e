package sema

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

func TestPrepareDefinition_EnqueuesMethodsAndInitializers(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	fn := &ast.Function{Name: []rune("speak")}
	initFn := &ast.Function{Name: []rune("init")}
	classID := dt.Add(&symbols.Definition{
		Kind:         symbols.DefClass,
		Name:         "Animal",
		Methods:      map[string]*ast.Function{"speak": fn},
		Initializers: map[string]*ast.Function{"init": initFn},
	})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.PrepareDefinition(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.queue) != 2 {
		t.Fatalf("expected both the method and initializer enqueued, got %d", len(a.queue))
	}
}

func TestPrepareDefinition_RejectsNarrowedOverrideAccess(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	superFn := &ast.Function{Name: []rune("speak"), Access: ast.Public}
	baseID := dt.Add(&symbols.Definition{
		Kind:    symbols.DefClass,
		Name:    "Animal",
		Methods: map[string]*ast.Function{"speak": superFn},
	})
	overFn := &ast.Function{Name: []rune("speak"), Access: ast.Private, Overriding: true}
	subID := dt.Add(&symbols.Definition{
		Kind:    symbols.DefClass,
		Name:    "Dog",
		Super:   &symbols.NominalRef{Def: baseID},
		Methods: map[string]*ast.Function{"speak": overFn},
	})
	def := dt.Get(subID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.PrepareDefinition(def); err == nil {
		t.Fatal("expected an error for an override narrowing access below its super method")
	}
}

func TestPrepareDefinition_ValidOverridePasses(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	superFn := &ast.Function{Name: []rune("speak"), Access: ast.Public}
	baseID := dt.Add(&symbols.Definition{
		Kind:    symbols.DefClass,
		Name:    "Animal",
		Methods: map[string]*ast.Function{"speak": superFn},
	})
	overFn := &ast.Function{Name: []rune("speak"), Access: ast.Public, Overriding: true}
	subID := dt.Add(&symbols.Definition{
		Kind:    symbols.DefClass,
		Name:    "Dog",
		Super:   &symbols.NominalRef{Def: baseID},
		Methods: map[string]*ast.Function{"speak": overFn},
	})
	def := dt.Get(subID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.PrepareDefinition(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
