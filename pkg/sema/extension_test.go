package sema

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

func TestMergeExtension_RejectsInstanceVarWhenSubclassPresent(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	classID := dt.Add(&symbols.Definition{Kind: symbols.DefClass, Name: "Animal", SubclassPresent: true, Methods: map[string]*ast.Function{}})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	ext := &ast.ExtensionDecl{
		Position:   diag.Position{Line: 1},
		TargetName: []rune("Animal"),
		Members: []ast.Member{
			&ast.InstanceVarMember{Position: diag.Position{Line: 2}, Name: []rune("age"), Type: nominal("Animal")},
		},
	}
	if err := a.MergeExtension(ext, def); err == nil {
		t.Fatal("expected an error adding an instance variable once a subclass is present")
	}
}

func TestMergeExtension_AddsMethodAndEnqueues(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	classID := dt.Add(&symbols.Definition{Kind: symbols.DefClass, Name: "Animal", Methods: map[string]*ast.Function{}})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	fn := &ast.Function{Position: diag.Position{Line: 1}, Name: []rune("speak")}
	ext := &ast.ExtensionDecl{
		Position:   diag.Position{Line: 1},
		TargetName: []rune("Animal"),
		Members:    []ast.Member{&ast.MethodMember{Position: diag.Position{Line: 1}, Function: fn}},
	}
	if err := a.MergeExtension(ext, def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := def.Method("speak", false); !ok {
		t.Fatal("speak should be registered on the definition")
	}
	if len(a.queue) != 1 {
		t.Fatalf("expected the merged method to be enqueued, queue has %d entries", len(a.queue))
	}
}

func TestBuildConformances_MissingImplementationErrors(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	protoID := dt.Add(&symbols.Definition{
		Kind: symbols.DefProtocol, Name: "Named",
		Methods: map[string]*ast.Function{"name": {Name: []rune("name")}},
	})
	classID := dt.Add(&symbols.Definition{
		Kind: symbols.DefClass, Name: "Animal", Methods: map[string]*ast.Function{},
		Conformances: []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: protoID}}},
	})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.BuildConformances(def); err == nil {
		t.Fatal("expected an error for a missing protocol method implementation")
	}
}

func TestBuildConformances_MatchingSignatureNoBoxingLayer(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	protoFn := &ast.Function{Name: []rune("name")}
	protoID := dt.Add(&symbols.Definition{
		Kind: symbols.DefProtocol, Name: "Named",
		Methods: map[string]*ast.Function{"name": protoFn},
	})
	implFn := &ast.Function{Name: []rune("name")}
	classID := dt.Add(&symbols.Definition{
		Kind: symbols.DefClass, Name: "Animal",
		Methods:      map[string]*ast.Function{"name": implFn},
		Conformances: []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: protoID}}},
	})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.BuildConformances(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := def.Conformances[0].Implementations["name"]
	if impl != implFn {
		t.Fatalf("matching-signature conformance should dispatch to the concrete method, got %#v", impl)
	}
}

func TestBuildConformances_ParamCountMismatchSynthesizesBoxingLayer(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	protoFn := &ast.Function{Name: []rune("combine"), Params: []*ast.Parameter{{Name: []rune("other")}}}
	protoID := dt.Add(&symbols.Definition{
		Kind: symbols.DefProtocol, Name: "Combinable",
		Methods: map[string]*ast.Function{"combine": protoFn},
	})
	implFn := &ast.Function{Name: []rune("combine")}
	classID := dt.Add(&symbols.Definition{
		Kind: symbols.DefClass, Name: "Bag",
		Methods:      map[string]*ast.Function{"combine": implFn},
		Conformances: []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: protoID}}},
	})
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	if err := a.BuildConformances(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := def.Conformances[0].Implementations["combine"]
	if impl.Kind != ast.BoxingLayer {
		t.Fatalf("expected a synthesised BoxingLayer function, got %#v", impl)
	}
	if len(a.queue) != 1 {
		t.Fatalf("expected the boxing layer to be enqueued, queue has %d entries", len(a.queue))
	}
}
