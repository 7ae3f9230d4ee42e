package sema

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

func nominal(name string) *ast.NominalType {
	return &ast.NominalType{Position: diag.Position{Line: 1}, Name: []rune(name)}
}

func newBuiltinArena() (*symbols.DefinitionTable, *symbols.SymbolTable) {
	dt := symbols.NewDefinitionTable()
	st := symbols.NewSymbolTable()
	intID := dt.Add(&symbols.Definition{Kind: symbols.DefValueType, Name: "Int"})
	st.Declare(symbols.DefaultNamespace, "Int", intID, true)
	printableID := dt.Add(&symbols.Definition{Kind: symbols.DefProtocol, Name: "Printable"})
	st.Declare(symbols.DefaultNamespace, "Printable", printableID, true)
	dt.Get(intID).Conformances = []*symbols.Conformance{{Protocol: &symbols.NominalRef{Def: printableID}}}
	return dt, st
}

func TestAnalyzeFunction_SimpleReturnNeedsNoBoxing(t *testing.T) {
	dt, st := newBuiltinArena()
	a := NewAnalyser(dt, &diag.Sink{})
	a.Symbols = st

	fn := &ast.Function{
		Position:   diag.Position{Line: 1},
		Name:       []rune("answer"),
		Kind:       ast.PlainFunction,
		ReturnType: nominal("Int"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Position: diag.Position{Line: 2}, Value: &ast.IntegerLiteral{ExprBase: ast.At(diag.Position{Line: 2})}},
		}},
	}

	if err := a.AnalyzeFunction(fn, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := fn.Body.Statements[0].(*ast.Return)
	if _, boxed := ret.Value.(*ast.SimpleToBox); boxed {
		t.Fatalf("returning Int against an Int return type should not box, got %T", ret.Value)
	}
}

func TestAnalyzeFunction_BoxesSimpleValueIntoProtocolReturn(t *testing.T) {
	dt, st := newBuiltinArena()
	a := NewAnalyser(dt, &diag.Sink{})
	a.Symbols = st

	fn := &ast.Function{
		Position:   diag.Position{Line: 1},
		Name:       []rune("describe"),
		Kind:       ast.PlainFunction,
		ReturnType: nominal("Printable"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Position: diag.Position{Line: 2}, Value: &ast.IntegerLiteral{ExprBase: ast.At(diag.Position{Line: 2})}},
		}},
	}

	if err := a.AnalyzeFunction(fn, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := fn.Body.Statements[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.SimpleToBox); !ok {
		t.Fatalf("returning Int against a Printable return type should box it, got %T", ret.Value)
	}
}

func TestAnalyzeFunction_MissingReturnIsAnError(t *testing.T) {
	dt, st := newBuiltinArena()
	a := NewAnalyser(dt, &diag.Sink{})
	a.Symbols = st

	fn := &ast.Function{
		Position:   diag.Position{Line: 1},
		Name:       []rune("noop"),
		Kind:       ast.PlainFunction,
		ReturnType: nominal("Int"),
		Body:       &ast.Block{},
	}

	if err := a.AnalyzeFunction(fn, nil); err == nil {
		t.Fatal("expected a must-return-on-every-path error")
	}
}

func TestAnalyzeFunction_ObjectInitializerSynthesizesReturnThis(t *testing.T) {
	dt := symbols.NewDefinitionTable()
	st := symbols.NewSymbolTable()
	classID := dt.Add(&symbols.Definition{Kind: symbols.DefClass, Name: "Widget"})
	st.Declare(symbols.DefaultNamespace, "Widget", classID, true)
	def := dt.Get(classID)

	a := NewAnalyser(dt, &diag.Sink{})
	a.Symbols = st

	fn := &ast.Function{
		Position: diag.Position{Line: 1},
		Name:     []rune("init"),
		Kind:     ast.ObjectInitializer,
		Body:     &ast.Block{},
	}

	if err := a.AnalyzeFunction(fn, def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := len(fn.Body.Statements)
	if n == 0 {
		t.Fatal("expected a synthesised trailing return")
	}
	ret, ok := fn.Body.Statements[n-1].(*ast.Return)
	if !ok {
		t.Fatalf("expected the last statement to be a Return, got %T", fn.Body.Statements[n-1])
	}
	if _, ok := ret.Value.(*ast.ThisLiteral); !ok {
		t.Fatalf("expected a synthesised return this, got %#v", ret.Value)
	}
}
