package sema

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

func intLit() *ast.IntegerLiteral {
	lit := &ast.IntegerLiteral{ExprBase: ast.At(diag.Position{Line: 1})}
	simple := types.ValueType(1, nil)
	lit.SetType(&simple)
	return lit
}

func TestInsertBoxing_NoConversionWhenExpectationUnset(t *testing.T) {
	e, err := insertBoxing(intLit(), TypeExpectation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected the literal unchanged, got %T", e)
	}
}

func TestInsertBoxing_SimpleToSimpleOptional(t *testing.T) {
	exp := TypeExpectation{HasType: true, Type: types.Optional(types.ValueType(1, nil))}
	e, err := insertBoxing(intLit(), exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wrapped, ok := e.(*ast.SimpleToSimpleOptional)
	if !ok {
		t.Fatalf("expected *ast.SimpleToSimpleOptional, got %T", e)
	}
	if !wrapped.Type().IsOptional() {
		t.Fatalf("wrapped node should carry an Optional type, got %v", wrapped.Type())
	}
}

func TestInsertBoxing_SimpleToBox(t *testing.T) {
	iface := types.Protocol(2, nil)
	exp := TypeExpectation{HasType: true, Type: iface}
	e, err := insertBoxing(intLit(), exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wrapped, ok := e.(*ast.SimpleToBox)
	if !ok {
		t.Fatalf("expected *ast.SimpleToBox, got %T", e)
	}
	if !wrapped.Type().IsBox() {
		t.Fatalf("wrapped node should carry a Box type, got %v", wrapped.Type())
	}
}

func TestInsertBoxing_BoxToSimple(t *testing.T) {
	boxed := &ast.IntegerLiteral{ExprBase: ast.At(diag.Position{})}
	bt := types.Box(types.ValueType(1, nil), types.Protocol(2, nil))
	boxed.SetType(&bt)

	exp := TypeExpectation{HasType: true, Type: types.ValueType(1, nil)}
	e, err := insertBoxing(boxed, exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*ast.BoxToSimple); !ok {
		t.Fatalf("expected *ast.BoxToSimple, got %T", e)
	}
}

func TestInsertBoxing_SameStorageIsNoop(t *testing.T) {
	lit := intLit()
	exp := TypeExpectation{HasType: true, Type: types.ValueType(1, nil)}
	e, err := insertBoxing(lit, exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != ast.Expr(lit) {
		t.Fatalf("expected the same node back when storage already matches")
	}
}

func TestInsertReferenceAdjust_PromoteAndDemote(t *testing.T) {
	lit := intLit()
	promoted := insertReferenceAdjust(lit, true)
	st, ok := promoted.(*ast.StoreTemporarily)
	if !ok {
		t.Fatalf("expected *ast.StoreTemporarily, got %T", promoted)
	}
	if !st.Type().Reference {
		t.Fatal("promoted node's type should carry Reference = true")
	}

	demoted := insertReferenceAdjust(st, false)
	deref, ok := demoted.(*ast.Dereference)
	if !ok {
		t.Fatalf("expected *ast.Dereference, got %T", demoted)
	}
	if deref.Type().Reference {
		t.Fatal("demoted node's type should carry Reference = false")
	}
}
