package astdump

import (
	"strings"
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

func TestDump_RendersMethodsAndInitializersSorted(t *testing.T) {
	intType := types.ValueType(1, nil)
	ret := &ast.Return{Position: diag.Position{Line: 1}, Value: &ast.IntegerLiteral{ExprBase: ast.At(diag.Position{Line: 1})}}
	ret.Value.SetType(&intType)

	zebra := &ast.Function{Name: []rune("zebra"), Kind: ast.ObjectMethod, Body: &ast.Block{Statements: []ast.Stmt{ret}}}
	apple := &ast.Function{Name: []rune("apple"), Kind: ast.ObjectMethod, Body: &ast.Block{}}
	initFn := &ast.Function{Name: []rune("init"), Kind: ast.ObjectInitializer, Body: &ast.Block{}}

	def := &symbols.Definition{
		Name:         "Widget",
		Methods:      map[string]*ast.Function{"zebra": zebra, "apple": apple},
		Initializers: map[string]*ast.Function{"init": initFn},
	}

	out, err := Dump(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "method_apple") || !strings.Contains(out, "method_zebra") {
		t.Fatalf("expected both methods rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "init_init") {
		t.Fatalf("expected the initializer rendered, got:\n%s", out)
	}
	if strings.Index(out, "method_apple") > strings.Index(out, "method_zebra") {
		t.Fatalf("expected methods rendered in sorted order, got:\n%s", out)
	}
	if !strings.Contains(out, "ValueType") {
		t.Fatalf("expected the literal's resolved type rendered, got:\n%s", out)
	}
}

func TestSafeIdent_ReplacesNonIdentifierRunes(t *testing.T) {
	if got := safeIdent("foo bar"); got != "foo_bar" {
		t.Fatalf("safeIdent(%q) = %q, want foo_bar", "foo bar", got)
	}
	if got := safeIdent("9lives"); got[0] != '_' {
		t.Fatalf("safeIdent should prefix a leading digit, got %q", got)
	}
}
