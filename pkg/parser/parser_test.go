package parser

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/lexer"
)

// Registered single-token keyword code points, mirrored from
// pkg/lexer/keywords.go (unexported there; duplicated here the same
// way pkg/lexer/lexer_test.go keeps its own copies for table-driven
// literal construction).
const (
	kwClass        = "\U0001F407"
	kwBlockBegin   = "\U0001F347"
	kwBlockEnd     = "\U0001F349"
	kwNew          = "\U0001F195"
	kwThis         = "\U0001F447"
	kwReturnGlyph  = "\U000021A9"
	kwIfGlyph      = "\U000021AA"
	kwRightArrow   = "\U000027A1"
	kwGroupBegin   = "\U0001F44A"
	kwGroupEnd     = "\U0001F91B"
	kwEndArgs      = "\U00002757"
	opPlusGlyph    = "\U00002795"
)

func mustParser(t *testing.T, src string) *Parser {
	t.Helper()
	l := lexer.New("test.glyph", src)
	ts, err := lexer.NewTokenStream(l)
	if err != nil {
		t.Fatalf("NewTokenStream: %v", err)
	}
	return New(ts)
}

func TestParser_IntegerExpression(t *testing.T) {
	p := mustParser(t, "42")
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	lit, ok := expr.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.IntegerLiteral", expr)
	}
	if lit.Value != 42 {
		t.Errorf("Value = %d, want 42", lit.Value)
	}
}

func TestParser_BinaryOperatorPrecedence(t *testing.T) {
	// 2 + 3 × 4 must parse as 2 + (3 × 4), this precedence table.
	src := "2" + opPlusGlyph + "3" + string(opMultiply) + "4"
	p := mustParser(t, src)
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	bin, ok := expr.(*ast.BinaryOperator)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOperator", expr)
	}
	if bin.Operator != opPlus {
		t.Errorf("top-level operator = %q, want +", bin.Operator)
	}
	rhs, ok := bin.Right.(*ast.BinaryOperator)
	if !ok || rhs.Operator != opMultiply {
		t.Errorf("right operand should be the ×-subexpression, got %#v", bin.Right)
	}
}

func TestParser_MethodCall(t *testing.T) {
	// receiver name❗️ — a zero-argument imperative message send.
	p := mustParser(t, "x"+" "+"y"+kwEndArgs)
	// "x" lexes as a Variable receiver, "y" as the method name.
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	m, ok := expr.(*ast.Method)
	if !ok {
		t.Fatalf("got %T, want *ast.Method", expr)
	}
	if m.Mood != ast.Imperative {
		t.Errorf("Mood = %v, want Imperative", m.Mood)
	}
}

func TestParser_OptionalTypeNeverDoubleWraps(t *testing.T) {
	src := string(rune(0x1F36C)) + string(rune(0x1F36C)) + "Foo"
	p := mustParser(t, src)
	typ, err := p.parseTypeExpr()
	if err != nil {
		t.Fatalf("parseTypeExpr: %v", err)
	}
	outer, ok := typ.(*ast.OptionalType)
	if !ok {
		t.Fatalf("got %T, want *ast.OptionalType", typ)
	}
	if _, ok := outer.Inner.(*ast.OptionalType); !ok {
		t.Fatalf("parser should still produce the syntactic double-wrap; collapsing is pkg/types.Optional's job")
	}
}

func TestParser_ClassWithMethod(t *testing.T) {
	// 🐇 Counter 🍇 n ➡️ n 🍇 n 🍉 🍉
	src := kwClass + "Counter" +
		kwBlockBegin +
		"n" + kwRightArrow + "n" +
		kwBlockBegin + "n" + kwBlockEnd +
		kwBlockEnd
	doc, err := mustParser(t, src).ParseDocument()
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Types) != 1 {
		t.Fatalf("got %d top-level types, want 1", len(doc.Types))
	}
	cd, ok := doc.Types[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDecl", doc.Types[0])
	}
	if string(cd.Name) != "Counter" {
		t.Errorf("Name = %q, want Counter", string(cd.Name))
	}
	if len(cd.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(cd.Members))
	}
}
