package lexer

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("test.glyph", src)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok)
	}
	return out
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexer_SingleTokenKeywords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want token.Kind
	}{
		{"block begin", string(kwBlockBegin), token.BlockBegin},
		{"block end", string(kwBlockEnd), token.BlockEnd},
		{"class", string(kwClass), token.Class},
		{"value type", string(kwValueType), token.ValueType},
		{"protocol", string(kwProtocol), token.Protocol},
		{"enumeration", string(kwEnumeration), token.Enumeration},
		{"boolean true", string(kwBooleanTrue), token.BooleanTrue},
		{"boolean false", string(kwBooleanFalse), token.BooleanFalse},
		{"if", string(kwIf), token.If},
		{"return", string(kwReturn), token.Return},
		{"this", string(kwThis), token.This},
		{"super", string(kwSuper), token.Super},
		{"group begin", string(kwGroupBegin), token.GroupBegin},
		{"group end", string(kwGroupEnd), token.GroupEnd},
		{"end argument list", string(kwEndArgumentList), token.EndArgumentList},
		{"end interrogative argument list", string(kwEndInterrogativeArgumentList), token.EndInterrogativeArgumentList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.src)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1: %v", len(toks), toks)
			}
			if toks[0].Kind != tt.want {
				t.Errorf("kind = %s, want %s", toks[0].Kind, tt.want)
			}
		})
	}
}

func TestLexer_Integer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"simple", "42", "42"},
		{"with grouping comma dropped", "4,2", "42"},
		{"hex", "0x1F", "0x1F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.src)
			if len(toks) != 1 || toks[0].Kind != token.Integer {
				t.Fatalf("got %v, want single Integer token", toks)
			}
			if toks[0].Text() != tt.want {
				t.Errorf("value = %q, want %q", toks[0].Text(), tt.want)
			}
		})
	}
}

func TestLexer_Double(t *testing.T) {
	toks := scanAll(t, "3.14")
	if len(toks) != 1 || toks[0].Kind != token.Double || toks[0].Text() != "3.14" {
		t.Fatalf("got %v, want single Double 3.14", toks)
	}
}

func TestLexer_String(t *testing.T) {
	src := string(cpStringDelimiter) + "hello" + string(cpStringDelimiter)
	toks := scanAll(t, src)
	if len(toks) != 1 || toks[0].Kind != token.String || toks[0].Text() != "hello" {
		t.Fatalf("got %v, want single String \"hello\"", toks)
	}
}

func TestLexer_StringEscape(t *testing.T) {
	src := string(cpStringDelimiter) + "a" + string(cpEscapeIntroducer) + "n" + "b" + string(cpStringDelimiter)
	toks := scanAll(t, src)
	if len(toks) != 1 || toks[0].Kind != token.String {
		t.Fatalf("got %v, want single String token", toks)
	}
	if toks[0].Text() != "a\nb" {
		t.Errorf("value = %q, want %q", toks[0].Text(), "a\nb")
	}
}

func TestLexer_StringUnrecognizedEscape(t *testing.T) {
	l := New("test.glyph", string(cpStringDelimiter)+string(cpEscapeIntroducer)+"z")
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected an error for an unrecognized escape sequence")
	}
}

func TestLexer_StringInterpolation(t *testing.T) {
	// In 🔤name🧲 expr 🧲age🔤 the first segment, closed by a magnet, is
	// promoted from String to BeginInterpolation("name"); a later segment
	// starts at a magnet as MiddleInterpolation and becomes
	// EndInterpolation when a 🔤 closes it. Here only the first segment
	// is given, so a single BeginInterpolation is expected.
	src := string(cpStringDelimiter) + "name" + string(cpMagnet)
	toks := scanAll(t, src)
	if len(toks) != 1 || toks[0].Kind != token.BeginInterpolation {
		t.Fatalf("got %v, want single BeginInterpolation token", toks)
	}
}

func TestLexer_Variable(t *testing.T) {
	toks := scanAll(t, "myVar")
	if len(toks) != 1 || toks[0].Kind != token.Variable || toks[0].Text() != "myVar" {
		t.Fatalf("got %v, want single Variable \"myVar\"", toks)
	}
}

func TestLexer_Comment(t *testing.T) {
	// The terminating newline is consumed as part of ending the comment
	// token (it is not re-emitted as a separate LineBreak), matching the
	// original scanner's readToken/nextCharOrEnd sequencing.
	src := string(cpSinglelineComment) + "a note" + "\n" + "1"
	toks := scanAll(t, src)
	got := kinds(toks)
	want := []token.Kind{token.SinglelineComment, token.Integer}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[0].Text() != "a note" {
		t.Errorf("comment text = %q, want %q", toks[0].Text(), "a note")
	}
}

func TestLexer_BlankLine(t *testing.T) {
	// Two consecutive newlines collapse into a single BlankLine token,
	// mirroring the original's LineBreak-continues-into-BlankLine rule.
	toks := scanAll(t, "\n\n")
	got := kinds(toks)
	want := []token.Kind{token.BlankLine}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexer_TrailingLineBreak(t *testing.T) {
	toks := scanAll(t, "1\n")
	got := kinds(toks)
	want := []token.Kind{token.Integer, token.LineBreak}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestTokenStream_SkipsCommentsAndBlankLines(t *testing.T) {
	// The comment's own terminating newline is consumed as part of the
	// comment token, so a further blank line needs two more newlines.
	src := string(cpSinglelineComment) + "note" + "\n\n\n" + "1"
	l := New("test.glyph", src)
	ts, err := NewTokenStream(l)
	if err != nil {
		t.Fatalf("NewTokenStream: %v", err)
	}
	if !ts.HasMore() {
		t.Fatal("expected a token after skipped comment and blank line")
	}
	if !ts.SkippedBlankLine() {
		t.Error("expected SkippedBlankLine to report true")
	}
	tok, err := ts.Consume()
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if tok.Kind != token.Integer {
		t.Errorf("kind = %s, want Integer", tok.Kind)
	}
	if len(ts.Comments()) != 1 || ts.Comments()[0].Kind != token.SinglelineComment {
		t.Errorf("comments = %v, want one SinglelineComment", ts.Comments())
	}
}

func TestTokenStream_Expect(t *testing.T) {
	l := New("test.glyph", string(kwClass))
	ts, err := NewTokenStream(l)
	if err != nil {
		t.Fatalf("NewTokenStream: %v", err)
	}
	if _, err := ts.Expect(token.Class); err != nil {
		t.Errorf("Expect(Class): %v", err)
	}
	if ts.HasMore() {
		t.Error("expected no more tokens")
	}
	if _, err := ts.Expect(token.Class); err == nil {
		t.Error("expected an error consuming past the end of the stream")
	}
}
