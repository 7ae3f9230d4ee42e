package lexer

import (
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/token"
)

// TokenStream wraps a Lexer with a one-token lookahead, dropping line
// breaks and comments and tracking blank lines, exactly as the original
// TokenStream does over its Lexer.
type TokenStream struct {
	lexer            *Lexer
	next             token.Token
	more             bool
	skippedBlankLine bool
	comments         []token.Token
	index            int
}

// NewTokenStream constructs a stream positioned before the first
// significant token of l.
func NewTokenStream(l *Lexer) (*TokenStream, error) {
	ts := &TokenStream{lexer: l, more: true}
	if _, err := ts.advance(); err != nil {
		return nil, err
	}
	return ts, nil
}

// HasMore reports whether more tokens remain.
func (ts *TokenStream) HasMore() bool { return ts.more }

// Peek returns the next token without consuming it.
func (ts *TokenStream) Peek() token.Token { return ts.next }

// Comments returns the doc/single/multi-line comment tokens encountered
// so far, in source order (the parser attaches the trailing ones to the
// declaration that follows, per the doc-comment association rule).
func (ts *TokenStream) Comments() []token.Token { return ts.comments }

// Index returns the lexer's rune offset at the start of Peek()'s token.
func (ts *TokenStream) Index() int { return ts.index }

// SkippedBlankLine reports whether a blank line separated the last
// consumed token from Peek()'s token.
func (ts *TokenStream) SkippedBlankLine() bool { return ts.skippedBlankLine }

// Consume returns and advances past the next token.
func (ts *TokenStream) Consume() (token.Token, error) {
	if !ts.more {
		return token.Token{}, diag.New(diag.KindLexError, diag.CodeUnexpectedEnd, ts.next.Position, "unexpected end of program")
	}
	return ts.advance()
}

// Expect consumes the next token, requiring it to have the given kind.
func (ts *TokenStream) Expect(kind token.Kind) (token.Token, error) {
	if !ts.more {
		return token.Token{}, diag.New(diag.KindParseError, diag.CodeUnexpectedEnd, ts.next.Position, "unexpected end of program, expected %s", kind)
	}
	if ts.next.Kind != kind {
		return token.Token{}, diag.New(diag.KindParseError, diag.CodeUnexpectedToken, ts.next.Position,
			"expected %s but found %s (%q)", kind, ts.next.Kind, ts.next.Text())
	}
	return ts.advance()
}

// PeekIs reports whether the next token has the given kind.
func (ts *TokenStream) PeekIs(kind token.Kind) bool {
	return ts.more && ts.next.Kind == kind
}

// PeekIsIdentifier reports whether the next token is a single-code-point
// identifier equal to r, used to recognise context-sensitive keyword
// emoji that aren't in the single-token table (e.g. a package name
// literal that happens to start a declaration).
func (ts *TokenStream) PeekIsIdentifier(r rune) bool {
	return ts.more && ts.next.Kind == token.Identifier && len(ts.next.Value) > 0 && ts.next.Value[0] == r
}

// ConsumeIf consumes and returns true iff PeekIs(kind) holds.
func (ts *TokenStream) ConsumeIf(kind token.Kind) (bool, error) {
	if !ts.PeekIs(kind) {
		return false, nil
	}
	if _, err := ts.advance(); err != nil {
		return false, err
	}
	return true, nil
}

func (ts *TokenStream) advance() (token.Token, error) {
	ts.skippedBlankLine = false
	prev := ts.next
	for {
		ts.index = ts.lexer.pos
		tok, err := ts.lexer.Next()
		if err != nil {
			return token.Token{}, err
		}
		ts.next = tok
		switch tok.Kind {
		case token.EOF:
			ts.more = false
		case token.BlankLine:
			ts.skippedBlankLine = true
			continue
		case token.SinglelineComment, token.MultilineComment, token.DocumentationComment, token.PackageDocumentationComment:
			ts.comments = append(ts.comments, tok)
			continue
		case token.LineBreak:
			continue
		}
		break
	}
	return prev, nil
}
