// Package lexer tokenizes emoji-keyword source text into the stream of
// pkg/token.Token values the parser consumes.
//
// This is a Go port of the character-by-character scanner found in the
// source language's own lexer: beginToken decides a token's kind from its
// first code point, continueToken extends it one code point at a time
// until the token ends or the next one has already begun.
package lexer

import (
	"fmt"
	"io"

	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/token"
)

// tokenState mirrors the three-way continuation result of the original
// scanner: a token can keep growing, end cleanly on the code point just
// consumed, or end having already consumed a code point that belongs to
// the following token.
type tokenState int

const (
	stateContinues tokenState = iota
	stateEnded
	stateNextBegun
)

// constructionState carries the handful of flags a handful of token
// kinds need across continuation calls; kept separate from Token itself
// exactly as the original's TokenConstructionState is.
type constructionState struct {
	isHex            bool
	escapeSequence   bool
	foundJoiner      bool
	commentDetermined bool
}

// Lexer scans a single source file's code points into tokens.
type Lexer struct {
	file    string
	runes   []rune
	pos     int
	line    int
	col     int
	grapheme GraphemeClassifier
}

// New creates a Lexer over already-decoded source text.
func New(file, source string) *Lexer {
	return &Lexer{file: file, runes: []rune(source), line: 1, col: 0}
}

// NewFromReader reads r fully and constructs a Lexer over its contents.
func NewFromReader(file string, r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexer: read %s: %w", file, err)
	}
	return New(file, string(data)), nil
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.runes) }

func (l *Lexer) cur() rune {
	if l.atEnd() {
		return 0
	}
	return l.runes[l.pos]
}

func (l *Lexer) position() diag.Position {
	return diag.Position{File: l.file, Line: l.line, Column: l.col}
}

// advance consumes the current code point, tracking line/column, and
// reports an error if called past the end (spec: "an unterminated token
// at end of input is a LexError").
func (l *Lexer) advance() error {
	if l.atEnd() {
		return diag.New(diag.KindLexError, diag.CodeUnexpectedEnd, l.position(), "unexpected end of file")
	}
	if l.grapheme.IsLineBreak(l.cur()) {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
	return nil
}

func (l *Lexer) advanceOrEnd() {
	if !l.atEnd() {
		_ = l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.grapheme.IsWhitespace(l.cur()) || l.grapheme.IsLineBreak(l.cur())) {
		if l.grapheme.IsLineBreak(l.cur()) {
			break // newlines are significant tokens (LineBreak/BlankLine)
		}
		l.advanceOrEnd()
	}
}

// Next scans and returns the next raw token, including LineBreak,
// BlankLine and comment tokens that TokenStream later filters out. It
// returns a token of kind token.EOF once the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	if l.atEnd() {
		return token.New(token.EOF, nil, l.position()), nil
	}

	start := l.position()
	var cs constructionState
	var value []rune

	kind, continues, err := l.begin(&cs, &value)
	if err != nil {
		return token.Token{}, err
	}
	if !continues {
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
		return l.finish(kind, value, start)
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}

	for {
		state, err := l.continueToken(&kind, &cs, &value)
		if err != nil {
			return token.Token{}, err
		}
		if state == stateEnded {
			l.advanceOrEnd()
			return l.finish(kind, value, start)
		}
		if state == stateNextBegun {
			return l.finish(kind, value, start)
		}
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
	}
}

func (l *Lexer) finish(kind token.Kind, value []rune, start diag.Position) (token.Token, error) {
	tok := token.New(kind, value, start)
	return tok, l.validate(tok)
}

// validate rejects tokens that end before they are complete: an empty
// identifier, an integer ending in its hex prefix's x, a double ending
// in its decimal point, and an identifier ending in a joiner. (A String
// that never sees its closing delimiter fails earlier, in advance.)
func (l *Lexer) validate(tok token.Token) error {
	if tok.Kind == token.Identifier && len(tok.Value) == 0 {
		return diag.New(diag.KindLexError, diag.CodeInvalidCluster, tok.Position, "empty identifier cluster")
	}
	if len(tok.Value) == 0 {
		return nil
	}
	last := tok.Value[len(tok.Value)-1]
	switch {
	case tok.Kind == token.Integer && (last == 'x' || last == 'X'):
		return diag.New(diag.KindLexError, diag.CodeMalformedNumber, tok.Position, "integer literal ends in its hex prefix")
	case tok.Kind == token.Double && last == '.':
		return diag.New(diag.KindLexError, diag.CodeMalformedNumber, tok.Position, "double literal ends in its decimal point")
	case tok.Kind == token.Identifier && (last == zeroWidthJoiner || last == smallOrangeDiamond):
		return diag.New(diag.KindLexError, diag.CodeInvalidCluster, tok.Position, "identifier cluster ends in a joiner")
	}
	return nil
}

// begin classifies the token starting at the current code point. It
// reports whether the token needs further continuation calls.
func (l *Lexer) begin(cs *constructionState, value *[]rune) (token.Kind, bool, error) {
	r := l.cur()

	if kind, ok := singleTokenKind(r); ok {
		*value = append(*value, r)
		return kind, false, nil
	}

	switch r {
	case cpStringDelimiter:
		return token.String, true, nil
	case cpSinglelineComment:
		return token.SinglelineComment, true, nil
	case cpDocComment:
		return token.DocumentationComment, true, nil
	case cpPackageDocComment:
		return token.PackageDocumentationComment, true, nil
	case cpDigitGroupSymbol:
		return token.Symbol, true, nil
	case opLeftTriangle, opRightTriangle:
		*value = append(*value, r)
		return token.Operator, true, nil
	case cpDecorator:
		return token.Decorator, true, nil
	case cpMagnet:
		return token.MiddleInterpolation, true, nil
	}

	if l.grapheme.IsLineBreak(r) {
		return token.LineBreak, !l.atLastRune(), nil
	}

	switch {
	case ('0' <= r && r <= '9') || r == '-' || r == '+':
		cs.isHex = false
		*value = append(*value, r)
		return token.Integer, true, nil
	case l.grapheme.IsEmoji(r):
		*value = append(*value, r)
		return token.Identifier, true, nil
	default:
		*value = append(*value, r)
		return token.Variable, true, nil
	}
}

func (l *Lexer) atLastRune() bool { return l.pos+1 >= len(l.runes) }

// continueToken extends the in-progress token by one code point,
// dispatching on its current kind exactly as the original's
// continueToken switch does.
func (l *Lexer) continueToken(kind *token.Kind, cs *constructionState, value *[]rune) (tokenState, error) {
	switch *kind {
	case token.Decorator:
		if !l.grapheme.IsEmoji(l.cur()) {
			return 0, diag.New(diag.KindLexError, diag.CodeUnexpectedToken, l.position(), "a decorator must be followed by an emoji")
		}
		*value = append(*value, l.cur())
		return stateEnded, nil
	case token.Identifier:
		return l.continueIdentifier(kind, cs, value)
	case token.Operator:
		return l.continueOperator(value)
	case token.SinglelineComment:
		return l.continueSingleLineComment(kind, cs, value)
	case token.MultilineComment:
		return l.continueMultilineComment(cs, value)
	case token.DocumentationComment:
		if l.cur() == cpDocComment {
			return stateEnded, nil
		}
		*value = append(*value, l.cur())
		return stateContinues, nil
	case token.PackageDocumentationComment:
		if l.cur() == cpPackageDocComment {
			return stateEnded, nil
		}
		*value = append(*value, l.cur())
		return stateContinues, nil
	case token.String, token.MiddleInterpolation:
		return l.continueString(kind, cs, value)
	case token.Variable:
		return l.continueVariable(value)
	case token.Integer:
		return l.continueInteger(kind, cs, value)
	case token.Double:
		if '0' <= l.cur() && l.cur() <= '9' {
			*value = append(*value, l.cur())
			return stateContinues, nil
		}
		return stateNextBegun, nil
	case token.Symbol:
		*value = append(*value, l.cur())
		return stateEnded, nil
	case token.LineBreak:
		if l.grapheme.IsLineBreak(l.cur()) {
			*kind = token.BlankLine
			return stateEnded, nil
		}
		if l.grapheme.IsWhitespace(l.cur()) {
			if l.atLastRune() {
				return stateEnded, nil
			}
			return stateContinues, nil
		}
		return stateNextBegun, nil
	default:
		return 0, diag.New(diag.KindLexError, diag.CodeUnexpectedToken, l.position(), "token continued but not handled")
	}
}

func (l *Lexer) continueMultilineComment(cs *constructionState, value *[]rune) (tokenState, error) {
	if !cs.commentDetermined {
		if l.cur() == cpSinglelineComment {
			*value = (*value)[:len(*value)-1]
			return stateEnded, nil
		}
		cs.commentDetermined = true
	}
	if l.cur() == cpMultilineEndArrow {
		cs.commentDetermined = false
	}
	*value = append(*value, l.cur())
	return stateContinues, nil
}

func (l *Lexer) continueSingleLineComment(kind *token.Kind, cs *constructionState, value *[]rune) (tokenState, error) {
	if !cs.commentDetermined {
		if l.cur() == cpMultilineSoonArrow {
			*kind = token.MultilineComment
			return stateContinues, nil
		}
		cs.commentDetermined = true
	}
	if l.grapheme.IsLineBreak(l.cur()) {
		return stateEnded, nil
	}
	*value = append(*value, l.cur())
	return stateContinues, nil
}

func (l *Lexer) continueString(kind *token.Kind, cs *constructionState, value *[]rune) (tokenState, error) {
	if cs.escapeSequence {
		if err := l.resolveEscape(cs, value); err != nil {
			return 0, err
		}
		return stateContinues, nil
	}
	switch l.cur() {
	case cpEscapeIntroducer:
		cs.escapeSequence = true
		return stateContinues, nil
	case cpStringDelimiter:
		if *kind == token.MiddleInterpolation {
			*kind = token.EndInterpolation
		}
		return stateEnded, nil
	case cpMagnet:
		if *kind != token.MiddleInterpolation {
			*kind = token.BeginInterpolation
		}
		return stateEnded, nil
	}
	*value = append(*value, l.cur())
	return stateContinues, nil
}

func (l *Lexer) resolveEscape(cs *constructionState, value *[]rune) error {
	switch l.cur() {
	case cpStringDelimiter, cpEscapeIntroducer, cpMagnet:
		*value = append(*value, l.cur())
	case 'n':
		*value = append(*value, '\n')
	case 't':
		*value = append(*value, '\t')
	case 'r':
		*value = append(*value, '\r')
	default:
		return diag.New(diag.KindLexError, diag.CodeUnrecognizedEscape, l.position(),
			"unrecognized escape sequence %c (U+%04X)", l.cur(), l.cur())
	}
	cs.escapeSequence = false
	return nil
}

func (l *Lexer) continueIdentifier(kind *token.Kind, cs *constructionState, value *[]rune) (tokenState, error) {
	r := l.cur()
	if cs.foundJoiner && l.grapheme.IsEmoji(r) {
		*value = append(*value, r)
		cs.foundJoiner = false
		return stateContinues, nil
	}
	last := (*value)[len(*value)-1]
	if isSkinToneModifier(r) && isModifierBase(last) {
		*value = append(*value, r)
		return stateContinues, nil
	}
	if isRegionalIndicator(r) && len(*value) == 1 && isRegionalIndicator((*value)[0]) {
		*value = append(*value, r)
		return stateContinues, nil
	}
	if r == zeroWidthJoiner || r == smallOrangeDiamond {
		*value = append(*value, r)
		cs.foundJoiner = true
		return stateContinues, nil
	}
	if r == variationSelector16 {
		return stateContinues, nil // ignored: emoji presentation selector carries no meaning here
	}
	if (*value)[0] == cpShruggingPerson {
		*kind = token.NoValue
	}
	if (*value)[0] == cpNoGesture {
		if r == kwIf {
			*kind = token.ElseIf
			return stateEnded, nil
		}
		*kind = token.Else
	}
	return stateNextBegun, nil
}

func (l *Lexer) continueOperator(value *[]rune) (tokenState, error) {
	if l.cur() == variationSelector16 {
		return stateContinues, nil
	}
	if l.cur() == opCelebration {
		*value = append(*value, l.cur())
		return stateEnded, nil
	}
	return stateNextBegun, nil
}

func (l *Lexer) continueVariable(value *[]rune) (tokenState, error) {
	if l.atEnd() || l.grapheme.IsWhitespace(l.cur()) || l.grapheme.IsLineBreak(l.cur()) || l.grapheme.IsEmoji(l.cur()) {
		return stateNextBegun, nil
	}
	*value = append(*value, l.cur())
	return stateContinues, nil
}

func (l *Lexer) continueInteger(kind *token.Kind, cs *constructionState, value *[]rune) (tokenState, error) {
	r := l.cur()
	if ('0' <= r && r <= '9') || (cs.isHex && isHexDigit(r)) {
		*value = append(*value, r)
		return stateContinues, nil
	}
	if r == '.' {
		*kind = token.Double
		*value = append(*value, r)
		return stateContinues, nil
	}
	if (r == 'x' || r == 'X') && len(*value) == 1 && (*value)[0] == '0' {
		cs.isHex = true
		*value = append(*value, r)
		return stateContinues, nil
	}
	if r == ',' {
		return stateContinues, nil // digit grouping separator, dropped from the value
	}
	return stateNextBegun, nil
}

func isHexDigit(r rune) bool {
	return ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
