// Package token defines the lexical unit produced by pkg/lexer and consumed
// by pkg/parser, and the grapheme-cluster classification the lexer uses to
// drive identifier scanning.
package token

import (
	"fmt"

	"github.com/glyphlang/glyphc/pkg/diag"
)

// Kind enumerates every token category the lexer emits.
type Kind string

const (
	Identifier  Kind = "Identifier" // an emoji grapheme cluster
	Variable    Kind = "Variable"   // a non-emoji word
	Integer     Kind = "Integer"
	Double      Kind = "Double"
	Symbol      Kind = "Symbol"
	String      Kind = "String"
	BooleanTrue Kind = "BooleanTrue"
	BooleanFalse Kind = "BooleanFalse"
	Operator    Kind = "Operator"

	BlockBegin Kind = "BlockBegin"
	BlockEnd   Kind = "BlockEnd"
	GroupBegin Kind = "GroupBegin"
	GroupEnd   Kind = "GroupEnd"

	EndArgumentList             Kind = "EndArgumentList"
	EndInterrogativeArgumentList Kind = "EndInterrogativeArgumentList"

	If          Kind = "If"
	ElseIf      Kind = "ElseIf"
	Else        Kind = "Else"
	Return      Kind = "Return"
	RepeatWhile Kind = "RepeatWhile"
	ForIn       Kind = "ForIn"
	ErrorHandler Kind = "ErrorHandler"
	New         Kind = "New"
	This        Kind = "This"
	Super       Kind = "Super"
	Unsafe      Kind = "Unsafe"
	Mutable     Kind = "Mutable"

	Class        Kind = "Class"
	ValueType    Kind = "ValueType"
	Protocol     Kind = "Protocol"
	Enumeration  Kind = "Enumeration"
	Generic      Kind = "Generic"

	SelectionOperator Kind = "SelectionOperator"

	LineBreak  Kind = "LineBreak"
	BlankLine  Kind = "BlankLine"

	SinglelineComment        Kind = "SinglelineComment"
	MultilineComment         Kind = "MultilineComment"
	DocumentationComment     Kind = "DocumentationComment"
	PackageDocumentationComment Kind = "PackageDocumentationComment"

	BeginInterpolation  Kind = "BeginInterpolation"
	MiddleInterpolation Kind = "MiddleInterpolation"
	EndInterpolation    Kind = "EndInterpolation"

	Decorator Kind = "Decorator"
	NoValue   Kind = "NoValue"

	LeftProductionOperator  Kind = "LeftProductionOperator"
	RightProductionOperator Kind = "RightProductionOperator"

	Call  Kind = "Call"
	Error Kind = "Error"

	EOF Kind = "EOF"
)

// Token is the unified lexical unit used by the lexer, the token-stream
// wrapper, and the parser.
type Token struct {
	Kind     Kind
	Value    []rune
	Position diag.Position
}

// New constructs a Token.
func New(kind Kind, value []rune, pos diag.Position) Token {
	return Token{Kind: kind, Value: value, Position: pos}
}

// Text is a convenience accessor returning Value as a string.
func (t Token) Text() string {
	return string(t.Value)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Text(), t.Position)
}

// StructuralKeywords is the set of token kinds introduced by a single
// reserved emoji and recognised purely by the lexer's lookup table (the
// "declaration-level tokens"). Implementations treat the
// concrete code points as opaque; this table exists so the lexer and
// parser agree on the symbolic name.
var StructuralKeywords = map[rune]Kind{}

// RegisterStructuralKeyword associates a single code point with a token
// kind recognised by the lexer's definite-kind lookup table. Both the
// lexer (to build its dispatch table) and test fixtures (to construct
// token streams without depending on literal emoji in source) use this.
func RegisterStructuralKeyword(r rune, kind Kind) {
	StructuralKeywords[r] = kind
}
