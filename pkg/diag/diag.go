// Package diag provides source positions and the compiler's diagnostic
// taxonomy shared by every later stage of the pipeline.
package diag

import "fmt"

// Position records a file/line/column triple. Every AST expression and
// every diagnostic carries one.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders a position the way diagnostics address it: "line L col C path".
func (p Position) String() string {
	return fmt.Sprintf("line %d col %d %s", p.Line, p.Column, p.File)
}

// Kind is the user-visible error taxonomy from the error-handling
// design (LexError, ParseError, TypeError, ScopeError, InitError,
// PackageError, AccessError).
type Kind string

const (
	KindLexError     Kind = "LexError"
	KindParseError   Kind = "ParseError"
	KindTypeError    Kind = "TypeError"
	KindScopeError   Kind = "ScopeError"
	KindInitError    Kind = "InitError"
	KindPackageError Kind = "PackageError"
	KindAccessError  Kind = "AccessError"
)

// Code further narrows a Kind, e.g. LexError's UnrecognizedEscape.
type Code string

const (
	CodeUnexpectedEnd         Code = "UnexpectedEnd"
	CodeUnrecognizedEscape    Code = "UnrecognizedEscape"
	CodeInvalidCluster        Code = "InvalidCluster"
	CodeMalformedNumber       Code = "MalformedNumber"
	CodeUnexpectedToken       Code = "UnexpectedToken"
	CodeMissingCloser         Code = "MissingCloser"
	CodeMisplacedDoc          Code = "MisplacedDocumentation"
	CodeIncompatibleTypes     Code = "IncompatibleTypes"
	CodeUnsatisfiedConstraint Code = "UnsatisfiedConstraint"
	CodeNoSuchMethod          Code = "NoSuchMethod"
	CodeImproperOverride      Code = "ImproperOverride"
	CodeIllegalThis           Code = "IllegalThis"
	CodeVariableNotFound      Code = "VariableNotFound"
	CodeRedeclaration         Code = "Redeclaration"
	CodeFrozenMutation        Code = "FrozenMutation"
	CodeMaybeUninitialized    Code = "PossiblyUninitializedRead"
	CodeMissingInitializer    Code = "MissingInitializer"
	CodeSuperNotCalled        Code = "SuperNotCalled"
	CodeIVarNotInitialized    Code = "InstanceVariableNotInitialized"
	CodeCircularImport        Code = "CircularImport"
	CodeVersionRedeclared     Code = "VersionAlreadyDeclared"
	CodeImportCollision       Code = "ImportNameCollision"
	CodePrivateViolation      Code = "PrivateViolation"
	CodeProtectedViolation    Code = "ProtectedViolation"
)

// Error is a single compiler diagnostic. It implements error so it can
// travel through ordinary Go error-handling, and is also the unit
// accumulated by the application's error sink (see pkg/app).
type Error struct {
	Kind     Kind
	Code     Code
	Message  string
	Position Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("🚨 %s %s: %s", e.Position, e.Kind, e.Message)
}

// New builds a diagnostic Error.
func New(kind Kind, code Code, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Position: pos}
}

// Warning is a non-fatal diagnostic; warnings never block compilation
// ("Warnings never stop compilation").
type Warning struct {
	Message  string
	Position Position
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Position, w.Message)
}

// Sink collects errors and warnings for a single analysis unit (a
// function, a package load). It is intentionally simple: one slice each,
// no locking, because compilation is single-threaded.
type Sink struct {
	Errors   []*Error
	Warnings []Warning
}

// Add records a diagnostic error.
func (s *Sink) Add(err *Error) {
	if err != nil {
		s.Errors = append(s.Errors, err)
	}
}

// Warn records a non-fatal warning at a position.
func (s *Sink) Warn(pos Position, format string, args ...any) {
	s.Warnings = append(s.Warnings, Warning{Message: fmt.Sprintf(format, args...), Position: pos})
}

// HasErrors reports whether any error has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.Errors) > 0
}

// JSON is the wire shape of the optional JSON diagnostic form.
type JSON struct {
	Type      string `json:"type"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
	File      string `json:"file"`
	Message   string `json:"message"`
}

// ToJSON converts an Error to its JSON diagnostic form.
func (e *Error) ToJSON() JSON {
	return JSON{Type: "error", Line: e.Position.Line, Character: e.Position.Column, File: e.Position.File, Message: e.Message}
}

// ToJSON converts a Warning to its JSON diagnostic form.
func (w Warning) ToJSON() JSON {
	return JSON{Type: "warning", Line: w.Position.Line, Character: w.Position.Column, File: w.Position.File, Message: w.Message}
}
