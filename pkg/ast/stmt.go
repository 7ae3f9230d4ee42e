package ast

import "github.com/glyphlang/glyphc/pkg/diag"

// Stmt is implemented by every statement-level node.
type Stmt interface {
	Node
	stmt()
}

// Block is an ordered statement list, used for function bodies and the
// arms of branching statements.
type Block struct {
	Position   diag.Position
	Statements []Stmt
}

func (b *Block) Pos() diag.Position { return b.Position }
func (*Block) stmt()                {}

// ExprStatement is an expression evaluated for its side effect, its
// value discarded.
type ExprStatement struct {
	Position diag.Position
	Expr     Expr
}

func (e *ExprStatement) Pos() diag.Position { return e.Position }
func (*ExprStatement) stmt()                {}

// Return is `↩️ [value]`.
type Return struct {
	Position diag.Position
	Value    Expr // nil for a bare return
}

func (r *Return) Pos() diag.Position { return r.Position }
func (*Return) stmt()                {}

// Raise is `🚨 value`, raising an error-enum case.
type Raise struct {
	Position diag.Position
	Value    Expr
}

func (r *Raise) Pos() diag.Position { return r.Position }
func (*Raise) stmt()                {}

// Superinitializer is `⤴️ SuperType args❗️`, calling the superclass
// initializer; PathAnalyser tracks it as its IncidentSuperCalled incident.
type Superinitializer struct {
	Position diag.Position
	Super    *NominalType
	Args     []Expr
}

func (s *Superinitializer) Pos() diag.Position { return s.Position }
func (*Superinitializer) stmt()                {}

// If is `↪️ cond block [🙅↪️ cond block]* [🙅 block]`, an if/else-if/else
// chain; ElseIfs is empty when there are no `🙅↪️` arms and Else is nil
// when there is no trailing `🙅` arm.
type If struct {
	Position  diag.Position
	Condition Expr
	Then      *Block
	ElseIfs   []ElseIf
	Else      *Block
}

// ElseIf is one `🙅↪️ cond block` arm of an If chain.
type ElseIf struct {
	Position  diag.Position
	Condition Expr
	Then      *Block
}

func (i *If) Pos() diag.Position { return i.Position }
func (*If) stmt()                {}

// RepeatWhile is `🔄 cond block`.
type RepeatWhile struct {
	Position  diag.Position
	Condition Expr
	Body      *Block
}

func (r *RepeatWhile) Pos() diag.Position { return r.Position }
func (*RepeatWhile) stmt()                {}

// ForIn is `🔂 name iterable block`.
type ForIn struct {
	Position    diag.Position
	VariableName []rune
	Iterable    Expr
	Body        *Block
}

func (f *ForIn) Pos() diag.Position { return f.Position }
func (*ForIn) stmt()                {}

// ErrorHandler is `🆗 expr name success-block [🚨 error-block]`, binding
// the unwrapped success value (or the error enum case) in its own
// child scope.
type ErrorHandler struct {
	Position     diag.Position
	Expr         Expr
	BindingName  []rune
	SuccessBlock *Block
	ErrorBlock   *Block // nil if errors simply propagate
}

func (e *ErrorHandler) Pos() diag.Position { return e.Position }
func (*ErrorHandler) stmt()                {}

// VariableDeclaration is `🍰 name value`, a mutable local declaration.
type VariableDeclaration struct {
	Position diag.Position
	Name     []rune
	Value    Expr
}

func (v *VariableDeclaration) Pos() diag.Position { return v.Position }
func (*VariableDeclaration) stmt()                {}

// FrozenDeclaration is `🍦 name value`, an immutable local declaration.
type FrozenDeclaration struct {
	Position diag.Position
	Name     []rune
	Value    Expr
}

func (f *FrozenDeclaration) Pos() diag.Position { return f.Position }
func (*FrozenDeclaration) stmt()                {}

// VariableAssignment is `🍮 name value`, reassigning an existing
// mutable local or parameter.
type VariableAssignment struct {
	Position diag.Position
	Name     []rune
	Value    Expr
}

func (v *VariableAssignment) Pos() diag.Position { return v.Position }
func (*VariableAssignment) stmt()                {}

// InstanceVariableAssignment is `🍮 🍭name value`, reassigning an
// instance variable through the implicit `this`.
type InstanceVariableAssignment struct {
	Position diag.Position
	Name     []rune
	Value    Expr
}

func (i *InstanceVariableAssignment) Pos() diag.Position { return i.Position }
func (*InstanceVariableAssignment) stmt()                {}
