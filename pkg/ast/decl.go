package ast

import "github.com/glyphlang/glyphc/pkg/diag"

// Document is the top-level parse result of one source file, per
// the document grammar.
type Document struct {
	Imports        []*Import
	Includes       []*Include
	Version        *VersionDecl
	RequiresBinary bool
	Aliases        []*Alias
	Types          []TypeDecl
	Extensions     []*ExtensionDecl
	StartFlag      []rune // name of the function marked as program entry, if any
}

// Import is `📦 PackageName into Namespace`.
type Import struct {
	Position  diag.Position
	Package   []rune
	Namespace rune
}

func (i *Import) Pos() diag.Position { return i.Position }

// Include is a `📜 🔤path🔤` file-inclusion directive, resolved
// relative to the including file.
type Include struct {
	Position diag.Position
	Path     string
}

func (i *Include) Pos() diag.Position { return i.Position }

// VersionDecl declares a package's semantic version.
type VersionDecl struct {
	Position    diag.Position
	Major, Minor int
}

func (v *VersionDecl) Pos() diag.Position { return v.Position }

// Alias re-exports a type from another package under a local name.
type Alias struct {
	Position      diag.Position
	LocalName     []rune
	TargetPackage []rune
	TargetName    []rune
}

func (a *Alias) Pos() diag.Position { return a.Position }

// TypeDecl is implemented by every top-level type definition kind.
type TypeDecl interface {
	Node
	typeDecl()
	DeclName() []rune
}

// Member is implemented by every class/value-type/enum/protocol body
// member (the `member` production).
type Member interface {
	Node
	member()
}

// ClassDecl is `🐇 Name [generic-params] [supertype] body`.
type ClassDecl struct {
	Position      diag.Position
	Name          []rune
	GenericParams []*GenericParam
	Super         *NominalType
	Final         bool
	Foreign       bool
	Doc          string
	Members       []Member
}

func (c *ClassDecl) Pos() diag.Position  { return c.Position }
func (*ClassDecl) typeDecl()             {}
func (c *ClassDecl) DeclName() []rune    { return c.Name }

// ValueTypeDecl is `🕊️ Name [generic-params] body`.
type ValueTypeDecl struct {
	Position      diag.Position
	Name          []rune
	GenericParams []*GenericParam
	Primitive     bool
	Doc          string
	Members       []Member
}

func (v *ValueTypeDecl) Pos() diag.Position { return v.Position }
func (*ValueTypeDecl) typeDecl()            {}
func (v *ValueTypeDecl) DeclName() []rune   { return v.Name }

// EnumValue is one case of an EnumDecl: a name with an optional integer
// literal value; a case without one takes the previous case's value plus
// one, starting at 0.
type EnumValue struct {
	Position diag.Position
	Name     []rune
	Value    int
	Doc      string
}

// EnumDecl is `🔘 Name body`; it forbids instance variables and user
// initializers.
type EnumDecl struct {
	Position diag.Position
	Name     []rune
	Doc      string
	Values   []EnumValue
	Members  []Member // methods/type-methods only
}

func (e *EnumDecl) Pos() diag.Position { return e.Position }
func (*EnumDecl) typeDecl()            {}
func (e *EnumDecl) DeclName() []rune   { return e.Name }

// ProtocolDecl is `🐊 Name [generic-params] body`; its method list is
// the interface contract, with no instance variables.
type ProtocolDecl struct {
	Position      diag.Position
	Name          []rune
	GenericParams []*GenericParam
	Doc          string
	Methods       []*Function
}

func (p *ProtocolDecl) Pos() diag.Position { return p.Position }
func (*ProtocolDecl) typeDecl()            {}
func (p *ProtocolDecl) DeclName() []rune   { return p.Name }

// ExtensionDecl adds members to a pre-existing definition in the same
// package.
type ExtensionDecl struct {
	Position   diag.Position
	TargetName []rune
	Members    []Member
}

func (e *ExtensionDecl) Pos() diag.Position { return e.Position }

// InstanceVarMember is an instance-variable declaration in a type body.
type InstanceVarMember struct {
	Position diag.Position
	Name     []rune
	Type     TypeExpr
	Default  Expr
	ClassVar bool
}

func (i *InstanceVarMember) Pos() diag.Position { return i.Position }
func (*InstanceVarMember) member()              {}

// MethodMember wraps an instance or type method declared in a body.
type MethodMember struct {
	Position diag.Position
	Function *Function
}

func (m *MethodMember) Pos() diag.Position { return m.Position }
func (*MethodMember) member()              {}

// InitializerMember wraps an object/value-type initializer.
type InitializerMember struct {
	Position diag.Position
	Function *Function
}

func (i *InitializerMember) Pos() diag.Position { return i.Position }
func (*InitializerMember) member()              {}

// ConformanceMember declares that the enclosing type conforms to a
// protocol.
type ConformanceMember struct {
	Position diag.Position
	Protocol *NominalType
}

func (c *ConformanceMember) Pos() diag.Position { return c.Position }
func (*ConformanceMember) member()              {}
