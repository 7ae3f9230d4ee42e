// Package ast defines the abstract syntax produced by pkg/parser and
// consumed by pkg/sema  : type definitions, function bodies,
// and the expression/statement tree, plus the boxing-conversion nodes
// pkg/sema's boxing-insertion pass materialises.
package ast

import "github.com/glyphlang/glyphc/pkg/diag"

// Node is implemented by every statement, expression and declaration
// node; every one carries a SourcePosition.
type Node interface {
	Pos() diag.Position
}
