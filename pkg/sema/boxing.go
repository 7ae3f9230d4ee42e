package sema

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

// insertBoxing implements it works like this: once e's type is known, reconcile
// it against exp's requested storage by wrapping e in the appropriate
// conversion node. Returns e unchanged when no conversion is needed.
func insertBoxing(e ast.Expr, exp TypeExpectation) (ast.Expr, error) {
	if !exp.HasType {
		return e, nil
	}
	from := types.StorageOf(*e.Type())
	to := types.StorageOf(exp.Type)
	pos := e.Pos()

	if from == to {
		return e, nil
	}

	switch {
	case from == types.Simple && (to == types.SimpleOptional || to == types.PointerOptional):
		wrapped := &ast.SimpleToSimpleOptional{ExprBase: ast.At(pos), Operand: e}
		wrapped.SetType(typePtr(types.Optional(*e.Type())))
		return wrapped, nil
	case from == types.StorageBox && (to == types.SimpleOptional || to == types.PointerOptional):
		wrapped := &ast.BoxToSimpleOptional{ExprBase: ast.At(pos), Operand: e}
		wrapped.SetType(typePtr(types.Optional(exp.Type)))
		return wrapped, nil
	case from == types.Simple && to == types.StorageBox:
		iface := exp.Type
		wrapped := &ast.SimpleToBox{ExprBase: ast.At(pos), Operand: e, Iface: iface}
		wrapped.SetType(typePtr(types.Box(*e.Type(), iface)))
		return wrapped, nil
	case (from == types.SimpleOptional || from == types.PointerOptional) && to == types.StorageBox:
		iface := exp.Type
		wrapped := &ast.SimpleOptionalToBox{ExprBase: ast.At(pos), Operand: e, Iface: iface}
		wrapped.SetType(typePtr(types.Box(*e.Type(), iface)))
		return wrapped, nil
	case from == types.StorageBox && to == types.Simple:
		wrapped := &ast.BoxToSimple{ExprBase: ast.At(pos), Operand: e}
		wrapped.SetType(&exp.Type)
		return wrapped, nil
	default:
		return nil, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, pos,
			"cannot convert storage form %s to %s", from, to)
	}
}

// insertReferenceAdjust applies the (reference adjust)/value and
// value/reference conversions of this table, independent of
// the storage-form switch above since reference-ness is an orthogonal
// flag.
func insertReferenceAdjust(e ast.Expr, wantReference bool) ast.Expr {
	t := e.Type()
	if t == nil || t.Reference == wantReference {
		return e
	}
	pos := e.Pos()
	if wantReference {
		wrapped := &ast.StoreTemporarily{ExprBase: ast.At(pos), Operand: e}
		refType := *t
		refType.Reference = true
		wrapped.SetType(&refType)
		return wrapped
	}
	wrapped := &ast.Dereference{ExprBase: ast.At(pos), Operand: e}
	valType := *t
	valType.Reference = false
	wrapped.SetType(&valType)
	return wrapped
}

func typePtr(t types.Type) *types.Type { return &t }
