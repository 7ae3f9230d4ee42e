package sema

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

// TypeExpectation is analysis step 2's "expected type + storage +
// mutability + boxable hint", the value requested when analysing an
// expression against its context.
type TypeExpectation struct {
	Type     types.Type
	Storage  types.Storage
	HasType  bool
	Mutable  bool
	Boxable  bool
}

// ResolveTypeExpr is the exported entry point pkg/app uses while
// populating a definition's body (super reference, instance-variable
// types, declared conformances) against the now fully name-declared
// package symbol table; per-function analysis uses the unexported
// resolveTypeExpr directly since it already runs inside this package.
func (a *Analyser) ResolveTypeExpr(te ast.TypeExpr, def *symbols.Definition) (types.Type, error) {
	return a.resolveTypeExpr(te, def)
}

// resolveTypeExpr resolves a syntactic TypeExpr against def's owning
// package/generic parameters (the TypeContext-bound generic
// names; full cross-package lookup is pkg/app's job via the
// package/import tables, this only handles the shapes pkg/ast can
// produce).
func (a *Analyser) resolveTypeExpr(te ast.TypeExpr, def *symbols.Definition) (types.Type, error) {
	switch t := te.(type) {
	case nil:
		return types.Something(), nil
	case *ast.NominalType:
		return a.resolveNominal(t, def)
	case *ast.MultiProtocolType:
		members := make([]types.Type, 0, len(t.Members))
		for _, m := range t.Members {
			mt, err := a.resolveTypeExpr(m, def)
			if err != nil {
				return types.Type{}, err
			}
			members = append(members, mt)
		}
		mp, ok := types.MultiProtocol(members)
		if !ok {
			return types.Type{}, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, t.Position, "multi-protocol type must list at least one protocol")
		}
		return mp, nil
	case *ast.CallableType:
		params := make([]types.Type, 0, len(t.Params))
		for _, p := range t.Params {
			pt, err := a.resolveTypeExpr(p, def)
			if err != nil {
				return types.Type{}, err
			}
			params = append(params, pt)
		}
		result, err := a.resolveTypeExpr(t.Result, def)
		if err != nil {
			return types.Type{}, err
		}
		var errType *types.Type
		if t.ErrType != nil {
			et, err := a.resolveTypeExpr(t.ErrType, def)
			if err != nil {
				return types.Type{}, err
			}
			errType = &et
		}
		return types.Callable(result, errType, params), nil
	case *ast.OptionalType:
		inner, err := a.resolveTypeExpr(t.Inner, def)
		if err != nil {
			return types.Type{}, err
		}
		return types.Optional(inner), nil
	case *ast.ErrorUnionType:
		enum, err := a.resolveTypeExpr(t.ErrorEnum, def)
		if err != nil {
			return types.Type{}, err
		}
		success, err := a.resolveTypeExpr(t.Success, def)
		if err != nil {
			return types.Type{}, err
		}
		return types.ErrorUnion(enum, success), nil
	case *ast.MetaType:
		inner, err := a.resolveTypeExpr(t.Inner, def)
		if err != nil {
			return types.Type{}, err
		}
		return types.TypeAsValue(inner), nil
	default:
		return types.Type{}, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, te.Pos(), "unrecognised type expression")
	}
}

func (a *Analyser) resolveNominal(n *ast.NominalType, def *symbols.Definition) (types.Type, error) {
	name := string(n.Name)

	// A generic parameter of the enclosing definition shadows any
	// same-named package type (the TypeContext).
	if def != nil {
		for i, gp := range def.GenericParams {
			if string(gp.Name) == name {
				return types.GenericVariable(i, def.ID), nil
			}
		}
	}

	id, ok := a.lookupName(name, def)
	if !ok {
		return types.Type{}, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, n.Position, "unknown type %s", name)
	}
	target := a.Defs.Get(id)

	args := make([]types.Type, 0, len(n.GenericArgs))
	for _, ga := range n.GenericArgs {
		at, err := a.resolveTypeExpr(ga, def)
		if err != nil {
			return types.Type{}, err
		}
		args = append(args, at)
	}

	switch target.Kind {
	case symbols.DefClass:
		return types.Class(id, args), nil
	case symbols.DefValueType:
		return types.ValueType(id, args), nil
	case symbols.DefEnum:
		return types.Enum(id), nil
	case symbols.DefProtocol:
		return types.Protocol(id, args), nil
	default:
		return types.Type{}, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, n.Position, "%s is not a type", name)
	}
}

// lookupName is a minimal same-package-only name lookup used while
// resolving syntactic type expressions during per-function analysis;
// pkg/app's package loader populates a richer cross-package symbol
// table consulted first when available via a/Symbols.
func (a *Analyser) lookupName(name string, def *symbols.Definition) (types.DefId, bool) {
	if a.Symbols != nil {
		if id, ok := a.Symbols.Lookup(symbols.DefaultNamespace, name); ok {
			return id, true
		}
	}
	for i := 0; i < a.Defs.Len(); i++ {
		d := a.Defs.Get(types.DefId(i))
		if d.Name == name {
			return types.DefId(i), true
		}
	}
	return 0, false
}
