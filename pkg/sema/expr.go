package sema

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/scope"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

// analyzeExpr implements analysis step 2 (type-check against expect,
// insert boxing once the type is known) and step 3 (method-call
// resolution). It returns the possibly-rewrapped expression — callers
// must store the result back into whatever field held e, since boxing
// insertion replaces nodes rather than mutating them in place.
func (a *Analyser) analyzeExpr(e ast.Expr, fs *funcScope, def *symbols.Definition, expect TypeExpectation) (ast.Expr, error) {
	if e == nil {
		return e, nil
	}

	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		ex.SetType(typePtr(a.builtin("Int")))
	case *ast.DoubleLiteral:
		ex.SetType(typePtr(a.builtin("Double")))
	case *ast.SymbolLiteral:
		ex.SetType(typePtr(a.builtin("Symbol")))
	case *ast.StringLiteral:
		ex.SetType(typePtr(a.builtin("Text")))
	case *ast.TrueLiteral, *ast.FalseLiteral:
		ex.SetType(typePtr(a.builtin("Boolean")))
	case *ast.NothingnessLiteral:
		ex.SetType(typePtr(types.Optional(types.Something())))
	case *ast.ThisLiteral:
		if def == nil {
			return e, diag.New(diag.KindScopeError, diag.CodeIllegalThis, ex.Position, "this used outside a method body")
		}
		ex.SetType(typePtr(thisType(def)))

	case *ast.Concatenate:
		for i, p := range ex.Parts {
			np, err := a.analyzeExpr(p, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Parts[i] = np
		}
		ex.SetType(typePtr(a.builtin("Text")))

	case *ast.ListLiteral:
		for i, el := range ex.Elements {
			nel, err := a.analyzeExpr(el, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Elements[i] = nel
		}
		elemType := a.commonTypeOf(ex.Elements, fs, ex.Position)
		if id, ok := a.lookupName("List", def); ok {
			ex.SetType(typePtr(types.ValueType(id, []types.Type{elemType})))
		} else {
			ex.SetType(typePtr(types.Something()))
		}

	case *ast.DictionaryLiteral:
		for i, k := range ex.Keys {
			nk, err := a.analyzeExpr(k, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Keys[i] = nk
		}
		for i, v := range ex.Values {
			nv, err := a.analyzeExpr(v, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Values[i] = nv
		}
		if id, ok := a.lookupName("Dictionary", def); ok {
			keyType := a.commonTypeOf(ex.Keys, fs, ex.Position)
			valType := a.commonTypeOf(ex.Values, fs, ex.Position)
			ex.SetType(typePtr(types.ValueType(id, []types.Type{keyType, valType})))
		} else {
			ex.SetType(typePtr(types.Something()))
		}

	case *ast.GetVariable:
		if v, ok := fs.scoper.Lookup(string(ex.Name)); ok {
			if !fs.scoper.Readable(v) {
				return e, diag.New(diag.KindScopeError, diag.CodeMaybeUninitialized, ex.Position,
					"%s is not definitely initialised here", string(ex.Name))
			}
			if t, ok := v.Type.(*types.Type); ok {
				ex.SetType(t)
			}
		} else if iv, ok := fs.scoper.InstanceVar(string(ex.Name)); ok {
			if !fs.scoper.InstanceVarReadable(iv) {
				return e, diag.New(diag.KindScopeError, diag.CodeMaybeUninitialized, ex.Position,
					"instance variable %s is not definitely initialised here", string(ex.Name))
			}
			if t, ok := iv.Type.(*types.Type); ok {
				ex.SetType(t)
			}
		} else {
			return e, diag.New(diag.KindScopeError, diag.CodeVariableNotFound, ex.Position, "unknown name %s", string(ex.Name))
		}

	case *ast.MetaTypeInstantiation:
		nmt, err := a.analyzeExpr(ex.MetaType, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.MetaType = nmt
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		if mt := nmt.Type(); mt != nil && mt.Kind == types.KindTypeAsValue {
			ex.SetType(mt.Inner)
		}

	case *ast.Cast:
		nc, err := a.analyzeExpr(ex.Callee, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Callee = nc
		target, err := a.resolveTypeExpr(ex.Target, def)
		if err != nil {
			return e, err
		}
		ex.SetType(typePtr(types.Optional(target)))

	case *ast.ConditionalAssignment:
		nopt, err := a.analyzeExpr(ex.Optional, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Optional = nopt
		var inner types.Type
		if t := nopt.Type(); t != nil && t.Kind == types.KindOptional {
			inner = *t.Inner
		}
		nfb, err := a.analyzeExpr(ex.Fallback, fs, def, TypeExpectation{Type: inner, HasType: true})
		if err != nil {
			return e, err
		}
		ex.Fallback = nfb
		ex.SetType(&inner)

	case *ast.TypeMethod:
		target, err := a.resolveTypeExpr(ex.Receiver, def)
		if err != nil {
			return e, err
		}
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		fn, err := a.resolveMethod(target, string(ex.Name), true, ex.Position)
		if err != nil {
			return e, err
		}
		resultType, err := a.resolveTypeExpr(fn.ReturnType, def)
		if err != nil {
			return e, err
		}
		ex.SetType(&resultType)

	case *ast.SuperMethod:
		if def == nil || def.Super == nil {
			return e, diag.New(diag.KindTypeError, diag.CodeNoSuchMethod, ex.Position, "no super method %s", string(ex.Name))
		}
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		superDef := a.Defs.Get(def.Super.Def)
		fn, ok := superDef.Method(string(ex.Name), false)
		if !ok {
			return e, diag.New(diag.KindTypeError, diag.CodeNoSuchMethod, ex.Position, "super has no method %s", string(ex.Name))
		}
		resultType, err := a.resolveTypeExpr(fn.ReturnType, def)
		if err != nil {
			return e, err
		}
		ex.SetType(&resultType)

	case *ast.CallableCall:
		ncallee, err := a.analyzeExpr(ex.Callee, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Callee = ncallee
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		if t := ncallee.Type(); t != nil && t.Kind == types.KindCallable {
			ex.SetType(t.Result)
		}

	case *ast.CaptureMethod:
		nrecv, err := a.analyzeExpr(ex.Receiver, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Receiver = nrecv
		if t := nrecv.Type(); t != nil {
			fn, err := a.resolveMethod(*t, string(ex.Name), false, ex.Position)
			if err == nil {
				result, rerr := a.resolveTypeExpr(fn.ReturnType, def)
				if rerr == nil {
					params := make([]types.Type, 0, len(fn.Params))
					for _, p := range fn.Params {
						pt, perr := a.resolveTypeExpr(p.Type, def)
						if perr != nil {
							continue
						}
						params = append(params, pt)
					}
					ex.SetType(typePtr(types.Callable(result, nil, params)))
				}
			}
		}

	case *ast.CaptureTypeMethod:
		target, err := a.resolveTypeExpr(ex.Receiver, def)
		if err != nil {
			return e, err
		}
		fn, err := a.resolveMethod(target, string(ex.Name), true, ex.Position)
		if err != nil {
			return e, err
		}
		result, err := a.resolveTypeExpr(fn.ReturnType, def)
		if err != nil {
			return e, err
		}
		ex.SetType(typePtr(types.Callable(result, nil, nil)))

	case *ast.Method:
		nrecv, err := a.analyzeExpr(ex.Receiver, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Receiver = nrecv
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		recvType := nrecv.Type()
		if recvType == nil {
			break
		}
		fn, err := a.resolveMethod(*recvType, string(ex.Name), false, ex.Position)
		if err != nil {
			return e, err
		}
		if (ex.Mood == ast.Interrogative) != (fn.Mood == ast.Interrogative) {
			return e, diag.New(diag.KindTypeError, diag.CodeNoSuchMethod, ex.Position,
				"%s is declared %s but called %s", string(ex.Name), fn.Mood, ex.Mood)
		}
		if fn.Mutating && !recvType.Reference && recvType.Kind == types.KindValueType {
			adjusted := insertReferenceAdjust(nrecv, true)
			ex.Receiver = adjusted
		}
		if fn.Deprecated {
			a.Sink.Warn(ex.Position, "%s is deprecated", string(ex.Name))
		}
		resultType, err := a.resolveTypeExpr(fn.ReturnType, def)
		if err != nil {
			return e, err
		}
		ex.SetType(&resultType)

	case *ast.BinaryOperator:
		nl, err := a.analyzeExpr(ex.Left, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Left = nl
		nr, err := a.analyzeExpr(ex.Right, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Right = nr
		if t := nl.Type(); t != nil {
			if fn, err := a.resolveMethod(*t, string(ex.Operator), false, ex.Position); err == nil {
				resultType, rerr := a.resolveTypeExpr(fn.ReturnType, def)
				if rerr == nil {
					ex.SetType(&resultType)
				}
			} else {
				ex.SetType(t)
			}
		}

	case *ast.Initialization:
		target, err := a.resolveTypeExpr(ex.Target, def)
		if err != nil {
			return e, err
		}
		for i, arg := range ex.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return e, err
			}
			ex.Args[i] = na
		}
		ex.SetType(&target)

	case *ast.Closure:
		cs := scope.NewCapturingScoper(fs.scoper)
		inner := &funcScope{scoper: cs.Scoper, path: scope.NewPathAnalyser(), ctx: fs.ctx}
		for _, p := range ex.Params {
			pt, err := a.resolveTypeExpr(p.Type, def)
			if err != nil {
				return e, err
			}
			inner.scoper.Declare(string(p.Name), &pt, false, p.Position)
		}
		if err := a.analyzeBlock(ex.Body, inner, def, &ast.Function{ReturnType: ex.ReturnType}); err != nil {
			return e, err
		}
		result, err := a.resolveTypeExpr(ex.ReturnType, def)
		if err != nil {
			return e, err
		}
		params := make([]types.Type, 0, len(ex.Params))
		for _, p := range ex.Params {
			pt, err := a.resolveTypeExpr(p.Type, def)
			if err != nil {
				return e, err
			}
			params = append(params, pt)
		}
		ex.SetType(typePtr(types.Callable(result, nil, params)))

	case *ast.IsNothingness, *ast.IsError:
		operand := operandOf(ex)
		nop, err := a.analyzeExpr(operand, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		setOperand(ex, nop)
		e.SetType(typePtr(a.builtin("Boolean")))

	case *ast.Unwrap:
		nop, err := a.analyzeExpr(ex.Operand, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Operand = nop
		if t := nop.Type(); t != nil {
			switch t.Kind {
			case types.KindOptional:
				ex.SetType(t.Inner)
			case types.KindError:
				ex.SetType(t.Success)
			default:
				ex.SetType(t)
			}
		}

	case *ast.MetaTypeFromInstance:
		nop, err := a.analyzeExpr(ex.Operand, fs, def, TypeExpectation{})
		if err != nil {
			return e, err
		}
		ex.Operand = nop
		if t := nop.Type(); t != nil {
			ex.SetType(typePtr(types.TypeAsValue(*t)))
		}

	default:
		// boxing-conversion nodes and any node already carrying a
		// resolved type from a previous pass pass through unchanged.
	}

	if e.Type() == nil {
		return e, nil
	}
	if !expect.HasType {
		return e, nil
	}
	if !types.Compatible(*e.Type(), expect.Type, fs.ctx, a.Defs) {
		return e, diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, e.Pos(),
			"expected %s, found %s", expect.Type, *e.Type())
	}
	return insertBoxing(e, expect)
}

// resolveMethod looks a method up on recv's definition, walking the
// superclass chain for classes (analysis step 3's class-hierarchy
// lookup; multi-protocol try-each-then-first-match and dispatch-mode
// selection are pkg/app-level concerns layered on top of this lookup
// once cross-package conformance tables are available).
func (a *Analyser) resolveMethod(recv types.Type, name string, isClassMethod bool, pos diag.Position) (*ast.Function, error) {
	cur := recv.Def
	for {
		d := a.Defs.Get(cur)
		if fn, ok := d.Method(name, isClassMethod); ok {
			return fn, nil
		}
		next, ok := a.Defs.SuperOf(cur)
		if !ok {
			break
		}
		cur = next
	}
	return nil, diag.New(diag.KindTypeError, diag.CodeNoSuchMethod, pos, "no method %s on %s", name, recv)
}

func operandOf(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case *ast.IsNothingness:
		return ex.Operand
	case *ast.IsError:
		return ex.Operand
	}
	return nil
}

func setOperand(e ast.Expr, v ast.Expr) {
	switch ex := e.(type) {
	case *ast.IsNothingness:
		ex.Operand = v
	case *ast.IsError:
		ex.Operand = v
	}
}

// builtin resolves the name of a primitive value type (Int, Text, ...)
// against the arena, falling back to Something if the standard
// library prelude isn't loaded into it yet (e.g. in an isolated unit
// test that only populates the types under analysis).
func (a *Analyser) builtin(name string) types.Type {
	if id, ok := a.lookupName(name, nil); ok {
		d := a.Defs.Get(id)
		switch d.Kind {
		case symbols.DefValueType:
			return types.ValueType(id, nil)
		case symbols.DefEnum:
			return types.Enum(id)
		default:
			return types.Class(id, nil)
		}
	}
	return types.Something()
}

func thisType(def *symbols.Definition) types.Type {
	switch def.Kind {
	case symbols.DefValueType:
		return types.ValueType(def.ID, nil)
	default:
		return types.Class(def.ID, nil)
	}
}

// commonTypeOf folds every element's type through a CommonTypeFinder
//  , used by list/dictionary literals to infer their
// element type from siblings rather than requiring an annotation.
func (a *Analyser) commonTypeOf(elems []ast.Expr, fs *funcScope, pos diag.Position) types.Type {
	finder := NewCommonTypeFinder(a)
	for _, el := range elems {
		if t := el.Type(); t != nil {
			finder.AddType(*t, fs.ctx)
		}
	}
	return finder.CommonType(pos)
}
