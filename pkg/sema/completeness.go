package sema

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/scope"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

// checkCompleteness implements steps 4 and 6: initializer
// superinit/instance-variable-initialization requirements, and
// return-completeness for every other function kind.
func (a *Analyser) checkCompleteness(fn *ast.Function, def *symbols.Definition, fs *funcScope) error {
	switch fn.Kind {
	case ast.ObjectInitializer:
		if def.Super != nil && !fs.path.Certainly(scope.IncidentSuperCalled) {
			return diag.New(diag.KindInitError, diag.CodeSuperNotCalled, fn.Position,
				"initializer %s must call super on every path before returning", string(fn.Name))
		}
		if err := a.checkInstanceVarsInitialized(fn, def, fs); err != nil {
			return err
		}
		appendReturn(fn, &ast.Return{Position: fn.Position, Value: &ast.ThisLiteral{ExprBase: ast.At(fn.Position)}})
		return nil
	case ast.ValueTypeInitializer:
		if err := a.checkInstanceVarsInitialized(fn, def, fs); err != nil {
			return err
		}
		appendReturn(fn, &ast.Return{Position: fn.Position})
		return nil
	default:
		if fn.ReturnType != nil && !fs.path.Certainly(scope.IncidentReturned) {
			return diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, fn.Position,
				"function %s must return on every path", string(fn.Name))
		}
		return nil
	}
}

// appendReturn adds a synthesised trailing return to a body whose last
// statement isn't already one (analysis step 6: "synthesise return
// this" / "synthesise return").
func appendReturn(fn *ast.Function, ret *ast.Return) {
	if fn.Body == nil {
		fn.Body = &ast.Block{Position: fn.Position}
	}
	n := len(fn.Body.Statements)
	if n > 0 {
		if _, ok := fn.Body.Statements[n-1].(*ast.Return); ok {
			return
		}
	}
	fn.Body.Statements = append(fn.Body.Statements, ret)
}

// checkInstanceVarsInitialized verifies every non-optional instance
// variable of def is definitely initialised by the end of an
// initializer (preparation step 4, the invariant tying to
// InstanceVariableNotInitialized).
func (a *Analyser) checkInstanceVarsInitialized(fn *ast.Function, def *symbols.Definition, fs *funcScope) error {
	for _, iv := range def.InstanceVars {
		if iv.Type.IsOptional() {
			continue
		}
		v, ok := fs.scoper.InstanceVar(iv.Name)
		if !ok || !fs.scoper.InstanceVarReadable(v) {
			return diag.New(diag.KindInitError, diag.CodeIVarNotInitialized, fn.Position,
				"instance variable %s is not definitely initialised by %s", iv.Name, string(fn.Name))
		}
	}
	return nil
}

// validateOverride implements analysis step 5 for parameter count and
// access: the override must take as many parameters as the super method
// and must not narrow its access level. The return and parameter types
// are not compared.
func validateOverride(over, super *ast.Function, overDef *symbols.Definition, defs *symbols.DefinitionTable) error {
	if len(over.Params) != len(super.Params) {
		return diag.New(diag.KindTypeError, diag.CodeImproperOverride, over.Position,
			"override %s has %d parameters, super has %d", string(over.Name), len(over.Params), len(super.Params))
	}
	if over.Access > super.Access {
		return diag.New(diag.KindTypeError, diag.CodeImproperOverride, over.Position,
			"override %s narrows access relative to its super method", string(over.Name))
	}
	return nil
}

// resolveConformanceType is a small helper shared by the extension
// merger: resolve a *ast.NominalType naming a protocol against def's
// generic context.
func resolveConformanceType(a *Analyser, nt *ast.NominalType, def *symbols.Definition) (types.Type, error) {
	return a.resolveNominal(nt, def)
}
