package sema

import (
	"github.com/glyphlang/glyphc/internal/genid"
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

// MergeExtension implements preparation step 3 and the
// extension rules: an extension's members are folded directly into its
// target definition as though they had been declared there, except
// that an extension is rejected outright if it tries to add an
// instance variable to a type that already has a subclass present
// (original_source rejects this because a subclass already laid out
// before the extension ran would disagree on instance-variable
// offsets).
func (a *Analyser) MergeExtension(ext *ast.ExtensionDecl, target *symbols.Definition) error {
	for _, m := range ext.Members {
		switch mem := m.(type) {
		case *ast.InstanceVarMember:
			if target.SubclassPresent {
				return diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, mem.Position,
					"cannot add instance variable %s to %s: a subclass is already present", string(mem.Name), target.Name)
			}
			t, err := a.resolveTypeExpr(mem.Type, target)
			if err != nil {
				return err
			}
			target.InstanceVars = append(target.InstanceVars, symbols.InstanceVar{
				Position: mem.Position, Name: string(mem.Name), Type: t, Default: mem.Default, ClassVar: mem.ClassVar,
			})
		case *ast.MethodMember:
			if target.Methods == nil {
				target.Methods = map[string]*ast.Function{}
			}
			key := symbols.MethodKey(string(mem.Function.Name), mem.Function.Kind == ast.ClassMethod)
			target.Methods[key] = mem.Function
			a.Enqueue(mem.Function, target)
		case *ast.InitializerMember:
			if target.Initializers == nil {
				target.Initializers = map[string]*ast.Function{}
			}
			target.Initializers[string(mem.Function.Name)] = mem.Function
			a.Enqueue(mem.Function, target)
		case *ast.ConformanceMember:
			nt, err := resolveConformanceType(a, mem.Protocol, target)
			if err != nil {
				return err
			}
			target.Conformances = append(target.Conformances, &symbols.Conformance{
				Protocol: &symbols.NominalRef{Name: mem.Protocol.Name, Def: nt.Def, Args: nt.Args},
			})
		}
	}
	return nil
}

// BuildConformances implements the preparation pass step 4: for every
// declared conformance, every protocol method is matched against a
// method on the conforming type. A mismatch reported by storageMismatch
// between the protocol's declared signature and the type's own is
// reconciled by synthesising a boxing-layer function (the CallableBox case)
// rather than by rejecting the conformance, and the synthesised layer
// is queued for its own analysis pass.
func (a *Analyser) BuildConformances(def *symbols.Definition) error {
	for _, c := range def.Conformances {
		protoDef := a.Defs.Get(c.Protocol.Def)
		if protoDef.Kind != symbols.DefProtocol {
			continue
		}
		c.Implementations = map[string]*ast.Function{}
		for name, protoMethod := range protoDef.Methods {
			impl, ok := def.Method(stripClassPrefix(name), isClassKey(name))
			if !ok {
				return diag.New(diag.KindTypeError, diag.CodeNoSuchMethod, def.Pos,
					"%s does not implement %s required by %s", def.Name, stripClassPrefix(name), protoDef.Name)
			}
			if storageMismatch(protoMethod, impl, def) {
				impl = a.synthesizeBoxingLayer(impl, protoMethod, def)
			}
			c.Implementations[name] = impl
		}
	}
	return nil
}

func stripClassPrefix(key string) string {
	if len(key) > 0 && key[0] == '$' {
		return key[1:]
	}
	return key
}

func isClassKey(key string) bool {
	return len(key) > 0 && key[0] == '$'
}

// storageMismatch reports whether impl needs a boxing layer to stand in
// for proto. It compares only the two parameter counts; the parameter
// and return types, and their storage forms, are not compared.
func storageMismatch(proto, impl *ast.Function, def *symbols.Definition) bool {
	return len(proto.Params) != len(impl.Params)
}

// synthesizeBoxingLayer builds a thin wrapper function matching the
// protocol's signature that forwards to impl through a CallableBox
// conversion, and enqueues it for analysis like any other function.
func (a *Analyser) synthesizeBoxingLayer(impl, proto *ast.Function, def *symbols.Definition) *ast.Function {
	layer := &ast.Function{
		Position:     impl.Position,
		Name:         impl.Name,
		Mood:         impl.Mood,
		Access:       impl.Access,
		Params:       proto.Params,
		ReturnType:   proto.ReturnType,
		ErrorType:    proto.ErrorType,
		Kind:         ast.BoxingLayer,
		Body:         impl.Body,
		ExternalName: genid.BoxingLayer(def.Name, string(impl.Name)),
	}
	a.Enqueue(layer, def)
	return layer
}
