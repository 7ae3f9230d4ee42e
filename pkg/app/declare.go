package app

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/sema"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

// declarationOf builds a bare symbols.Definition shell for a top-level
// type declaration: name, kind, doc, export, and the flags available
// without resolving any referenced type yet (the declare pass,
// step 1 of load_package: every name in a package must be visible
// before any of their bodies are resolved, so forward references
// within a package work).
func declarationOf(td ast.TypeDecl, pkgName string) (*symbols.Definition, error) {
	switch t := td.(type) {
	case *ast.ClassDecl:
		return &symbols.Definition{
			Kind: symbols.DefClass, Name: string(t.Name), Package: pkgName, Doc: t.Doc,
			Export: true, Pos: t.Position, GenericParams: t.GenericParams,
			Final: t.Final, Foreign: t.Foreign,
			Methods: map[string]*ast.Function{}, Initializers: map[string]*ast.Function{},
			RequiredInitializers: map[string]bool{},
		}, nil
	case *ast.ValueTypeDecl:
		return &symbols.Definition{
			Kind: symbols.DefValueType, Name: string(t.Name), Package: pkgName, Doc: t.Doc,
			Export: true, Pos: t.Position, GenericParams: t.GenericParams, Primitive: t.Primitive,
			Methods: map[string]*ast.Function{}, Initializers: map[string]*ast.Function{},
		}, nil
	case *ast.EnumDecl:
		values := make([]symbols.EnumCase, 0, len(t.Values))
		for _, v := range t.Values {
			values = append(values, symbols.EnumCase{Name: string(v.Name), Value: v.Value, Doc: v.Doc})
		}
		return &symbols.Definition{
			Kind: symbols.DefEnum, Name: string(t.Name), Package: pkgName, Doc: t.Doc,
			Export: true, Pos: t.Position, EnumValues: values,
			Methods: map[string]*ast.Function{},
		}, nil
	case *ast.ProtocolDecl:
		methods := map[string]*ast.Function{}
		for _, m := range t.Methods {
			methods[symbols.MethodKey(string(m.Name), m.Kind == ast.ClassMethod)] = m
		}
		return &symbols.Definition{
			Kind: symbols.DefProtocol, Name: string(t.Name), Package: pkgName, Doc: t.Doc,
			Export: true, Pos: t.Position, GenericParams: t.GenericParams, Methods: methods,
		}, nil
	default:
		return nil, diag.New(diag.KindPackageError, diag.CodeIncompatibleTypes, td.Pos(), "unrecognised top-level declaration")
	}
}

// populateDefinition resolves the syntactic body of a declared type
// against def's now fully name-declared package (load_package
// steps 2-3): instance variables, methods, initializers, superclass and
// declared conformances. Enum members are populated like those of
// classes and value types; protocol declarations carry no further body
// beyond what declarationOf already captured. Method bodies themselves
// are resolved by sema.Analyser.Drain.
func populateDefinition(a *sema.Analyser, td ast.TypeDecl, def *symbols.Definition) error {
	switch t := td.(type) {
	case *ast.ClassDecl:
		if t.Super != nil {
			superType, err := a.ResolveTypeExpr(t.Super, def)
			if err != nil {
				return err
			}
			def.Super = &symbols.NominalRef{Name: t.Super.Name, Def: superType.Def, Args: superType.Args}
			def.SuperArgs = superType.Args
			if superDef := a.Defs.Get(superType.Def); superDef.Kind == symbols.DefClass {
				superDef.SubclassPresent = true
			}
		}
		return populateMembers(a, t.Members, def)
	case *ast.ValueTypeDecl:
		return populateMembers(a, t.Members, def)
	case *ast.EnumDecl:
		return populateMembers(a, t.Members, def)
	case *ast.ProtocolDecl:
		return nil
	default:
		return nil
	}
}

func populateMembers(a *sema.Analyser, members []ast.Member, def *symbols.Definition) error {
	for _, m := range members {
		switch mem := m.(type) {
		case *ast.InstanceVarMember:
			t, err := a.ResolveTypeExpr(mem.Type, def)
			if err != nil {
				return err
			}
			def.InstanceVars = append(def.InstanceVars, symbols.InstanceVar{
				Position: mem.Position, Name: string(mem.Name), Type: t, Default: mem.Default, ClassVar: mem.ClassVar,
			})
		case *ast.MethodMember:
			key := symbols.MethodKey(string(mem.Function.Name), mem.Function.Kind == ast.ClassMethod)
			def.Methods[key] = mem.Function
		case *ast.InitializerMember:
			def.Initializers[string(mem.Function.Name)] = mem.Function
		case *ast.ConformanceMember:
			proto, err := a.ResolveTypeExpr(mem.Protocol, def)
			if err != nil {
				return err
			}
			def.Conformances = append(def.Conformances, &symbols.Conformance{
				Protocol: &symbols.NominalRef{Name: mem.Protocol.Name, Def: proto.Def, Args: proto.Args},
			})
		}
	}
	return nil
}
