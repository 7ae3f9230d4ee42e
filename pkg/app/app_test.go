package app

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

func newTestApplication() *Application {
	a := New("")
	a.packages = map[string]*symbols.Package{}
	return a
}

func TestDeclareTypes_RegistersEveryTopLevelType(t *testing.T) {
	app := newTestApplication()
	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()

	doc := &ast.Document{
		Types: []ast.TypeDecl{
			&ast.ClassDecl{Position: diag.Position{Line: 1}, Name: []rune("Animal")},
			&ast.ValueTypeDecl{Position: diag.Position{Line: 2}, Name: []rune("Point")},
		},
	}

	if err := app.declareTypes(doc, pkg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkg.DefIDs) != 2 {
		t.Fatalf("expected 2 registered definitions, got %d", len(pkg.DefIDs))
	}
	if _, ok := pkg.Symbols.Lookup(symbols.DefaultNamespace, "Animal"); !ok {
		t.Fatal("Animal should be declared in the package symbol table")
	}
	if _, ok := pkg.Symbols.Lookup(symbols.DefaultNamespace, "Point"); !ok {
		t.Fatal("Point should be declared in the package symbol table")
	}
}

func TestDeclareTypes_DuplicateNameIsCollision(t *testing.T) {
	app := newTestApplication()
	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()

	doc := &ast.Document{
		Types: []ast.TypeDecl{
			&ast.ClassDecl{Position: diag.Position{Line: 1}, Name: []rune("Animal")},
			&ast.ClassDecl{Position: diag.Position{Line: 2}, Name: []rune("Animal")},
		},
	}

	err := app.declareTypes(doc, pkg)
	if err == nil {
		t.Fatal("expected a collision error for the duplicate type name")
	}
}

func TestPrepareTypes_ResolvesSuperclassAndExtension(t *testing.T) {
	app := newTestApplication()
	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()

	doc := &ast.Document{
		Types: []ast.TypeDecl{
			&ast.ClassDecl{Position: diag.Position{Line: 1}, Name: []rune("Animal")},
			&ast.ClassDecl{Position: diag.Position{Line: 2}, Name: []rune("Dog"), Super: nominal("Animal")},
		},
		Extensions: []*ast.ExtensionDecl{
			{
				Position:   diag.Position{Line: 3},
				TargetName: []rune("Animal"),
				Members: []ast.Member{
					&ast.InstanceVarMember{Position: diag.Position{Line: 4}, Name: []rune("name"), Type: nominal("Animal")},
				},
			},
		},
	}

	if err := app.declareTypes(doc, pkg); err != nil {
		t.Fatalf("declareTypes: %v", err)
	}
	if err := app.prepareTypes(doc, pkg); err != nil {
		t.Fatalf("prepareTypes: %v", err)
	}

	dogID, _ := pkg.Symbols.Lookup(symbols.DefaultNamespace, "Dog")
	dog := app.Defs.Get(dogID)
	if dog.Super == nil {
		t.Fatal("Dog should have its superclass resolved to Animal")
	}

	animalID, _ := pkg.Symbols.Lookup(symbols.DefaultNamespace, "Animal")
	animal := app.Defs.Get(animalID)
	if len(animal.InstanceVars) != 1 || animal.InstanceVars[0].Name != "name" {
		t.Fatalf("expected the extension's instance variable merged into Animal, got %#v", animal.InstanceVars)
	}
}

func TestPrepareTypes_ExtensionUnknownTargetErrors(t *testing.T) {
	app := newTestApplication()
	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()

	doc := &ast.Document{
		Extensions: []*ast.ExtensionDecl{
			{Position: diag.Position{Line: 1}, TargetName: []rune("Ghost")},
		},
	}

	if err := app.declareTypes(doc, pkg); err != nil {
		t.Fatalf("declareTypes: %v", err)
	}
	if err := app.prepareTypes(doc, pkg); err == nil {
		t.Fatal("expected an error for an extension targeting an unknown type")
	}
}

func TestLoadImports_ReexportsAndDetectsCollision(t *testing.T) {
	app := newTestApplication()

	base := symbols.NewPackage("base")
	base.Symbols = symbols.NewSymbolTable()
	id := app.Defs.Add(&symbols.Definition{Kind: symbols.DefClass, Name: "Tool"})
	base.Symbols.Declare(symbols.DefaultNamespace, "Tool", id, true)
	app.packages["base"] = base
	app.Loader = symbols.NewLoader(func(name string) (*symbols.Package, error) {
		return app.packages[name], nil
	})

	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()
	doc := &ast.Document{
		Imports: []*ast.Import{{Position: diag.Position{Line: 1}, Package: []rune("base"), Namespace: symbols.DefaultNamespace}},
	}

	if err := app.loadImports(doc, pkg, diag.Position{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := pkg.Symbols.Lookup(symbols.DefaultNamespace, "Tool"); !ok {
		t.Fatal("Tool should be re-exported into the importing package")
	}

	// A second import under the same namespace declaring the same name collides.
	pkg.Symbols.Declare(symbols.DefaultNamespace, "Existing", id, false)
	other := symbols.NewPackage("other")
	other.Symbols = symbols.NewSymbolTable()
	other.Symbols.Declare(symbols.DefaultNamespace, "Existing", id, true)
	app.packages["other"] = other

	doc2 := &ast.Document{
		Imports: []*ast.Import{{Position: diag.Position{Line: 2}, Package: []rune("other"), Namespace: symbols.DefaultNamespace}},
	}
	if err := app.loadImports(doc2, pkg, diag.Position{}); err == nil {
		t.Fatal("expected an import collision error")
	}
}

func TestAggregatedErrors_NilWhenSinkClean(t *testing.T) {
	app := newTestApplication()
	if err := app.aggregatedErrors(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAggregatedErrors_FoldsEverySinkError(t *testing.T) {
	app := newTestApplication()
	app.Sink.Add(diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, diag.Position{File: "a.glyph", Line: 1}, "boom"))
	app.Sink.Add(diag.New(diag.KindScopeError, diag.CodeVariableNotFound, diag.Position{File: "b.glyph", Line: 2}, "missing"))

	err := app.aggregatedErrors()
	if err == nil {
		t.Fatal("expected a non-nil aggregated error")
	}
}

func nominal(name string) *ast.NominalType {
	return &ast.NominalType{Position: diag.Position{Line: 1}, Name: []rune(name)}
}
