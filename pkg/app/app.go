// Package app is the Application: it owns the
// definition arena, drives the package Loader, and runs preparation
// and the analysis_queue to completion. It is grounded on
// procyon's pkg/codegen.Generate — a package-level entry point
// building one owning struct and driving it through a fixed pass
// sequence — generalised here across a whole package graph instead of
// a single class, and on original_source/Application.cpp's
// load_package/compile split (one Loader-backed resolver per package
// name, found under packageDirectory/<name>/header.emoji).
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/lexer"
	"github.com/glyphlang/glyphc/pkg/parser"
	"github.com/glyphlang/glyphc/pkg/sema"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
	"github.com/hashicorp/go-multierror"
)

// headerFileName is the fixed entry-point filename inside a package
// directory, mirroring original_source's "header.emojic".
const headerFileName = "header.emoji"

// Application is the compiler's top-level owning struct: one
// definition arena and symbol-table-per-package set shared across the
// whole package graph, a Loader resolving package names to parsed,
// symbol-populated Packages, and one Analyser draining the
// analysis_queue populated as packages are prepared.
type Application struct {
	PackageDirectory string
	Sink             *diag.Sink

	Defs     *symbols.DefinitionTable
	Analyser *sema.Analyser
	Loader   *symbols.Loader

	packages map[string]*symbols.Package
}

// New builds an Application rooted at packageDirectory (the search
// path Loader.Resolver consults for named package imports).
func New(packageDirectory string) *Application {
	sink := &diag.Sink{}
	defs := symbols.NewDefinitionTable()
	a := &Application{
		PackageDirectory: packageDirectory,
		Sink:             sink,
		Defs:             defs,
		Analyser:         sema.NewAnalyser(defs, sink),
		packages:         map[string]*symbols.Package{},
	}
	a.Loader = symbols.NewLoader(a.resolvePackage)
	return a
}

// CompileFile compiles one source file as the "_" underscore package
// (original_source's Application::compile()
// builds a synthetic package around the main file the same way), and
// drains the analysis_queue to completion. An error from parsing, import
// loading, declaration or preparation is returned as is; once those
// succeed, it returns an aggregated *multierror.Error (one entry per
// sink error) if analysis recorded any errors.
func (app *Application) CompileFile(path string) error {
	doc, err := app.parseFile(path)
	if err != nil {
		return err
	}

	pkg := symbols.NewPackage("_")
	pkg.Symbols = symbols.NewSymbolTable()
	app.packages["_"] = pkg

	if err := app.loadImports(doc, pkg, diag.Position{File: path}); err != nil {
		return err
	}

	if err := app.declareTypes(doc, pkg); err != nil {
		return err
	}
	if err := app.prepareTypes(doc, pkg); err != nil {
		return err
	}

	app.Analyser.Symbols = pkg.Symbols
	app.Analyser.Drain()

	return app.aggregatedErrors()
}

func (app *Application) parseFile(path string) (*ast.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := lexer.New(path, string(src))
	ts, err := lexer.NewTokenStream(l)
	if err != nil {
		return nil, err
	}
	return parser.New(ts).ParseDocument()
}

// resolvePackage implements symbols.Resolver: it locates
// PackageDirectory/<name>/header.emoji, parses it, and declares its
// types into a fresh Package the way declareTypes does for the main
// file (load_package, minus binary-requirement loading).
func (app *Application) resolvePackage(name string) (*symbols.Package, error) {
	path := filepath.Join(app.PackageDirectory, name, headerFileName)
	doc, err := app.parseFile(path)
	if err != nil {
		return nil, err
	}
	pkg := symbols.NewPackage(name)
	pkg.Symbols = symbols.NewSymbolTable()
	if doc.Version != nil {
		pkg.Major, pkg.Minor = doc.Version.Major, doc.Version.Minor
	}
	pkg.RequiresBinary = doc.RequiresBinary
	app.packages[name] = pkg
	if err := app.loadImports(doc, pkg, diag.Position{File: path}); err != nil {
		return nil, err
	}
	if err := app.declareTypes(doc, pkg); err != nil {
		return nil, err
	}
	if err := app.prepareTypes(doc, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// loadImports resolves every `import` directive through app.Loader,
// then re-exports the imported package's exported symbols under the
// requested namespace ("import pkg into ns makes every
// exported type of pkg visible under ns; collisions are fatal").
func (app *Application) loadImports(doc *ast.Document, pkg *symbols.Package, pos diag.Position) error {
	for _, imp := range doc.Imports {
		name := string(imp.Package)
		imported, err := app.Loader.Load(name, imp.Position)
		if err != nil {
			return err
		}
		pkg.Imports = append(pkg.Imports, symbols.Import{Package: name, Namespace: imp.Namespace})
		var collisionErr error
		imported.Symbols.Exported(func(_ rune, symName string, id types.DefId) {
			if collisionErr != nil {
				return
			}
			if !pkg.Symbols.Declare(imp.Namespace, symName, id, false) {
				collisionErr = diag.New(diag.KindPackageError, diag.CodeImportCollision, imp.Position,
					"%s already declares a symbol named %s", name, symName)
			}
		})
		if collisionErr != nil {
			return collisionErr
		}
	}
	return nil
}

// declareTypes builds a symbols.Definition for every top-level type
// declared in doc and registers it in both the shared arena and pkg's
// symbol table (the analysis pass load_package step "declare every type
// under its (namespace, name)"), without yet resolving bodies,
// superclasses or conformances — that happens in prepareTypes once
// every name in the package is declared, so forward references within
// one package resolve correctly.
func (app *Application) declareTypes(doc *ast.Document, pkg *symbols.Package) error {
	for _, td := range doc.Types {
		def, err := declarationOf(td, pkg.Name)
		if err != nil {
			return err
		}
		id := app.Defs.Add(def)
		pkg.DefIDs = append(pkg.DefIDs, int(id))
		if !pkg.Symbols.Declare(symbols.DefaultNamespace, def.Name, id, def.Export) {
			return diag.New(diag.KindPackageError, diag.CodeImportCollision, def.Pos,
				"%s already declares a type named %s", pkg.Name, def.Name)
		}
	}
	return nil
}

// prepareTypes merges extensions into their targets, then resolves the
// syntactic bodies of every declared type (superclass, members,
// conformances) against the now-fully-declared package symbol table,
// and queues every function for analysis (the preparation pass steps
// 1-4). Extensions are merged before any superclass in the package is
// resolved.
func (app *Application) prepareTypes(doc *ast.Document, pkg *symbols.Package) error {
	app.Analyser.Symbols = pkg.Symbols

	for _, ext := range doc.Extensions {
		id, ok := pkg.Symbols.Lookup(symbols.DefaultNamespace, string(ext.TargetName))
		if !ok {
			return diag.New(diag.KindPackageError, diag.CodeIncompatibleTypes, ext.Position,
				"extension targets unknown type %s", string(ext.TargetName))
		}
		target := app.Defs.Get(id)
		if err := app.Analyser.MergeExtension(ext, target); err != nil {
			return err
		}
	}
	for i, td := range doc.Types {
		def := app.Defs.Get(types.DefId(pkg.DefIDs[i]))
		if err := populateDefinition(app.Analyser, td, def); err != nil {
			return err
		}
	}
	for _, defID := range pkg.DefIDs {
		if err := app.Analyser.PrepareDefinition(app.Defs.Get(types.DefId(defID))); err != nil {
			return err
		}
	}
	return nil
}

// aggregatedErrors folds every recorded diagnostic into one
// *multierror.Error, the application-level error-aggregation strategy.
func (app *Application) aggregatedErrors() error {
	if !app.Sink.HasErrors() {
		return nil
	}
	var result *multierror.Error
	for _, e := range app.Sink.Errors {
		result = multierror.Append(result, fmt.Errorf("%s:%d:%d: %s: %s",
			e.Position.File, e.Position.Line, e.Position.Column, e.Code, e.Message))
	}
	return result.ErrorOrNil()
}

// MainPackage returns the synthetic "_" package built by the most
// recent CompileFile call, or nil if none has run yet.
func (app *Application) MainPackage() *symbols.Package {
	return app.packages["_"]
}
