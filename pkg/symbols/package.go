package symbols

import "github.com/glyphlang/glyphc/pkg/ast"

// Package is it works like this: it owns a DefinitionTable slice-range (indices
// into the shared arena, not its own storage) and exports a subset of
// them by (namespace, name) through its SymbolTable.
type Package struct {
	Name           string
	Major, Minor   int
	Doc            string
	Imports        []Import
	RequiresBinary bool

	Symbols *SymbolTable
	DefIDs  []int // indices into the Application's DefinitionTable owned by this package

	Extensions []*ast.ExtensionDecl // collected, merged once every package is parsed
}

// Import is `import <pkg> into <ns>` resolved to the package name and
// namespace it populates.
type Import struct {
	Package   string
	Namespace rune
}

// NewPackage builds an empty package record.
func NewPackage(name string) *Package {
	return &Package{Name: name, Symbols: NewSymbolTable()}
}
