package symbols

import (
	"github.com/glyphlang/glyphc/pkg/diag"
)

// loadState tracks where a package sits in this load_package
// state machine.
type loadState int

const (
	notLoaded loadState = iota
	loading
	finished
)

// Resolver parses and semantically prepares one package by name,
// returning the Package record it produced. pkg/app supplies the real
// implementation (parse the header file, build definitions, run
// ExtensionMerger) — pkg/symbols only owns the load-order bookkeeping,
// keeping this package free of a pkg/parser/pkg/sema import cycle.
type Resolver func(name string) (*Package, error)

// Loader implements the load_package algorithm: an ordered load
// list plus cycle detection via the three-state (notLoaded/loading/
// finished) bookkeeping.
type Loader struct {
	resolve Resolver
	state   map[string]loadState
	byName  map[string]*Package
	Order   []string // packages in the order they finished loading
}

// NewLoader builds a Loader that delegates actual parsing to resolve.
func NewLoader(resolve Resolver) *Loader {
	return &Loader{
		resolve: resolve,
		state:   map[string]loadState{},
		byName:  map[string]*Package{},
	}
}

// Load resolves name, recursively loading its dependencies as resolve
// requests them (resolve is expected to call Load again for each
// import it parses). importPos is the position of the import
// statement that triggered this load, used only to attribute a
// CircularImport diagnostic.
func (l *Loader) Load(name string, importPos diag.Position) (*Package, error) {
	switch l.state[name] {
	case finished:
		return l.byName[name], nil
	case loading:
		return nil, diag.New(diag.KindPackageError, diag.CodeCircularImport, importPos,
			"package %q is already being loaded (circular import)", name)
	}

	l.state[name] = loading
	pkg, err := l.resolve(name)
	if err != nil {
		l.state[name] = notLoaded
		return nil, err
	}
	l.state[name] = finished
	l.byName[name] = pkg
	l.Order = append(l.Order, name)
	return pkg, nil
}

// Get returns an already-finished package by name.
func (l *Loader) Get(name string) (*Package, bool) {
	pkg, ok := l.byName[name]
	return pkg, ok
}
