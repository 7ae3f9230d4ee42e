package symbols

import "github.com/glyphlang/glyphc/pkg/types"

// DefinitionTable is the arena the analysis pass asks for: definitions are
// referenced everywhere by types.DefId, never by pointer, so nothing
// outside this package holds a *Definition across a table mutation.
type DefinitionTable struct {
	defs []*Definition
}

// NewDefinitionTable builds an empty arena.
func NewDefinitionTable() *DefinitionTable {
	return &DefinitionTable{}
}

// Add inserts a definition, assigning it the next DefId.
func (t *DefinitionTable) Add(d *Definition) types.DefId {
	id := types.DefId(len(t.defs))
	d.ID = id
	t.defs = append(t.defs, d)
	return id
}

// Get returns the definition for an id. Panics on an out-of-range id:
// a DefId minted by this table is always valid for its lifetime.
func (t *DefinitionTable) Get(id types.DefId) *Definition {
	return t.defs[id]
}

// Len returns the number of definitions in the arena.
func (t *DefinitionTable) Len() int {
	return len(t.defs)
}

// SuperOf implements types.DefinitionResolver.
func (t *DefinitionTable) SuperOf(id types.DefId) (types.DefId, bool) {
	d := t.Get(id)
	if d.Kind != DefClass || d.Super == nil {
		return 0, false
	}
	return d.Super.Def, true
}

// ConformsTo implements types.DefinitionResolver, walking the
// superclass chain for classes so an inherited conformance is visible
// on the subclass too.
func (t *DefinitionTable) ConformsTo(id types.DefId) []types.Conformance {
	var out []types.Conformance
	seen := map[types.DefId]bool{}
	cur := id
	for {
		d := t.Get(cur)
		for _, c := range d.Conformances {
			if c.Protocol == nil || seen[c.Protocol.Def] {
				continue
			}
			seen[c.Protocol.Def] = true
			out = append(out, types.Conformance{Protocol: c.Protocol.Def, Args: c.Protocol.Args})
		}
		if d.Kind != DefClass || d.Super == nil {
			return out
		}
		cur = d.Super.Def
	}
}

// ValueTypeManaged reports whether a value type's definition has any
// instance variable whose type IsManaged, for types.IsManaged's
// valueTypeManaged callback.
func (t *DefinitionTable) ValueTypeManaged(id types.DefId) bool {
	d := t.Get(id)
	for _, iv := range d.InstanceVars {
		if types.IsManaged(iv.Type, t.ValueTypeManaged) {
			return true
		}
	}
	return false
}

// DefaultNamespace is the reserved code point the analysis pass calls "a
// special default namespace", used when an import doesn't request a
// named namespace.
const DefaultNamespace = ' '

// symbolKey is the (namespace, name) pair the analysis pass resolves types
// under.
type symbolKey struct {
	Namespace rune
	Name      string
}

// SymbolTable maps (namespace, name) to a definition within one
// package, plus records which entries are exported.
type SymbolTable struct {
	entries  map[symbolKey]types.DefId
	exported map[symbolKey]bool
}

// NewSymbolTable builds an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries:  map[symbolKey]types.DefId{},
		exported: map[symbolKey]bool{},
	}
}

// Declare records a definition under (namespace, name). ok is false on
// a collision ("collisions are fatal").
func (s *SymbolTable) Declare(namespace rune, name string, id types.DefId, export bool) bool {
	key := symbolKey{namespace, name}
	if _, exists := s.entries[key]; exists {
		return false
	}
	s.entries[key] = id
	s.exported[key] = export
	return true
}

// Lookup resolves (namespace, name).
func (s *SymbolTable) Lookup(namespace rune, name string) (types.DefId, bool) {
	id, ok := s.entries[symbolKey{namespace, name}]
	return id, ok
}

// Exported iterates every exported (namespace, name) -> DefId pair,
// the set visible to an `import pkg into ns` directive.
func (s *SymbolTable) Exported(fn func(namespace rune, name string, id types.DefId)) {
	for key, id := range s.entries {
		if s.exported[key] {
			fn(key.Namespace, key.Name, id)
		}
	}
}
