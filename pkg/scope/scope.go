// Package scope implements lexical Scope frames with
// an init-level, the Scoper stack that pushes/pops them, a parallel
// instance scope, temporary scopes, and the PathAnalyser incident
// tracker. It is grounded on procyon's pkg/ir.Scope (parent
// pointer + name->binding map, walked outward on a miss) generalised
// from a single parent chain into an explicit stack so init-levels and
// scoped push/pop guards (the "scoped resource acquisition") are
// representable.
package scope

import "github.com/glyphlang/glyphc/pkg/diag"

// Variable is a scoped binding: a compact per-function id, its
// resolved type (left untyped here as `any` so pkg/scope never needs
// to import pkg/types; pkg/sema stores *types.Type), frozen/mutated
// flags, the init-level it became initialised at, and its declaration
// position.
type Variable struct {
	ID        int
	Type      any
	Frozen    bool
	Mutated   bool
	InitLevel int
	Position  diag.Position
}

// Scope is one lexical frame: a name -> Variable map.
type Scope struct {
	vars map[string]*Variable
}

func newScope() *Scope {
	return &Scope{vars: map[string]*Variable{}}
}

// Declare adds a variable to this frame. ok is false if name is
// already bound in this exact frame (the Redeclaration).
func (s *Scope) Declare(name string, v *Variable) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

func (s *Scope) lookup(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}
