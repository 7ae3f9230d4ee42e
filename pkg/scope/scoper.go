package scope

import "github.com/glyphlang/glyphc/pkg/diag"

// Scoper is the stack of scopes plus the parallel
// instance scope and the per-function id counter. Frames are pushed at
// the front (innermost first): a singly-linked stack, front = innermost.
type Scoper struct {
	frames       []*Scope
	level        int // current init-level: increments on push, decrements on pop
	instanceVars *Scope
	instanceLvl  int
	nextID       int

	// CapturedSelf is set when a closure body (a CapturingScoper, see
	// Closure below) reads `this` from an enclosing scoper (analysis
	// step 7).
	CapturedSelf bool
}

// New builds a Scoper with one root frame already pushed.
func New() *Scoper {
	s := &Scoper{}
	s.PushScope()
	return s
}

// PushScope creates a new innermost frame and increments the current
// level, per it works like this: "push_scope creates a new frame and increments
// every live frame's init-level".
func (s *Scoper) PushScope() {
	s.frames = append([]*Scope{newScope()}, s.frames...)
	s.level++
}

// PopScope removes the innermost frame and decrements the level.
func (s *Scoper) PopScope() {
	s.frames = s.frames[1:]
	s.level--
}

// Scoped pushes a frame and returns a func that pops it, implementing
// this scoped-guard pattern: `defer scoper.Scoped()()` guarantees
// the pop runs on every exit path, including a panic/error return.
func (s *Scoper) Scoped() func() {
	s.PushScope()
	return s.PopScope
}

// Level returns the current init-level.
func (s *Scoper) Level() int { return s.level }

// Declare binds a new variable in the innermost frame, assigning it
// the next compact id and the current level as its init-level.
func (s *Scoper) Declare(name string, typ any, frozen bool, pos diag.Position) (*Variable, bool) {
	v := &Variable{ID: s.nextID, Type: typ, Frozen: frozen, InitLevel: s.level, Position: pos}
	if !s.frames[0].Declare(name, v) {
		return nil, false
	}
	s.nextID++
	return v, true
}

// Lookup searches frames from innermost outward.
func (s *Scoper) Lookup(name string) (*Variable, bool) {
	for _, f := range s.frames {
		if v, ok := f.lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Readable reports whether a variable is definitely initialised at the
// current depth: its recorded init-level must be <= the current level
// (documented invariant).
func (s *Scoper) Readable(v *Variable) bool {
	return v.InitLevel <= s.level
}

// PushInstanceScope begins tracking instance-variable initialisation
// in lock-step with the local stack ("pushed/popped in
// lock-step so that analysis of instance-variable conditional
// initialisation behaves correctly across nested branches").
func (s *Scoper) PushInstanceScope() {
	if s.instanceVars == nil {
		s.instanceVars = newScope()
	}
	s.instanceLvl++
}

// PopInstanceScope ends a tracked instance-variable frame.
func (s *Scoper) PopInstanceScope() {
	s.instanceLvl--
}

// DeclareInstanceVar records an instance variable's slot so its
// init-level can be tracked the same way a local's is.
func (s *Scoper) DeclareInstanceVar(name string, typ any, pos diag.Position) *Variable {
	v := &Variable{ID: -1, Type: typ, InitLevel: s.instanceLvl, Position: pos}
	s.instanceVars.vars[name] = v
	return v
}

// MarkInstanceVarInitialized lowers an instance variable's recorded
// init-level to the current instance-scope depth, making it readable
// from this point on (mirrors Declare's level assignment, but for a
// variable that already exists with no level yet, e.g. declared by
// superclass instance-var inheritance at prep time per analysis step 2).
func (s *Scoper) MarkInstanceVarInitialized(name string) {
	if v, ok := s.instanceVars.lookup(name); ok {
		v.InitLevel = s.instanceLvl
	}
}

// InstanceVar looks up a tracked instance variable by name.
func (s *Scoper) InstanceVar(name string) (*Variable, bool) {
	if s.instanceVars == nil {
		return nil, false
	}
	return s.instanceVars.lookup(name)
}

// InstanceVarReadable mirrors Readable for the instance scope.
func (s *Scoper) InstanceVarReadable(v *Variable) bool {
	return v.InitLevel <= s.instanceLvl
}

// TemporaryScope marks the result of an expression as needing a
// one-level transient scope to hold a referenceable copy of a
// value-type intermediate result (the "temporary scope"),
// pushed on demand and popped at the next statement boundary.
type TemporaryScope struct {
	scoper *Scoper
	active bool
}

// BeginTemporary pushes a temporary scope; callers hold the returned
// handle and call End at the owning statement's boundary.
func (s *Scoper) BeginTemporary() *TemporaryScope {
	s.PushScope()
	return &TemporaryScope{scoper: s, active: true}
}

// End pops the temporary scope if still active; safe to call more
// than once.
func (t *TemporaryScope) End() {
	if !t.active {
		return
	}
	t.scoper.PopScope()
	t.active = false
}

// CapturingScoper wraps an enclosing Scoper for a closure body (see
// analysis step 7): a miss in the closure's own frames falls through to
// the enclosing scoper, and the first such miss per name is recorded
// as a Capture.
type CapturingScoper struct {
	*Scoper
	Enclosing *Scoper
	Captures  []Capture
	captured  map[string]int
}

// Capture is a recorded `(source_id, type, capture_id)` descriptor
// (GLOSSARY).
type Capture struct {
	Name       string
	SourceID   int
	Type       any
	CaptureID  int
}

// NewCapturingScoper builds a closure-local scoper chained to enclosing.
func NewCapturingScoper(enclosing *Scoper) *CapturingScoper {
	return &CapturingScoper{Scoper: New(), Enclosing: enclosing, captured: map[string]int{}}
}

// Lookup first tries the closure's own frames, then falls through to
// the enclosing scoper, declaring a fresh local and recording a
// Capture on first miss.
func (c *CapturingScoper) Lookup(name string) (*Variable, bool) {
	if v, ok := c.Scoper.Lookup(name); ok {
		return v, true
	}
	if name == "this" {
		c.Enclosing.CapturedSelf = true
	}
	outer, ok := c.Enclosing.Lookup(name)
	if !ok {
		return nil, false
	}
	if id, already := c.captured[name]; already {
		v, _ := c.Scoper.Lookup(name)
		_ = id
		return v, true
	}
	local, _ := c.Scoper.Declare(name, outer.Type, outer.Frozen, outer.Position)
	captureID := len(c.Captures)
	c.captured[name] = captureID
	c.Captures = append(c.Captures, Capture{Name: name, SourceID: outer.ID, Type: outer.Type, CaptureID: captureID})
	return local, true
}
