package sema

import "github.com/glyphlang/glyphc/pkg/symbols"

// PrepareDefinition runs this preparation steps for one
// definition ahead of per-function analysis: queue every method and
// initializer it owns, validate every declared override against its
// super method (step 5), and populate its protocol-conformance
// dispatch tables (step 4, synthesising boxing layers as needed).
// pkg/app calls this once per definition in the arena before draining
// the analysis_queue.
func (a *Analyser) PrepareDefinition(def *symbols.Definition) error {
	for _, fn := range def.Initializers {
		a.Enqueue(fn, def)
	}
	for key, fn := range def.Methods {
		a.Enqueue(fn, def)
		if !fn.Overriding || def.Super == nil {
			continue
		}
		superDef := a.Defs.Get(def.Super.Def)
		superFn, ok := superDef.Method(stripClassPrefix(key), isClassKey(key))
		if !ok {
			continue
		}
		if err := validateOverride(fn, superFn, def, a.Defs); err != nil {
			return err
		}
	}
	return a.BuildConformances(def)
}
