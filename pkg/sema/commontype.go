package sema

import (
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

// CommonTypeFinder narrows the element types of a list literal, or the
// arms of a branching expression, down to their least upper bound
//. It is grounded directly on original_source's
// CommonTypeFinder: the common type widens to Someobject once two
// classes disagree, to Something once anything else disagrees, and a
// running intersection of shared protocol conformances is tracked
// alongside so a Something/Someobject result can still narrow to a
// MultiProtocol when every element shares one.
type CommonTypeFinder struct {
	a *Analyser

	found     bool
	common    types.Type
	protocols []types.Type
}

// NewCommonTypeFinder builds a finder against a's definition arena, so
// it can walk conformances when narrowing the shared-protocol set.
func NewCommonTypeFinder(a *Analyser) *CommonTypeFinder {
	return &CommonTypeFinder{a: a, common: types.Something()}
}

// AddType folds one more sibling expression's type into the running
// common type.
func (f *CommonTypeFinder) AddType(t types.Type, ctx *types.Context) {
	if !f.found {
		f.common = t
		f.found = true
		f.protocols = f.conformances(t)
		return
	}
	f.updateCommon(t, ctx)
	f.updateProtocols(t, ctx)
}

func (f *CommonTypeFinder) updateCommon(t types.Type, ctx *types.Context) {
	if types.Compatible(t, f.common, ctx, f.a.Defs) {
		return
	}
	switch {
	case types.Compatible(f.common, t, ctx, f.a.Defs):
		f.common = t
	case t.Kind == types.KindClass && f.common.Kind == types.KindClass:
		f.common = types.Someobject()
	default:
		f.common = types.Something()
	}
}

func (f *CommonTypeFinder) updateProtocols(t types.Type, ctx *types.Context) {
	if len(f.protocols) == 0 {
		return
	}
	next := f.conformances(t)
	if len(next) == 0 {
		f.protocols = nil
		return
	}
	kept := f.protocols[:0:0]
	for _, p := range f.protocols {
		for _, n := range next {
			if types.Identical(p, n) {
				kept = append(kept, p)
				break
			}
		}
	}
	f.protocols = kept
}

func (f *CommonTypeFinder) conformances(t types.Type) []types.Type {
	if t.Kind != types.KindClass && t.Kind != types.KindValueType {
		return nil
	}
	cs := f.a.Defs.ConformsTo(t.Def)
	out := make([]types.Type, 0, len(cs))
	for _, c := range cs {
		out = append(out, types.Protocol(c.Protocol, c.Args))
	}
	return out
}

// CommonType returns the narrowed common type, emitting an ambiguity
// warning at pos when nothing was ever added, or when the result
// widened all the way to Something/Someobject with no shared protocol
// to fall back on.
func (f *CommonTypeFinder) CommonType(pos diag.Position) types.Type {
	if !f.found {
		f.a.Sink.Warn(pos, "type is ambiguous without more context")
		return f.common
	}
	if f.common.Kind == types.KindSomething || f.common.Kind == types.KindSomeobject {
		if len(f.protocols) > 1 {
			if mp, ok := types.MultiProtocol(f.protocols); ok {
				return mp
			}
		}
		if len(f.protocols) == 1 {
			return f.protocols[0]
		}
		f.a.Sink.Warn(pos, "common type was inferred to be %s", f.common)
	}
	return f.common
}
