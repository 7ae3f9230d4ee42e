package types

// ResolveOn implements resolve_on(T, ctx)  : replaces generic
// variables with concrete arguments when ctx supplies them, recursing
// into generic argument vectors and preserving reference-ness and
// mutability.
func ResolveOn(t Type, ctx *Context) Type {
	out := t
	switch t.Kind {
	case KindLocalGenericVariable:
		if ctx != nil && ctx.HasFunc && ctx.FuncKey == t.OwningFunc && t.Index < len(ctx.FuncArgs) {
			resolved := ctx.FuncArgs[t.Index]
			resolved.Reference, resolved.Mutable = t.Reference, t.Mutable
			return resolved
		}
		if ctx != nil && ctx.Inference != nil {
			if bound, ok := ctx.Inference.Bindings[t.Index]; ok {
				bound.Reference, bound.Mutable = t.Reference, t.Mutable
				return bound
			}
		}
		return out
	case KindGenericVariable:
		if ctx != nil && ctx.HasCallee && ctx.CalleeDef == t.OwningDef && t.Index < len(ctx.CalleeArgs) {
			resolved := ctx.CalleeArgs[t.Index]
			resolved.Reference, resolved.Mutable = t.Reference, t.Mutable
			return resolved
		}
		if ctx != nil && ctx.Inference != nil {
			if bound, ok := ctx.Inference.Bindings[t.Index]; ok {
				bound.Reference, bound.Mutable = t.Reference, t.Mutable
				return bound
			}
		}
		return out
	case KindClass, KindValueType, KindProtocol:
		out.Args = resolveAll(t.Args, ctx)
		return out
	case KindMultiProtocol:
		out.Members = resolveAll(t.Members, ctx)
		return out
	case KindOptional:
		inner := ResolveOn(*t.Inner, ctx)
		resolved := Optional(inner)
		resolved.Reference, resolved.Mutable = t.Reference, t.Mutable
		return resolved
	case KindBox:
		inner := ResolveOn(*t.Inner, ctx)
		iface := ResolveOn(*t.Iface, ctx)
		resolved := Box(inner, iface)
		resolved.Reference, resolved.Mutable = t.Reference, t.Mutable
		return resolved
	case KindError:
		e := ResolveOn(*t.ErrorEnum, ctx)
		s := ResolveOn(*t.Success, ctx)
		return ErrorUnion(e, s)
	case KindCallable:
		out.Params = resolveAll(t.Params, ctx)
		r := ResolveOn(*t.Result, ctx)
		out.Result = &r
		if t.Err != nil {
			e := ResolveOn(*t.Err, ctx)
			out.Err = &e
		}
		return out
	case KindTypeAsValue:
		inner := ResolveOn(*t.Inner, ctx)
		return TypeAsValue(inner)
	default:
		return out
	}
}

func resolveAll(ts []Type, ctx *Context) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = ResolveOn(t, ctx)
	}
	return out
}

// ResolveOnSuperArgumentsAndConstraints is the sibling resolve used
// during pre-substitution checks  : it walks up superclass
// generic arguments and constraint bounds via defs rather than a
// concrete callee's resolved arguments.
func ResolveOnSuperArgumentsAndConstraints(t Type, owner DefId, superArgs []Type, defs DefinitionResolver) Type {
	if t.Kind == KindGenericVariable && t.OwningDef == owner && t.Index < len(superArgs) {
		resolved := superArgs[t.Index]
		resolved.Reference, resolved.Mutable = t.Reference, t.Mutable
		return resolved
	}
	switch t.Kind {
	case KindClass, KindValueType, KindProtocol:
		out := t
		out.Args = make([]Type, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = ResolveOnSuperArgumentsAndConstraints(a, owner, superArgs, defs)
		}
		return out
	case KindOptional:
		inner := ResolveOnSuperArgumentsAndConstraints(*t.Inner, owner, superArgs, defs)
		return Optional(inner)
	default:
		return t
	}
}
