package types

// Compatible implements the subtype relation a ≼ b. defs
// resolves superclass chains and protocol conformances; ctx carries the
// generic-resolution context and, when present, an Inference sink for
// generic variables encountered on the right-hand side.
func Compatible(a, b Type, ctx *Context, defs DefinitionResolver) bool {
	if b.Kind == KindSomething {
		return true
	}
	if a.Kind == KindBox {
		return Compatible(*a.Inner, b, ctx, defs)
	}
	if b.Kind == KindBox {
		return Compatible(a, *b.Inner, ctx, defs)
	}

	// A type variable on the right binds against an active inference
	// object rather than failing outright (last bullet).
	if ctx != nil && ctx.Inference != nil {
		switch b.Kind {
		case KindGenericVariable:
			ctx.Inference.Bind(b.Index, a)
			return true
		case KindLocalGenericVariable:
			ctx.Inference.Bind(b.Index, a)
			return true
		}
	}

	switch {
	case a.Kind == KindOptional && b.Kind == KindOptional:
		return Compatible(*a.Inner, *b.Inner, ctx, defs)
	case a.Kind != KindOptional && b.Kind == KindOptional:
		return Compatible(a, *b.Inner, ctx, defs)
	case a.Kind == KindOptional && b.Kind != KindOptional:
		return false
	}

	switch b.Kind {
	case KindProtocol:
		return conformsTo(a, b, defs)
	case KindMultiProtocol:
		for _, p := range b.Members {
			if !conformsTo(a, p, defs) {
				return false
			}
		}
		return true
	case KindSomeobject:
		return a.Kind == KindClass || a.Kind == KindSomeobject
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindClass:
		return classCompatible(a, b, defs)
	case KindValueType:
		return a.Def == b.Def && identicalArgs(a.Args, b.Args, ctx, defs)
	case KindEnum:
		return a.Def == b.Def
	case KindCallable:
		return callableCompatible(a, b, ctx, defs)
	case KindGenericVariable:
		if a.Index == b.Index && a.OwningDef == b.OwningDef {
			return true
		}
		return constraintCompatible(a, b, ctx, defs)
	case KindLocalGenericVariable:
		return a.Index == b.Index && a.OwningFunc == b.OwningFunc
	case KindSomething, KindSomeobject, KindNoReturn:
		return true
	default:
		return Identical(a, b)
	}
}

// classCompatible checks Class(C,args) ≼ Class(D,args'): C inherits
// from D (or C == D) and generic arguments are identical — invariant in
// generics.
func classCompatible(a, b Type, defs DefinitionResolver) bool {
	if a.Def == b.Def {
		return identicalArgsExact(a.Args, b.Args)
	}
	cur, ok := defs.SuperOf(a.Def)
	for ok {
		if cur == b.Def {
			return true
		}
		cur, ok = defs.SuperOf(cur)
	}
	return false
}

func conformsTo(a, protocol Type, defs DefinitionResolver) bool {
	check := func(id DefId) bool {
		for _, c := range defs.ConformsTo(id) {
			if c.Protocol == protocol.Def && identicalArgsExact(c.Args, protocol.Args) {
				return true
			}
		}
		return false
	}
	switch a.Kind {
	case KindClass:
		if check(a.Def) {
			return true
		}
		cur, ok := defs.SuperOf(a.Def)
		for ok {
			if check(cur) {
				return true
			}
			cur, ok = defs.SuperOf(cur)
		}
		return false
	default:
		return check(a.Def)
	}
}

func callableCompatible(a, b Type, ctx *Context, defs DefinitionResolver) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	// covariant in result and error, contravariant in parameters.
	if !Compatible(*a.Result, *b.Result, ctx, defs) {
		return false
	}
	if (a.Err == nil) != (b.Err == nil) {
		return false
	}
	if a.Err != nil && !Compatible(*a.Err, *b.Err, ctx, defs) {
		return false
	}
	for i := range a.Params {
		if !Compatible(b.Params[i], a.Params[i], ctx, defs) {
			return false
		}
	}
	return true
}

// constraintCompatible handles GenericVariable(i,O) ≼ GenericVariable(j,O')
// when the indices/owners differ but a constraint recursion holds; this
// module has no constraint store of its own, so it defers entirely to
// defs via ConformsTo on the owning definition standing in for a bound.
func constraintCompatible(a, b Type, ctx *Context, defs DefinitionResolver) bool {
	for _, c := range defs.ConformsTo(a.OwningDef) {
		if c.Protocol == b.OwningDef {
			return true
		}
	}
	return false
}

func identicalArgs(a, b []Type, ctx *Context, defs DefinitionResolver) bool {
	return identicalArgsExact(a, b)
}

func identicalArgsExact(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Identical(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Identical implements a ≡ b: a stricter, invariant-in-all-positions
// equality used for generic argument matching.
func Identical(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindClass, KindValueType, KindProtocol:
		return a.Def == b.Def && identicalArgsExact(a.Args, b.Args)
	case KindEnum:
		return a.Def == b.Def
	case KindMultiProtocol:
		return identicalArgsExact(a.Members, b.Members)
	case KindOptional:
		return Identical(*a.Inner, *b.Inner)
	case KindBox:
		return Identical(*a.Inner, *b.Inner) && Identical(*a.Iface, *b.Iface)
	case KindError:
		return Identical(*a.ErrorEnum, *b.ErrorEnum) && Identical(*a.Success, *b.Success)
	case KindCallable:
		if len(a.Params) != len(b.Params) {
			return false
		}
		if !Identical(*a.Result, *b.Result) {
			return false
		}
		if (a.Err == nil) != (b.Err == nil) {
			return false
		}
		if a.Err != nil && !Identical(*a.Err, *b.Err) {
			return false
		}
		for i := range a.Params {
			if !Identical(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case KindGenericVariable:
		return a.Index == b.Index && a.OwningDef == b.OwningDef
	case KindLocalGenericVariable:
		return a.Index == b.Index && a.OwningFunc == b.OwningFunc
	case KindTypeAsValue:
		return Identical(*a.Inner, *b.Inner)
	default:
		return true // Something, Someobject, NoReturn, StorageExpectation are singletons
	}
}
