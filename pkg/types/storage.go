package types

// Storage is the concrete in-memory representation form (GLOSSARY:
// "Storage type").
type Storage int

const (
	Simple Storage = iota
	SimpleOptional
	PointerOptional
	StorageBox
)

func (s Storage) String() string {
	switch s {
	case Simple:
		return "Simple"
	case SimpleOptional:
		return "SimpleOptional"
	case PointerOptional:
		return "PointerOptional"
	case StorageBox:
		return "Box"
	default:
		return "Unknown"
	}
}

// StorageOf derives a type's storage form (the "Storage mapping").
//
// Error(E, Box(T)) is an open question the original leaves ambiguous;
// this module resolves it the way DESIGN.md records: the success arm's
// storage dominates the overall result, since the discriminant is a tag
// byte that travels with whichever storage form the payload takes.
func StorageOf(t Type) Storage {
	switch t.Kind {
	case KindBox:
		return StorageBox
	case KindOptional:
		switch t.Inner.Kind {
		case KindClass, KindSomeobject:
			return PointerOptional
		default:
			return SimpleOptional
		}
	case KindError:
		return StorageOf(*t.Success)
	case KindProtocol, KindMultiProtocol, KindSomething:
		return StorageBox
	default:
		return Simple
	}
}

// IsManaged reports whether a type requires object tracing  :
// true for classes, Someobject, boxes, callables, any optional of a
// managed type, and any value type whose definition reports
// isManaged() (carried here via the valueTypeManaged callback, since
// pkg/types has no access to a value type's field list).
func IsManaged(t Type, valueTypeManaged func(DefId) bool) bool {
	switch t.Kind {
	case KindClass, KindSomeobject, KindBox, KindCallable:
		return true
	case KindOptional:
		return IsManaged(*t.Inner, valueTypeManaged)
	case KindValueType:
		return valueTypeManaged != nil && valueTypeManaged(t.Def)
	default:
		return false
	}
}
