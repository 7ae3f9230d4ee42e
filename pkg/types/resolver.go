package types

// DefinitionResolver is the narrow view pkg/types needs of whatever
// arena owns TypeDefinitions (pkg/symbols.DefinitionTable implements
// this). Compatibility checks walk superclass chains and conformance
// lists without pkg/types ever importing pkg/symbols.
type DefinitionResolver interface {
	// SuperOf returns the immediate superclass definition of a class,
	// if any.
	SuperOf(id DefId) (DefId, bool)
	// ConformsTo returns every protocol definition id a definition
	// (directly or, for classes, via an ancestor) declares conformance
	// to, together with the resolved generic arguments of that
	// conformance.
	ConformsTo(id DefId) []Conformance
}

// Conformance records that a definition satisfies a protocol with the
// given resolved generic arguments (the GLOSSARY's "Conformance").
type Conformance struct {
	Protocol DefId
	Args     []Type
}
