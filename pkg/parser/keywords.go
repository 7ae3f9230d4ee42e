package parser

// Soft keywords: single code points the lexer has no reason to give a
// dedicated token.Kind to (they only ever matter at a handful of
// recursive-descent entry points), so they arrive as an ordinary
// token.Identifier and the parser recognises them with
// TokenStream.PeekIsIdentifier. This mirrors how the lexer itself
// treats kwIf/kwElse: a handful of one-off code points get their own
// token.Kind because the Pratt/statement dispatch needs it everywhere,
// while the rest are left as plain identifiers and disambiguated by
// parsing context instead.
const (
	kwImport        rune = 0x1F4E6 // 📦 — document-level import
	kwInclude       rune = 0x1F4DC // 📜 — file inclusion
	kwVersion       rune = 0x1F3F7 // 🏷️ — package version declaration
	kwRequireBinary rune = 0x1F529 // 🔩 — package requires a native binary
	kwAlias         rune = 0x1F516 // 🔖 — re-export under a local name
	kwStartFlag     rune = 0x1F6A9 // 🚩 — marks the program entry function
	kwExtension     rune = 0x1F9E9 // 🧩 — extends an existing type

	kwVar        rune = 0x1F370 // 🍰 — mutable local declaration
	kwFrozen     rune = 0x1F366 // 🍦 — immutable local declaration
	kwAssign     rune = 0x1F36E // 🍮 — reassignment
	kwIVarSigil  rune = 0x1F36D // 🍭 — instance-variable reference/assignment prefix
	kwMetaSigil   rune = 0x1F532 // 🔲 — meta-type box around a TypeExpr or expression
	kwConditional rune = 0x1F3B2 // 🎲 — `optional 🎲 fallback` Optional-coalescing operator

	kwOptional rune = 0x1F36C // 🍬 — optional-type prefix

	kwList  rune = 0x1F368 // 🍨 — list literal open/elements
	kwBag   rune = 0x1F346 // 🍆 — list/dictionary literal close
	kwDict  rune = 0x1F36F // 🍯 — dictionary literal open

	// kwNothingness deliberately avoids U+1F937 (the lexer's
	// cpShruggingPerson, which retags an identifier as token.NoValue):
	// using that code point here would mean the lexer never hands the
	// parser a plain Identifier to recognise.
	kwNothingness rune = 0x1F47D // 👽 — Optional absence literal / nothingness test

	kwModFinal      rune = 0x1F3C1 // 🏁 — 'final' function/class modifier
	kwModOverriding rune = 0x1F3D7 // 🏗️ — 'overriding' function modifier
	kwModDeprecated rune = 0x26A0  // ⚠️ — 'deprecated' function modifier
	kwModProtected  rune = 0x1F512 // 🔒 — 'protected' access level
	kwModPrivate    rune = 0x1F510 // 🔐 — 'private' access level
	kwModClassVar   rune = 0x1F3DB // 🏛️ — type (class/static) member marker
	kwModPrimitive  rune = 0x269B  // ⚛️ — 'primitive' value-type modifier
	kwModForeign    rune = 0x1F30D // 🌍 — 'foreign' class modifier
)
