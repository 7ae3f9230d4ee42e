// Package parser turns a pkg/lexer.TokenStream into the pkg/ast tree:
// a Pratt expression parser plus recursive-descent declaration and
// statement grammars.
package parser

// precedence is the fixed binding power assigned to each construct the
// Pratt parser dispatches on ("Binary operators consume a
// precedence table"). Call/postfix binds tightest; logical-or loosest.
const (
	precLowest     = 0
	precLogicalOr  = 1
	precLogicalAnd = 2
	precBitOr      = 3
	precBitXor     = 4
	precBitAnd     = 5
	precEquality   = 6
	precComparison = 7
	precShift      = 8
	precAdditive   = 9
	precMultiplicative = 10
	precPrefix     = 11
	precCall       = 12
)

// operatorName maps an operator code point to its spoken name, used
// both as the method name dispatched for operator overloading (a
// method's name may itself be an operator code point) and in
// diagnostics.
var operatorName = map[rune]string{
	opPlus:           "add",
	opMinus:          "subtract",
	opMultiply:       "multiply",
	opDivide:         "divide",
	opAnger:          "modulo",
	opLeftTriangle:   "shiftLeft",
	opRightTriangle:  "shiftRight",
	opLeftBackhand:   "lessThan",
	opRightBackhand:  "greaterThan",
	opOpenHands:      "equals",
	opCrossMark:      "notEquals",
	opHandshake:      "bitwiseAnd",
	opLitter:         "bitwiseXor",
	opLargeCircle:    "bitwiseOr",
	opStuckOutTongue: "logicalAnd",
	opCelebration:    "logicalOr",
}

// operatorPrecedence maps an operator code point to its infix binding
// power per the fixed table above.
var operatorPrecedence = map[rune]int{
	opMultiply: precMultiplicative,
	opDivide:   precMultiplicative,
	opAnger:    precMultiplicative,

	opPlus:  precAdditive,
	opMinus: precAdditive,

	opLeftTriangle:  precShift,
	opRightTriangle: precShift,

	opLeftBackhand:  precComparison,
	opRightBackhand: precComparison,

	opOpenHands: precEquality,
	opCrossMark: precEquality,

	opHandshake: precBitAnd,
	opLitter:    precBitXor,
	opLargeCircle: precBitOr,

	opStuckOutTongue: precLogicalAnd,
	opCelebration:    precLogicalOr,
}

// Operator code points, duplicated from pkg/lexer's unexported table so
// the parser can dispatch on them without pkg/lexer exporting its
// internal keyword constants. Values must stay in sync with
// pkg/lexer/keywords.go; pkg/token.StructuralKeywords registers these
// same runes to token.Operator, which is how a test or caller would
// catch drift (a rune present here but unregistered there produces a
// token the parser can never receive).
const (
	opPlus           rune = 0x2795
	opMinus          rune = 0x2796
	opDivide         rune = 0x2797
	opMultiply       rune = 0x2716
	opOpenHands      rune = 0x1F450
	opHandshake      rune = 0x1F91D
	opLargeCircle    rune = 0x2B55
	opAnger          rune = 0x1F4A2
	opCrossMark      rune = 0x274C
	opLeftBackhand   rune = 0x1F448
	opRightBackhand  rune = 0x1F449
	opLitter         rune = 0x1F6AE
	opCelebration    rune = 0x1F64C
	opStuckOutTongue rune = 0x1F61C
	opLeftTriangle   rune = 0x25C0
	opRightTriangle  rune = 0x25B6
)
