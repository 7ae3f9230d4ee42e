package lexer

import "github.com/glyphlang/glyphc/pkg/token"

// Single-code-point structural keywords (grounded on the
// singleTokens_ table built in original_source's Lexer::Lexer). Each of
// these code points is recognised unconditionally by beginToken and never
// participates in identifier or operator clustering.
const (
	kwEndArgumentList             rune = 0x2757 // ❗
	kwEndInterrogativeArgumentList rune = 0x2753 // ❓
	kwGroupBegin                  rune = 0x1F44A // 👊
	kwGroupEnd                    rune = 0x1F91B // 🤛
	kwReturn                      rune = 0x21A9 // ↩️
	kwRepeatWhile                 rune = 0x1F504 // 🔄
	kwForIn                       rune = 0x1F502 // 🔂
	kwBooleanTrue                 rune = 0x1F44D // 👍
	kwBooleanFalse                rune = 0x1F44E // 👎
	kwError                       rune = 0x1F6A8 // 🚨
	kwIf                          rune = 0x21AA // ↪️
	kwErrorHandler                rune = 0x1F197 // 🆗
	kwBlockBegin                  rune = 0x1F347 // 🍇
	kwBlockEnd                    rune = 0x1F349 // 🍉
	kwNew                         rune = 0x1F195 // 🆕
	kwThis                        rune = 0x1F447 // 👇
	kwUnsafe                      rune = 0x2623 // ☣️
	kwSuper                       rune = 0x2934 // ⤴️
	kwRightProductionOperator     rune = 0x27A1 // ➡️
	kwLeftProductionOperator      rune = 0x2B05 // ⬅️
	kwMutable                     rune = 0x1F58D // 🖍️
	kwGeneric                     rune = 0x1F41A // 🐚
	kwProtocol                    rune = 0x1F40A // 🐊
	kwValueType                   rune = 0x1F54A // 🕊️
	kwClass                       rune = 0x1F407 // 🐇
	kwEnumeration                 rune = 0x1F518 // 🔘
	kwSelectionOperator           rune = 0x1F4E3 // 📣
	kwCall                        rune = 0x203C // ‼️

	// operator code points; all resolve to token.Operator and are further
	// disambiguated by the parser from their literal value.
	opPlus          rune = 0x2795
	opMinus         rune = 0x2796
	opDivide        rune = 0x2797
	opMultiply      rune = 0x2716
	opOpenHands     rune = 0x1F450
	opHandshake     rune = 0x1F91D
	opLargeCircle   rune = 0x2B55
	opAnger         rune = 0x1F4A2
	opCrossMark     rune = 0x274C
	opLeftBackhand  rune = 0x1F448
	opRightBackhand rune = 0x1F449
	opLitter        rune = 0x1F6AE
	opCelebration   rune = 0x1F64C
	opStuckOutTongue rune = 0x1F61C
	opLeftTriangle  rune = 0x25C0
	opRightTriangle rune = 0x25B6

	// non-operator single code points handled specially by beginToken.
	cpStringDelimiter    rune = 0x1F524 // 🔤
	cpSinglelineComment  rune = 0x1F4AD // 💭
	cpDocComment         rune = 0x1F4D7 // 📗
	cpPackageDocComment  rune = 0x1F4D8 // 📘
	cpDigitGroupSymbol   rune = 0x1F51F // 🔟
	cpDecorator          rune = 0x1F38D // 🎍
	cpMagnet             rune = 0x1F9F2 // 🧲 (interpolation marker)
	cpEscapeIntroducer   rune = opCrossMark
	cpMultilineSoonArrow rune = 0x1F51C // 🔜, promotes a single-line comment to a multi-line one
	cpMultilineEndArrow  rune = 0x1F519 // 🔚, toggles multi-line comment "determined" state
	cpShruggingPerson    rune = shruggingPerson
	cpNoGesture          rune = noGoodGesture
)

func init() {
	for r, k := range map[rune]token.Kind{
		kwEndArgumentList:              token.EndArgumentList,
		kwEndInterrogativeArgumentList: token.EndInterrogativeArgumentList,
		kwGroupBegin:                   token.GroupBegin,
		kwGroupEnd:                     token.GroupEnd,
		kwReturn:                       token.Return,
		kwRepeatWhile:                  token.RepeatWhile,
		kwForIn:                        token.ForIn,
		kwBooleanTrue:                  token.BooleanTrue,
		kwBooleanFalse:                 token.BooleanFalse,
		kwError:                        token.Error,
		kwIf:                           token.If,
		kwErrorHandler:                 token.ErrorHandler,
		kwBlockBegin:                   token.BlockBegin,
		kwBlockEnd:                     token.BlockEnd,
		kwNew:                          token.New,
		kwThis:                         token.This,
		kwUnsafe:                       token.Unsafe,
		kwSuper:                        token.Super,
		kwRightProductionOperator:      token.RightProductionOperator,
		kwLeftProductionOperator:       token.LeftProductionOperator,
		kwMutable:                      token.Mutable,
		kwGeneric:                      token.Generic,
		kwProtocol:                     token.Protocol,
		kwValueType:                    token.ValueType,
		kwClass:                        token.Class,
		kwEnumeration:                  token.Enumeration,
		kwSelectionOperator:            token.SelectionOperator,
		kwCall:                         token.Call,

		opPlus: token.Operator, opMinus: token.Operator, opDivide: token.Operator,
		opMultiply: token.Operator, opOpenHands: token.Operator, opHandshake: token.Operator,
		opLargeCircle: token.Operator, opAnger: token.Operator, opCrossMark: token.Operator,
		opLeftBackhand: token.Operator, opRightBackhand: token.Operator, opLitter: token.Operator,
		opCelebration: token.Operator, opStuckOutTongue: token.Operator,
		opLeftTriangle: token.Operator, opRightTriangle: token.Operator,
	} {
		token.RegisterStructuralKeyword(r, k)
	}
}

func singleTokenKind(r rune) (token.Kind, bool) {
	k, ok := token.StructuralKeywords[r]
	return k, ok
}
