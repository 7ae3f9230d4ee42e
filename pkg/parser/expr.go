package parser

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/token"
)

// parseExpr parses a full expression at the given minimum precedence,
// the standard Pratt loop: a prefix/primary parse followed by zero or
// more infix extensions whose precedence meets prec.
func (p *Parser) parseExpr(prec int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		left, err = p.parsePostfix(left)
		if err != nil {
			return nil, err
		}
		tok := p.peek()
		if tok.Kind != token.Operator {
			break
		}
		opPrec, ok := operatorPrecedence[tok.Value[0]]
		if !ok || opPrec < prec {
			break
		}
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr(opPrec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{
			ExprBase: ast.At(tok.Position),
			Operator: tok.Value[0],
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// ParseExpression parses one top-level expression  , the
// entry point used by statement parsing and by this package's tests.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseExpr(precLowest)
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.peek()

	switch {
	case tok.Kind == token.Operator && (tok.Value[0] == opMinus || tok.Value[0] == opStuckOutTongue):
		// unary minus / logical-not share their binary glyphs, parsed at
		// prefix precedence ("Prefix precedence is 11").
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &ast.Method{ExprBase: ast.At(tok.Position), Receiver: operand, Name: []rune(operatorName[tok.Value[0]]), IsOperator: true, Mood: ast.Imperative}, nil

	case tok.Kind == token.Integer:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		v, err := parseIntRunes(tok.Value)
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{ExprBase: ast.At(tok.Position), Value: v}, nil

	case tok.Kind == token.Double:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		v, err := parseFloatRunes(tok.Value)
		if err != nil {
			return nil, err
		}
		return &ast.DoubleLiteral{ExprBase: ast.At(tok.Position), Value: v}, nil

	case tok.Kind == token.Symbol:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		var r rune
		if len(tok.Value) > 0 {
			r = tok.Value[0]
		}
		return &ast.SymbolLiteral{ExprBase: ast.At(tok.Position), Value: r}, nil

	case tok.Kind == token.String:
		return p.parseStringOrConcatenate()

	case tok.Kind == token.BooleanTrue:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return &ast.TrueLiteral{ExprBase: ast.At(tok.Position)}, nil

	case tok.Kind == token.BooleanFalse:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return &ast.FalseLiteral{ExprBase: ast.At(tok.Position)}, nil

	case tok.Kind == token.This:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return &ast.ThisLiteral{ExprBase: ast.At(tok.Position)}, nil

	case p.ts.PeekIsIdentifier(kwNothingness):
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return &ast.NothingnessLiteral{ExprBase: ast.At(tok.Position)}, nil

	case p.ts.PeekIsIdentifier(kwList):
		return p.parseListLiteral()

	case p.ts.PeekIsIdentifier(kwDict):
		return p.parseDictionaryLiteral()

	case tok.Kind == token.New:
		return p.parseInitialization()

	case tok.Kind == token.Super:
		return p.parseSuperMethod()

	case tok.Kind == token.BlockBegin:
		return p.parseClosure()

	case tok.Kind == token.GroupBegin:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.ts.Expect(token.GroupEnd); err != nil {
			return nil, err
		}
		return inner, nil

	case p.ts.PeekIsIdentifier(kwIVarSigil):
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		return &ast.GetVariable{ExprBase: ast.At(tok.Position), Name: name}, nil

	case tok.Kind == token.Identifier || tok.Kind == token.Variable:
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		return &ast.GetVariable{ExprBase: ast.At(tok.Position), Name: name}, nil

	default:
		return nil, p.unexpected("an expression")
	}
}

// parsePostfix repeatedly extends base with call, meta-type,
// unwrap/nothingness-test, and type-method/cast suffixes, all of which
// bind tighter than any binary operator (the call precedence
// of 12).
func (p *Parser) parsePostfix(base ast.Expr) (ast.Expr, error) {
	for {
		tok := p.peek()
		switch {
		case p.ts.PeekIsIdentifier(kwMetaSigil):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			if p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
				// `expr🔲 TypeExpr` is a cast, `expr🔲` alone reifies the
				// runtime type as a meta-type value.
				target, err := p.parseTypeExpr()
				if err != nil {
					return nil, err
				}
				base = &ast.Cast{ExprBase: ast.At(tok.Position), Callee: base, Target: target}
				continue
			}
			base = &ast.MetaTypeFromInstance{ExprBase: ast.At(tok.Position), Operand: base}

		case tok.Kind == token.EndArgumentList || tok.Kind == token.EndInterrogativeArgumentList:
			// force-unwrap `expr❗️`; the closing glyph otherwise only
			// appears immediately after an argument list, so seeing it in
			// postfix position unambiguously means unwrap.
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			base = &ast.Unwrap{ExprBase: ast.At(tok.Position), Operand: base}

		case p.ts.PeekIsIdentifier(kwNothingness):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			if _, err := p.ts.ConsumeIf(token.EndInterrogativeArgumentList); err != nil {
				return nil, err
			}
			base = &ast.IsNothingness{ExprBase: ast.At(tok.Position), Operand: base}

		case p.ts.PeekIsIdentifier(kwConditional):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fallback, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			return &ast.ConditionalAssignment{ExprBase: ast.At(tok.Position), Optional: base, Fallback: fallback}, nil

		case tok.Kind == token.Error:
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			ok, err := p.ts.ConsumeIf(token.EndInterrogativeArgumentList)
			if err != nil {
				return nil, err
			}
			if !ok {
				return base, nil
			}
			base = &ast.IsError{ExprBase: ast.At(tok.Position), Operand: base}

		case tok.Kind == token.Identifier || tok.Kind == token.Variable:
			// `receiver name(args)` message send — only consume the name as
			// a method call if it is immediately followed by an argument
			// list opener; otherwise this identifier belongs to the next
			// statement/expression, not to base.
			name := tok
			if !p.looksLikeCallStart() {
				return base, nil
			}
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			mood, args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			base = &ast.Method{ExprBase: ast.At(name.Position), Receiver: base, Name: name.Value, Mood: mood, Args: args}

		default:
			return base, nil
		}
	}
}

// looksLikeCallStart reports whether the identifier currently peeked
// begins a message send, i.e. is a plain name token rather than one of
// the single-codepoint soft keywords that starts a new statement. The
// TokenStream gives only one token of lookahead, so the grammar relies
// on every statement-leading soft keyword being registered in
// softKeywordBoundaries; anything else is taken to be a method name.
func (p *Parser) looksLikeCallStart() bool {
	tok := p.peek()
	if tok.Kind != token.Identifier && tok.Kind != token.Variable {
		return false
	}
	if len(tok.Value) == 1 {
		if softKeywordBoundaries[tok.Value[0]] {
			return false
		}
	}
	return true
}

var softKeywordBoundaries = map[rune]bool{
	kwVar: true, kwFrozen: true, kwAssign: true, kwIVarSigil: true,
	kwImport: true, kwInclude: true, kwVersion: true, kwRequireBinary: true,
	kwAlias: true, kwStartFlag: true, kwExtension: true,
}

// parseArgumentList parses a call's argument expressions up to its
// closing glyph, returning the Mood implied by which closer was used
// (❗️ closes an imperative/escalating call, ❓ closes
// an interrogative one — the callee's declared Mood is validated
// against this by pkg/sema, not the parser).
func (p *Parser) parseArgumentList() (ast.Mood, []ast.Expr, error) {
	var args []ast.Expr
	for !p.ts.PeekIs(token.EndArgumentList) && !p.ts.PeekIs(token.EndInterrogativeArgumentList) {
		arg, err := p.ParseExpression()
		if err != nil {
			return ast.Imperative, nil, err
		}
		args = append(args, arg)
	}
	closer, err := p.ts.Consume()
	if err != nil {
		return ast.Imperative, nil, err
	}
	if closer.Kind == token.EndInterrogativeArgumentList {
		return ast.Interrogative, args, nil
	}
	return ast.Imperative, args, nil
}

func (p *Parser) parseStringOrConcatenate() (ast.Expr, error) {
	tok, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	parts := []ast.Expr{&ast.StringLiteral{ExprBase: ast.At(tok.Position), Value: tok.Text()}}
	hadInterp := false
	for {
		next := p.peek()
		if next.Kind != token.MiddleInterpolation && next.Kind != token.BeginInterpolation {
			break
		}
		hadInterp = true
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr)
	}
	if !hadInterp {
		return parts[0], nil
	}
	return &ast.Concatenate{ExprBase: ast.At(tok.Position), Parts: parts}, nil
}

func (p *Parser) parseListLiteral() (ast.Expr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	lit := &ast.ListLiteral{ExprBase: ast.At(start.Position)}
	for !p.ts.PeekIsIdentifier(kwBag) {
		el, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, el)
	}
	if _, err := p.ts.Consume(); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseDictionaryLiteral() (ast.Expr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	lit := &ast.DictionaryLiteral{ExprBase: ast.At(start.Position)}
	for !p.ts.PeekIsIdentifier(kwBag) {
		key, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, val)
	}
	if _, err := p.ts.Consume(); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseInitialization() (ast.Expr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	target, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	mood, args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	return &ast.Initialization{ExprBase: ast.At(start.Position), Target: target, Mood: mood, Args: args}, nil
}

func (p *Parser) parseSuperMethod() (ast.Expr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	mood, args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	return &ast.SuperMethod{ExprBase: ast.At(start.Position), Name: name, Mood: mood, Args: args}, nil
}

func (p *Parser) parseClosure() (ast.Expr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	cl := &ast.Closure{ExprBase: ast.At(start.Position)}
	for p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		cl.Params = append(cl.Params, param)
	}
	if p.peek().Kind == token.Error {
		errT, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		cl.ErrorType = errT
	}
	if ok, err := p.ts.ConsumeIf(token.RightProductionOperator); err != nil {
		return nil, err
	} else if ok {
		ret, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		cl.ReturnType = ret
	}
	body, err := p.parseBlockUntil(token.BlockEnd)
	if err != nil {
		return nil, err
	}
	cl.Body = body
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return cl, nil
}
