package parser

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/token"
)

// parseTypeDecl dispatches on the four typedef kinds.
func (p *Parser) parseTypeDecl() (ast.TypeDecl, error) {
	switch p.peek().Kind {
	case token.Class:
		return p.parseClassDecl()
	case token.ValueType:
		return p.parseValueTypeDecl()
	case token.Enumeration:
		return p.parseEnumDecl()
	case token.Protocol:
		return p.parseProtocolDecl()
	default:
		return nil, p.unexpected("a typedef")
	}
}

func (p *Parser) parseModifiers() (final, foreign, primitive bool, err error) {
	for {
		switch {
		case p.ts.PeekIsIdentifier(kwModFinal):
			if _, e := p.ts.Consume(); e != nil {
				return false, false, false, e
			}
			final = true
		case p.ts.PeekIsIdentifier(kwModForeign):
			if _, e := p.ts.Consume(); e != nil {
				return false, false, false, e
			}
			foreign = true
		case p.ts.PeekIsIdentifier(kwModPrimitive):
			if _, e := p.ts.Consume(); e != nil {
				return false, false, false, e
			}
			primitive = true
		default:
			return final, foreign, primitive, nil
		}
	}
}

func (p *Parser) parseGenericParams() ([]*ast.GenericParam, error) {
	if p.peek().Kind != token.Generic {
		return nil, nil
	}
	var params []*ast.GenericParam
	for p.peek().Kind == token.Generic {
		tok, err := p.ts.Consume()
		if err != nil {
			return nil, err
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		gp := &ast.GenericParam{Position: tok.Position, Name: name}
		if p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
			constraint, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			gp.Constraint = constraint
		}
		params = append(params, gp)
	}
	return params, nil
}

func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	final, foreign, _, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	cd := &ast.ClassDecl{Position: start.Position, Name: name, GenericParams: generics, Final: final, Foreign: foreign}
	if p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
		super, err := p.parseNominalType()
		if err != nil {
			return nil, err
		}
		cd.Super = super
	}
	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	cd.Members = members
	return cd, nil
}

func (p *Parser) parseValueTypeDecl() (*ast.ValueTypeDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	_, _, primitive, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	vd := &ast.ValueTypeDecl{Position: start.Position, Name: name, GenericParams: generics, Primitive: primitive}
	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	vd.Members = members
	return vd, nil
}

func (p *Parser) parseEnumDecl() (*ast.EnumDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	ed := &ast.EnumDecl{Position: start.Position, Name: name}
	if _, err := p.ts.Expect(token.BlockBegin); err != nil {
		return nil, err
	}
	nextValue := 0
	for !p.ts.PeekIs(token.BlockEnd) {
		if p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
			tok := p.peek()
			// a bare name starts an enum case; a method/type-method member
			// instead begins with a mood/mutating marker the case grammar
			// never uses, so peeking the name alone disambiguates here.
			if !p.looksLikeEnumCase() {
				member, err := p.parseMember()
				if err != nil {
					return nil, err
				}
				ed.Members = append(ed.Members, member)
				continue
			}
			name, err := p.parseIdentifierName()
			if err != nil {
				return nil, err
			}
			val := nextValue
			if p.peek().Kind == token.Integer {
				v, err := p.parseIntLiteralValue()
				if err != nil {
					return nil, err
				}
				val = int(v)
			}
			ed.Values = append(ed.Values, ast.EnumValue{Position: tok.Position, Name: name, Value: val})
			nextValue = val + 1
			continue
		}
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		ed.Members = append(ed.Members, member)
	}
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return ed, nil
}

// looksLikeEnumCase always reports true in this single-token-of-
// lookahead grammar: method members inside an enum body begin with
// their own dedicated marker (token.Mutable or a Decorator modifier),
// never with a bare name, so a bare name unambiguously starts a case.
func (p *Parser) looksLikeEnumCase() bool { return true }

func (p *Parser) parseProtocolDecl() (*ast.ProtocolDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	pd := &ast.ProtocolDecl{Position: start.Position, Name: name, GenericParams: generics}
	if _, err := p.ts.Expect(token.BlockBegin); err != nil {
		return nil, err
	}
	for !p.ts.PeekIs(token.BlockEnd) {
		fn, err := p.parseFunctionSignature()
		if err != nil {
			return nil, err
		}
		pd.Methods = append(pd.Methods, fn)
	}
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return pd, nil
}

func (p *Parser) parseExtension() (*ast.ExtensionDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ExtensionDecl{Position: start.Position, TargetName: name, Members: members}, nil
}

func (p *Parser) parseMemberBlock() ([]ast.Member, error) {
	if _, err := p.ts.Expect(token.BlockBegin); err != nil {
		return nil, err
	}
	var members []ast.Member
	for !p.ts.PeekIs(token.BlockEnd) {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Parser) parseMember() (ast.Member, error) {
	tok := p.peek()

	if tok.Kind == token.Protocol {
		start, err := p.ts.Consume()
		if err != nil {
			return nil, err
		}
		proto, err := p.parseNominalType()
		if err != nil {
			return nil, err
		}
		return &ast.ConformanceMember{Position: start.Position, Protocol: proto}, nil
	}

	if tok.Kind == token.New {
		fn, err := p.parseFunctionSignature()
		if err != nil {
			return nil, err
		}
		fn.Kind = ast.ObjectInitializer
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.Body = body
		return &ast.InitializerMember{Position: fn.Position, Function: fn}, nil
	}

	isClassVar := false
	if p.ts.PeekIsIdentifier(kwModClassVar) {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		isClassVar = true
	}

	// An instance/class variable is `🍭name TypeExpr [📣 default]`,
	// distinguished unambiguously from a method's bare name by the
	// leading sigil  ; a method is `name(params) [➡️
	// result] block`.
	if p.ts.PeekIsIdentifier(kwIVarSigil) {
		start, err := p.ts.Consume()
		if err != nil {
			return nil, err
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		iv := &ast.InstanceVarMember{Position: start.Position, Name: name, Type: typ, ClassVar: isClassVar}
		if ok, err := p.ts.ConsumeIf(token.SelectionOperator); err != nil {
			return nil, err
		} else if ok {
			def, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			iv.Default = def
		}
		return iv, nil
	}

	if tok.Kind == token.Identifier || tok.Kind == token.Variable || tok.Kind == token.Mutable || tok.Kind == token.Generic {
		fn, err := p.parseFunctionSignature()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.Body = body
		if isClassVar {
			fn.Kind = ast.ClassMethod
		}
		return &ast.MethodMember{Position: fn.Position, Function: fn}, nil
	}

	return nil, diag.New(diag.KindParseError, diag.CodeUnexpectedToken, tok.Position, "expected a member, found %s", tok.Kind)
}

// parseFunctionSignature parses a method/type-method/initializer
// header up to (but not including) its body block: modifiers, mood,
// name, parameter list, and optional error/return types.
func (p *Parser) parseFunctionSignature() (*ast.Function, error) {
	start := p.peek()
	fn := &ast.Function{Position: start.Position, Access: ast.Public}

modifiers:
	for {
		switch {
		case p.peek().Kind == token.Mutable:
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Mutating = true
		case p.ts.PeekIsIdentifier(kwModFinal):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Final = true
		case p.ts.PeekIsIdentifier(kwModOverriding):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Overriding = true
		case p.ts.PeekIsIdentifier(kwModDeprecated):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Deprecated = true
		case p.ts.PeekIsIdentifier(kwModProtected):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Access = ast.Protected
		case p.ts.PeekIsIdentifier(kwModPrivate):
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Access = ast.Private
		case p.peek().Kind == token.Call:
			if _, err := p.ts.Consume(); err != nil {
				return nil, err
			}
			fn.Mood = ast.Escalating
		default:
			break modifiers
		}
	}

	if p.peek().Kind == token.New {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
	} else {
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		fn.Name = name
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	fn.GenericParams = generics

	for p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable || p.ts.PeekIsIdentifier(kwIVarSigil) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		if param.AutoAssign {
			fn.AutoAssigns = append(fn.AutoAssigns, param.Name)
		}
	}

	if p.peek().Kind == token.Error {
		errT, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fn.ErrorType = errT
	}

	if ok, err := p.ts.ConsumeIf(token.RightProductionOperator); err != nil {
		return nil, err
	} else if ok {
		ret, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = ret
	}

	if ok, err := p.ts.ConsumeIf(token.EndInterrogativeArgumentList); err != nil {
		return nil, err
	} else if ok {
		fn.Mood = ast.Interrogative
	}

	return fn, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	tok := p.peek()
	autoAssign := false
	if p.ts.PeekIsIdentifier(kwIVarSigil) {
		autoAssign = true
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	param := &ast.Parameter{Position: tok.Position, Name: name, AutoAssign: autoAssign}
	if p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable || p.peek().Kind == token.Mutable || p.ts.PeekIsIdentifier(kwMetaSigil) || p.ts.PeekIsIdentifier(kwOptional) || p.peek().Kind == token.BlockBegin {
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		param.Type = typ
	}
	return param, nil
}
