package parser

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/token"
)

// parseTypeExpr parses one type expression (the type grammar):
// a nominal type with optional 🐚-generic arguments, a 🍬-optional, a
// 🚨-error-union, a 🍆-joined multi-protocol, a 🍇...➡️...🍉 callable, or a
// 🔲-meta-type, each of which may itself nest.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	tok := p.peek()

	switch {
	case tok.Kind == token.Mutable:
		// 🖍️ T — reference/mutable qualifier; it is consumed and not
		// recorded, so the result is the inner type expression alone.
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return p.parseTypeExpr()

	case p.ts.PeekIsIdentifier(kwNothingness):
		// 👽 alone as a type expr is sugar for 🍬Something, used in a
		// handful of declared-nil-default positions.
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		return &ast.OptionalType{Position: tok.Position, Inner: &ast.NominalType{Position: tok.Position}}, nil

	case p.ts.PeekIsIdentifier(kwMetaSigil):
		return p.parseMetaType()

	case p.ts.PeekIsIdentifier(kwOptional):
		start, err := p.ts.Consume()
		if err != nil {
			return nil, err
		}
		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		// ast.OptionalType itself collapses nesting at the pkg/types
		// level  ; the parser simply records what was written.
		return &ast.OptionalType{Position: start.Position, Inner: inner}, nil

	case tok.Kind == token.Error:
		return p.parseErrorUnionType()

	case tok.Kind == token.BlockBegin:
		return p.parseCallableType()

	case tok.Kind == token.Identifier || tok.Kind == token.Variable:
		return p.parseNominalOrMultiProtocolType()

	default:
		return nil, p.unexpected("a type expression")
	}
}

// parseNominalOrMultiProtocolType handles a bare nominal type and the
// 🍆-joined multi-protocol form, which both start with a name.
func (p *Parser) parseNominalOrMultiProtocolType() (ast.TypeExpr, error) {
	first, err := p.parseNominalType()
	if err != nil {
		return nil, err
	}
	if !p.ts.PeekIsIdentifier(kwBag) {
		return first, nil
	}
	members := []ast.TypeExpr{first}
	for p.ts.PeekIsIdentifier(kwBag) {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		next, err := p.parseNominalType()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	return &ast.MultiProtocolType{Position: first.Pos(), Members: members}, nil
}

func (p *Parser) parseNominalType() (*ast.NominalType, error) {
	start := p.peek()
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	nt := &ast.NominalType{Position: start.Position, Name: name}
	if p.peek().Kind == token.Generic {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		for p.peek().Kind == token.Identifier || p.peek().Kind == token.Variable {
			arg, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			nt.GenericArgs = append(nt.GenericArgs, arg)
			if ok, err := p.ts.ConsumeIf(token.Generic); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}
	return nt, nil
}

func (p *Parser) parseMetaType() (ast.TypeExpr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	inner, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &ast.MetaType{Position: start.Position, Inner: inner}, nil
}

func (p *Parser) parseErrorUnionType() (ast.TypeExpr, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	enum, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	success, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ErrorUnionType{Position: start.Position, ErrorEnum: enum, Success: success}, nil
}

func (p *Parser) parseCallableType() (ast.TypeExpr, error) {
	start, err := p.ts.Expect(token.BlockBegin)
	if err != nil {
		return nil, err
	}
	ct := &ast.CallableType{Position: start.Position}
	for !p.ts.PeekIs(token.RightProductionOperator) && !p.ts.PeekIs(token.BlockEnd) {
		param, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		ct.Params = append(ct.Params, param)
	}
	if p.peek().Kind == token.Error {
		errT, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		ct.ErrType = errT
	}
	if _, err := p.ts.Expect(token.RightProductionOperator); err != nil {
		return nil, err
	}
	result, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	ct.Result = result
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return ct, nil
}
