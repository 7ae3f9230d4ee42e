package parser

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/token"
)

// parseBlock parses a 🍇...🍉-delimited function/branch body.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.ts.Expect(token.BlockBegin)
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlockUntil(token.BlockEnd)
	if err != nil {
		return nil, err
	}
	block.Position = start.Position
	if _, err := p.ts.Expect(token.BlockEnd); err != nil {
		return nil, err
	}
	return block, nil
}

// parseBlockUntil parses statements up to (but not consuming) a token
// of the given terminator kind.
func (p *Parser) parseBlockUntil(terminator token.Kind) (*ast.Block, error) {
	block := &ast.Block{Position: p.peek().Position}
	for !p.ts.PeekIs(terminator) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.peek()

	switch {
	case tok.Kind == token.Return:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		if p.ts.SkippedBlankLine() || p.ts.PeekIs(token.BlockEnd) {
			return &ast.Return{Position: tok.Position}, nil
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Return{Position: tok.Position, Value: val}, nil

	case tok.Kind == token.Error:
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Raise{Position: tok.Position, Value: val}, nil

	case tok.Kind == token.Super:
		superDecl, err := p.parseSuperinitializer()
		if err != nil {
			return nil, err
		}
		return superDecl, nil

	case tok.Kind == token.If:
		return p.parseIf()

	case tok.Kind == token.RepeatWhile:
		return p.parseRepeatWhile()

	case tok.Kind == token.ForIn:
		return p.parseForIn()

	case tok.Kind == token.ErrorHandler:
		return p.parseErrorHandler()

	case p.ts.PeekIsIdentifier(kwVar):
		return p.parseVariableDeclaration()

	case p.ts.PeekIsIdentifier(kwFrozen):
		return p.parseFrozenDeclaration()

	case p.ts.PeekIsIdentifier(kwAssign):
		return p.parseAssignment()

	default:
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStatement{Position: expr.Pos(), Expr: expr}, nil
	}
}

func (p *Parser) parseSuperinitializer() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	super, err := p.parseNominalType()
	if err != nil {
		return nil, err
	}
	_, args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	return &ast.Superinitializer{Position: start.Position, Super: super, Args: args}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	ifStmt := &ast.If{Position: start.Position, Condition: cond, Then: then}
	for p.peek().Kind == token.ElseIf {
		eiTok, err := p.ts.Consume()
		if err != nil {
			return nil, err
		}
		eiCond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		eiThen, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifStmt.ElseIfs = append(ifStmt.ElseIfs, ast.ElseIf{Position: eiTok.Position, Condition: eiCond, Then: eiThen})
	}
	if p.peek().Kind == token.Else {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifStmt.Else = elseBlock
	}
	return ifStmt, nil
}

func (p *Parser) parseRepeatWhile() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatWhile{Position: start.Position, Condition: cond, Body: body}, nil
}

func (p *Parser) parseForIn() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	iterable, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForIn{Position: start.Position, VariableName: name, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseErrorHandler() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	binding, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	successBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	eh := &ast.ErrorHandler{Position: start.Position, Expr: expr, BindingName: binding, SuccessBlock: successBlock}
	if p.peek().Kind == token.Error {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		errBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		eh.ErrorBlock = errBlock
	}
	return eh, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{Position: start.Position, Name: name, Value: val}, nil
}

func (p *Parser) parseFrozenDeclaration() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FrozenDeclaration{Position: start.Position, Name: name, Value: val}, nil
}

func (p *Parser) parseAssignment() (ast.Stmt, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	if p.ts.PeekIsIdentifier(kwIVarSigil) {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return nil, err
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.InstanceVariableAssignment{Position: start.Position, Name: name, Value: val}, nil
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VariableAssignment{Position: start.Position, Name: name, Value: val}, nil
}
