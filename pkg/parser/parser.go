package parser

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/lexer"
	"github.com/glyphlang/glyphc/pkg/token"
)

// Parser drives a pkg/lexer.TokenStream through the declaration,
// statement and expression grammars, producing a
// pkg/ast.Document. It holds no type information: pkg/sema resolves
// every TypeExpr this package produces against a symbol table.
type Parser struct {
	ts *lexer.TokenStream
}

// New constructs a Parser over an already-positioned token stream.
func New(ts *lexer.TokenStream) *Parser {
	return &Parser{ts: ts}
}

// Parse parses l's full contents as one translation unit.
func Parse(l *lexer.Lexer) (*ast.Document, error) {
	ts, err := lexer.NewTokenStream(l)
	if err != nil {
		return nil, err
	}
	return New(ts).ParseDocument()
}

func (p *Parser) peek() token.Token { return p.ts.Peek() }

func (p *Parser) errorf(code diag.Code, format string, args ...any) error {
	return diag.New(diag.KindParseError, code, p.peek().Position, format, args...)
}

func (p *Parser) unexpected(expected string) error {
	return p.errorf(diag.CodeUnexpectedToken, "expected %s but found %s (%q)", expected, p.peek().Kind, p.peek().Text())
}

// ParseDocument parses the `document := { import | typedef | extension
// | include | start-flag | version | require-binary | alias }` grammar.
func (p *Parser) ParseDocument() (*ast.Document, error) {
	doc := &ast.Document{}
	for p.ts.HasMore() && !p.ts.PeekIs(token.EOF) {
		if err := p.parseTopLevel(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *Parser) parseTopLevel(doc *ast.Document) error {
	tok := p.peek()

	switch {
	case p.ts.PeekIsIdentifier(kwImport):
		imp, err := p.parseImport()
		if err != nil {
			return err
		}
		doc.Imports = append(doc.Imports, imp)
		return nil

	case p.ts.PeekIsIdentifier(kwInclude):
		inc, err := p.parseInclude()
		if err != nil {
			return err
		}
		doc.Includes = append(doc.Includes, inc)
		return nil

	case p.ts.PeekIsIdentifier(kwVersion):
		if doc.Version != nil {
			return p.errorf(diag.CodeVersionRedeclared, "package version already declared")
		}
		v, err := p.parseVersion()
		if err != nil {
			return err
		}
		doc.Version = v
		return nil

	case p.ts.PeekIsIdentifier(kwRequireBinary):
		if _, err := p.ts.Consume(); err != nil {
			return err
		}
		doc.RequiresBinary = true
		return nil

	case p.ts.PeekIsIdentifier(kwAlias):
		a, err := p.parseAlias()
		if err != nil {
			return err
		}
		doc.Aliases = append(doc.Aliases, a)
		return nil

	case p.ts.PeekIsIdentifier(kwStartFlag):
		if _, err := p.ts.Consume(); err != nil {
			return err
		}
		name, err := p.parseIdentifierName()
		if err != nil {
			return err
		}
		doc.StartFlag = name
		return nil

	case p.ts.PeekIsIdentifier(kwExtension):
		ext, err := p.parseExtension()
		if err != nil {
			return err
		}
		doc.Extensions = append(doc.Extensions, ext)
		return nil

	case tok.Kind == token.Class || tok.Kind == token.ValueType || tok.Kind == token.Protocol || tok.Kind == token.Enumeration:
		td, err := p.parseTypeDecl()
		if err != nil {
			return err
		}
		doc.Types = append(doc.Types, td)
		return nil

	default:
		return p.unexpected("a document-level declaration")
	}
}

func (p *Parser) parseImport() (*ast.Import, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	ns := p.peek()
	var nsRune rune
	if ns.Kind == token.Identifier && len(ns.Value) > 0 {
		if _, err := p.ts.Consume(); err != nil {
			return nil, err
		}
		nsRune = ns.Value[0]
	}
	return &ast.Import{Position: start.Position, Package: name, Namespace: nsRune}, nil
}

func (p *Parser) parseInclude() (*ast.Include, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	path, err := p.ts.Expect(token.String)
	if err != nil {
		return nil, err
	}
	return &ast.Include{Position: start.Position, Path: path.Text()}, nil
}

func (p *Parser) parseVersion() (*ast.VersionDecl, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	major, err := p.parseIntLiteralValue()
	if err != nil {
		return nil, err
	}
	minor, err := p.parseIntLiteralValue()
	if err != nil {
		return nil, err
	}
	return &ast.VersionDecl{Position: start.Position, Major: int(major), Minor: int(minor)}, nil
}

func (p *Parser) parseAlias() (*ast.Alias, error) {
	start, err := p.ts.Consume()
	if err != nil {
		return nil, err
	}
	local, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	pkgName, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	target, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}
	return &ast.Alias{Position: start.Position, LocalName: local, TargetPackage: pkgName, TargetName: target}, nil
}

// parseIdentifierName consumes one token as a name: an Identifier (an
// emoji grapheme cluster) or a Variable (a plain-text word), the two
// lexical shapes the grammar allows for a declared name.
func (p *Parser) parseIdentifierName() ([]rune, error) {
	tok := p.peek()
	if tok.Kind != token.Identifier && tok.Kind != token.Variable {
		return nil, p.unexpected("a name")
	}
	if _, err := p.ts.Consume(); err != nil {
		return nil, err
	}
	return tok.Value, nil
}

func (p *Parser) parseIntLiteralValue() (int64, error) {
	tok, err := p.ts.Expect(token.Integer)
	if err != nil {
		return 0, err
	}
	return parseIntRunes(tok.Value)
}

func parseFloatRunes(rs []rune) (float64, error) {
	neg := false
	i := 0
	if len(rs) > 0 && (rs[0] == '-' || rs[0] == '+') {
		neg = rs[0] == '-'
		i = 1
	}
	var whole, frac int64
	var fracDigits int
	seenDot := false
	for ; i < len(rs); i++ {
		r := rs[i]
		if r == '.' {
			seenDot = true
			continue
		}
		if r < '0' || r > '9' {
			continue
		}
		if seenDot {
			frac = frac*10 + int64(r-'0')
			fracDigits++
		} else {
			whole = whole*10 + int64(r-'0')
		}
	}
	v := float64(whole)
	if fracDigits > 0 {
		div := 1.0
		for i := 0; i < fracDigits; i++ {
			div *= 10
		}
		v += float64(frac) / div
	}
	if neg {
		v = -v
	}
	return v, nil
}

func parseIntRunes(rs []rune) (int64, error) {
	neg := false
	i := 0
	if len(rs) > 0 && (rs[0] == '-' || rs[0] == '+') {
		neg = rs[0] == '-'
		i = 1
	}
	var v int64
	for ; i < len(rs); i++ {
		r := rs[i]
		if r < '0' || r > '9' {
			continue
		}
		v = v*10 + int64(r-'0')
	}
	if neg {
		v = -v
	}
	return v, nil
}
