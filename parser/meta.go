package parser

import (
	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/lexer"
)

// parseAttrs consumes zero or more leading `#[...]` attributes.
func (p *parser) parseAttrs() []*ast.Meta {
	var metas []*ast.Meta
	for p.at(lexer.Hash) {
		p.advance()
		p.expect(lexer.LBracket)
		metas = append(metas, p.parseMeta())
		p.expect(lexer.RBracket)
	}
	return metas
}

// parseMeta parses one of `id`, `id = literal`, or `id(meta, ...)`.
func (p *parser) parseMeta() *ast.Meta {
	start := p.startSpan()
	name := p.expectSid()

	switch {
	case p.consume(lexer.Eq):
		lit := p.parseLiteral()
		return &ast.Meta{Span: p.endSpan(start), Name: name, Data: &ast.MetaUnary{Literal: lit}}
	case p.consume(lexer.LParen):
		var children []*ast.Meta
		if !p.at(lexer.RParen) {
			children = append(children, p.parseMeta())
			for p.consume(lexer.Comma) {
				children = append(children, p.parseMeta())
			}
		}
		p.expect(lexer.RParen)
		return &ast.Meta{Span: p.endSpan(start), Name: name, Data: &ast.MetaNested{Children: children}}
	default:
		return &ast.Meta{Span: p.endSpan(start), Name: name}
	}
}

func (p *parser) parseLiteral() ast.LiteralValue {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Int:
		p.advance()
		return ast.LiteralValue{Kind: ast.LiteralInt, Text: tok.Text, Int: tok.IntValue}
	case lexer.Float:
		p.advance()
		return ast.LiteralValue{Kind: ast.LiteralFloat, Text: tok.Text, Float: tok.FloatValue}
	case lexer.String:
		p.advance()
		return ast.LiteralValue{Kind: ast.LiteralString, Text: tok.Text, Str: tok.StrValue}
	}
	p.errUnexpected(lexer.Int)
	return ast.LiteralValue{}
}
