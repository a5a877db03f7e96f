package parser

import (
	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/lexer"
)

// parsePattern mirrors expression atom parsing with three additions: a
// blank `_`, a `mut` qualifier on bound identifiers, and an optional
// `: Type` annotation on identifier patterns.
func (p *parser) parsePattern() *ast.Pattern {
	start := p.startSpan()
	switch {
	case p.consume(lexer.Underscore):
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternBlank{}}
	case p.at(lexer.Int), p.at(lexer.Float), p.at(lexer.String):
		lit := p.parseLiteral()
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternLiteral{Value: lit}}
	case p.consume(lexer.At):
		elem := p.parsePattern()
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternPtr{Elem: elem}}
	case p.at(lexer.LParen):
		return p.parsePatternProduct(start)
	case p.at(lexer.KwMut):
		p.advance()
		sid := p.expectSid()
		var typ *ast.Type
		if p.consume(lexer.Colon) {
			typ = p.parseType()
		}
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternID{Mut: true, Sid: sid, Type: typ}}
	default:
		sid := p.expectSid()
		if p.consume(lexer.LParen) {
			if p.at(lexer.ID) && p.peekAt(1).Kind == lexer.Colon {
				var fields []ast.PatternField
				for {
					fsid := p.expectSid()
					p.expect(lexer.Colon)
					fpat := p.parsePattern()
					fields = append(fields, ast.PatternField{Sid: fsid, Pattern: fpat})
					if !p.consume(lexer.Comma) {
						break
					}
				}
				p.expect(lexer.RParen)
				return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternSummandNamed{Sid: sid, Fields: fields}}
			}
			var elems []*ast.Pattern
			if !p.at(lexer.RParen) {
				elems = append(elems, p.parsePattern())
				for p.consume(lexer.Comma) {
					elems = append(elems, p.parsePattern())
				}
			}
			p.expect(lexer.RParen)
			return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternSummandAnon{Sid: sid, Elems: elems}}
		}
		var typ *ast.Type
		if p.consume(lexer.Colon) {
			typ = p.parseType()
		}
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternID{Sid: sid, Type: typ}}
	}
}

func (p *parser) parsePatternProduct(start int) *ast.Pattern {
	p.expect(lexer.LParen)

	if p.consume(lexer.RParen) {
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternProductAnon{}}
	}

	if p.at(lexer.ID) && p.peekAt(1).Kind == lexer.Colon {
		var fields []ast.PatternField
		for {
			sid := p.expectSid()
			p.expect(lexer.Colon)
			pat := p.parsePattern()
			fields = append(fields, ast.PatternField{Sid: sid, Pattern: pat})
			if !p.consume(lexer.Comma) {
				break
			}
		}
		p.expect(lexer.RParen)
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternProductNamed{Fields: fields}}
	}

	first := p.parsePattern()
	if p.consume(lexer.Comma) {
		elems := []*ast.Pattern{first}
		if !p.at(lexer.RParen) {
			elems = append(elems, p.parsePattern())
			for p.consume(lexer.Comma) {
				elems = append(elems, p.parsePattern())
			}
		}
		p.expect(lexer.RParen)
		return &ast.Pattern{Span: p.endSpan(start), Data: &ast.PatternProductAnon{Elems: elems}}
	}
	p.expect(lexer.RParen)
	return first
}
