package parser

import (
	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/lexer"
)

// parseRepeat parses a Repeat expression (array/product length), folding
// binary operators with the same precedence table as value expressions.
// OP_GET is not accidentally duplicated in the short-circuit check here.
func (p *parser) parseRepeat() *ast.Repeat {
	return p.parseRepeatPrec(0)
}

func (p *parser) parseRepeatPrec(minPrec int) *ast.Repeat {
	left := p.parseRepeatAtom()
	for {
		op, prec, n, ok := p.peekBinOp()
		if !ok || prec < minPrec {
			break
		}
		p.advanceN(n)
		right := p.parseRepeatPrec(prec + 1)
		left = &ast.Repeat{
			Span: ast.Span{Start: left.Span.Start, Length: right.Span.End() - left.Span.Start},
			Data: &ast.RepeatBinOp{Op: op, Left: left, Right: right},
		}
	}
	return left
}

func (p *parser) parseRepeatAtom() *ast.Repeat {
	start := p.startSpan()
	switch {
	case p.at(lexer.Int):
		tok := p.advance()
		return &ast.Repeat{Span: p.endSpan(start), Data: &ast.RepeatInt{Value: tok.IntValue}}
	case p.consume(lexer.KwSizeOf):
		p.expect(lexer.LParen)
		t := p.parseType()
		p.expect(lexer.RParen)
		return &ast.Repeat{Span: p.endSpan(start), Data: &ast.RepeatSizeOf{Type: t}}
	case p.consume(lexer.KwAlignOf):
		p.expect(lexer.LParen)
		t := p.parseType()
		p.expect(lexer.RParen)
		return &ast.Repeat{Span: p.endSpan(start), Data: &ast.RepeatAlignOf{Type: t}}
	case p.consume(lexer.LParen):
		r := p.parseRepeat()
		p.expect(lexer.RParen)
		return r
	default:
		id := p.parseId()
		p.expect(lexer.Bang)
		p.expect(lexer.LParen)
		var args []*ast.Meta
		if !p.at(lexer.RParen) {
			args = append(args, p.parseMeta())
			for p.consume(lexer.Comma) {
				args = append(args, p.parseMeta())
			}
		}
		p.expect(lexer.RParen)
		return &ast.Repeat{Span: p.endSpan(start), Data: &ast.RepeatMacroInv{Id: id, Args: args}}
	}
}
