package parser

import (
	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/lexer"
)

// parseType dispatches on the lookahead token to the right type form.
func (p *parser) parseType() *ast.Type {
	start := p.startSpan()
	switch {
	case p.at(lexer.LParen):
		return p.parseParenType(start)
	case p.at(lexer.LBracket):
		return p.parseArrayType(start)
	case p.at(lexer.Dollar):
		return p.parsePtrType(start)
	case p.at(lexer.LAngle):
		return p.parseGenericType(start)
	case p.at(lexer.Pipe):
		return p.parseSumType(start, false)
	case p.at(lexer.KwPub):
		p.advance()
		return p.parseSumType(start, true)
	default:
		return p.parseIdOrAppType(start)
	}
}

func (p *parser) parseArrayType(start int) *ast.Type {
	p.expect(lexer.LBracket)
	elem := p.parseType()
	p.expect(lexer.Semi)
	rep := p.parseRepeat()
	p.expect(lexer.RBracket)
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeArray{Elem: elem, Len: rep}}
}

func (p *parser) parsePtrType(start int) *ast.Type {
	p.expect(lexer.Dollar)
	if p.consume(lexer.KwMut) {
		elem := p.parseType()
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypePtrMut{Elem: elem}}
	}
	elem := p.parseType()
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypePtr{Elem: elem}}
}

func (p *parser) parseGenericType(start int) *ast.Type {
	p.expect(lexer.LAngle)
	var params []string
	if !p.at(lexer.RAngle) {
		params = append(params, p.expectSid())
		for p.consume(lexer.Comma) {
			params = append(params, p.expectSid())
		}
	}
	p.expect(lexer.RAngle)
	p.expect(lexer.FatArrow)
	body := p.parseType()
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeGeneric{Params: params, Body: body}}
}

func (p *parser) parseSumType(start int, pub bool) *ast.Type {
	var summands []*ast.Summand
	for p.consume(lexer.Pipe) {
		summands = append(summands, p.parseSummand())
	}
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeSum{Pub: pub, Summands: summands}}
}

func (p *parser) parseSummand() *ast.Summand {
	start := p.startSpan()
	sid := p.expectSid()
	s := &ast.Summand{Sid: sid}
	if p.consume(lexer.LParen) {
		if p.at(lexer.ID) && p.peekAt(1).Kind == lexer.Colon {
			s.Named = append(s.Named, p.parseField())
			for p.consume(lexer.Comma) {
				s.Named = append(s.Named, p.parseField())
			}
		} else if !p.at(lexer.RParen) {
			s.Anon = append(s.Anon, p.parseType())
			for p.consume(lexer.Comma) {
				s.Anon = append(s.Anon, p.parseType())
			}
		}
		p.expect(lexer.RParen)
	}
	s.Span = p.endSpan(start)
	return s
}

// parseParenType resolves the family of parenthesised type forms: empty or
// anonymous product, named product, repeated product, anonymous or named
// function, and plain grouping. The first non-whitespace token inside '('
// plus one token of lookahead for ':' chooses named vs. positional; ';' vs.
// ',' vs. a bare ')' then chooses among the rest.
func (p *parser) parseParenType(start int) *ast.Type {
	p.expect(lexer.LParen)

	if p.consume(lexer.RParen) {
		if p.consume(lexer.Arrow) {
			ret := p.parseType()
			return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeFunAnon{Ret: ret}}
		}
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeProductAnon{}}
	}

	if p.at(lexer.ID) && p.peekAt(1).Kind == lexer.Colon {
		fields := []ast.Field{p.parseField()}
		for p.consume(lexer.Comma) {
			fields = append(fields, p.parseField())
		}
		p.expect(lexer.RParen)
		return p.finishMaybeFunNamed(start, fields)
	}

	first := p.parseType()
	switch {
	case p.consume(lexer.Semi):
		rep := p.parseRepeat()
		p.expect(lexer.RParen)
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeProductRepeated{Elem: first, Len: rep}}
	case p.consume(lexer.Comma):
		elems := []*ast.Type{first}
		if !p.at(lexer.RParen) {
			elems = append(elems, p.parseType())
			for p.consume(lexer.Comma) {
				elems = append(elems, p.parseType())
			}
		}
		p.expect(lexer.RParen)
		return p.finishMaybeFunAnon(start, elems)
	default:
		p.expect(lexer.RParen)
		return p.finishMaybeFunAnon(start, []*ast.Type{first})
	}
}

func (p *parser) finishMaybeFunAnon(start int, elems []*ast.Type) *ast.Type {
	if p.consume(lexer.Arrow) {
		ret := p.parseType()
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeFunAnon{Args: elems, Ret: ret}}
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeProductAnon{Elems: elems}}
}

func (p *parser) finishMaybeFunNamed(start int, fields []ast.Field) *ast.Type {
	if p.consume(lexer.Arrow) {
		ret := p.parseType()
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeFunNamed{Args: fields, Ret: ret}}
	}
	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeProductNamed{Fields: fields}}
}

// parseIdOrAppType parses a plain type id, a `id!(...)` macro invocation
// type, or an application `id<T, ...>` / `id<sid = T, ...>` (named iff the
// first inner token sequence is `id =`).
func (p *parser) parseIdOrAppType(start int) *ast.Type {
	id := p.parseId()

	if p.consume(lexer.Bang) {
		p.expect(lexer.LParen)
		var args []*ast.Meta
		if !p.at(lexer.RParen) {
			args = append(args, p.parseMeta())
			for p.consume(lexer.Comma) {
				args = append(args, p.parseMeta())
			}
		}
		p.expect(lexer.RParen)
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeMacro{Id: id, Args: args}}
	}

	if p.consume(lexer.LAngle) {
		fn := &ast.Type{Span: p.endSpan(start), Data: &ast.TypeID{Id: id}}
		if p.at(lexer.ID) && p.peekAt(1).Kind == lexer.Eq {
			var fields []ast.Field
			for {
				sid := p.expectSid()
				p.expect(lexer.Eq)
				typ := p.parseType()
				fields = append(fields, ast.Field{Sid: sid, Type: typ})
				if !p.consume(lexer.Comma) {
					break
				}
			}
			p.expect(lexer.RAngle)
			return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeAppNamed{Fn: fn, Args: fields}}
		}
		var args []*ast.Type
		if !p.at(lexer.RAngle) {
			args = append(args, p.parseType())
			for p.consume(lexer.Comma) {
				args = append(args, p.parseType())
			}
		}
		p.expect(lexer.RAngle)
		return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeAppAnon{Fn: fn, Args: args}}
	}

	return &ast.Type{Span: p.endSpan(start), Data: &ast.TypeID{Id: id}}
}
