// Package parser implements the recursive-descent parser: Token stream in,
// *ast.File out, with every node's span set from the leading edge of its
// first token through the end of its last. A buffered one-token-peek
// recursive descent parser recovered at a phase boundary via panic/recover,
// but with no per-production recovery: this front-end never recovers past
// the first error in a file, so only Parse itself recovers.
package parser

import (
	"fmt"

	"github.com/oo-lang/oofront/ast"
	ooerr "github.com/oo-lang/oofront/error"
	"github.com/oo-lang/oofront/lexer"
)

// Parse scans and parses a complete source file into an ast.File.
func Parse(path string, src []byte) (f *ast.File, err error) {
	p := &parser{lex: lexer.New(src), src: src, path: path}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		se, ok := r.(*ooerr.SourceError)
		if !ok {
			panic(r)
		}
		err = se.WithFile(path)
		f = nil
	}()
	f = p.parseFile()
	return f, nil
}

type parser struct {
	lex  *lexer.Lexer
	src  []byte
	path string

	buf  []lexer.Token
	last lexer.Token
}

func (p *parser) fill(n int) {
	for len(p.buf) <= n {
		tok, err := p.lex.Next()
		if err != nil {
			panic(err)
		}
		p.buf = append(p.buf, tok)
	}
}

func (p *parser) peek() lexer.Token        { p.fill(0); return p.buf[0] }
func (p *parser) peekAt(n int) lexer.Token { p.fill(n); return p.buf[n] }

func (p *parser) advance() lexer.Token {
	p.fill(0)
	tok := p.buf[0]
	p.buf = p.buf[1:]
	p.last = tok
	return tok
}

func (p *parser) advanceN(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

func (p *parser) at(k lexer.Kind) bool { return p.peek().Kind == k }

func (p *parser) consume(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k lexer.Kind) lexer.Token {
	if !p.at(k) {
		p.errUnexpected(k)
	}
	return p.advance()
}

func (p *parser) expectSid() string {
	return p.expect(lexer.ID).Text
}

func (p *parser) errUnexpected(want lexer.Kind) {
	tok := p.peek()
	length := tok.Length
	if length == 0 {
		length = 1
	}
	e := ooerr.New(ooerr.KindSyntax, ooerr.ErrUnexpectedToken, tok.Base, length)
	panic(e.WithDetail(fmt.Sprintf("got %s, want %s", tok.Kind, want)))
}

func (p *parser) errAt(cause error, tok lexer.Token) {
	length := tok.Length
	if length == 0 {
		length = 1
	}
	panic(ooerr.New(ooerr.KindSyntax, cause, tok.Base, length))
}

// startSpan returns the beginning of the next token's leading whitespace,
// the start of whatever production is about to be parsed.
func (p *parser) startSpan() int {
	return p.peek().Base
}

// endSpan closes a span at the end of the content of the last consumed
// token.
func (p *parser) endSpan(start int) ast.Span {
	return ast.Span{Start: start, Length: p.last.ContentEnd() - start}
}

func (p *parser) parseFile() *ast.File {
	f := &ast.File{Path: p.path, Source: p.src}
	for !p.at(lexer.EOF) {
		attrs := p.parseAttrs()
		item := p.parseItem()
		f.Items = append(f.Items, item)
		f.ItemAttrs = append(f.ItemAttrs, attrs)
	}
	return f
}

func (p *parser) parseItem() *ast.Item {
	start := p.startSpan()
	pub := p.consume(lexer.KwPub)
	switch {
	case p.consume(lexer.KwUse):
		tree := p.parseUseTree()
		return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemUse{Tree: tree}}
	case p.consume(lexer.KwType):
		sid := p.expectSid()
		p.expect(lexer.Eq)
		typ := p.parseType()
		return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemType{Sid: sid, Type: typ}}
	case p.consume(lexer.KwVal):
		mut := p.consume(lexer.KwMut)
		sid := p.expectSid()
		p.expect(lexer.Eq)
		val := p.parseExpr()
		return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemVal{Mut: mut, Sid: sid, Value: val}}
	case p.consume(lexer.KwFn):
		return p.finishFnItem(start, pub)
	case p.consume(lexer.KwFfi):
		return p.parseFfiItem(start, pub)
	}
	p.errUnexpected(lexer.KwUse)
	return nil
}

func (p *parser) finishFnItem(start int, pub bool) *ast.Item {
	sid := p.expectSid()
	var typeParams []string
	if p.consume(lexer.LAngle) {
		if !p.at(lexer.RAngle) {
			typeParams = append(typeParams, p.expectSid())
			for p.consume(lexer.Comma) {
				typeParams = append(typeParams, p.expectSid())
			}
		}
		p.expect(lexer.RAngle)
		p.expect(lexer.FatArrow)
	}
	p.expect(lexer.LParen)
	var args []ast.Field
	if !p.at(lexer.RParen) {
		args = append(args, p.parseField())
		for p.consume(lexer.Comma) {
			args = append(args, p.parseField())
		}
	}
	p.expect(lexer.RParen)
	var ret *ast.Type
	if p.consume(lexer.Arrow) {
		ret = p.parseType()
	}
	body := p.parseBlock()
	return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemFun{
		Sid: sid, TypeParams: typeParams, Args: args, Ret: ret, Body: body,
	}}
}

func (p *parser) parseField() ast.Field {
	sid := p.expectSid()
	p.expect(lexer.Colon)
	typ := p.parseType()
	return ast.Field{Sid: sid, Type: typ}
}

func (p *parser) parseFfiItem(start int, pub bool) *ast.Item {
	if p.consume(lexer.KwUse) {
		p.expect(lexer.LParen)
		raw := p.captureBalancedParens()
		return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemFfiInclude{Raw: raw}}
	}
	mut := p.consume(lexer.KwMut)
	sid := p.expectSid()
	p.expect(lexer.Colon)
	typ := p.parseType()
	return &ast.Item{Span: p.endSpan(start), Pub: pub, Data: &ast.ItemFfiVal{Mut: mut, Sid: sid, Type: typ}}
}

// captureBalancedParens is called right after the opening '(' of an
// `ffi use(...)` item has been consumed. It reads raw bytes directly out of
// the source buffer rather than through the token stream, since the
// included text is foreign (non-source-language) code that need not lex as
// a valid token sequence, then reseeks the lexer past it.
func (p *parser) captureBalancedParens() string {
	start := p.last.ContentEnd()
	raw, end, ok := scanBalancedParens(p.src, start)
	if !ok {
		panic(ooerr.New(ooerr.KindSyntax, ooerr.ErrUnclosedFfiUse, start, len(p.src)-start))
	}
	p.lex = lexer.New(p.src)
	p.lex.Seek(end)
	p.buf = p.buf[:0]
	p.last = lexer.Token{Base: end}
	return raw
}

func scanBalancedParens(src []byte, start int) (raw string, end int, ok bool) {
	depth := 1
	i := start
	for i < len(src) {
		switch c := src[i]; c {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return string(src[start : i-1]), i, true
			}
		case '"', '\'':
			i++
			for i < len(src) && src[i] != c {
				if src[i] == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				i++
			}
			i++
		default:
			i++
		}
	}
	return "", i, false
}
