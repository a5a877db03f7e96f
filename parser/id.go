package parser

import (
	"github.com/oo-lang/oofront/ast"
	ooerr "github.com/oo-lang/oofront/error"
	"github.com/oo-lang/oofront/lexer"
)

// parseId parses one or more simple identifiers joined by '::'. mod, dep,
// and magic may root a chain but only when at least one further segment
// follows.
func (p *parser) parseId() *ast.Id {
	start := p.startSpan()
	root := ast.RootNone
	var segs []string

	switch p.peek().Kind {
	case lexer.KwMod:
		p.advance()
		root = ast.RootMod
	case lexer.KwDep:
		p.advance()
		root = ast.RootDep
	case lexer.KwMagic:
		p.advance()
		root = ast.RootMagic
	case lexer.ID:
		segs = append(segs, p.advance().Text)
	default:
		p.errUnexpected(lexer.ID)
	}

	if root != ast.RootNone {
		if !p.consume(lexer.ColonColon) {
			p.errAt(ooerr.ErrKeywordChainStart, p.peek())
		}
		segs = append(segs, p.expectSid())
	}
	for p.consume(lexer.ColonColon) {
		segs = append(segs, p.expectSid())
	}

	return &ast.Id{Span: p.endSpan(start), Root: root, Segments: segs}
}

func (p *parser) expectSidOrKw() string {
	switch p.peek().Kind {
	case lexer.KwMod, lexer.KwDep, lexer.KwMagic:
		return p.advance().Text
	}
	return p.expectSid()
}

func (p *parser) parseUseTree() *ast.UseTree {
	start := p.startSpan()
	sid := p.expectSidOrKw()
	t := &ast.UseTree{Sid: sid}

	switch {
	case p.consume(lexer.KwAs):
		t.As = p.expectSid()
	case p.consume(lexer.ColonColon):
		if p.consume(lexer.LBrace) {
			t.Branch = append(t.Branch, p.parseUseTree())
			for p.consume(lexer.Comma) {
				t.Branch = append(t.Branch, p.parseUseTree())
			}
			p.expect(lexer.RBrace)
		} else {
			t.Next = p.parseUseTree()
		}
	}

	t.Span = p.endSpan(start)
	return t
}
