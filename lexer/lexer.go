// Package lexer implements the front-end's byte-level scanner: a
// deterministic Moore-style DFA over the source buffer (whole source held
// in memory as a []byte, state advanced by an explicit cursor) but
// hand-written rather than driven by a compiled pattern table, since this
// language's token set is small and fixed enough that a generated DFA would
// be pure overhead.
package lexer

import (
	"strconv"
	"strings"

	ooerr "github.com/oo-lang/oofront/error"
)

// Token is a (kind, total length) pair plus the length of its actual
// lexeme: the next scan resumes at Base+Length, and the token's textual
// slice is Base+(Length-ContentLength) .. Base+Length.
type Token struct {
	Kind Kind

	// Base is the absolute offset where this token's leading whitespace
	// (and any absorbed line comments) begins.
	Base int
	// Length is the total number of bytes consumed from Base, including
	// leading whitespace/comments.
	Length int
	// ContentLength is the length of the lexeme itself, the trailing
	// ContentLength bytes of the Length bytes from Base.
	ContentLength int

	// Text is the materialized lexeme for identifier-shaped tokens (ID,
	// Underscore, keywords) and for Int, Float, and String tokens; empty
	// for punctuation and EOF.
	Text string

	IntValue   uint64
	FloatValue float64
	StrValue   string // escape-processed content, String tokens only
}

// ContentStart and ContentEnd bound the token's lexeme within the source
// buffer.
func (t Token) ContentStart() int { return t.Base + t.Length - t.ContentLength }
func (t Token) ContentEnd() int   { return t.Base + t.Length }

// Lexer scans a single in-memory source buffer. It holds no other state:
// there is no asynchrony and no suspension point.
type Lexer struct {
	src []byte
	pos int
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src) || l.src[l.pos] == 0
}

// Seek repositions the cursor. Used by the parser after it has scanned a
// raw ffi use(...) span directly out of the source buffer, bypassing
// tokenization for that span entirely.
func (l *Lexer) Seek(pos int) {
	l.pos = pos
}

// Next returns the next token, advancing the cursor past it. Called again
// after EOF has been reached, it returns EOF again without advancing:
// scanning past the end of the buffer is idempotent.
func (l *Lexer) Next() (Token, error) {
	base := l.pos
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	contentStart := l.pos
	if l.eof() {
		return Token{Kind: EOF, Base: base, Length: l.pos - base}, nil
	}

	b := l.src[l.pos]
	var tok Token
	var err error
	switch {
	case isIdentStart(b):
		tok, err = l.lexIdent()
	case b >= '0' && b <= '9':
		tok, err = l.lexNumber()
	case b == '"':
		tok, err = l.lexString()
	case b == '\t':
		err = l.errAt(ooerr.ErrForbiddenTab, 1)
	case b == '\r':
		err = l.errAt(ooerr.ErrForbiddenCR, 1)
	default:
		tok, err = l.lexOperator()
	}
	if err != nil {
		return Token{}, err
	}

	tok.Base = base
	tok.ContentLength = l.pos - contentStart
	tok.Length = l.pos - base
	return tok, nil
}

func (l *Lexer) errAt(cause error, length int) error {
	return ooerr.New(ooerr.KindLexical, cause, l.pos, length)
}

// skipTrivia absorbs spaces, newlines, and line comments into the leading
// whitespace of the next token. A tab or carriage return between tokens is
// an error; the body of a line comment is skipped up to its newline without
// checking its bytes.
func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == 0:
			return nil
		case b == ' ' || b == '\n':
			l.pos++
		case b == '\t':
			return l.errAt(ooerr.ErrForbiddenTab, 1)
		case b == '\r':
			return l.errAt(ooerr.ErrForbiddenCR, 1)
		case b == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			l.pos += 2
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != 0 {
				l.pos++
			}
		default:
			return nil
		}
	}
	return nil
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (l *Lexer) lexIdent() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if text == "_" {
		return Token{Kind: Underscore, Text: text}, nil
	}
	if kw, ok := keywords[text]; ok {
		return Token{Kind: kw, Text: text}, nil
	}
	return Token{Kind: ID, Text: text}, nil
}

func (l *Lexer) lexNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}

	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		digitsStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
		if l.pos == digitsStart {
			return Token{}, l.errAt(ooerr.ErrFloatNoDecimals, 0)
		}
		if l.pos < len(l.src) && l.src[l.pos] == 'e' {
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == '-' {
				l.pos++
			}
			expStart := l.pos
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
				l.pos++
			}
			if l.pos == expStart {
				return Token{}, l.errAt(ooerr.ErrFloatNoExponent, 0)
			}
		}
	}

	text := string(l.src[start:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, l.errAt(err, l.pos-start)
		}
		return Token{Kind: Float, Text: text, FloatValue: f}, nil
	}

	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return Token{}, l.errAt(ooerr.ErrIntOverflow, l.pos-start)
	}
	return Token{Kind: Int, Text: text, IntValue: n}, nil
}

func isUpperHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F')
}

func isLowerHex(b byte) bool {
	return b >= 'a' && b <= 'f'
}

func (l *Lexer) lexString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == 0 {
			return Token{}, l.errAt(ooerr.ErrEOFInString, l.pos-start)
		}
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return Token{Kind: String, Text: string(l.src[start:l.pos]), StrValue: b.String()}, nil
		case '\t':
			return Token{}, l.errAt(ooerr.ErrForbiddenTab, 1)
		case '\r':
			return Token{}, l.errAt(ooerr.ErrForbiddenCR, 1)
		case '\\':
			l.pos++
			if l.pos >= len(l.src) || l.src[l.pos] == 0 {
				return Token{}, l.errAt(ooerr.ErrEOFInEscape, l.pos-start)
			}
			esc := l.src[l.pos]
			switch esc {
			case '\\':
				b.WriteByte('\\')
				l.pos++
			case '"':
				b.WriteByte('"')
				l.pos++
			case '0':
				b.WriteByte(0)
				l.pos++
			case 'n':
				b.WriteByte('\n')
				l.pos++
			case 'u':
				l.pos++
				r, err := l.lexHexEscape(4)
				if err != nil {
					return Token{}, err
				}
				b.WriteRune(r)
			case 'U':
				l.pos++
				r, err := l.lexHexEscape(8)
				if err != nil {
					return Token{}, err
				}
				b.WriteRune(r)
			default:
				return Token{}, l.errAt(ooerr.ErrBadEscape, 2)
			}
		default:
			if c < 0x20 || c >= 0x7f {
				return Token{}, l.errAt(ooerr.ErrUnknownByte, 1)
			}
			b.WriteByte(c)
			l.pos++
		}
	}
}

// lexHexEscape consumes exactly n hex digits after \u or \U and returns the
// decoded code point. Lower-case hex digits and non-hex digits each raise a
// distinct error.
func (l *Lexer) lexHexEscape(n int) (rune, error) {
	var v rune
	for i := 0; i < n; i++ {
		if l.pos >= len(l.src) || l.src[l.pos] == 0 {
			return 0, l.errAt(ooerr.ErrEOFInEscape, 0)
		}
		c := l.src[l.pos]
		switch {
		case isUpperHex(c):
			v = v<<4 | rune(hexVal(c))
		case isLowerHex(c):
			return 0, l.errAt(ooerr.ErrLowerHex, 1)
		default:
			return 0, l.errAt(ooerr.ErrNonHex, 1)
		}
		l.pos++
	}
	return v, nil
}

func hexVal(c byte) byte {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	return c - 'A' + 10
}

// lexOperator dispatches single-char punctuation and the unambiguous
// two/three-char operators that a single byte of lookahead can resolve.
// Everything in the `<`/`>` family stays single-char; the parser combines
// it.
func (l *Lexer) lexOperator() (Token, error) {
	b := l.src[l.pos]
	peek := byte(0)
	if l.pos+1 < len(l.src) {
		peek = l.src[l.pos+1]
	}

	two := func(k Kind) (Token, error) {
		l.pos += 2
		return Token{Kind: k}, nil
	}
	one := func(k Kind) (Token, error) {
		l.pos++
		return Token{Kind: k}, nil
	}

	switch b {
	case '(':
		return one(LParen)
	case ')':
		return one(RParen)
	case '{':
		return one(LBrace)
	case '}':
		return one(RBrace)
	case '[':
		return one(LBracket)
	case ']':
		return one(RBracket)
	case ',':
		return one(Comma)
	case ';':
		return one(Semi)
	case '#':
		return one(Hash)
	case '$':
		return one(Dollar)
	case '@':
		return one(At)
	case '~':
		return one(Tilde)
	case '<':
		return one(LAngle)
	case '>':
		return one(RAngle)
	case ':':
		if peek == ':' {
			return two(ColonColon)
		}
		return one(Colon)
	case '-':
		if peek == '>' {
			return two(Arrow)
		}
		if peek == '=' {
			return two(MinusEq)
		}
		return one(Minus)
	case '=':
		if peek == '>' {
			return two(FatArrow)
		}
		if peek == '=' {
			return two(EqEq)
		}
		return one(Eq)
	case '&':
		if peek == '&' {
			return two(AmpAmp)
		}
		if peek == '=' {
			return two(AmpEq)
		}
		return one(Amp)
	case '|':
		if peek == '|' {
			return two(PipePipe)
		}
		if peek == '=' {
			return two(PipeEq)
		}
		return one(Pipe)
	case '!':
		if peek == '=' {
			return two(BangEq)
		}
		return one(Bang)
	case '+':
		if peek == '=' {
			return two(PlusEq)
		}
		return one(Plus)
	case '*':
		if peek == '=' {
			return two(StarEq)
		}
		return one(Star)
	case '/':
		if peek == '=' {
			return two(SlashEq)
		}
		return one(Slash)
	case '%':
		if peek == '=' {
			return two(PercentEq)
		}
		return one(Percent)
	case '^':
		if peek == '=' {
			return two(CaretEq)
		}
		return one(Caret)
	case '.':
		if peek == '.' && l.pos+2 < len(l.src) && l.src[l.pos+2] == '.' {
			l.pos += 3
			return Token{Kind: Ellipsis}, nil
		}
		return one(Dot)
	default:
		return Token{}, l.errAt(ooerr.ErrUnknownByte, 1)
	}
}
