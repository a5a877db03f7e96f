package lexer

import (
	"testing"

	ooerr "github.com/oo-lang/oofront/error"
)

func allKinds(t *testing.T, src string) []Kind {
	t.Helper()
	l := New([]byte(src))
	var kinds []Kind
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == EOF {
			return kinds
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	got := allKinds(t, "val mut pub fn type macro _foo _")
	want := []Kind{KwVal, KwMut, KwPub, KwFn, KwType, KwMacro, ID, Underscore, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftAssignIsThreeTokens(t *testing.T) {
	// "<<=" lexes as LANGLE, LANGLE, EQ: the lexer never forms a shift-assign
	// token, so the parser is the one that recombines these.
	got := allKinds(t, "<<=")
	want := []Kind{LAngle, LAngle, Eq, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	l := New([]byte("1.0e-0"))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != Float {
		t.Fatalf("Kind = %v, want Float", tok.Kind)
	}

	for _, src := range []string{"1.", "1.0e"} {
		l := New([]byte(src))
		_, err := l.Next()
		if err == nil {
			t.Errorf("%q: expected error, got none", src)
		}
	}

	// "1e" is not a float literal: an exponent is only read after a
	// fractional part, so the lexer yields Int "1" and leaves "e" for the
	// next token. The parser is what rejects the pair.
	l = New([]byte("1e"))
	tok, err = l.Next()
	if err != nil || tok.Kind != Int || tok.ContentLength != 1 {
		t.Errorf("%q: got (%v, len %d, %v), want Int of length 1", "1e", tok.Kind, tok.ContentLength, err)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New([]byte(`"a\nb\"\\A"`))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\nb\"\\A"
	if tok.StrValue != want {
		t.Errorf("StrValue = %q, want %q", tok.StrValue, want)
	}
}

func TestStringLowerHexRejected(t *testing.T) {
	l := New([]byte("\"\\uabcd\""))
	_, err := l.Next()
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := err.(*ooerr.SourceError)
	if !ok {
		t.Fatalf("error is not *ooerr.SourceError: %T", err)
	}
	if se.Cause != ooerr.ErrLowerHex {
		t.Errorf("Cause = %v, want ErrLowerHex", se.Cause)
	}
}

func TestForbiddenTab(t *testing.T) {
	l := New([]byte("val\tx"))
	_, err := l.Next() // "val"
	if err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	_, err = l.Next()
	se, ok := err.(*ooerr.SourceError)
	if !ok || se.Cause != ooerr.ErrForbiddenTab {
		t.Fatalf("expected ErrForbiddenTab, got %v", err)
	}
}

func TestLengthAccounting(t *testing.T) {
	src := "  val x = 1 // trailing\n"
	l := New([]byte(src))
	total := 0
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		total += tok.Length
		if tok.Kind == EOF {
			break
		}
	}
	if total != len(src) {
		t.Errorf("sum of token lengths = %d, want %d", total, len(src))
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New([]byte(""))
	tok1, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok2, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok1.Kind != EOF || tok2.Kind != EOF {
		t.Fatalf("expected EOF twice, got %v, %v", tok1.Kind, tok2.Kind)
	}
}

func TestContentSpanExcludesLeadingWhitespace(t *testing.T) {
	l := New([]byte("   id"))
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.ContentStart() != 3 || tok.ContentEnd() != 5 {
		t.Errorf("content span = [%d,%d), want [3,5)", tok.ContentStart(), tok.ContentEnd())
	}
}
