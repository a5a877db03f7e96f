package error

import "testing"

func TestSourceErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *SourceError
		want string
	}{
		{
			name: "bare",
			err:  New(KindLexical, ErrForbiddenTab, 4, 1),
			want: "lexical: tab characters are forbidden in source text",
		},
		{
			name: "with detail",
			err:  New(KindSyntax, ErrUnexpectedToken, 0, 0).WithDetail("RPAREN"),
			want: "syntax: unexpected token: RPAREN",
		},
		{
			name: "with file",
			err:  New(KindDupID, ErrDuplicateID, 10, 3).WithFile("mod/a.oo"),
			want: "mod/a.oo:10: dup_id: duplicate simple identifier in file item table",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListError(t *testing.T) {
	l := List{
		New(KindSyntax, ErrUnexpectedToken, 0, 0),
		New(KindLexical, ErrForbiddenTab, 1, 1),
	}
	got := l.Error()
	if got == "" {
		t.Fatalf("expected non-empty message")
	}
}

func TestLocate(t *testing.T) {
	src := []byte("line one\nline two\nline three")
	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{9, 2, 1},
		{14, 2, 6},
		{18, 3, 1},
	}
	for _, tt := range tests {
		line, col := Locate(src, tt.offset)
		if line != tt.wantLine || col != tt.wantCol {
			t.Errorf("Locate(%d) = (%d, %d), want (%d, %d)", tt.offset, line, col, tt.wantLine, tt.wantCol)
		}
	}
}
