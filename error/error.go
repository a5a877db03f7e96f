// Package error defines the diagnostic taxonomy shared by every phase of the
// front-end: the lexer, the parser, the conditional-compilation filter, the
// loader, the binder, and the kind checker. It is named `error` (not `errs`)
// as a small, dependency-free package holding nothing but sentinel errors
// and a carrier type; importers alias it as `ooerr`.
package error

import "fmt"

// Kind classifies a SourceError by the phase and condition that raised it.
type Kind string

const (
	KindSyntax          = Kind("syntax")
	KindLexical         = Kind("lexical")
	KindFile            = Kind("file")
	KindImport          = Kind("import")
	KindDupID           = Kind("dup_id")
	KindWrongTypeArgs   = Kind("wrong_type_args")
	KindHigherOrderArg  = Kind("higher_order_arg")
	KindNamedTypeAppSid = Kind("named_type_app_sid")
	KindBindingNotType  = Kind("binding_not_type")
	KindBindingNotPub   = Kind("binding_not_pub")
)

// SourceError is the single carrier type returned by every phase. Start and
// Length are byte offsets into the owning file's source buffer (an ast.Span
// flattened to two ints so this package never imports ast). Detail carries
// the offending token kind, identifier, or node description that goes with
// Kind.
type SourceError struct {
	Kind     Kind
	Cause    error
	FilePath string
	Start    int
	Length   int
	Detail   string
}

func (e *SourceError) Error() string {
	if e.FilePath == "" {
		if e.Detail == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
		}
		return fmt.Sprintf("%s: %v: %s", e.Kind, e.Cause, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s:%d: %s: %v", e.FilePath, e.Start, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s:%d: %s: %v: %s", e.FilePath, e.Start, e.Kind, e.Cause, e.Detail)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// List aggregates multiple SourceErrors. Every phase in this front-end stops
// at the first error and returns a single *SourceError; no phase entry
// point, and neither the loader nor the conformance tester, builds a List.
type List []*SourceError

func (l List) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	msg := fmt.Sprintf("%d errors:", len(l))
	for _, e := range l {
		msg += "\n\t" + e.Error()
	}
	return msg
}

// New constructs a SourceError from a sentinel Cause.
func New(kind Kind, cause error, start, length int) *SourceError {
	return &SourceError{Kind: kind, Cause: cause, Start: start, Length: length}
}

// WithDetail returns a copy of e with Detail set, the way the parser's
// errUnexpected names the found and wanted token kinds and the binder names
// the offending identifier.
func (e *SourceError) WithDetail(detail string) *SourceError {
	c := *e
	c.Detail = detail
	return &c
}

// WithFile returns a copy of e with FilePath set, the way parser.Parse
// annotates every error it returns and loader.LoadPath annotates file-system
// errors.
func (e *SourceError) WithFile(path string) *SourceError {
	c := *e
	c.FilePath = path
	return &c
}
