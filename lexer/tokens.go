package lexer

// Kind identifies the lexical category of a Token. Multi-char operators
// that are ambiguous with a shorter prefix of themselves — everything built
// out of '<', '>', and a trailing '=' — are deliberately NOT formed here;
// the lexer emits the single-char tokens and the parser combines them by
// peeking: "<<=" lexes as LANGLE, LANGLE, EQ, not a single SHIFT_L_ASSIGN
// token.
type Kind int

const (
	EOF Kind = iota
	Invalid

	ID
	Underscore
	Int
	Float
	String

	// Keywords, recognised by comparing the ID slice against this closed
	// set.
	KwUse
	KwMod
	KwDep
	KwMagic
	KwGoto
	KwLabel
	KwBreak
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwLoop
	KwCase
	KwAs
	KwVal
	KwFn
	KwType
	KwMacro
	KwMut
	KwPub
	KwFfi
	KwSizeOf
	KwAlignOf
	KwSelf  // reserved, not otherwise meaningful to this front-end
	KwSuper // reserved, not otherwise meaningful to this front-end

	// Single-char punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semi
	Hash
	At
	Tilde
	Bang
	Plus
	Minus
	Star
	Slash
	Percent
	Pipe
	Amp
	Caret
	LAngle
	RAngle
	Eq
	Dot
	Dollar

	// Unambiguous two-char operators, formed directly by one-byte
	// lookahead.
	ColonColon
	Arrow    // ->
	FatArrow // =>
	AmpAmp
	PipePipe
	EqEq
	BangEq
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	Ellipsis // ...
)

var kindNames = map[Kind]string{
	EOF: "EOF", Invalid: "INVALID",
	ID: "ID", Underscore: "UNDERSCORE", Int: "INT", Float: "FLOAT", String: "STRING",
	KwUse: "use", KwMod: "mod", KwDep: "dep", KwMagic: "magic", KwGoto: "goto",
	KwLabel: "label", KwBreak: "break", KwReturn: "return", KwIf: "if", KwElse: "else",
	KwWhile: "while", KwLoop: "loop", KwCase: "case", KwAs: "as", KwVal: "val",
	KwFn: "fn", KwType: "type", KwMacro: "macro", KwMut: "mut", KwPub: "pub",
	KwFfi: "ffi", KwSizeOf: "sizeof", KwAlignOf: "alignof", KwSelf: "self", KwSuper: "super",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Colon: ":", Semi: ";", Hash: "#", At: "@", Tilde: "~", Bang: "!",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Pipe: "|", Amp: "&",
	Caret: "^", LAngle: "<", RAngle: ">", Eq: "=", Dot: ".", Dollar: "$",
	ColonColon: "::", Arrow: "->", FatArrow: "=>", AmpAmp: "&&", PipePipe: "||",
	EqEq: "==", BangEq: "!=", PlusEq: "+=", MinusEq: "-=", StarEq: "*=",
	SlashEq: "/=", PercentEq: "%=", AmpEq: "&=", PipeEq: "|=", CaretEq: "^=",
	Ellipsis: "...",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

// keywords is the closed set recognised by post-hoc comparison against the
// identifier slice. `self` and `super` are reserved but otherwise inert at
// this layer.
var keywords = map[string]Kind{
	"use": KwUse, "mod": KwMod, "dep": KwDep, "magic": KwMagic, "goto": KwGoto,
	"label": KwLabel, "break": KwBreak, "return": KwReturn, "if": KwIf, "else": KwElse,
	"while": KwWhile, "loop": KwLoop, "case": KwCase, "as": KwAs, "val": KwVal,
	"fn": KwFn, "type": KwType, "macro": KwMacro, "mut": KwMut, "pub": KwPub,
	"ffi": KwFfi, "sizeof": KwSizeOf, "alignof": KwAlignOf, "self": KwSelf, "super": KwSuper,
}
