package lexer

import (
	"fmt"

	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// Kind is the coarse lexical category of a Token. The set is closed:
// every byte of input produces exactly one of these.
type Kind int

const (
	// Dot is either a dotted-key separator or a float's decimal point;
	// the event parser disambiguates by context.
	Dot Kind = iota
	// Equals is the key-value separator `=`.
	Equals
	// Comma separates array/inline-table values.
	Comma
	// LeftSquareBracket opens either an array or a table header.
	LeftSquareBracket
	// RightSquareBracket closes either an array or a table header.
	RightSquareBracket
	// LeftCurlyBracket opens an inline table.
	LeftCurlyBracket
	// RightCurlyBracket closes an inline table.
	RightCurlyBracket
	// Whitespace is a maximal run of space/tab.
	Whitespace
	// Comment runs from `#` through but not including the line break.
	Comment
	// Newline is `\n`, `\r\n`, or a stray `\r` (validated later).
	Newline
	// LiteralString is a single-line `'...'`.
	LiteralString
	// BasicString is a single-line `"..."`.
	BasicString
	// MlLiteralString is `'''...'''`.
	MlLiteralString
	// MlBasicString is `"""..."""`.
	MlBasicString
	// Atom is any other maximal run of bytes not starting another
	// token kind.
	Atom
)

var kindNames = [...]string{
	Dot:                "Dot",
	Equals:             "Equals",
	Comma:              "Comma",
	LeftSquareBracket:  "LeftSquareBracket",
	RightSquareBracket: "RightSquareBracket",
	LeftCurlyBracket:   "LeftCurlyBracket",
	RightCurlyBracket:  "RightCurlyBracket",
	Whitespace:         "Whitespace",
	Comment:            "Comment",
	Newline:            "Newline",
	LiteralString:      "LiteralString",
	BasicString:        "BasicString",
	MlLiteralString:    "MlLiteralString",
	MlBasicString:      "MlBasicString",
	Atom:               "Atom",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Description renders the kind the way a diagnostic wants to name it,
// e.g. "`.`" for punctuation and a plain noun for everything else.
func (k Kind) Description() string {
	switch k {
	case Dot:
		return "`.`"
	case Equals:
		return "`=`"
	case Comma:
		return "`,`"
	case LeftSquareBracket:
		return "`[`"
	case RightSquareBracket:
		return "`]`"
	case LeftCurlyBracket:
		return "`{`"
	case RightCurlyBracket:
		return "`}`"
	case Whitespace:
		return "whitespace"
	case Comment:
		return "comment"
	case Newline:
		return "newline"
	case LiteralString:
		return "literal string"
	case BasicString:
		return "basic string"
	case MlLiteralString:
		return "multi-line literal string"
	case MlBasicString:
		return "multi-line basic string"
	case Atom:
		return "token"
	default:
		return "unknown"
	}
}

// Token is a single lexeme: its kind plus the raw span it occupies.
type Token struct {
	Kind Kind
	Raw  raw.Raw
}

func (t Token) String() string {
	return t.Raw.String()
}
