package validate

import (
	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// isUnquotedChar is unquoted-key = 1*( ALPHA / DIGIT / %x2D / %x5F ).
func isUnquotedChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') || b == '-' || b == '_'
}

// UnquotedKey validates an Atom token used as a bare key: every byte
// must be a letter, digit, `-`, or `_`.
//
//	unquoted-key = 1*( ALPHA / DIGIT / %x2D / %x5F )
func UnquotedKey(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	for i := 0; i < len(s); i++ {
		if !isUnquotedChar(s[i]) {
			error.ReportError(parser.ParseError{
				Context:     r,
				Description: "unquoted-key",
				Expected: []parser.Expected{
					parser.ExpectedDescription("letters"),
					parser.ExpectedDescription("numbers"),
					parser.ExpectedLiteral("-"),
					parser.ExpectedLiteral("_"),
				},
				Unexpected: r.CharAt(i),
			})
		}
	}
	return s
}
