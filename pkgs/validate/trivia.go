// Package validate holds the content-level validators: stateless
// functions that take the raw span behind one token (as classified by
// pkgs/lexer and pkgs/parser) and decode or check it against the
// grammar rule for that token kind. A validator never aborts; it
// always returns its best-effort decoded value even while reporting
// diagnostics for the parts that don't fit.
package validate

import (
	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// Whitespace validates a Whitespace token. The lexer only ever
// produces runs of space/tab for this kind, so there is nothing left
// to check; it exists so every token kind has a validator entry
// point.
//
//	ws = *wschar
//	wschar =  %x20 ; Space
//	wschar =/ %x09 ; Horizontal tab
func Whitespace(r raw.Raw, _ parser.ErrorSink) string {
	return r.String()
}

// nonEOL is non-eol = %x09 / %x20-7E / non-ascii.
func nonEOL(b byte) bool {
	return b == 0x09 || (b >= 0x20 && b <= 0x7E) || b >= 0x80
}

// Comment validates a Comment token's body: everything after `#` must
// be a non-eol byte.
//
//	comment-start-symbol = %x23 ; #
//	non-ascii = %x80-D7FF / %xE000-10FFFF
//	non-eol = %x09 / %x20-7E / non-ascii
//	comment = comment-start-symbol *non-eol
func Comment(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	body := s
	if len(s) > 0 && s[0] == '#' {
		body = s[1:]
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "comment",
			Expected:    []parser.Expected{parser.ExpectedLiteral("#")},
			Unexpected:  r.Before(),
		})
	}

	for i := 0; i < len(body); i++ {
		if !nonEOL(body[i]) {
			offset := i + (len(s) - len(body))
			error.ReportError(parser.ParseError{
				Context:     r,
				Description: "comment",
				Unexpected:  r.CharAt(offset),
			})
		}
	}

	return s
}

// Newline validates a Newline token: it must be exactly `\n` or
// `\r\n`. A lone `\r` (which the lexer still emits as one token) is
// reported but its text is returned unchanged.
//
//	newline =  %x0A     ; LF
//	newline =/ %x0D.0A  ; CRLF
func Newline(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	switch s {
	case "\n", "\r\n":
	case "\r":
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "newline",
			Expected:    []parser.Expected{parser.ExpectedDescription("linefeed (`\\n`)")},
			Unexpected:  r.After(),
		})
	default:
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "newline",
			Expected:    []parser.Expected{parser.ExpectedDescription("linefeed (`\\n`)")},
			Unexpected:  r,
		})
	}
	return s
}
