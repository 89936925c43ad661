// Package checker wires the lexer, event parser, and content
// validators into the single "check a document" operation both
// cmd/tomlcheck and cmd/tomllsp need: lex, parse structure, and
// validate every key and string value's content, collecting every
// diagnostic produced along the way into one stream.
package checker

import (
	"github.com/aledsdavies/tomlfront/pkgs/document"
	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
	"github.com/aledsdavies/tomlfront/pkgs/validate"
)

// Check lexes and parses doc's input, validating every key and
// quoted-string value lexeme along the way, and returns every
// ParseError produced by either stage. It never returns a Go error:
// malformed TOML is reported through the returned diagnostics, not
// through a failure return, matching the core's sink-based error
// model.
func Check(doc *document.Document) []parser.ParseError {
	var errs parser.ErrorList

	toks := doc.Lex().All()

	recv := &contentReceiver{sink: &errs}
	parser.ParseTokens(toks, recv, &errs)

	return errs.Errors
}

// contentReceiver forwards structural events nowhere (it only needs
// the ones carrying lexeme content) while running the matching
// validate function over every key and quoted-string value,
// reporting decode diagnostics into the same sink the structural
// parse uses. Bare values (integers, floats, booleans, datetimes) are
// never validated here: their grammar is typed-value coercion, which
// is out of scope for this core.
type contentReceiver struct {
	parser.NoopReceiver
	sink parser.ErrorSink
}

func (r *contentReceiver) validateString(kind parser.StringKind, span raw.Raw) {
	switch kind {
	case parser.StringLiteral:
		validate.LiteralString(span, r.sink)
	case parser.StringMlLiteral:
		validate.MlLiteralString(span, r.sink)
	case parser.StringBasic:
		validate.BasicString(span, r.sink)
	case parser.StringMlBasic:
		validate.MlBasicString(span, r.sink)
	case parser.StringUnquoted:
		validate.UnquotedKey(span, r.sink)
	}
}

func (r *contentReceiver) SimpleKey(span raw.Raw, kind parser.StringKind) {
	r.validateString(kind, span)
}

func (r *contentReceiver) Value(span raw.Raw, kind parser.StringKind) {
	if kind == parser.StringUnquoted {
		return
	}
	r.validateString(kind, span)
}
