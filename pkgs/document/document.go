// Package document ties an input buffer to the pkgs/lexer and
// pkgs/raw types that scan it, and converts a Raw span back to plain
// byte offsets for callers (a CLI, an editor integration) that need
// to report a location without depending on the raw package's types.
package document

import (
	"github.com/aledsdavies/tomlfront/pkgs/lexer"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// Document owns one input buffer and the Source built over it.
type Document struct {
	src   *raw.Source
	input string
}

// New wraps input as a Document ready to lex and parse.
func New(input string) *Document {
	return &Document{src: raw.NewSource(input), input: input}
}

// Lex returns a fresh Lexer positioned at the start of the input.
// Callers that need to re-scan (an editor re-lexing after an edit)
// just call this again; Document itself holds no scan position.
func (d *Document) Lex() *lexer.Lexer {
	return lexer.New(d.src)
}

// Source returns the raw.Source backing this Document, for code that
// constructs Raw spans directly (the event parser, the validators).
func (d *Document) Source() *raw.Source {
	return d.src
}

// Input returns the full text the Document was built from.
func (d *Document) Input() string {
	return d.input
}

// Span returns the half-open byte range [start, end) a Raw covers
// within this Document's input.
//
// It panics if r did not come from this Document's input: that is a
// caller bug (mixing spans from two different parses), not a
// recoverable condition.
func (d *Document) Span(r raw.Raw) (start, end int) {
	if !d.src.Owns(r) {
		panic("document: span was not taken from this document's input")
	}
	return r.Range()
}

// LineCol converts a byte offset into this Document's input to a
// 1-indexed line and column, both counted in bytes. Used to render
// `line:col` style diagnostics.
func (d *Document) LineCol(offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(d.input); i++ {
		if d.input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
