package parser

import "github.com/aledsdavies/tomlfront/pkgs/raw"

// Expected describes one thing the parser would have accepted at the
// point of a ParseError. It is a closed two-case sum: either a literal
// piece of syntax or a free-form description, mirroring the source
// grammar's Literal/Description split.
type Expected struct {
	literal     string
	description string
	isLiteral   bool
}

// ExpectedLiteral builds an Expected naming an exact token spelling,
// e.g. ExpectedLiteral("=").
func ExpectedLiteral(s string) Expected {
	return Expected{literal: s, isLiteral: true}
}

// ExpectedDescription builds an Expected naming a class of input,
// e.g. ExpectedDescription("a key").
func ExpectedDescription(s string) Expected {
	return Expected{description: s}
}

// IsLiteral reports whether this Expected names an exact spelling
// rather than a free-form description.
func (e Expected) IsLiteral() bool { return e.isLiteral }

// String renders the Expected the way a diagnostic wants to show it:
// a literal is backtick-quoted, a description is shown bare.
func (e Expected) String() string {
	if e.isLiteral {
		return "`" + e.literal + "`"
	}
	return e.description
}

// ParseError reports one diagnostic: a fixed description plus the
// span it applies to, what would have been accepted there, and what
// was found instead. ParseError carries no owned strings: Context and
// Unexpected are spans into the original source, and Description is a
// static message, so reporting an error never builds a string.
type ParseError struct {
	// Context is the span the error concerns, often wider than
	// Unexpected (e.g. the whole malformed table header).
	Context raw.Raw
	// Description is a short static summary of what went wrong.
	Description string
	// Expected lists what the parser would have accepted at this
	// point. May be empty when no single alternative applies.
	Expected []Expected
	// Unexpected is the specific span that triggered the error. It is
	// a zero-length Raw (see raw.Raw.Before/After) when the problem is
	// an absence rather than a wrong token.
	Unexpected raw.Raw
}

// ErrorSink is the capability a caller hands the parser to receive
// diagnostics. Parsing never stops at the first error: every call
// site decides for itself whether to ignore, keep one, or collect all
// of them by choosing an implementation.
type ErrorSink interface {
	ReportError(err ParseError)
}

// IgnoreErrors is an ErrorSink that discards every error, for callers
// that only want the event stream and don't care about diagnostics.
type IgnoreErrors struct{}

// ReportError implements ErrorSink by doing nothing.
func (IgnoreErrors) ReportError(ParseError) {}

// FirstError is an ErrorSink that keeps only the first error reported
// and silently drops the rest.
type FirstError struct {
	Error *ParseError
}

// ReportError implements ErrorSink, recording err only if nothing has
// been recorded yet.
func (s *FirstError) ReportError(err ParseError) {
	if s.Error == nil {
		e := err
		s.Error = &e
	}
}

// ErrorList is an ErrorSink that accumulates every error reported, in
// the order they occurred.
type ErrorList struct {
	Errors []ParseError
}

// ReportError implements ErrorSink by appending err.
func (s *ErrorList) ReportError(err ParseError) {
	s.Errors = append(s.Errors, err)
}
