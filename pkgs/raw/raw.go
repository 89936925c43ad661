// Package raw implements the zero-copy span type shared by the lexer,
// event parser, and content validators.
package raw

import (
	"fmt"
	"unicode/utf8"
)

// Source owns the master input buffer. Every Raw handed out by this
// package is a subrange of exactly one Source; Append and Owns compare
// Source pointers to catch spans from two different Sources.
type Source struct {
	text string
}

// NewSource wraps input as the master buffer for a parse.
func NewSource(input string) *Source {
	return &Source{text: input}
}

// Text returns the full input the Source was built from.
func (s *Source) Text() string {
	return s.text
}

// Whole returns a Raw spanning the entire input.
func (s *Source) Whole() Raw {
	return Raw{src: s, start: 0, end: len(s.text)}
}

// Owns reports whether r was built from this Source. Callers that
// need to turn a Raw back into plain offsets (pkgs/document) use this
// to catch a span from a different parse being passed in by mistake.
func (s *Source) Owns(r Raw) bool {
	return r.src == s
}

// Slice returns a Raw spanning input[start:end]. Both offsets must
// land on UTF-8 code-point boundaries; violating this is a caller bug
// and panics, mirroring the teacher's debug-assertion discipline for
// invariants that must never be false in a correct build.
func (s *Source) Slice(start, end int) Raw {
	if start < 0 || end < start || end > len(s.text) {
		panic(fmt.Sprintf("raw: slice [%d:%d] out of bounds for %d-byte source", start, end, len(s.text)))
	}
	if !isBoundary(s.text, start) || !isBoundary(s.text, end) {
		panic(fmt.Sprintf("raw: slice [%d:%d] does not land on a char boundary", start, end))
	}
	return Raw{src: s, start: start, end: end}
}

func isBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	// A byte is a boundary unless it is a UTF-8 continuation byte
	// (the high two bits are 10).
	return s[i]&0xC0 != 0x80
}

// Raw is an opaque, borrow-qualified view into a contiguous byte range
// of a single Source. It never copies; String() slices the master
// buffer.
type Raw struct {
	src        *Source
	start, end int
}

// NewRaw builds a Raw directly from a Source and byte offsets. It
// exists alongside Source.Slice for callers (the lexer) that already
// know the offsets are valid `char` boundaries by construction and
// want to skip the boundary re-check on a hot path; it still enforces
// the bounds and same-origin invariants.
func NewRaw(src *Source, start, end int) Raw {
	if start < 0 || end < start || end > len(src.text) {
		panic(fmt.Sprintf("raw: span [%d:%d] out of bounds for %d-byte source", start, end, len(src.text)))
	}
	return Raw{src: src, start: start, end: end}
}

// Len returns the byte length of the span.
func (r Raw) Len() int { return r.end - r.start }

// IsEmpty reports whether the span is zero-length.
func (r Raw) IsEmpty() bool { return r.start == r.end }

// String returns the slice of the master input this Raw spans. The
// returned string shares the master buffer's backing array: no copy
// happens here.
func (r Raw) String() string { return r.src.text[r.start:r.end] }

// Range returns the half-open byte range [start, end) within the
// master input.
func (r Raw) Range() (int, int) { return r.start, r.end }

// Before returns a zero-length Raw anchored at the start of r. Used to
// mark "expected X here" when the offending element is an absence
// rather than a present token.
func (r Raw) Before() Raw { return Raw{src: r.src, start: r.start, end: r.start} }

// After returns a zero-length Raw anchored at the end of r.
func (r Raw) After() Raw { return Raw{src: r.src, start: r.end, end: r.end} }

// Append returns a Raw spanning from the start of r to the end of
// other. Both must originate from the same Source; violating this is
// a construction bug in the caller and panics rather than silently
// producing a dangling span.
func (r Raw) Append(other Raw) Raw {
	if r.src != other.src {
		panic("raw: Append of spans from different sources")
	}
	start, end := r.start, other.end
	if other.start < start {
		start = other.start
	}
	if r.end > end {
		end = r.end
	}
	return Raw{src: r.src, start: start, end: end}
}

// CharAt returns the Raw spanning exactly the UTF-8 code point
// containing byte offset i relative to r's start, rounding i down to
// the enclosing char boundary first. Validators use this to anchor a
// diagnostic on a single offending character instead of r's whole
// span. An i outside r yields a zero-length Raw at r's end.
func (r Raw) CharAt(i int) Raw {
	s := r.String()
	if i < 0 || i >= len(s) {
		return Raw{src: r.src, start: r.end, end: r.end}
	}
	for i > 0 && s[i]&0xC0 == 0x80 {
		i--
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return Raw{src: r.src, start: r.start + i, end: r.start + i + size}
}

// PointAt returns a zero-length Raw at byte offset i relative to r's
// start, for diagnostics that mark an absence rather than a bad
// character.
func (r Raw) PointAt(i int) Raw {
	return Raw{src: r.src, start: r.start + i, end: r.start + i}
}
