package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// isLiteralChar is literal-char = %x09 / %x20-26 / %x28-7E / non-ascii,
// shared by both the single- and multi-line literal-string forms.
func isLiteralChar(b byte) bool {
	return b == 0x09 || (b >= 0x20 && b <= 0x26) || (b >= 0x28 && b <= 0x7E) || b >= 0x80
}

// LiteralString validates and returns the content of a single-line
// `'...'` token, with the delimiting quotes stripped. Since a literal
// string never has escapes, this is always a substring slice of the
// master buffer: no allocation.
//
//	literal-string = apostrophe *literal-char apostrophe
//	apostrophe = %x27
func LiteralString(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	body := s
	bodyStart := 0
	if len(body) > 0 && body[0] == '\'' {
		body = body[1:]
		bodyStart = 1
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "literal string",
			Expected:    []parser.Expected{parser.ExpectedLiteral("'")},
			Unexpected:  r.Before(),
		})
	}
	if len(body) > 0 && body[len(body)-1] == '\'' {
		body = body[:len(body)-1]
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "literal string",
			Expected:    []parser.Expected{parser.ExpectedLiteral("'")},
			Unexpected:  r.After(),
		})
	}

	for i := 0; i < len(body); i++ {
		if !isLiteralChar(body[i]) {
			error.ReportError(parser.ParseError{
				Context:     r,
				Description: "literal string",
				Unexpected:  r.CharAt(bodyStart + i),
			})
		}
	}
	return body
}

// MlLiteralString validates and returns the content of a `'''...'''`
// token. The grammar trims exactly one leading newline right after
// the opening delimiter (so `'''\nfoo'''` and `'''foo'''` both yield
// "foo"). Only the final three apostrophes are stripped as the closing
// delimiter: up to two apostrophes right before it (which the lexer
// absorbs into the token, capped at two, see pkgs/lexer) are kept as
// content.
//
//	ml-literal-string = ml-literal-string-delim [ newline ] ml-literal-body ml-literal-string-delim
//	ml-literal-body = *mll-content *( mll-quotes 1*mll-content ) [ mll-quotes ]
//	mll-content = mll-char / newline
func MlLiteralString(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	rest := s
	offset := 0
	if strings.HasPrefix(rest, "'''") {
		rest = rest[3:]
		offset = 3
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "multi-line literal string",
			Expected:    []parser.Expected{parser.ExpectedLiteral("'")},
			Unexpected:  r.Before(),
		})
	}
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		rest = rest[2:]
		offset += 2
	case strings.HasPrefix(rest, "\n"):
		rest = rest[1:]
		offset += 1
	}

	body := rest
	if strings.HasSuffix(body, "'''") {
		body = body[:len(body)-3]
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "multi-line literal string",
			Expected:    []parser.Expected{parser.ExpectedLiteral("'")},
			Unexpected:  r.After(),
		})
		body = strings.TrimRight(body, "'")
	}

	for i := 0; i < len(body); i++ {
		b := body[i]
		switch {
		case b == '\'' || b == '\n':
		case b == '\r':
			if i+1 >= len(body) || body[i+1] != '\n' {
				error.ReportError(parser.ParseError{
					Context:     r,
					Description: "multi-line literal string",
					Expected:    []parser.Expected{parser.ExpectedDescription("`\\n`")},
					Unexpected:  r.CharAt(offset + i + 1),
				})
			}
		default:
			if !isLiteralChar(b) {
				error.ReportError(parser.ParseError{
					Context:     r,
					Description: "multi-line literal string",
					Unexpected:  r.CharAt(offset + i),
				})
			}
		}
	}
	return body
}

// isBasicUnescaped is basic-unescaped = wschar / %x21 / %x23-5B / %x5D-7E / non-ascii,
// i.e. every basic-string content byte except `"`, `\`, and control
// characters.
func isBasicUnescaped(b byte) bool {
	return b == ' ' || b == '\t' || b == 0x21 ||
		(b >= 0x23 && b <= 0x5B) || (b >= 0x5D && b <= 0x7E) || b >= 0x80
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}

// decodeHexEscape reads exactly n hex digits from the front of s and
// decodes them as a Unicode scalar value. It reports ok=false (and
// consumes nothing) if there are fewer than n hex digits or the value
// isn't a valid scalar value (e.g. a surrogate half).
func decodeHexEscape(s string, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}
	for i := 0; i < n; i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
	}
	val, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(val)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}

// decodeEscape decodes one `\`-led escape sequence starting at
// body[i] (body[i] == '\\'), writing the decoded character(s) to b
// and returning the number of bytes of body consumed. On a malformed
// escape it reports a diagnostic and substitutes a single space: an
// unknown escape letter is consumed together with its backslash, and
// an invalid hex payload consumes the backslash and its u/U marker but
// leaves the bad digits for the next pass to flag on their own. A
// backslash at the very end of body (whose following quote was taken
// as the closing delimiter) is reported and decoded as `"`.
func decodeEscape(b *strings.Builder, ctx raw.Raw, bodyOffset int, body string, i int, description string, error parser.ErrorSink) int {
	if i+1 >= len(body) {
		error.ReportError(parser.ParseError{
			Context:     ctx,
			Description: description,
			Unexpected:  ctx.PointAt(bodyOffset + i + 1),
		})
		b.WriteByte('"')
		return 1
	}

	switch id := body[i+1]; id {
	case 'b':
		b.WriteByte(0x08)
		return 2
	case 'f':
		b.WriteByte(0x0C)
		return 2
	case 'n':
		b.WriteByte('\n')
		return 2
	case 'r':
		b.WriteByte('\r')
		return 2
	case 't':
		b.WriteByte('\t')
		return 2
	case '\\':
		b.WriteByte('\\')
		return 2
	case '"':
		b.WriteByte('"')
		return 2
	case 'u':
		if r, ok := decodeHexEscape(body[i+2:], 4); ok {
			b.WriteRune(r)
			return 2 + 4
		}
		error.ReportError(parser.ParseError{
			Context:     ctx,
			Description: description,
			Expected:    []parser.Expected{parser.ExpectedDescription("unicode 4-digit hex code")},
			Unexpected:  ctx.PointAt(bodyOffset + i + 2),
		})
		b.WriteByte(' ')
		return 2
	case 'U':
		if r, ok := decodeHexEscape(body[i+2:], 8); ok {
			b.WriteRune(r)
			return 2 + 8
		}
		error.ReportError(parser.ParseError{
			Context:     ctx,
			Description: description,
			Expected:    []parser.Expected{parser.ExpectedDescription("unicode 8-digit hex code")},
			Unexpected:  ctx.PointAt(bodyOffset + i + 2),
		})
		b.WriteByte(' ')
		return 2
	default:
		error.ReportError(parser.ParseError{
			Context:     ctx,
			Description: description,
			Expected: []parser.Expected{
				parser.ExpectedLiteral("b"), parser.ExpectedLiteral("f"), parser.ExpectedLiteral("n"),
				parser.ExpectedLiteral("r"), parser.ExpectedLiteral("t"), parser.ExpectedLiteral(`\`),
				parser.ExpectedLiteral(`"`), parser.ExpectedLiteral("u"), parser.ExpectedLiteral("U"),
			},
			Unexpected: ctx.CharAt(bodyOffset + i),
		})
		b.WriteByte(' ')
		_, size := utf8.DecodeRuneInString(body[i+1:])
		return 1 + size
	}
}

// BasicString validates and decodes the content of a single-line
// `"..."` token, with quotes stripped and escapes resolved. When the
// body contains no backslash and no byte outside basic-unescaped, the
// returned string is a substring slice of the master buffer (no
// allocation); only the presence of an escape or a stray raw control
// byte forces building a new string.
//
//	basic-string = quotation-mark *basic-char quotation-mark
//	basic-char = basic-unescaped / escaped
func BasicString(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	body := s
	bodyStart := 0
	if len(body) > 0 && body[0] == '"' {
		body = body[1:]
		bodyStart = 1
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "basic string",
			Expected:    []parser.Expected{parser.ExpectedLiteral(`"`)},
			Unexpected:  r.Before(),
		})
	}
	if len(body) > 0 && body[len(body)-1] == '"' {
		body = body[:len(body)-1]
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "basic string",
			Expected:    []parser.Expected{parser.ExpectedLiteral(`"`)},
			Unexpected:  r.After(),
		})
	}

	return decodeBasicBody(r, bodyStart, body, "basic string", error)
}

func decodeBasicBody(ctx raw.Raw, bodyOffset int, body string, description string, error parser.ErrorSink) string {
	needsDecode := false
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' || !isBasicUnescaped(body[i]) {
			needsDecode = true
			break
		}
	}
	if !needsDecode {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '\\':
			i += decodeEscape(&b, ctx, bodyOffset, body, i, description, error)
		case isBasicUnescaped(c):
			b.WriteByte(c)
			i++
		default:
			error.ReportError(parser.ParseError{
				Context:     ctx,
				Description: description,
				Unexpected:  ctx.CharAt(bodyOffset + i),
			})
			b.WriteByte(' ')
			i++
		}
	}
	return b.String()
}

// mlbEscapedNewline recognizes `\`-ws-newline-ws* (a ml-basic-string
// line continuation) starting at body[i] == '\\'. It returns the
// index just past the whole construct and ok=true if one is present;
// the construct contributes nothing to the decoded output.
//
//	mlb-escaped-nl = escape ws newline *( wschar / newline )
func mlbEscapedNewline(body string, i int) (int, bool) {
	j := i + 1
	for j < len(body) && isWSCharByte(body[j]) {
		j++
	}
	switch {
	case j < len(body) && body[j] == '\n':
		j++
	case j+1 < len(body) && body[j] == '\r' && body[j+1] == '\n':
		j += 2
	default:
		return 0, false
	}
	for {
		switch {
		case j < len(body) && isWSCharByte(body[j]):
			j++
		case j < len(body) && body[j] == '\n':
			j++
		case j+1 < len(body) && body[j] == '\r' && body[j+1] == '\n':
			j += 2
		default:
			return j, true
		}
	}
}

func isWSCharByte(b byte) bool { return b == ' ' || b == '\t' }

// MlBasicString validates and decodes the content of a `"""..."""`
// token: quotes stripped, one leading newline trimmed, escapes
// resolved, and `\`-newline line continuations collapsed away
// entirely. A bare `\r` not followed by `\n` is reported but kept as
// a literal carriage return in the output (it isn't an escape, so
// there's nothing sensible to substitute).
//
//	ml-basic-string = ml-basic-string-delim [ newline ] ml-basic-body ml-basic-string-delim
//	ml-basic-body = *mlb-content *( mlb-quotes 1*mlb-content ) [ mlb-quotes ]
//	mlb-content = mlb-char / newline / mlb-escaped-nl
func MlBasicString(r raw.Raw, error parser.ErrorSink) string {
	s := r.String()
	rest := s
	offset := 0
	if strings.HasPrefix(rest, `"""`) {
		rest = rest[3:]
		offset = 3
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "multi-line basic string",
			Expected:    []parser.Expected{parser.ExpectedLiteral(`"`)},
			Unexpected:  r.Before(),
		})
	}
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		rest = rest[2:]
		offset += 2
	case strings.HasPrefix(rest, "\n"):
		rest = rest[1:]
		offset += 1
	}

	body := rest
	if strings.HasSuffix(body, `"""`) {
		body = body[:len(body)-3]
	} else {
		error.ReportError(parser.ParseError{
			Context:     r,
			Description: "multi-line basic string",
			Expected:    []parser.Expected{parser.ExpectedLiteral(`"`)},
			Unexpected:  r.After(),
		})
		body = strings.TrimRight(body, `"`)
	}

	return decodeMlBasicBody(r, offset, body, error)
}

func decodeMlBasicBody(ctx raw.Raw, bodyOffset int, body string, error parser.ErrorSink) string {
	const description = "multi-line basic string"

	needsDecode := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' || c == '\r' || !(isBasicUnescaped(c) || c == '"' || c == '\n') {
			needsDecode = true
			break
		}
	}
	if !needsDecode {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				b.WriteString("\r\n")
				i += 2
			} else {
				error.ReportError(parser.ParseError{
					Context:     ctx,
					Description: description,
					Expected:    []parser.Expected{parser.ExpectedDescription("linefeed (`\\n`)")},
					Unexpected:  ctx.PointAt(bodyOffset + i + 1),
				})
				b.WriteByte('\r')
				i++
			}
		case c == '\\':
			if skipTo, ok := mlbEscapedNewline(body, i); ok {
				i = skipTo
				continue
			}
			i += decodeEscape(&b, ctx, bodyOffset, body, i, description, error)
		case isBasicUnescaped(c) || c == '"' || c == '\n':
			b.WriteByte(c)
			i++
		default:
			error.ReportError(parser.ParseError{
				Context:     ctx,
				Description: description,
				Unexpected:  ctx.CharAt(bodyOffset + i),
			})
			b.WriteByte(' ')
			i++
		}
	}
	return b.String()
}
