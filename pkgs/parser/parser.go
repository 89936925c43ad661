// Package parser turns a lexed token stream into a flat stream of
// structural Events. Like the lexer below it, the event parser never
// aborts: a malformed expression is skipped up to the next newline and
// parsing resumes on the following line, so one bad line never hides
// the diagnostics for the rest of the document.
//
// Only the order of events is validated here, never their content or
// cross-document semantics (duplicate keys, for instance, are out of
// scope); the pkgs/validate validators own content-level rules.
package parser

import (
	"github.com/aledsdavies/tomlfront/pkgs/lexer"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

// ParseTokens walks tokens in order, dispatching structural events to
// receiver and diagnostics to error. It is the single entry point for
// the event stage; lexing is assumed to already have happened (see
// pkgs/document, whose Lex produces the token stream).
func ParseTokens(tokens []lexer.Token, receiver EventReceiver, error ErrorSink) {
	cur := &cursor{tokens: tokens}
	document(cur, receiver, error)
}

// cursor is a forward-only view over a token slice, mirroring the
// reference parser's use of a shrinking slice as its input stream.
type cursor struct {
	tokens []lexer.Token
}

func (c *cursor) next() (lexer.Token, bool) {
	if len(c.tokens) == 0 {
		return lexer.Token{}, false
	}
	tok := c.tokens[0]
	c.tokens = c.tokens[1:]
	return tok, true
}

func (c *cursor) peek() (lexer.Token, bool) {
	if len(c.tokens) == 0 {
		return lexer.Token{}, false
	}
	return c.tokens[0], true
}

// nextTokenIf consumes and returns the next token only if it has kind.
func nextTokenIf(c *cursor, kind lexer.Kind) (lexer.Token, bool) {
	tok, ok := c.peek()
	if !ok || tok.Kind != kind {
		return lexer.Token{}, false
	}
	c.next()
	return tok, true
}

// document is the top-level dispatch:
//
//	toml = expression *( newline expression )
//	expression =  ws [ comment ]
//	expression =/ ws keyval ws [ comment ]
//	expression =/ ws table ws [ comment ]
func document(c *cursor, receiver EventReceiver, error ErrorSink) {
	for {
		tok, ok := c.next()
		if !ok {
			return
		}
		switch tok.Kind {
		case lexer.LeftSquareBracket:
			onTable(c, tok, receiver, error)
		case lexer.RightSquareBracket:
			onMissingOnStdTable(c, tok, receiver, error)
		case lexer.LiteralString:
			onExpressionKey(c, tok, StringLiteral, receiver, error)
		case lexer.BasicString:
			onExpressionKey(c, tok, StringBasic, receiver, error)
		case lexer.MlLiteralString:
			onExpressionKey(c, tok, StringMlLiteral, receiver, error)
		case lexer.MlBasicString:
			onExpressionKey(c, tok, StringMlBasic, receiver, error)
		case lexer.Atom:
			onExpressionKey(c, tok, StringUnquoted, receiver, error)
		case lexer.Dot, lexer.Equals, lexer.Comma, lexer.LeftCurlyBracket, lexer.RightCurlyBracket:
			onMissingExpressionKey(c, tok, receiver, error)
		case lexer.Whitespace, lexer.Newline:
			onDecor(tok, receiver)
		case lexer.Comment:
			onComment(c, tok, receiver, error)
		}
	}
}

// onTable starts a table from its open bracket. Eats to EOL on
// success or failure alike.
//
//	table = std-table / array-table
//	std-table = std-table-open key std-table-close
//	array-table = array-table-open key array-table-close
func onTable(c *cursor, openTok lexer.Token, receiver EventReceiver, error ErrorSink) {
	isArrayTable := false
	openRaw := openTok.Raw
	if secondOpen, ok := nextTokenIf(c, lexer.LeftSquareBracket); ok {
		openRaw = openTok.Raw.Append(secondOpen.Raw)
		receiver.ArrayTableOpen(openRaw)
		isArrayTable = true
	} else {
		receiver.StdTableOpen(openRaw)
	}

	lastKeyTok, hasKey := tableKey(c, openRaw, receiver, error)

	optWhitespace(c, receiver)

	success := false
	if hasKey {
		if closeTok, ok := nextTokenIf(c, lexer.RightSquareBracket); ok {
			if isArrayTable {
				if secondClose, ok := nextTokenIf(c, lexer.RightSquareBracket); ok {
					receiver.ArrayTableClose(closeTok.Raw.Append(secondClose.Raw))
					success = true
				} else {
					receiver.Error(closeTok.Raw)
					error.ReportError(ParseError{
						Context:     openTok.Raw.Append(closeTok.Raw),
						Description: "array table",
						Expected:    []Expected{ExpectedLiteral("]")},
						Unexpected:  closeTok.Raw.After(),
					})
				}
			} else {
				receiver.StdTableClose(closeTok.Raw)
				success = true
			}
		} else {
			context := openTok.Raw.Append(lastKeyTok.Raw)
			if isArrayTable {
				error.ReportError(ParseError{
					Context:     context,
					Description: "array table",
					Expected:    []Expected{ExpectedLiteral("]]")},
					Unexpected:  lastKeyTok.Raw.After(),
				})
			} else {
				error.ReportError(ParseError{
					Context:     context,
					Description: "table",
					Expected:    []Expected{ExpectedLiteral("]")},
					Unexpected:  lastKeyTok.Raw.After(),
				})
			}
		}
	}

	if success {
		wsCommentNl(c, receiver, error)
	} else {
		ignoreToNewline(c, receiver)
	}
}

// onExpressionKey starts a key-value expression from a key-compatible
// token. On a malformed key it skips to end of line; on a well-formed
// key it goes on to require `=` and a value.
func onExpressionKey(c *cursor, keyTok lexer.Token, kind StringKind, receiver EventReceiver, error ErrorSink) {
	lastKeyTok, ok := onKey(c, keyTok, kind, receiver, error)
	if !ok {
		ignoreToNewline(c, receiver)
		return
	}
	onKeyValSep(c, keyTok, lastKeyTok, receiver, error)
}

// onKeyValSep requires `=` followed by a value, reporting against the
// span from the first key token through whatever was last accepted.
//
//	keyval = key keyval-sep val
//	keyval-sep = ws %x3D ws ; =
func onKeyValSep(c *cursor, firstKeyTok, lastKeyTok lexer.Token, receiver EventReceiver, error ErrorSink) {
	eqTok, ok := nextTokenIf(c, lexer.Equals)
	if !ok {
		error.ReportError(ParseError{
			Context:     firstKeyTok.Raw.Append(lastKeyTok.Raw),
			Description: "key-value pair",
			Expected:    []Expected{ExpectedLiteral("=")},
			Unexpected:  lastKeyTok.Raw.After(),
		})
		ignoreToNewline(c, receiver)
		return
	}
	receiver.KeyValSep(eqTok.Raw)

	optWhitespace(c, receiver)

	valTok, ok := c.next()
	if !ok {
		error.ReportError(ParseError{
			Context:     firstKeyTok.Raw.Append(eqTok.Raw),
			Description: "key-value pair",
			Expected:    []Expected{ExpectedDescription("value")},
			Unexpected:  eqTok.Raw.After(),
		})
		return
	}
	if !onValue(c, valTok, receiver, error) {
		ignoreToNewline(c, receiver)
		return
	}
	wsCommentNl(c, receiver, error)
}

// onValue dispatches a single value token:
//
//	val = string / boolean / array / inline-table / date-time / float / integer
//
// Booleans, integers, floats, and date-times are all lexed as Atom
// and are not distinguished here (no validator in pkgs/validate
// classifies them either); the event stream only records that a
// value occupies this span.
func onValue(c *cursor, tok lexer.Token, receiver EventReceiver, error ErrorSink) bool {
	switch tok.Kind {
	case lexer.LiteralString:
		receiver.Value(tok.Raw, StringLiteral)
		return true
	case lexer.BasicString:
		receiver.Value(tok.Raw, StringBasic)
		return true
	case lexer.MlLiteralString:
		receiver.Value(tok.Raw, StringMlLiteral)
		return true
	case lexer.MlBasicString:
		receiver.Value(tok.Raw, StringMlBasic)
		return true
	case lexer.Atom:
		receiver.Value(tok.Raw, StringUnquoted)
		return true
	case lexer.LeftSquareBracket:
		return onArray(c, tok, receiver, error)
	case lexer.LeftCurlyBracket:
		return onInlineTable(c, tok, receiver, error)
	default:
		receiver.Error(tok.Raw)
		error.ReportError(ParseError{
			Context:     tok.Raw,
			Description: "value",
			Expected:    []Expected{ExpectedDescription("value")},
			Unexpected:  tok.Raw,
		})
		return false
	}
}

// onArray parses an array body after its opening bracket has already
// been consumed by the caller.
//
//	array = array-open [ array-values ] ws-comment-newline array-close
//	array-values =  ws-comment-newline val ws-comment-newline array-sep array-values
//	array-values =/ ws-comment-newline val ws-comment-newline [ array-sep ]
//
// Unlike a top-level expression, decor inside an array may freely
// include newlines and comments between elements; arrayTrivia absorbs
// all of it before each value and separator is looked for.
func onArray(c *cursor, openTok lexer.Token, receiver EventReceiver, error ErrorSink) bool {
	receiver.ArrayOpen(openTok.Raw)

	for {
		arrayTrivia(c, receiver)

		tok, ok := c.peek()
		if !ok {
			error.ReportError(ParseError{
				Context:     openTok.Raw,
				Description: "array",
				Expected:    []Expected{ExpectedLiteral("]")},
				Unexpected:  openTok.Raw.After(),
			})
			return false
		}
		if tok.Kind == lexer.RightSquareBracket {
			c.next()
			receiver.ArrayClose(tok.Raw)
			return true
		}

		c.next()
		if !onValue(c, tok, receiver, error) {
			return false
		}

		arrayTrivia(c, receiver)

		sepTok, ok := c.peek()
		if !ok {
			error.ReportError(ParseError{
				Context:     openTok.Raw.Append(tok.Raw),
				Description: "array",
				Expected:    []Expected{ExpectedLiteral(","), ExpectedLiteral("]")},
				Unexpected:  tok.Raw.After(),
			})
			return false
		}
		switch sepTok.Kind {
		case lexer.Comma:
			c.next()
			receiver.ValueSep(sepTok.Raw)
		case lexer.RightSquareBracket:
			c.next()
			receiver.ArrayClose(sepTok.Raw)
			return true
		default:
			c.next()
			receiver.Error(sepTok.Raw)
			error.ReportError(ParseError{
				Context:     openTok.Raw.Append(sepTok.Raw),
				Description: "array",
				Expected:    []Expected{ExpectedLiteral(","), ExpectedLiteral("]")},
				Unexpected:  sepTok.Raw,
			})
			return false
		}
	}
}

// arrayTrivia consumes whitespace, newlines, and comments between
// array elements, the one place in the grammar where a value is
// allowed to span multiple lines.
func arrayTrivia(c *cursor, receiver EventReceiver) {
	for {
		tok, ok := c.peek()
		if !ok {
			return
		}
		switch tok.Kind {
		case lexer.Whitespace, lexer.Newline:
			c.next()
			onDecor(tok, receiver)
		case lexer.Comment:
			c.next()
			onDecor(tok, receiver)
		default:
			return
		}
	}
}

// onInlineTable parses an inline table body after its opening brace
// has already been consumed by the caller.
//
//	inline-table = inline-table-open [ inline-table-keyvals ] inline-table-close
//	inline-table-keyvals = keyval [ inline-table-sep inline-table-keyvals ]
//
// Unlike a standalone expression or an array, an inline table's
// keyvals and separators must stay on one line: no comments and no
// bare newlines are permitted inside, so only Whitespace is skipped
// between elements.
func onInlineTable(c *cursor, openTok lexer.Token, receiver EventReceiver, error ErrorSink) bool {
	receiver.InlineTableOpen(openTok.Raw)

	optWhitespace(c, receiver)
	if closeTok, ok := nextTokenIf(c, lexer.RightCurlyBracket); ok {
		receiver.InlineTableClose(closeTok.Raw)
		return true
	}

	for {
		keyTok, ok := c.next()
		if !ok {
			error.ReportError(ParseError{
				Context:     openTok.Raw,
				Description: "inline table",
				Expected:    []Expected{ExpectedDescription("key")},
				Unexpected:  openTok.Raw.After(),
			})
			return false
		}
		kind, ok := keyStringKind(keyTok.Kind)
		if !ok {
			receiver.Error(keyTok.Raw)
			error.ReportError(ParseError{
				Context:     keyTok.Raw,
				Description: "inline table",
				Expected:    []Expected{ExpectedDescription("key")},
				Unexpected:  keyTok.Raw,
			})
			return false
		}
		if _, ok := onKey(c, keyTok, kind, receiver, error); !ok {
			return false
		}
		if !inlineKeyVal(c, keyTok, receiver, error) {
			return false
		}

		optWhitespace(c, receiver)
		sepTok, ok := c.next()
		if !ok {
			error.ReportError(ParseError{
				Context:     openTok.Raw,
				Description: "inline table",
				Expected:    []Expected{ExpectedLiteral(","), ExpectedLiteral("}")},
				Unexpected:  openTok.Raw.After(),
			})
			return false
		}
		switch sepTok.Kind {
		case lexer.Comma:
			receiver.ValueSep(sepTok.Raw)
			optWhitespace(c, receiver)
		case lexer.RightCurlyBracket:
			receiver.InlineTableClose(sepTok.Raw)
			return true
		default:
			receiver.Error(sepTok.Raw)
			error.ReportError(ParseError{
				Context:     sepTok.Raw,
				Description: "inline table",
				Expected:    []Expected{ExpectedLiteral(","), ExpectedLiteral("}")},
				Unexpected:  sepTok.Raw,
			})
			return false
		}
	}
}

// keyStringKind maps a key-compatible token kind to its StringKind,
// reporting ok=false for anything that cannot start a key.
func keyStringKind(kind lexer.Kind) (StringKind, bool) {
	switch kind {
	case lexer.LiteralString:
		return StringLiteral, true
	case lexer.BasicString:
		return StringBasic, true
	case lexer.MlLiteralString:
		return StringMlLiteral, true
	case lexer.MlBasicString:
		return StringMlBasic, true
	case lexer.Atom:
		return StringUnquoted, true
	default:
		return 0, false
	}
}

// inlineKeyVal requires `=` then a value for one inline-table member,
// exactly like onKeyValSep, but returns plain success instead of
// consuming trailing end-of-line decor: an inline table's members
// never own their own newline, the caller's comma/brace search does.
func inlineKeyVal(c *cursor, firstKeyTok lexer.Token, receiver EventReceiver, error ErrorSink) bool {
	eqTok, ok := nextTokenIf(c, lexer.Equals)
	if !ok {
		unexpected := firstKeyTok.Raw.After()
		if tok, hasTok := c.peek(); hasTok {
			unexpected = tok.Raw
		}
		error.ReportError(ParseError{
			Context:     firstKeyTok.Raw,
			Description: "inline table",
			Expected:    []Expected{ExpectedLiteral("=")},
			Unexpected:  unexpected,
		})
		return false
	}
	receiver.KeyValSep(eqTok.Raw)

	optWhitespace(c, receiver)

	valTok, ok := c.next()
	if !ok {
		error.ReportError(ParseError{
			Context:     firstKeyTok.Raw.Append(eqTok.Raw),
			Description: "inline table",
			Expected:    []Expected{ExpectedDescription("value")},
			Unexpected:  eqTok.Raw.After(),
		})
		return false
	}
	return onValue(c, valTok, receiver, error)
}

// tableKey parses the key inside a table header. Eats the leading
// whitespace.
func tableKey(c *cursor, previousRaw raw.Raw, receiver EventReceiver, error ErrorSink) (lexer.Token, bool) {
	for {
		tok, ok := c.next()
		if !ok {
			break
		}
		switch tok.Kind {
		case lexer.Dot, lexer.RightSquareBracket, lexer.Comment, lexer.Equals,
			lexer.Comma, lexer.LeftSquareBracket, lexer.LeftCurlyBracket,
			lexer.RightCurlyBracket, lexer.Newline:
			onMissingTableKey(tok, receiver, error)
			return lexer.Token{}, false
		case lexer.Whitespace:
			onDecor(tok, receiver)
			continue
		}
		kind, ok := keyStringKind(tok.Kind)
		if !ok {
			onMissingTableKey(tok, receiver, error)
			return lexer.Token{}, false
		}
		return onKey(c, tok, kind, receiver, error)
	}

	error.ReportError(ParseError{
		Context:     previousRaw,
		Description: "table",
		Expected:    []Expected{ExpectedDescription("key")},
		Unexpected:  previousRaw.After(),
	})
	return lexer.Token{}, false
}

// onKey starts a (possibly dotted) key from its first token, emitting
// a SimpleKey event per segment and a KeySep event per `.`. Returns
// the last key token consumed on success. Swallows trailing
// Whitespace after the final segment.
func onKey(c *cursor, keyTok lexer.Token, kind StringKind, receiver EventReceiver, error ErrorSink) (lexer.Token, bool) {
	receiver.SimpleKey(keyTok.Raw, kind)

	optWhitespace(c, receiver)

	success := keyTok
	ok := true
	for {
		dotTok, isDot := nextTokenIf(c, lexer.Dot)
		if !isDot {
			break
		}
		receiver.KeySep(dotTok.Raw)

		optWhitespace(c, receiver)

		tok, hasNext := c.next()
		if !hasNext {
			error.ReportError(ParseError{
				Context:     keyTok.Raw.Append(dotTok.Raw),
				Description: "dotted key",
				Expected:    []Expected{ExpectedDescription("key")},
				Unexpected:  dotTok.Raw.After(),
			})
			ok = false
			break
		}
		segKind, isKey := keyStringKind(tok.Kind)
		if !isKey {
			receiver.Error(tok.Raw)
			error.ReportError(ParseError{
				Context:     keyTok.Raw.Append(dotTok.Raw),
				Description: "dotted key",
				Expected:    []Expected{ExpectedDescription("key")},
				Unexpected:  tok.Raw.Before(),
			})
			ok = false
			break
		}
		success = tok
		receiver.SimpleKey(tok.Raw, segKind)

		optWhitespace(c, receiver)
	}

	if !ok {
		return lexer.Token{}, false
	}
	return success, true
}

// onDecor reports a single decor token (whitespace, newline, or
// comment) unconditionally.
func onDecor(tok lexer.Token, receiver EventReceiver) {
	receiver.Decor(tok.Raw)
}

// optWhitespace consumes one Whitespace token, if present.
func optWhitespace(c *cursor, receiver EventReceiver) {
	if tok, ok := nextTokenIf(c, lexer.Whitespace); ok {
		onDecor(tok, receiver)
	}
}

// wsCommentNl parses end-of-line decor: optional whitespace, an
// optional comment, then the newline (or EOF). Any token that doesn't
// belong there is reported as decor-adjacent noise and aggregated
// into a single error spanning the whole bad run, rather than one
// error per unexpected byte.
//
//	ws-comment-newline = *( wschar / [ comment ] newline )
func wsCommentNl(c *cursor, receiver EventReceiver, error ErrorSink) {
	var first, last, firstBad, lastBad lexer.Token
	var haveAny, haveBad bool

loop:
	for {
		tok, ok := c.next()
		if !ok {
			break
		}
		if !haveAny {
			first = tok
			haveAny = true
		}
		last = tok
		switch tok.Kind {
		case lexer.Dot, lexer.Equals, lexer.Comma, lexer.LeftSquareBracket,
			lexer.RightSquareBracket, lexer.LeftCurlyBracket, lexer.RightCurlyBracket,
			lexer.LiteralString, lexer.BasicString, lexer.MlLiteralString,
			lexer.MlBasicString, lexer.Atom:
			if !haveBad {
				firstBad = tok
				haveBad = true
			}
			lastBad = tok
			receiver.Error(tok.Raw)
		case lexer.Comment:
			onComment(c, tok, receiver, error)
			break loop
		case lexer.Whitespace:
			onDecor(tok, receiver)
			continue
		case lexer.Newline:
			onDecor(tok, receiver)
			break loop
		}
	}

	if haveAny && haveBad {
		error.ReportError(ParseError{
			Context:     first.Raw.Append(last.Raw),
			Description: "newline",
			Expected:    nil,
			Unexpected:  firstBad.Raw.Append(lastBad.Raw),
		})
	}
}

// onComment starts end-of-line decor from a Comment token.
func onComment(c *cursor, commentTok lexer.Token, receiver EventReceiver, error ErrorSink) {
	onDecor(commentTok, receiver)

	var first, last, firstBad, lastBad lexer.Token
	var haveAny, haveBad bool

	for {
		tok, ok := c.next()
		if !ok {
			break
		}
		if !haveAny {
			first = tok
			haveAny = true
		}
		last = tok
		switch tok.Kind {
		case lexer.Newline:
			onDecor(tok, receiver)
			if haveBad {
				error.ReportError(ParseError{
					Context:     first.Raw.Append(last.Raw),
					Description: "comment",
					Expected:    nil,
					Unexpected:  firstBad.Raw.Append(lastBad.Raw),
				})
			}
			return
		default:
			if !haveBad {
				firstBad = tok
				haveBad = true
			}
			lastBad = tok
			receiver.Error(tok.Raw)
		}
	}

	if haveBad {
		error.ReportError(ParseError{
			Context:     commentTok.Raw,
			Description: "comment",
			Expected:    nil,
			Unexpected:  firstBad.Raw.Append(lastBad.Raw),
		})
	}
	if haveAny && haveBad {
		error.ReportError(ParseError{
			Context:     first.Raw.Append(last.Raw),
			Description: "comment",
			Expected:    nil,
			Unexpected:  firstBad.Raw.Append(lastBad.Raw),
		})
	}
}

// ignoreToNewline is the shared recovery path: don't bother making
// sense of anything until the next newline.
func ignoreToNewline(c *cursor, receiver EventReceiver) {
	for {
		tok, ok := c.next()
		if !ok {
			return
		}
		if tok.Kind == lexer.Newline {
			onDecor(tok, receiver)
			return
		}
		receiver.Error(tok.Raw)
	}
}

func onMissingTableKey(tok lexer.Token, receiver EventReceiver, error ErrorSink) {
	receiver.Error(tok.Raw)
	error.ReportError(ParseError{
		Context:     tok.Raw,
		Description: "table",
		Expected:    []Expected{ExpectedDescription("key")},
		Unexpected:  tok.Raw.Before(),
	})
}

func onMissingExpressionKey(c *cursor, tok lexer.Token, receiver EventReceiver, error ErrorSink) {
	receiver.Error(tok.Raw)
	error.ReportError(ParseError{
		Context:     tok.Raw,
		Description: "key-value pair",
		Expected:    []Expected{ExpectedDescription("key")},
		Unexpected:  tok.Raw.Before(),
	})
	ignoreToNewline(c, receiver)
}

func onMissingOnStdTable(c *cursor, tok lexer.Token, receiver EventReceiver, error ErrorSink) {
	receiver.Error(tok.Raw)
	error.ReportError(ParseError{
		Context:     tok.Raw,
		Description: "table",
		Expected:    []Expected{ExpectedLiteral("[")},
		Unexpected:  tok.Raw.Before(),
	})
	wsCommentNl(c, receiver, error)
}
