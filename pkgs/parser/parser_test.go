package parser

import (
	"testing"

	"github.com/aledsdavies/tomlfront/pkgs/lexer"
	"github.com/aledsdavies/tomlfront/pkgs/raw"
	"github.com/google/go-cmp/cmp"
)

type eventSummary struct {
	Kind   EventKind
	Text   string
	String StringKind
}

func parse(input string) ([]eventSummary, []ParseError) {
	src := raw.NewSource(input)
	toks := lexer.New(src).All()

	var recv CollectingReceiver
	var errs ErrorList
	ParseTokens(toks, &recv, &errs)

	summaries := make([]eventSummary, len(recv.Events))
	for i, ev := range recv.Events {
		summaries[i] = eventSummary{Kind: ev.Kind, Text: ev.Raw.String(), String: ev.String}
	}
	return summaries, errs.Errors
}

func TestParseSimpleKeyValue(t *testing.T) {
	got, errs := parse("foo = 42\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "foo", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "42", StringUnquoted},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStdTableHeader(t *testing.T) {
	got, errs := parse("[a.b]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{StdTableOpen, "[", 0},
		{SimpleKey, "a", StringUnquoted},
		{KeySep, ".", 0},
		{SimpleKey, "b", StringUnquoted},
		{StdTableClose, "]", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArrayTableHeader(t *testing.T) {
	got, errs := parse("[[x]]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{ArrayTableOpen, "[[", 0},
		{SimpleKey, "x", StringUnquoted},
		{ArrayTableClose, "]]", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingValueReportsError(t *testing.T) {
	got, errs := parse("k = \n")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", len(errs), errs)
	}
	if errs[0].Description != "value" {
		t.Errorf("Description = %q, want %q", errs[0].Description, "value")
	}
	want := []eventSummary{
		{SimpleKey, "k", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{ErrorEvent, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStrayRightBracketAtColumnZero(t *testing.T) {
	got, errs := parse("]")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", len(errs), errs)
	}
	if errs[0].Description != "table" {
		t.Errorf("Description = %q, want %q", errs[0].Description, "table")
	}
	want := []eventSummary{
		{ErrorEvent, "]", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnterminatedArrayTable(t *testing.T) {
	got, errs := parse("[[x]\n")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", len(errs), errs)
	}
	if errs[0].Description != "array table" {
		t.Errorf("Description = %q, want %q", errs[0].Description, "array table")
	}
	want := []eventSummary{
		{ArrayTableOpen, "[[", 0},
		{SimpleKey, "x", StringUnquoted},
		{ErrorEvent, "]", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDottedKey(t *testing.T) {
	got, errs := parse("a.b.c = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "a", StringUnquoted},
		{KeySep, ".", 0},
		{SimpleKey, "b", StringUnquoted},
		{KeySep, ".", 0},
		{SimpleKey, "c", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "1", StringUnquoted},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArrayOfValues(t *testing.T) {
	got, errs := parse("a = [1, 2, 3]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "a", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{ArrayOpen, "[", 0},
		{Value, "1", StringUnquoted},
		{ValueSep, ",", 0},
		{Decor, " ", 0},
		{Value, "2", StringUnquoted},
		{ValueSep, ",", 0},
		{Decor, " ", 0},
		{Value, "3", StringUnquoted},
		{ArrayClose, "]", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArraySpanningNewlinesWithComment(t *testing.T) {
	got, errs := parse("a = [\n  1, # one\n  2,\n]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	var kinds []EventKind
	for _, ev := range got {
		kinds = append(kinds, ev.Kind)
	}
	wantKinds := []EventKind{
		SimpleKey, Decor, KeyValSep, Decor, ArrayOpen,
		Decor, Decor, Value, ValueSep, Decor, Decor, Decor, Decor,
		Value, ValueSep, Decor,
		ArrayClose, Decor,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("event kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineTable(t *testing.T) {
	got, errs := parse(`point = { x = 1, y = 2 }` + "\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "point", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{InlineTableOpen, "{", 0},
		{Decor, " ", 0},
		{SimpleKey, "x", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "1", StringUnquoted},
		{ValueSep, ",", 0},
		{Decor, " ", 0},
		{SimpleKey, "y", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "2", StringUnquoted},
		{Decor, " ", 0},
		{InlineTableClose, "}", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyInlineTable(t *testing.T) {
	got, errs := parse("t = {}\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "t", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{InlineTableOpen, "{", 0},
		{InlineTableClose, "}", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBadLineRecoversOnNextLine(t *testing.T) {
	got, errs := parse("= oops\nok = 1\n")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %+v", len(errs), errs)
	}
	want := []eventSummary{
		{ErrorEvent, "=", 0},
		{ErrorEvent, " ", 0},
		{ErrorEvent, "oops", 0},
		{Decor, "\n", 0},
		{SimpleKey, "ok", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "1", StringUnquoted},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuotedKeys(t *testing.T) {
	got, errs := parse(`"a key" = 'a value'` + "\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, `"a key"`, StringBasic},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "'a value'", StringLiteral},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTrailingCommentAfterValue(t *testing.T) {
	got, errs := parse("x = 1 # trailing\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	want := []eventSummary{
		{SimpleKey, "x", StringUnquoted},
		{Decor, " ", 0},
		{KeyValSep, "=", 0},
		{Decor, " ", 0},
		{Value, "1", StringUnquoted},
		{Decor, " ", 0},
		{Decor, "# trailing", 0},
		{Decor, "\n", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	got, errs := parse("")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events for empty input, got %+v", got)
	}
}

func TestFirstErrorSinkKeepsOnlyFirst(t *testing.T) {
	src := raw.NewSource("= a\n= b\n")
	toks := lexer.New(src).All()
	var recv CollectingReceiver
	var sink FirstError
	ParseTokens(toks, &recv, &sink)
	if sink.Error == nil {
		t.Fatalf("expected an error to be recorded")
	}
	// Unexpected for a missing key is a zero-length "before" span: the
	// first error's sits at offset 0, the second's at offset 4.
	if start, end := sink.Error.Unexpected.Range(); start != 0 || end != 0 {
		t.Errorf("kept error Unexpected = [%d:%d], want the first error's [0:0]", start, end)
	}
}

func TestIgnoreErrorsSinkDiscardsEverything(t *testing.T) {
	src := raw.NewSource("= a\n")
	toks := lexer.New(src).All()
	var recv CollectingReceiver
	ParseTokens(toks, &recv, IgnoreErrors{})
	// Reaching here without a panic is the assertion: IgnoreErrors
	// must tolerate any ParseError shape.
}
