package diag

import (
	"strings"
	"testing"

	"github.com/aledsdavies/tomlfront/pkgs/document"
	"github.com/aledsdavies/tomlfront/pkgs/parser"
)

func firstError(t *testing.T, input string) (*document.Document, parser.ParseError) {
	t.Helper()
	doc := document.New(input)
	var errs parser.ErrorList
	parser.ParseTokens(doc.Lex().All(), parser.NoopReceiver{}, &errs)
	if len(errs.Errors) == 0 {
		t.Fatalf("input %q produced no errors", input)
	}
	return doc, errs.Errors[0]
}

func TestFromParseErrorResolvesLineAndColumn(t *testing.T) {
	doc, err := firstError(t, "a = 1\nkey\n")
	d := FromParseError(doc, "config.toml", err)
	if d.File != "config.toml" {
		t.Errorf("File = %q, want %q", d.File, "config.toml")
	}
	if d.Line != 2 {
		t.Errorf("Line = %d, want 2", d.Line)
	}
	if d.Length < 1 {
		t.Errorf("Length = %d, want >= 1", d.Length)
	}
}

func TestFromParseErrorIncludesExpected(t *testing.T) {
	doc, err := firstError(t, "key\n")
	d := FromParseError(doc, "t.toml", err)
	if len(d.Expected) == 0 {
		t.Fatalf("Expected is empty, want at least one alternative")
	}
	if !strings.Contains(d.Message, "expected") {
		t.Errorf("Message = %q, want it to mention what was expected", d.Message)
	}
}

func TestFormatTerminalIncludesCaretLine(t *testing.T) {
	doc, err := firstError(t, "key\n")
	d := FromParseError(doc, "t.toml", err)
	out := FormatTerminal(d, doc.Input(), true)
	if !strings.Contains(out, "t.toml:1:") {
		t.Errorf("FormatTerminal output missing file:line location: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("FormatTerminal output missing caret: %q", out)
	}
}

func TestFormatTerminalNoColorStripsEscapes(t *testing.T) {
	doc, err := firstError(t, "key\n")
	d := FromParseError(doc, "t.toml", err)
	out := FormatTerminal(d, doc.Input(), true)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("FormatTerminal with noColor still emitted an ANSI escape: %q", out)
	}
}

func TestFormatJSONReportsStatusAndCount(t *testing.T) {
	doc, err := firstError(t, "key\n")
	d := FromParseError(doc, "t.toml", err)
	out, jsonErr := FormatJSON([]Diagnostic{d})
	if jsonErr != nil {
		t.Fatalf("FormatJSON returned an error: %v", jsonErr)
	}
	if !strings.Contains(out, `"status": "error"`) {
		t.Errorf("FormatJSON output missing error status: %q", out)
	}
	if !strings.Contains(out, `"count": 1`) {
		t.Errorf("FormatJSON output missing count: %q", out)
	}
}

func TestFormatJSONEmptyDiagnosticsIsOK(t *testing.T) {
	out, err := FormatJSON(nil)
	if err != nil {
		t.Fatalf("FormatJSON returned an error: %v", err)
	}
	if !strings.Contains(out, `"status": "ok"`) {
		t.Errorf("FormatJSON output missing ok status: %q", out)
	}
}
