// Package diag renders parser.ParseError values as either a
// rustc-style terminal diagnostic or a JSON record, resolving each
// error's byte span to a file/line/column through a document.Document.
package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aledsdavies/tomlfront/pkgs/document"
	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"github.com/fatih/color"
)

// Diagnostic is one ParseError resolved to a file location, ready to
// render either as text or as JSON.
type Diagnostic struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Length   int      `json:"length"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
}

// FromParseError resolves err's span within doc to a line and column
// and renders its Description/Expected pair into one message string.
func FromParseError(doc *document.Document, file string, err parser.ParseError) Diagnostic {
	start, end := doc.Span(err.Unexpected)
	line, col := doc.LineCol(start)

	length := end - start
	if length <= 0 {
		length = 1
	}

	expected := make([]string, len(err.Expected))
	for i, e := range err.Expected {
		expected[i] = e.String()
	}

	message := err.Description
	if len(expected) > 0 {
		message = fmt.Sprintf("expected %s in %s", strings.Join(expected, " or "), err.Description)
	}

	return Diagnostic{
		File:     file,
		Line:     line,
		Column:   col,
		Length:   length,
		Message:  message,
		Expected: expected,
	}
}

// FormatTerminal renders d in the caret-pointing style of a rustc or
// cargo diagnostic:
//
//	error: expected `=` in key-value pair
//	  --> config.toml:2:5
//	  |
//	2 | name  "example"
//	  |     ^
func FormatTerminal(d Diagnostic, source string, noColor bool) string {
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	if noColor {
		red.DisableColor()
		cyan.DisableColor()
	}

	var b strings.Builder
	red.Fprint(&b, "error")
	fmt.Fprintf(&b, ": %s\n", d.Message)
	cyan.Fprint(&b, "  --> ")
	fmt.Fprintf(&b, "%s:%d:%d\n", d.File, d.Line, d.Column)

	lineText, ok := sourceLine(source, d.Line)
	gutterWidth := len(fmt.Sprintf("%d", d.Line))
	cyan.Fprintf(&b, "%s |\n", strings.Repeat(" ", gutterWidth))
	if ok {
		cyan.Fprintf(&b, "%d | ", d.Line)
		fmt.Fprintf(&b, "%s\n", lineText)
		cyan.Fprintf(&b, "%s | ", strings.Repeat(" ", gutterWidth))
		fmt.Fprint(&b, strings.Repeat(" ", d.Column-1))
		red.Fprintf(&b, "%s\n", strings.Repeat("^", d.Length))
	}

	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// summary mirrors the status/counts envelope a tool consuming JSON
// diagnostics expects.
type summary struct {
	Status string       `json:"status"`
	Errors []Diagnostic `json:"errors"`
	Count  int          `json:"count"`
}

// FormatJSON renders a full set of diagnostics as one JSON document.
func FormatJSON(diags []Diagnostic) (string, error) {
	status := "ok"
	if len(diags) > 0 {
		status = "error"
	}
	data, err := json.MarshalIndent(summary{
		Status: status,
		Errors: diags,
		Count:  len(diags),
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
