package lspserver

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/tomlfront/pkgs/document"
	"github.com/aledsdavies/tomlfront/pkgs/parser"
	"go.lsp.dev/protocol"
)

// toLSPDiagnostic converts one ParseError to an LSP Diagnostic.
// Positions are derived from doc.LineCol, which counts columns in
// bytes rather than UTF-16 code units; this over-reports the column
// for lines containing multi-byte runes before the error, a
// simplification acceptable for a syntax-only front end and noted
// here rather than silently assumed correct.
func toLSPDiagnostic(doc *document.Document, err parser.ParseError) protocol.Diagnostic {
	start, end := doc.Span(err.Unexpected)
	startLine, startCol := doc.LineCol(start)
	endLine, endCol := doc.LineCol(end)
	if end == start {
		endCol = startCol + 1
	}

	expected := make([]string, len(err.Expected))
	for i, e := range err.Expected {
		expected[i] = e.String()
	}
	message := err.Description
	if len(expected) > 0 {
		message = fmt.Sprintf("expected %s in %s", strings.Join(expected, " or "), err.Description)
	}

	source := "tomlfront"
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(startLine - 1), Character: uint32(startCol - 1)},
			End:   protocol.Position{Line: uint32(endLine - 1), Character: uint32(endCol - 1)},
		},
		Severity: protocol.DiagnosticSeverityError,
		Source:   source,
		Message:  message,
	}
}
