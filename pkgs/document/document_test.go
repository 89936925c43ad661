package document

import (
	"testing"

	"github.com/aledsdavies/tomlfront/pkgs/raw"
)

func TestSpanRoundTrips(t *testing.T) {
	d := New("foo = 42\n")
	tok, ok := d.Lex().Next()
	if !ok {
		t.Fatalf("expected a token")
	}
	start, end := d.Span(tok.Raw)
	if start != 0 || end != 3 {
		t.Errorf("Span = [%d:%d], want [0:3]", start, end)
	}
}

func TestSpanPanicsOnForeignRaw(t *testing.T) {
	d := New("foo = 42\n")
	other := raw.NewSource("foo = 42\n")
	foreign := other.Whole()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for a span from a different document")
		}
	}()
	d.Span(foreign)
}

func TestLineColFindsSecondLine(t *testing.T) {
	d := New("a = 1\nb = 2\n")
	line, col := d.LineCol(6)
	if line != 2 || col != 1 {
		t.Errorf("LineCol(6) = (%d,%d), want (2,1)", line, col)
	}
}

func TestLineColMidLine(t *testing.T) {
	d := New("abc = 1\n")
	line, col := d.LineCol(2)
	if line != 1 || col != 3 {
		t.Errorf("LineCol(2) = (%d,%d), want (1,3)", line, col)
	}
}

func TestInputReturnsOriginalText(t *testing.T) {
	const text = "a = 1\n"
	d := New(text)
	if got := d.Input(); got != text {
		t.Errorf("Input() = %q, want %q", got, text)
	}
}
