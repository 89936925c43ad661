package checker

import (
	"testing"

	"github.com/aledsdavies/tomlfront/pkgs/document"
)

func TestCheckCleanDocumentReportsNothing(t *testing.T) {
	doc := document.New("title = \"TOML Example\"\n\n[owner]\nname = \"Tom\"\n")
	errs := Check(doc)
	if len(errs) != 0 {
		t.Fatalf("Check() = %v, want no errors", errs)
	}
}

func TestCheckReportsStructuralError(t *testing.T) {
	doc := document.New("key\n")
	errs := Check(doc)
	if len(errs) == 0 {
		t.Fatalf("Check() reported no errors for a key with no value")
	}
}

func TestCheckValidatesBasicStringValue(t *testing.T) {
	doc := document.New("key = \"bad\\qescape\"\n")
	errs := Check(doc)
	if len(errs) != 1 {
		t.Fatalf("Check() = %v, want exactly one escape error", errs)
	}
}

func TestCheckValidatesUnquotedKey(t *testing.T) {
	doc := document.New("b@d = 1\n")
	errs := Check(doc)
	if len(errs) == 0 {
		t.Fatalf("Check() reported no errors for an invalid bare key byte")
	}
}

func TestCheckSkipsBareValueValidation(t *testing.T) {
	doc := document.New("key = 42\n")
	errs := Check(doc)
	if len(errs) != 0 {
		t.Fatalf("Check() = %v, want no errors for a bare integer value", errs)
	}
}
