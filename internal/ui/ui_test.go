package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/hlop3z/typesmith/internal/tserr"
)

func plainMode(t *testing.T) {
	t.Helper()
	prev := Default()
	SetDefault(&Config{Mode: ModePlain})
	t.Cleanup(func() { SetDefault(prev) })
}

func TestFormatErrorTypesmith(t *testing.T) {
	plainMode(t)

	err := tserr.New(tserr.ErrSchemaNotFound, "schema file not found").
		WithFile("appwrite.json").
		WithCollection("users").
		WithHelp("check the schema path in typesmith.yaml")

	got := FormatError(err)

	for _, want := range []string{
		"error[E2001]: schema file not found",
		"--> appwrite.json",
		"| collection: users",
		"help: check the schema path in typesmith.yaml",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatErrorCause(t *testing.T) {
	plainMode(t)

	err := tserr.Wrap(tserr.ErrSchemaRead, errors.New("permission denied"), "cannot read schema")
	got := FormatError(err)

	if !strings.Contains(got, "cause: permission denied") {
		t.Errorf("missing cause line:\n%s", got)
	}
}

func TestFormatErrorGeneric(t *testing.T) {
	plainMode(t)

	got := FormatError(errors.New("plain failure"))
	if got != "error: plain failure\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormatErrorNil(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("nil error should render nothing, got %q", got)
	}
}

func TestFormatErrorDetailOrder(t *testing.T) {
	plainMode(t)

	err := tserr.New(tserr.ErrUnsupportedType, "unsupported attribute type").
		With("type", "blob").
		WithAttribute("payload").
		WithCollection("files")

	got := FormatError(err)

	// Details render in sorted key order
	attrIdx := strings.Index(got, "attribute: payload")
	colIdx := strings.Index(got, "collection: files")
	typeIdx := strings.Index(got, "type: blob")
	if attrIdx == -1 || colIdx == -1 || typeIdx == -1 {
		t.Fatalf("missing details:\n%s", got)
	}
	if !(attrIdx < colIdx && colIdx < typeIdx) {
		t.Errorf("details out of order:\n%s", got)
	}
}

func TestFormatMessages(t *testing.T) {
	plainMode(t)

	if got := FormatSuccess("wrote types.ts"); got != "success: wrote types.ts\n" {
		t.Errorf("success = %q", got)
	}
	if got := FormatWarning("no collections"); got != "warning: no collections\n" {
		t.Errorf("warning = %q", got)
	}
	if got := FormatNote("watching for changes"); got != "note: watching for changes\n" {
		t.Errorf("note = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "collection", "collections"); got != "1 collection" {
		t.Errorf("singular = %q", got)
	}
	if got := FormatCount(3, "collection", "collections"); got != "3 collections" {
		t.Errorf("plural = %q", got)
	}
}

func TestPlainModeNoANSI(t *testing.T) {
	plainMode(t)

	got := FormatError(tserr.New(tserr.ErrConfigInvalid, "bad config"))
	if strings.Contains(got, "\x1b[") {
		t.Errorf("plain mode should not emit ANSI escapes: %q", got)
	}
}
