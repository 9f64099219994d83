package mcp

import (
	"testing"

	"github.com/mattvollmer/jobs-agent/internal/extract"
)

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"Title", " links ", "text"})
	if err != nil {
		t.Fatalf("parseFields: %v", err)
	}

	want := []extract.Field{extract.FieldTitle, extract.FieldLinks, extract.FieldText}
	if len(fields) != len(want) {
		t.Fatalf("len = %d, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %q, want %q", i, fields[i], want[i])
		}
	}
}

func TestParseFieldsRejectsUnknown(t *testing.T) {
	if _, err := parseFields([]string{"title", "body"}); err == nil {
		t.Fatal("expected error for unknown field name")
	}
}

func TestParseFieldsEmpty(t *testing.T) {
	fields, err := parseFields(nil)
	if err != nil {
		t.Fatalf("parseFields: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("len = %d, want 0 (meaning all fields)", len(fields))
	}
}
