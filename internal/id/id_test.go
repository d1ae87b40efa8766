package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(PrefixBook)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "bk-") {
		t.Errorf("expected bk- prefix, got %q", got)
	}
	// Default NanoID length is 21 plus "bk-".
	if len(got) != len("bk-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate(PrefixEvent)
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		prefix string
		id     string
		want   bool
	}{
		{PrefixParagraph, "par-V1StGXR8_Z5jdHi6B-myT", true},
		{PrefixParagraph, MustGenerate(PrefixParagraph), true},
		{PrefixParagraph, "bk-V1StGXR8_Z5jdHi6B-myT", false},
		{PrefixParagraph, "par-", false},
		{PrefixParagraph, "", false},
		{PrefixParagraph, "not-an-id at all", false},
		{PrefixParagraph, "par-abc!def", false},
		{PrefixBook, "bk-abc", true},
	}

	for _, tt := range tests {
		if got := IsValid(tt.prefix, tt.id); got != tt.want {
			t.Errorf("IsValid(%q, %q) = %v, want %v", tt.prefix, tt.id, got, tt.want)
		}
	}
}
