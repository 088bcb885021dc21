package directory

import (
	"strings"
	"testing"
)

func TestNew_LoadsSeed(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	keys := d.Keys()
	want := []string{"a16z", "sequoia", "gv", "nea", "kleiner"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d firms, got %d", len(want), len(keys))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("expected key %q at position %d, got %q", k, i, keys[i])
		}
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range d.Keys() {
		lower, okLower := d.Get(key)
		upper, okUpper := d.Get(strings.ToUpper(key))
		if !okLower || !okUpper {
			t.Fatalf("expected %q to resolve in both cases", key)
		}
		if lower.Name != upper.Name {
			t.Fatalf("case variants of %q returned different records", key)
		}
	}
}

func TestGet_TrimsWhitespace(t *testing.T) {
	d, _ := New()
	if _, ok := d.Get("  a16z "); !ok {
		t.Fatal("expected whitespace-padded key to resolve")
	}
}

func TestList_Format(t *testing.T) {
	d, _ := New()
	lines := d.List()
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "Andreessen Horowitz: AI/ML - Notable: OpenAI, Databricks" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[4] != "Kleiner Perkins: AI/Consumer - Notable: Google, Amazon" {
		t.Fatalf("unexpected last line: %q", lines[4])
	}
}

func TestDescribe_Hit(t *testing.T) {
	d, _ := New()
	got := d.Describe("a16z")
	want := "Andreessen Horowitz\nFocus: AI/ML\nNotable investments: OpenAI, Databricks"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDescribe_Miss(t *testing.T) {
	d, _ := New()
	got := d.Describe("nonexistent")
	if !strings.Contains(got, "not found") {
		t.Fatalf("expected not-found message, got %q", got)
	}
	for _, key := range d.Keys() {
		if !strings.Contains(got, key) {
			t.Fatalf("expected miss message to list key %q: %q", key, got)
		}
	}
}

func TestParse_RejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte("firms:\n  - key: x\n    name: X\n  - key: x\n    name: Y\n"))
	if err == nil {
		t.Fatal("expected error for duplicate keys")
	}
}

func TestParse_RejectsEmptySeed(t *testing.T) {
	if _, err := Parse([]byte("firms: []\n")); err == nil {
		t.Fatal("expected error for empty seed")
	}
}
