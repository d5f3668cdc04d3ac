package tsv

import (
	"testing"

	"shotfold/internal/mapping"
)

func TestClean_AbsentValues(t *testing.T) {
	n := NewNormalizer(nil)
	for _, raw := range []string{"", "   ", "\t", "\uFEFF", "\u200B", " \uFEFF\u200B "} {
		if v, ok := n.Clean(raw, ""); ok {
			t.Errorf("expected %q to be absent, got %q", raw, v)
		}
	}
}

func TestClean_TrimsAndStrips(t *testing.T) {
	n := NewNormalizer(nil)

	if v, ok := n.Clean("  test  ", ""); !ok || v != "test" {
		t.Errorf("expected %q, got %q (ok=%v)", "test", v, ok)
	}
	// BOM and zero-width characters are removed everywhere, not just
	// at the edges.
	if v, ok := n.Clean("te\uFEFFst\u200B", ""); !ok || v != "test" {
		t.Errorf("expected %q, got %q (ok=%v)", "test", v, ok)
	}
}

func TestClean_MappingSubstitution(t *testing.T) {
	n := NewNormalizer(mapping.Tables{
		"DIURNAL": {"GH": "Golden Hour"},
	})

	if v, _ := n.Clean("GH", "DIURNAL"); v != "Golden Hour" {
		t.Errorf("expected mapped label, got %q", v)
	}
	// Substitution applies after cleaning.
	if v, _ := n.Clean("  GH\uFEFF", "DIURNAL"); v != "Golden Hour" {
		t.Errorf("expected mapped label for dirty code, got %q", v)
	}
	// Unknown codes pass through unchanged.
	if v, _ := n.Clean("XX", "DIURNAL"); v != "XX" {
		t.Errorf("expected passthrough, got %q", v)
	}
	// Columns without a table pass through.
	if v, _ := n.Clean("GH", "LOCATION"); v != "GH" {
		t.Errorf("expected passthrough for unmapped column, got %q", v)
	}
}

func TestClean_NoTables(t *testing.T) {
	n := NewNormalizer(nil)
	if v, ok := n.Clean("EXT", "LOC_TYPE"); !ok || v != "EXT" {
		t.Errorf("expected passthrough without tables, got %q (ok=%v)", v, ok)
	}
}

func TestCleanRow_OnlyPresentValues(t *testing.T) {
	n := NewNormalizer(nil)
	tbl := &Table{Headers: []string{"A", "B", "C"}}

	row := n.CleanRow(tbl, []string{"1", "   ", "x"})
	if len(row) != 2 {
		t.Fatalf("expected 2 present cells, got %d", len(row))
	}
	if row["A"] != "1" || row["C"] != "x" {
		t.Errorf("unexpected row contents: %v", row)
	}
	if _, ok := row["B"]; ok {
		t.Error("expected blank cell to be absent from row map")
	}
}

func TestCleanRow_ShortRow(t *testing.T) {
	n := NewNormalizer(nil)
	tbl := &Table{Headers: []string{"A", "B", "C"}}

	row := n.CleanRow(tbl, []string{"1"})
	if len(row) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(row))
	}
}
