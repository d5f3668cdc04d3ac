package tsv

import (
	"strings"

	"shotfold/internal/mapping"
)

// Normalizer cleans raw cell values and applies the code→label
// substitution tables for columns that have one. Instances are cheap
// and carry no state beyond the injected tables, so one normalizer per
// conversion keeps sources fully isolated.
type Normalizer struct {
	tables mapping.Tables
}

// NewNormalizer builds a normalizer over the given tables. A nil table
// set disables substitution entirely.
func NewNormalizer(tables mapping.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Clean normalizes a single cell. The second return is false when the
// value is absent: empty, all whitespace, or empty after stripping
// byte-order marks and zero-width spaces. Otherwise the cleaned (and,
// if a table entry exists for the column, substituted) value is
// returned.
func (n *Normalizer) Clean(raw, column string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", false
	}

	// BOM and zero-width characters can appear anywhere in exported
	// spreadsheet cells, not just at the edges.
	cleaned = strings.ReplaceAll(cleaned, "\uFEFF", "")
	cleaned = strings.ReplaceAll(cleaned, "\u200B", "")
	if cleaned == "" {
		return "", false
	}

	if column != "" && n.tables != nil {
		if label, ok := n.tables.Lookup(column, cleaned); ok {
			return label, true
		}
	}
	return cleaned, true
}

// CleanRow normalizes every cell of a row against the table headers,
// returning only the present values keyed by column name.
func (n *Normalizer) CleanRow(tbl *Table, row []string) map[string]string {
	out := make(map[string]string, len(tbl.Headers))
	for i, column := range tbl.Headers {
		if i >= len(row) {
			break
		}
		if v, ok := n.Clean(row[i], column); ok {
			out[column] = v
		}
	}
	return out
}
