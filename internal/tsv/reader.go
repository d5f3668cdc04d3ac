package tsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table holds a parsed tab-separated source: the header row plus every
// data row, all cells kept as raw strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Read parses tab-separated content. The first row supplies column
// names; a UTF-8 byte-order mark at the start of the stream is
// tolerated. Rows may be shorter or longer than the header row.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	// Strip a leading BOM so the first header name comes out clean.
	if head, err := br.Peek(3); err == nil && string(head) == "\xef\xbb\xbf" {
		if _, err := br.Discard(3); err != nil {
			return nil, fmt.Errorf("discard bom: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse tsv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse tsv: no header row")
	}

	return &Table{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}

// ReadFile parses a tab-separated file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tbl, nil
}

// Cell returns the raw value of the named column in a row, or the
// empty string when the row is shorter than the header.
func (t *Table) Cell(row []string, column string) string {
	for i, h := range t.Headers {
		if h == column && i < len(row) {
			return row[i]
		}
	}
	return ""
}

// Validate reports basic shape information for a source, used by the
// analyze surface. It never panics on malformed input.
type Validation struct {
	Valid   bool
	Rows    int
	Columns []string
	Err     string
}

// ValidateFile reads a file and reports whether it parses as TSV.
func ValidateFile(path string) Validation {
	tbl, err := ReadFile(path)
	if err != nil {
		return Validation{Err: err.Error()}
	}
	headers := make([]string, len(tbl.Headers))
	for i, h := range tbl.Headers {
		headers[i] = strings.TrimSpace(h)
	}
	return Validation{
		Valid:   true,
		Rows:    len(tbl.Rows),
		Columns: headers,
	}
}
