package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shotfold/internal/files"
)

func writeInput(t *testing.T, m *files.Manager, name, body string) {
	t.Helper()
	path := filepath.Join(m.InputDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEmptyWorkspace(t *testing.T) {
	m, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	summary, err := testConverter().Run(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 0 || summary.HasFailures() {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.OutputDir != "" {
		t.Error("expected no run directory for an empty workspace")
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	m, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeInput(t, m, "good.tsv", sampleTSV)
	writeInput(t, m, "bad.tsv", "PHASE_NUM\tSCENE_NUM\tSHOT_NUM\nabc\t1\t1\n")
	writeInput(t, m, "nested/also_good.tsv", sampleTSV)

	summary, err := testConverter().Run(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("expected 2/1 split over 3 sources, got %+v", summary)
	}
	if !summary.HasFailures() {
		t.Error("expected HasFailures")
	}

	for _, res := range summary.Results {
		base := filepath.Base(res.Source)
		if base == "bad.tsv" {
			if res.Err == nil {
				t.Error("expected error for bad.tsv")
			}
			continue
		}
		if res.Err != nil {
			t.Errorf("%s failed: %v", base, res.Err)
		}
		if _, err := os.Stat(res.Output); err != nil {
			t.Errorf("missing output for %s: %v", base, err)
		}
	}

	// Nested inputs land in a mirrored position inside the run dir.
	nested := filepath.Join(summary.OutputDir, "nested", "also_good.yaml")
	if _, err := os.Stat(nested); err != nil {
		t.Errorf("missing mirrored nested output: %v", err)
	}
}

func TestEnrichAnalysis(t *testing.T) {
	m, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeInput(t, m, "good.tsv", sampleTSV)
	writeInput(t, m, "empty.tsv", "")

	a, err := m.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if a.ValidTSV != 2 {
		t.Fatalf("expected 2 candidates before enrichment, got %d", a.ValidTSV)
	}

	EnrichAnalysis(a, m.InputDir)

	if a.ValidTSV != 1 {
		t.Errorf("expected 1 valid tsv after enrichment, got %d", a.ValidTSV)
	}
	for _, fi := range a.Files {
		switch fi.Path {
		case "good.tsv":
			if !fi.IsTSV || fi.Rows != 2 {
				t.Errorf("unexpected good.tsv entry %+v", fi)
			}
			if len(fi.Columns) == 0 || fi.Columns[0] != "PHASE_NUM" {
				t.Errorf("unexpected columns %v", fi.Columns)
			}
		case "empty.tsv":
			if fi.IsTSV || !strings.Contains(fi.Error, "no header row") {
				t.Errorf("unexpected empty.tsv entry %+v", fi)
			}
		}
	}
}
