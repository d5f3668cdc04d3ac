package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shotfold/internal/files"
	"shotfold/internal/pipeline"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderSummary formats a batch run for the terminal.
func renderSummary(s *pipeline.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Batch processing complete") + "\n")
	b.WriteString(fmt.Sprintf("  total:     %d\n", s.Total))
	b.WriteString(successStyle.Render(fmt.Sprintf("  succeeded: %d", s.Succeeded)) + "\n")
	if s.Failed > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  failed:    %d", s.Failed)) + "\n")
	} else {
		b.WriteString(fmt.Sprintf("  failed:    %d\n", s.Failed))
	}
	if s.OutputDir != "" {
		b.WriteString(dimStyle.Render("  output:    "+s.OutputDir) + "\n")
	}

	for _, r := range s.Results {
		name := filepath.Base(r.Source)
		if r.Err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", name, r.Err)) + "\n")
			continue
		}
		line := fmt.Sprintf("  ✓ %s (%d shots", name, r.Stats.ShotsAttached)
		if dropped := r.Stats.Dropped(); dropped > 0 {
			line += fmt.Sprintf(", %d rows dropped", dropped)
		}
		line += ")"
		b.WriteString(line + "\n")
	}

	return b.String()
}

// renderAnalysis formats an input inventory for the terminal.
func renderAnalysis(a *files.Analysis) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Input analysis") + "\n")
	b.WriteString(dimStyle.Render("  directory: "+a.InputDir) + "\n")
	b.WriteString(fmt.Sprintf("  files:     %d (%d valid TSV)\n", a.TotalFiles, a.ValidTSV))

	for _, fi := range a.Files {
		if fi.IsTSV {
			b.WriteString(fmt.Sprintf("  ✓ %s: %d rows, %d columns\n", fi.Path, fi.Rows, len(fi.Columns)))
			continue
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("  - %s (%s)", fi.Path, fi.Error)) + "\n")
	}

	return b.String()
}
