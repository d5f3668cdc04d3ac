package pipeline

import (
	"path/filepath"
	"time"

	"shotfold/internal/files"
	"shotfold/internal/fold"
	"shotfold/internal/tsv"
)

// SourceResult is the outcome of converting one source file.
type SourceResult struct {
	Source string
	Output string
	Stats  fold.Stats
	Err    error
}

// Summary aggregates a batch run. One bad file never aborts the batch;
// it shows up here as a failed result.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	OutputDir string
	Started   time.Time
	Finished  time.Time
	Results   []SourceResult
}

// HasFailures reports whether any source failed.
func (s *Summary) HasFailures() bool { return s.Failed > 0 }

// Run converts every TSV file under the workspace input directory into
// a fresh timestamped run directory, continuing past per-source
// failures.
func (c *Converter) Run(m *files.Manager) (*Summary, error) {
	summary := &Summary{Started: time.Now()}

	sources, err := m.FindTSVFiles()
	if err != nil {
		return nil, err
	}
	summary.Total = len(sources)
	if len(sources) == 0 {
		c.log.Warn("no TSV files found in input directory", "dir", m.InputDir)
		summary.Finished = time.Now()
		return summary, nil
	}

	outputDir, err := m.TimestampedOutputDir()
	if err != nil {
		return nil, err
	}
	summary.OutputDir = outputDir
	c.log.Info("starting batch", "sources", len(sources), "output_dir", outputDir)

	for _, src := range sources {
		outPath, err := m.OutputPath(src, outputDir)
		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, SourceResult{Source: src, Err: err})
			continue
		}

		stats, err := c.ConvertFile(src, outPath)
		result := SourceResult{Source: src, Output: outPath, Stats: stats, Err: err}
		if err != nil {
			summary.Failed++
			c.log.Error("source failed", "source", filepath.Base(src), "error", err)
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)
	}

	summary.Finished = time.Now()
	c.log.Info("batch complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary, nil
}

// EnrichAnalysis fills row and column details for the TSV files in an
// input inventory by actually reading them.
func EnrichAnalysis(a *files.Analysis, inputDir string) {
	for i := range a.Files {
		fi := &a.Files[i]
		if !fi.IsTSV {
			continue
		}
		v := tsv.ValidateFile(filepath.Join(inputDir, fi.Path))
		if !v.Valid {
			fi.IsTSV = false
			fi.Error = v.Err
			a.ValidTSV--
			continue
		}
		fi.Rows = v.Rows
		fi.Columns = v.Columns
	}
}
