package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Manager owns the on-disk workspace layout: a project root containing
// USER-FILES/01.INPUT for sources and USER-FILES/02.OUTPUT for
// timestamped conversion runs.
type Manager struct {
	Root      string
	UserFiles string
	InputDir  string
	OutputDir string
}

// NewManager builds a manager for the given project root and creates
// the workspace directories if they are missing.
func NewManager(root string) (*Manager, error) {
	userFiles := filepath.Join(root, "USER-FILES")
	m := &Manager{
		Root:      root,
		UserFiles: userFiles,
		InputDir:  filepath.Join(userFiles, "01.INPUT"),
		OutputDir: filepath.Join(userFiles, "02.OUTPUT"),
	}
	for _, dir := range []string{m.UserFiles, m.InputDir, m.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return m, nil
}

// TimestampedOutputDir creates and returns a fresh run directory under
// the output root, named after the current local time.
func (m *Manager) TimestampedOutputDir() (string, error) {
	dir := filepath.Join(m.OutputDir, time.Now().Format("060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

// FindTSVFiles returns every .tsv file under the input directory,
// sorted for a stable processing order.
func (m *Manager) FindTSVFiles() ([]string, error) {
	var found []string
	err := filepath.WalkDir(m.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".tsv") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}
	sort.Strings(found)
	return found, nil
}

// OutputPath maps a source file to its destination inside a run
// directory, mirroring the input-relative layout with a .yaml suffix.
func (m *Manager) OutputPath(tsvFile, outputDir string) (string, error) {
	rel, err := filepath.Rel(m.InputDir, tsvFile)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", tsvFile, err)
	}
	ext := filepath.Ext(rel)
	return filepath.Join(outputDir, strings.TrimSuffix(rel, ext)+".yaml"), nil
}

// FileInfo describes one file found during input analysis.
type FileInfo struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension"`
	IsTSV     bool      `json:"is_tsv"`

	// Filled in by the caller once the file has been read.
	Rows    int      `json:"rows,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Analysis is the inventory of the input directory.
type Analysis struct {
	Timestamp  time.Time  `json:"timestamp"`
	InputDir   string     `json:"input_directory"`
	TotalFiles int        `json:"total_files"`
	ValidTSV   int        `json:"valid_tsv_files"`
	Files      []FileInfo `json:"file_details"`
}

// Analyze inventories every file under the input directory without
// reading contents. TSV validity beyond the extension is left to the
// caller, which has the reader.
func (m *Manager) Analyze() (*Analysis, error) {
	a := &Analysis{
		Timestamp: time.Now(),
		InputDir:  m.InputDir,
	}

	err := filepath.WalkDir(m.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(m.InputDir, path)
		if err != nil {
			return err
		}

		fi := FileInfo{
			Path:      rel,
			SizeBytes: info.Size(),
			Modified:  info.ModTime(),
			Extension: strings.ToLower(filepath.Ext(path)),
		}
		a.TotalFiles++
		if fi.Extension == ".tsv" {
			fi.IsTSV = true
			a.ValidTSV++
		} else {
			fi.Error = "not a TSV file"
		}
		a.Files = append(a.Files, fi)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze input dir: %w", err)
	}

	sort.Slice(a.Files, func(i, j int) bool { return a.Files[i].Path < a.Files[j].Path })
	return a, nil
}
