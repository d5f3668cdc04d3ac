package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"shotfold/internal/config"
	"shotfold/internal/fold"
	"shotfold/internal/mapping"
	"shotfold/internal/shotlist"
	"shotfold/internal/tsv"
	"shotfold/internal/yamlout"
)

// Converter turns one tabular source into a hierarchical project.
// It is safe for concurrent use: every conversion builds its own fold
// state, and the mapping tables are never written after construction.
type Converter struct {
	cfg    config.Config
	tables mapping.Tables
	log    *slog.Logger
}

// NewConverter builds a converter over the given settings and
// substitution tables.
func NewConverter(cfg config.Config, tables mapping.Tables, log *slog.Logger) *Converter {
	return &Converter{cfg: cfg, tables: tables, log: log}
}

// Options derives the materializer toggles from the config.
func (c *Converter) Options() fold.Options {
	return fold.Options{
		IncludeCameraMovement: c.cfg.IncludeCameraMovement,
		IncludeShotTimecode:   c.cfg.IncludeShotTimecode,
	}
}

// Convert folds the source into an ordered project. Row-level problems
// are drop outcomes inside the returned stats; anything else, including
// a panic escaping the fold, fails the source as a whole so a batch can
// carry on with its remaining files.
func (c *Converter) Convert(r io.Reader, sourceName string) (project *shotlist.Project, stats fold.Stats, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			project = nil
			err = fmt.Errorf("conversion failed for source %s: %v", sourceName, rec)
		}
	}()

	tbl, err := tsv.Read(r)
	if err != nil {
		return nil, stats, fmt.Errorf("conversion failed for source %s: %w", sourceName, err)
	}

	folder := fold.New(tsv.NewNormalizer(c.tables))
	tree, stats, err := folder.Fold(tbl)
	if err != nil {
		return nil, stats, fmt.Errorf("conversion failed for source %s: %w", sourceName, err)
	}

	title := c.cfg.ProjectTitle
	if title == "" {
		title = TitleFromFilename(sourceName)
	}

	project = fold.Materialize(tree, stats, title, c.Options())
	return project, stats, nil
}

// ConvertFile folds a source file and writes the YAML document to
// outPath.
func (c *Converter) ConvertFile(path, outPath string) (fold.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return fold.Stats{}, fmt.Errorf("conversion failed for source %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	project, stats, err := c.Convert(f, filepath.Base(path))
	if err != nil {
		return stats, err
	}

	writer := yamlout.New(c.cfg.YAMLIndent)
	if err := writer.WriteFile(project, outPath); err != nil {
		return stats, fmt.Errorf("conversion failed for source %s: %w", filepath.Base(path), err)
	}

	phases, scenes, shots := project.Counts()
	c.log.Info("converted source",
		"source", filepath.Base(path),
		"output", outPath,
		"phases", phases,
		"scenes", scenes,
		"shots", shots,
		"rows_dropped", stats.Dropped(),
	)
	return stats, nil
}

// Marshal renders a project with the converter's formatting settings.
func (c *Converter) Marshal(project *shotlist.Project) ([]byte, error) {
	return yamlout.New(c.cfg.YAMLIndent).Marshal(project)
}

// WithTitle returns a copy of the converter whose config pins the
// project title, leaving the shared converter untouched.
func (c *Converter) WithTitle(title string) *Converter {
	cfg := c.cfg
	cfg.ProjectTitle = title
	return &Converter{cfg: cfg, tables: c.tables, log: c.log}
}

// WithConfig returns a copy of the converter using the given settings.
func (c *Converter) WithConfig(cfg config.Config) *Converter {
	return &Converter{cfg: cfg, tables: c.tables, log: c.log}
}

// WithLogger returns a copy of the converter logging elsewhere.
func (c *Converter) WithLogger(log *slog.Logger) *Converter {
	return &Converter{cfg: c.cfg, tables: c.tables, log: log}
}

// TitleFromFilename infers a project title from a source filename:
// the extension is removed, separators become spaces, and each word is
// capitalized.
func TitleFromFilename(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
