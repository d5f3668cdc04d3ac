package yamlout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"shotfold/internal/shotlist"
)

// Writer renders a finished project as YAML. Output is deterministic:
// identical projects produce byte-identical documents.
type Writer struct {
	indent int
}

// New builds a writer with the given indentation width.
func New(indent int) *Writer {
	if indent <= 0 {
		indent = 2
	}
	return &Writer{indent: indent}
}

// Marshal renders the project under its root wrapper, then injects
// blank lines so the hierarchy reads well: one before each phase and
// shot entry, two before each scene entry.
func (w *Writer) Marshal(project *shotlist.Project) ([]byte, error) {
	doc := shotlist.Document{Project: *project}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(w.indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return injectBlankLines(buf.Bytes()), nil
}

// WriteFile renders the project and writes it to path, creating parent
// directories as needed.
func (w *Writer) WriteFile(project *shotlist.Project, path string) error {
	data, err := w.Marshal(project)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func injectBlankLines(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(lines)+len(lines)/4)

	for _, line := range lines {
		switch {
		case strings.Contains(line, "- phase_number:"):
			out = append(out, "")
		case strings.Contains(line, "- scene_number:"):
			out = append(out, "", "")
		case strings.Contains(line, "- shot_number:"):
			out = append(out, "")
		}
		out = append(out, line)
	}

	return []byte(strings.Join(out, "\n"))
}
