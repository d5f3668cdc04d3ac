package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the conversion settings a run consumes. Zero values are
// never used directly; start from Default and overlay a file on top.
type Config struct {
	// ProjectTitle overrides the title inferred from each source
	// filename when set.
	ProjectTitle string `yaml:"project_title,omitempty"`

	YAMLIndent int `yaml:"yaml_indent"`
	YAMLWidth  int `yaml:"yaml_width"`

	IncludeCameraMovement bool `yaml:"include_camera_movement"`
	IncludeShotTimecode   bool `yaml:"include_shot_timecode"`

	// MappingsFile points at a JSON code→label table set; empty means
	// the built-in defaults.
	MappingsFile string `yaml:"mappings_file,omitempty"`
}

// Default returns the baseline conversion settings.
func Default() Config {
	return Config{
		YAMLIndent:            2,
		YAMLWidth:             120,
		IncludeCameraMovement: true,
		IncludeShotTimecode:   true,
	}
}

// LoadFile overlays a YAML config file on the defaults. Keys absent
// from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the formatting knobs are within their supported
// ranges.
func (c Config) Validate() error {
	if c.YAMLIndent < 1 || c.YAMLIndent > 8 {
		return fmt.Errorf("yaml_indent must be between 1 and 8, got %d", c.YAMLIndent)
	}
	if c.YAMLWidth < 80 || c.YAMLWidth > 200 {
		return fmt.Errorf("yaml_width must be between 80 and 200, got %d", c.YAMLWidth)
	}
	return nil
}

// SaveFile writes the config as YAML, creating parent directories as
// needed. Used by the init-config command.
func (c Config) SaveFile(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Server holds the settings for service mode, taken from the
// environment.
type Server struct {
	Port   string
	APIKey string

	WorkerCount  int
	MaxQueueSize int

	MaxUploadBytes int64
	JobTTL         time.Duration
}

// LoadServer reads service-mode settings from SHOTFOLD_* environment
// variables, falling back to sane defaults.
func LoadServer() Server {
	srv := Server{
		Port:   envOr("SHOTFOLD_PORT", "8085"),
		APIKey: os.Getenv("SHOTFOLD_API_KEY"),

		WorkerCount:  envInt("SHOTFOLD_WORKER_COUNT", 4),
		MaxQueueSize: envInt("SHOTFOLD_MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("SHOTFOLD_MAX_UPLOAD_BYTES", 10<<20),
		JobTTL:         envDuration("SHOTFOLD_JOB_TTL", time.Hour),
	}

	if srv.WorkerCount <= 0 {
		srv.WorkerCount = 4
	}
	if srv.MaxQueueSize <= 0 {
		srv.MaxQueueSize = 100
	}
	if srv.MaxUploadBytes <= 0 {
		srv.MaxUploadBytes = 10 << 20
	}
	if srv.JobTTL <= 0 {
		srv.JobTTL = time.Hour
	}

	return srv
}

// Validate checks the service settings that have no workable default.
func (s Server) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("SHOTFOLD_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
