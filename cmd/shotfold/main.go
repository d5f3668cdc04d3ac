package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shotfold/internal/config"
	"shotfold/internal/mapping"
	"shotfold/internal/pipeline"
)

var (
	projectRoot string
	verbose     bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shotfold",
	Short: "Convert TSV shot lists into hierarchical YAML documents",
	Long: `shotfold folds flat, tab-separated shot-list exports into nested
YAML documents: project → phases → scenes → shots.

Grouping columns may be left blank on a row; the value carried forward
from the most recent row that set them applies. Sources live under
<project-root>/USER-FILES/01.INPUT and each run writes into a fresh
timestamped directory under 02.OUTPUT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// loadConverter assembles a converter from an optional config file and
// the mapping tables it references.
func loadConverter(configPath string) (*pipeline.Converter, config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			return nil, cfg, err
		}
		logger.Debug("loaded configuration", "path", configPath)
	}

	tables := mapping.Defaults()
	if cfg.MappingsFile != "" {
		var err error
		tables, err = mapping.Load(cfg.MappingsFile)
		if err != nil {
			return nil, cfg, err
		}
		logger.Debug("loaded mappings", "path", cfg.MappingsFile)
	}

	return pipeline.NewConverter(cfg, tables, logger), cfg, nil
}
