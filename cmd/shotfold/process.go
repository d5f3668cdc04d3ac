package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotfold/internal/files"
)

var (
	processConfigPath string
	processNoMovement bool
	processNoTimecode bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every TSV file in the input directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, cfg, err := loadConverter(processConfigPath)
		if err != nil {
			return err
		}

		// Command-line exclusions win over the config file.
		if processNoMovement {
			cfg.IncludeCameraMovement = false
		}
		if processNoTimecode {
			cfg.IncludeShotTimecode = false
		}
		conv = conv.WithConfig(cfg)

		manager, err := files.NewManager(projectRoot)
		if err != nil {
			return err
		}

		summary, err := conv.Run(manager)
		if err != nil {
			return err
		}

		fmt.Print(renderSummary(summary))
		if summary.HasFailures() {
			if verbose {
				for _, r := range summary.Results {
					if r.Err != nil {
						logger.Debug("failure detail", "source", r.Source, "error", r.Err)
					}
				}
			}
			return fmt.Errorf("%d of %d sources failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "configuration file path")
	processCmd.Flags().BoolVar(&processNoMovement, "no-camera-movement", false, "exclude camera_movement blocks from output")
	processCmd.Flags().BoolVar(&processNoTimecode, "no-shot-timecode", false, "exclude shot_timecode blocks from output")
	rootCmd.AddCommand(processCmd)
}
