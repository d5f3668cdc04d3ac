package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotfold/internal/files"
	"shotfold/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Inventory the input directory without converting anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := files.NewManager(projectRoot)
		if err != nil {
			return err
		}

		analysis, err := manager.Analyze()
		if err != nil {
			return err
		}
		pipeline.EnrichAnalysis(analysis, manager.InputDir)

		fmt.Print(renderAnalysis(analysis))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the workspace layout and file counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := files.NewManager(projectRoot)
		if err != nil {
			return err
		}

		sources, err := manager.FindTSVFiles()
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Workspace"))
		fmt.Printf("  root:   %s\n", manager.Root)
		fmt.Printf("  input:  %s\n", manager.InputDir)
		fmt.Printf("  output: %s\n", manager.OutputDir)
		fmt.Printf("  TSV sources pending: %d\n", len(sources))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
}
