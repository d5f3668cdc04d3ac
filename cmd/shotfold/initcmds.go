package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotfold/internal/config"
	"shotfold/internal/mapping"
)

var (
	initConfigOutput string
	initMappingsFile string
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().SaveFile(initConfigOutput); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("wrote " + initConfigOutput))
		return nil
	},
}

var initMappingsCmd = &cobra.Command{
	Use:   "init-mappings",
	Short: "Write the default code→label mapping tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mapping.Save(mapping.Defaults(), initMappingsFile); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("wrote " + initMappingsFile))
		for column, desc := range mapping.Categories() {
			logger.Debug("mapping table", "column", column, "description", desc)
		}
		return nil
	},
}

func init() {
	initConfigCmd.Flags().StringVar(&initConfigOutput, "output", "config.yaml", "output configuration file path")
	initMappingsCmd.Flags().StringVar(&initMappingsFile, "mappings-file", "mappings.json", "output mappings file path")
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(initMappingsCmd)
}
