package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
)

var flagFormat string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the level catalog",
	Long: `Print the builtin level catalog, or validate and print a custom one.

The YAML output is a valid --levels file and a starting point for new levels.

Examples:
  lander levels
  lander levels --format json
  lander levels --levels ./caves.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a level catalog YAML")
	levelsCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or json")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cat, err := lander.LoadCatalog(flagLevels)
	if err != nil {
		return err
	}

	var data []byte
	switch flagFormat {
	case "yaml":
		data, err = cat.EncodeYAML()
	case "json":
		data, err = cat.EncodeJSON()
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown --format %q (want yaml or json)", flagFormat)
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
