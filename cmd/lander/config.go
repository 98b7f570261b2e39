package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config",
	Long: `Print the embedded default config as YAML, or the effective config
when --config and --difficulty are given.

Save it to ~/.arcade/configs/lander.yaml or ./configs/lander.yaml to
override the defaults; keys left out keep their default values.

Examples:
  lander config > ~/.arcade/configs/lander.yaml
  lander config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagConfig == "" && flagDifficulty == "" {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadLander(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyLanderPreset(&cfg, preset)

	data, err := config.MarshalLander(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
