package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

var (
	flagTicks  int
	flagScript string
	flagOut    string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless and write telemetry",
	Long: `Run the lander without a screen. A YAML script drives the controls and
every tick is written as a CSV row.

Script format:
  tick_rate: 60        # ticks per second, default 60
  loop: false          # repeat the steps
  steps:
    - {ticks: 30, thrust: true}
    - {ticks: 10, left: true}
    - {ticks: 60}

Without --script the craft falls with no input.

Examples:
  lander sim --ticks 300
  lander sim --ticks 1200 --script pilot.yaml --out run.csv
  lander sim --levels caves.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to a pilot script YAML")
	simCmd.Flags().StringVarP(&flagOut, "out", "o", "-", "CSV output path (- for stdout)")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	simCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a level catalog YAML")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive")
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	sim, _, err := lander.LoadSimulator(flagConfig, flagLevels, preset, logger)
	if err != nil {
		return err
	}
	script, err := lander.LoadScript(flagScript)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if flagOut != "-" && flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", flagOut, err)
		}
		defer f.Close()
		out = f
	}

	cw := telemetry.NewWriter(out)
	var writeErr error
	final := sim.Run(script, flagTicks, func(in core.Intents, now time.Duration, snap lander.Snapshot) bool {
		writeErr = cw.WriteSample(telemetry.SampleFrom(snap, in, now))
		return writeErr == nil
	})
	if writeErr != nil {
		return writeErr
	}

	logger.Info("simulation finished",
		"ticks", final.Tick,
		"rows", cw.Rows(),
		"level", final.LevelIndex+1,
		"lives", final.Lives,
		"landings", final.Landings,
		"fuel", int(final.Craft.Fuel),
	)
	return nil
}
