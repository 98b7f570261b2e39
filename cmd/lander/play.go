package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly the lander",
	Long: `Start flying immediately, without the menu.

Controls:
  W/Up/Space   - Thrust
  A/Left       - Rotate left
  D/Right      - Rotate right
  Mouse        - Left third rotates left, right third rotates right,
                 middle (or right button) thrusts
  P            - Pause
  R            - Restart from level 1
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Stronger engine, slower fuel burn
  normal - Default tuning
  hard   - Weaker engine, faster fuel burn

Examples:
  lander play
  lander play --difficulty hard
  lander play --config ./my-lander.yaml
  lander play --levels ./caves.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, rootCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
		c.Flags().StringVar(&flagLevels, "levels", "", "Path to a level catalog YAML")
	}
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// prepareGame validates the config and level flags, then hands them to the
// lander package so registry.Create builds a game with them.
func prepareGame(logger *log.Logger) (config.LanderConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.LanderConfig{}, err
	}
	// Load once up front so a bad file is reported before the screen switches.
	_, cfg, err := lander.LoadSimulator(flagConfig, flagLevels, preset, nil)
	if err != nil {
		return config.LanderConfig{}, err
	}

	lander.SetConfigPath(flagConfig)
	lander.SetLevelsPath(flagLevels)
	lander.SetDifficultyPreset(flagDifficulty)
	lander.SetLogger(logger)
	return cfg, nil
}

// openStore opens the flight log. A failure is logged and flying continues
// without recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open flight log", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open flight log: %v\n", err)
		return nil
	}
	return store
}

func playOptions(lc config.LanderConfig, store *storage.Store, logger *log.Logger) tui.Options {
	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = string(config.DifficultyNormal)
	}
	return tui.Options{
		Store:      store,
		Logger:     logger,
		Hold:       time.Duration(lc.Input.HoldMillis) * time.Millisecond,
		Difficulty: difficulty,
	}
}

func fly(cfg core.RuntimeConfig, opts tui.Options) error {
	game, err := registry.Create("lander")
	if err != nil {
		return err
	}
	return tui.Run(game, cfg, opts)
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	lc, err := prepareGame(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return fly(terminalConfig(), playOptions(lc, store, logger))
}

// runMenu shows the start menu until the player quits.
func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	lc, err := prepareGame(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch result.Choice {
		case tui.ChoicePlay:
			if err := fly(cfg, playOptions(lc, store, logger)); err != nil {
				return err
			}

		case tui.ChoiceFlightLog:
			goBack, err := tui.RunFlightLog(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}
