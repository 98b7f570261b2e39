// lander is a lunar lander for the terminal.
//
// Usage:
//
//	lander                  - Start menu: launch, browse the flight log
//	lander play             - Fly straight away
//	lander sim              - Run the simulation headless and write telemetry CSV
//	lander levels           - Print the level catalog
//	lander log              - Show recorded flights
//	lander config           - Print the default config YAML
//	lander list             - List registered games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set flight log path (default: ~/.arcade/flights.db)
//	--log-level <lvl>   - debug, info, warn, error (default: info)
//	--log-file <path>   - Log file (default: stderr, or ~/.arcade/lander.log while the screen is in use)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lander/internal/games/lander"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar Lander - fly a thruster craft through cave levels",
	Long: `Lunar Lander is a terminal game: steer a craft with one engine through
walled levels, pick up fuel and touch down on each landing pad.

Available commands:
  play     - Fly straight away
  sim      - Run headless with a scripted pilot
  levels   - Print the level catalog
  log      - Show recorded flights
  config   - Print the default config
  list     - List registered games

Running lander with no command opens the start menu.

Examples:
  lander
  lander play --difficulty easy
  lander sim --ticks 600 --script pilot.yaml --out run.csv
  lander log --csv`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flights.db", "Path to flight log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: stderr, ~/.arcade/lander.log for the TUI)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Interactive commands own the
// terminal, so without --log-file they log to ~/.arcade/lander.log.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	path := flagLogFile
	if path == "" && interactive {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".arcade", "lander.log")
		}
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lander",
		Level:           level,
	})
	return logger, closeFn, nil
}
