package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

var (
	flagLimit  int
	flagCSV    bool
	flagEvents int64
	flagClear  bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recorded flights",
	Long: `Display the most recent flights from the flight log, or the events of
one flight.

Examples:
  lander log
  lander log --limit 50 --csv > flights.csv
  lander log --events 12
  lander log --clear`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of flights to show")
	logCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write CSV instead of a table")
	logCmd.Flags().Int64Var(&flagEvents, "events", 0, "Show the events of this flight")
	logCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded flight")
}

func runLog(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagClear:
		if err := store.ClearFlights(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Flight log cleared.")
		return nil

	case flagEvents != 0:
		f, err := store.Flight(flagEvents)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("no flight #%d", flagEvents)
		}
		events, err := store.FlightEvents(flagEvents)
		if err != nil {
			return err
		}
		if flagCSV {
			return telemetry.WriteEvents(out, events)
		}

		fmt.Fprintf(out, "Flight #%d - %s\n\n", f.ID, f.StartedAt.Format("2006-01-02 15:04"))
		if len(events) == 0 {
			fmt.Fprintln(out, "No events recorded.")
			return nil
		}
		fmt.Fprintf(out, "  %-8s  %-8s  %-5s  %-5s  %s\n", "Tick", "Event", "Level", "Lives", "Fuel")
		fmt.Fprintf(out, "  %-8s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
		for _, ev := range events {
			fmt.Fprintf(out, "  %-8d  %-8s  %-5d  %-5d  %d\n", ev.Tick, ev.Kind, ev.Level, ev.Lives, ev.Fuel)
		}
		return nil
	}

	flights, err := store.RecentFlights(flagLimit)
	if err != nil {
		return err
	}
	if flagCSV {
		return telemetry.WriteFlights(out, flights)
	}

	if len(flights) == 0 {
		fmt.Fprintln(out, "No flights recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'lander play' to log your first flight!")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-16s  %-6s  %-6s  %-7s  %-5s  %s\n", "#", "Started", "Mode", "Landed", "Crashed", "Level", "Ticks")
	fmt.Fprintf(out, "  %-5s  %-16s  %-6s  %-6s  %-7s  %-5s  %s\n", "-", "-------", "----", "------", "-------", "-----", "-----")
	for _, f := range flights {
		fmt.Fprintf(out, "  %-5d  %-16s  %-6s  %-6d  %-7d  %-5d  %d\n",
			f.ID, f.StartedAt.Format("2006-01-02 15:04"), f.Difficulty,
			f.Landings, f.Crashes, f.MaxLevel, f.Ticks)
	}

	totals, err := store.Totals()
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Total: %d flights, %d landings, deepest level %d\n", totals.Flights, totals.Landings, totals.MaxLevel)
	}
	return nil
}
