// Package telemetry writes simulation traces and flight-log exports as CSV.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// TickSample is one row of a headless run trace.
type TickSample struct {
	Tick     uint64  `csv:"tick"`
	TimeSec  float64 `csv:"time"`
	Level    int     `csv:"level"`
	Lives    int     `csv:"lives"`
	Fuel     float64 `csv:"fuel"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	Rotation float64 `csv:"rotation"`
	Thrust   bool    `csv:"thrust"`
	Left     bool    `csv:"left"`
	Right    bool    `csv:"right"`
	Contact  string  `csv:"contact"`
	Outcome  string  `csv:"outcome"`
	Landings int     `csv:"landings"`
}

// SampleFrom converts a post-tick snapshot and the intents that produced it.
func SampleFrom(snap lander.Snapshot, in core.Intents, now time.Duration) TickSample {
	return TickSample{
		Tick:     snap.Tick,
		TimeSec:  now.Seconds(),
		Level:    snap.LevelNumber,
		Lives:    snap.Lives,
		Fuel:     snap.Fuel,
		X:        snap.Position.X,
		Y:        snap.Position.Y,
		VX:       snap.Velocity.X,
		VY:       snap.Velocity.Y,
		Rotation: snap.Rotation,
		Thrust:   in.Thrust,
		Left:     in.RotateLeft,
		Right:    in.RotateRight,
		Contact:  snap.Contact.String(),
		Outcome:  snap.Outcome.String(),
		Landings: snap.Landings,
	}
}

// Writer streams rows of one record type to w, writing the header once.
type Writer struct {
	w             io.Writer
	headerWritten bool
	rows          int
}

// NewWriter creates a CSV writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Rows returns how many rows have been written.
func (cw *Writer) Rows() int {
	return cw.rows
}

// WriteSample appends one tick sample.
func (cw *Writer) WriteSample(s TickSample) error {
	return cw.write([]TickSample{s}, 1)
}

// WriteSamples appends a batch of tick samples.
func (cw *Writer) WriteSamples(s []TickSample) error {
	if len(s) == 0 {
		return nil
	}
	return cw.write(s, len(s))
}

func (cw *Writer) write(records any, n int) error {
	if !cw.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, cw.w); err != nil {
			return fmt.Errorf("telemetry: writing rows: %w", err)
		}
		cw.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, cw.w); err != nil {
			return fmt.Errorf("telemetry: writing rows: %w", err)
		}
	}
	cw.rows += n
	return nil
}

// FlightRow is the CSV form of a logged flight.
type FlightRow struct {
	ID         int64  `csv:"id"`
	Difficulty string `csv:"difficulty"`
	Landings   int    `csv:"landings"`
	Crashes    int    `csv:"crashes"`
	Resets     int    `csv:"resets"`
	Refuels    int    `csv:"refuels"`
	MaxLevel   int    `csv:"max_level"`
	Ticks      int64  `csv:"ticks"`
	StartedAt  string `csv:"started_at"`
	EndedAt    string `csv:"ended_at"`
}

// EventRow is the CSV form of a logged flight event.
type EventRow struct {
	FlightID int64  `csv:"flight_id"`
	Tick     int64  `csv:"tick"`
	Kind     string `csv:"kind"`
	Level    int    `csv:"level"`
	Lives    int    `csv:"lives"`
	Fuel     int    `csv:"fuel"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// WriteFlights exports flights as CSV with a header row.
func WriteFlights(w io.Writer, flights []storage.Flight) error {
	rows := make([]FlightRow, len(flights))
	for i, f := range flights {
		rows[i] = FlightRow{
			ID:         f.ID,
			Difficulty: f.Difficulty,
			Landings:   f.Landings,
			Crashes:    f.Crashes,
			Resets:     f.Resets,
			Refuels:    f.Refuels,
			MaxLevel:   f.MaxLevel,
			Ticks:      f.Ticks,
			StartedAt:  formatTime(f.StartedAt),
			EndedAt:    formatTime(f.EndedAt),
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("telemetry: writing flights: %w", err)
	}
	return nil
}

// WriteEvents exports flight events as CSV with a header row.
func WriteEvents(w io.Writer, events []storage.FlightEvent) error {
	rows := make([]EventRow, len(events))
	for i, e := range events {
		rows[i] = EventRow{
			FlightID: e.FlightID,
			Tick:     e.Tick,
			Kind:     e.Kind,
			Level:    e.Level,
			Lives:    e.Lives,
			Fuel:     e.Fuel,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("telemetry: writing events: %w", err)
	}
	return nil
}
