package telemetry

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	sim := lander.NewSimulator(lander.BuiltinCatalog(), config.DefaultLanderConfig(), nil)
	s := sim.NewSession()
	for i := range 3 {
		in := core.Intents{Thrust: i == 1}
		now := time.Duration(i) * time.Second / 60
		var snap lander.Snapshot
		s, snap = sim.Tick(s, in, now)
		if err := w.WriteSample(SampleFrom(snap, in, now)); err != nil {
			t.Fatalf("WriteSample() failed: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected header + 3 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,time,level,lives,fuel,x,y") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,") != 1 {
		t.Error("header written more than once")
	}
	if w.Rows() != 3 {
		t.Errorf("Rows() = %d, expected 3", w.Rows())
	}
	if !strings.Contains(lines[1], "fuel_pack#0") || !strings.Contains(lines[1], "refuel") {
		t.Errorf("first row should record the spawn pickup: %q", lines[1])
	}
}

func TestWriteSamplesEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteSamples(nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty batch wrote %q", buf.String())
	}
}

func TestWriteFlightsAndEvents(t *testing.T) {
	var buf bytes.Buffer
	flights := []storage.Flight{
		{ID: 2, Difficulty: "easy", Landings: 3, MaxLevel: 2, Ticks: 1200, StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	if err := WriteFlights(&buf, flights); err != nil {
		t.Fatalf("WriteFlights() failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "id,difficulty,landings,crashes,resets,refuels,max_level,ticks,started_at,ended_at") {
		t.Errorf("flights header = %q", out)
	}
	if !strings.Contains(out, "2,easy,3,0,0,0,2,1200,2026-01-02T03:04:05Z,") {
		t.Errorf("flights row missing:\n%s", out)
	}

	buf.Reset()
	events := []storage.FlightEvent{{FlightID: 2, Tick: 40, Kind: "crash", Level: 1, Lives: 2, Fuel: 77}}
	if err := WriteEvents(&buf, events); err != nil {
		t.Fatalf("WriteEvents() failed: %v", err)
	}
	if want := "flight_id,tick,kind,level,lives,fuel\n2,40,crash,1,2,77\n"; buf.String() != want {
		t.Errorf("events CSV = %q, expected %q", buf.String(), want)
	}
}
