package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreFlightLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartFlight("lander", "hard")
	if err != nil {
		t.Fatalf("StartFlight() failed: %v", err)
	}

	f, err := store.Flight(id)
	if err != nil || f == nil {
		t.Fatalf("Flight() = %v, %v", f, err)
	}
	if f.Finished() {
		t.Error("new flight should be open")
	}
	if f.MaxLevel != 1 || f.Difficulty != "hard" {
		t.Errorf("new flight = %+v", f)
	}

	events := []FlightEvent{
		{FlightID: id, Tick: 1, Kind: "refuel", Level: 1, Lives: 3, Fuel: 100},
		{FlightID: id, Tick: 200, Kind: "landed", Level: 2, Lives: 3, Fuel: 100},
		{FlightID: id, Tick: 450, Kind: "crash", Level: 2, Lives: 2, Fuel: 61},
		{FlightID: id, Tick: 900, Kind: "reset", Level: 1, Lives: 3, Fuel: 100},
	}
	for _, ev := range events {
		if err := store.RecordEvent(ev); err != nil {
			t.Fatalf("RecordEvent(%s) failed: %v", ev.Kind, err)
		}
	}

	if err := store.FinishFlight(id, 1000); err != nil {
		t.Fatalf("FinishFlight() failed: %v", err)
	}

	f, err = store.Flight(id)
	if err != nil {
		t.Fatal(err)
	}
	if f.Landings != 1 || f.Crashes != 2 || f.Resets != 1 || f.Refuels != 1 {
		t.Errorf("counters = landings %d crashes %d resets %d refuels %d, expected 1/2/1/1",
			f.Landings, f.Crashes, f.Resets, f.Refuels)
	}
	if f.MaxLevel != 2 {
		t.Errorf("max level = %d, expected 2", f.MaxLevel)
	}
	if f.Ticks != 1000 {
		t.Errorf("ticks = %d, expected 1000", f.Ticks)
	}
	if !f.Finished() {
		t.Error("flight should be finished")
	}

	got, err := store.FlightEvents(id)
	if err != nil {
		t.Fatalf("FlightEvents() failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d events, expected %d", len(got), len(events))
	}
	for i, ev := range got {
		if ev.Kind != events[i].Kind || ev.Tick != events[i].Tick || ev.Fuel != events[i].Fuel {
			t.Errorf("event %d = %+v, expected %+v", i, ev, events[i])
		}
	}
}

func TestStoreRecordEventUnknownFlight(t *testing.T) {
	store := openTestStore(t)

	err := store.RecordEvent(FlightEvent{FlightID: 42, Kind: "crash", Level: 1})
	if err == nil {
		t.Fatal("expected error for unknown flight")
	}

	events, err := store.FlightEvents(42)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Error("event for unknown flight should have been rolled back")
	}
}

func TestStoreFlightMissing(t *testing.T) {
	store := openTestStore(t)

	f, err := store.Flight(7)
	if err != nil {
		t.Fatalf("Flight() failed: %v", err)
	}
	if f != nil {
		t.Errorf("Flight(7) = %+v, expected nil", f)
	}
}

func TestStoreRecentFlights(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for range 5 {
		id, err := store.StartFlight("lander", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	flights, err := store.RecentFlights(3)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 3 {
		t.Fatalf("got %d flights, expected 3", len(flights))
	}
	if flights[0].ID != ids[4] || flights[2].ID != ids[2] {
		t.Errorf("flights not newest first: %d..%d", flights[0].ID, flights[2].ID)
	}
}

func TestStoreTotalsAndClear(t *testing.T) {
	store := openTestStore(t)

	totals, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() on empty store failed: %v", err)
	}
	if totals.Flights != 0 || !totals.LastFlew.IsZero() {
		t.Errorf("empty totals = %+v", totals)
	}

	for range 2 {
		id, err := store.StartFlight("lander", "")
		if err != nil {
			t.Fatal(err)
		}
		if err := store.RecordEvent(FlightEvent{FlightID: id, Tick: 10, Kind: "landed", Level: 2}); err != nil {
			t.Fatal(err)
		}
	}

	totals, err = store.Totals()
	if err != nil {
		t.Fatal(err)
	}
	if totals.Flights != 2 || totals.Landings != 2 || totals.MaxLevel != 2 {
		t.Errorf("totals = %+v", totals)
	}

	if err := store.ClearFlights(); err != nil {
		t.Fatalf("ClearFlights() failed: %v", err)
	}
	flights, err := store.RecentFlights(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(flights) != 0 {
		t.Errorf("%d flights left after clear", len(flights))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/flights.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "flights.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
