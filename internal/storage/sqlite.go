// Package storage provides the SQLite flight log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the flight log.
type Store struct {
	db *sql.DB
}

// Flight is one play session, from start to quit.
type Flight struct {
	ID         int64
	GameID     string
	Difficulty string
	Landings   int
	Crashes    int
	Resets     int
	Refuels    int
	MaxLevel   int // Deepest 1-based level reached
	Ticks      int64
	StartedAt  time.Time
	EndedAt    time.Time // Zero while the flight is still open
}

// Finished reports whether FinishFlight was called for this flight.
func (f Flight) Finished() bool {
	return !f.EndedAt.IsZero()
}

// FlightEvent is a notable occurrence within a flight.
type FlightEvent struct {
	ID        int64
	FlightID  int64
	Tick      int64
	Kind      string // "crash", "reset", "landed", "refuel"
	Level     int
	Lives     int
	Fuel      int
	CreatedAt time.Time
}

// Totals aggregates every recorded flight.
type Totals struct {
	Flights  int
	Landings int
	Crashes  int
	MaxLevel int
	LastFlew time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			landings INTEGER NOT NULL DEFAULT 0,
			crashes INTEGER NOT NULL DEFAULT 0,
			resets INTEGER NOT NULL DEFAULT 0,
			refuels INTEGER NOT NULL DEFAULT 0,
			max_level INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_flights_game_id ON flights(game_id);

		CREATE TABLE IF NOT EXISTS flight_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight_id INTEGER NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			level INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			fuel INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flight_events_flight ON flight_events(flight_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartFlight opens a new flight and returns its ID.
func (s *Store) StartFlight(gameID, difficulty string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO flights (game_id, difficulty) VALUES (?, ?)",
		gameID, difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start flight: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordEvent appends an event to a flight and updates the flight's counters
// in the same transaction.
func (s *Store) RecordEvent(ev FlightEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`INSERT INTO flight_events (flight_id, tick, kind, level, lives, fuel)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.FlightID, ev.Tick, ev.Kind, ev.Level, ev.Lives, ev.Fuel,
	); err != nil {
		return fmt.Errorf("storage: cannot record event: %w", err)
	}

	res, err := tx.Exec(
		`UPDATE flights SET
			landings = landings + (CASE WHEN ?1 = 'landed' THEN 1 ELSE 0 END),
			crashes = crashes + (CASE WHEN ?1 IN ('crash', 'reset') THEN 1 ELSE 0 END),
			resets = resets + (CASE WHEN ?1 = 'reset' THEN 1 ELSE 0 END),
			refuels = refuels + (CASE WHEN ?1 = 'refuel' THEN 1 ELSE 0 END),
			max_level = MAX(max_level, ?2),
			ticks = MAX(ticks, ?3)
		 WHERE id = ?4`,
		ev.Kind, ev.Level, ev.Tick, ev.FlightID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update flight: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: flight %d not found", ev.FlightID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit event: %w", err)
	}
	return nil
}

// FinishFlight closes a flight, recording how many ticks it ran.
func (s *Store) FinishFlight(flightID, ticks int64) error {
	_, err := s.db.Exec(
		"UPDATE flights SET ticks = MAX(ticks, ?), ended_at = CURRENT_TIMESTAMP WHERE id = ?",
		ticks, flightID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish flight: %w", err)
	}
	return nil
}

const flightColumns = `id, game_id, difficulty, landings, crashes, resets, refuels,
	max_level, ticks, started_at, ended_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(r rowScanner) (Flight, error) {
	var f Flight
	var startedAt, endedAt any
	err := r.Scan(
		&f.ID, &f.GameID, &f.Difficulty, &f.Landings, &f.Crashes, &f.Resets, &f.Refuels,
		&f.MaxLevel, &f.Ticks, &startedAt, &endedAt,
	)
	if err != nil {
		return Flight{}, err
	}
	f.StartedAt = parseTime(startedAt)
	f.EndedAt = parseTime(endedAt)
	return f, nil
}

// Flight retrieves a flight by ID. Returns nil if it does not exist.
func (s *Store) Flight(id int64) (*Flight, error) {
	f, err := scanFlight(s.db.QueryRow(
		"SELECT "+flightColumns+" FROM flights WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flight: %w", err)
	}
	return &f, nil
}

// RecentFlights retrieves the most recent flights, newest first.
func (s *Store) RecentFlights(limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+flightColumns+" FROM flights ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return flights, nil
}

// FlightEvents retrieves a flight's events in tick order.
func (s *Store) FlightEvents(flightID int64) ([]FlightEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, flight_id, tick, kind, level, lives, fuel, created_at
		 FROM flight_events
		 WHERE flight_id = ?
		 ORDER BY tick, id`,
		flightID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []FlightEvent
	for rows.Next() {
		var e FlightEvent
		var createdAt any
		if err := rows.Scan(&e.ID, &e.FlightID, &e.Tick, &e.Kind, &e.Level, &e.Lives, &e.Fuel, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// Totals aggregates all flights.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	var lastFlew any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(landings), 0), COALESCE(SUM(crashes), 0),
		        COALESCE(MAX(max_level), 0), MAX(started_at)
		 FROM flights`,
	).Scan(&t.Flights, &t.Landings, &t.Crashes, &t.MaxLevel, &lastFlew)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot get totals: %w", err)
	}
	t.LastFlew = parseTime(lastFlew)
	return t, nil
}

// ClearFlights deletes every flight and its events.
func (s *Store) ClearFlights() error {
	if _, err := s.db.Exec("DELETE FROM flight_events"); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM flights"); err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// parseTime handles the forms SQLite hands back for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
