// Package storage provides SQLite-based persistence for replays.
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

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Session is one recorded game: everything needed to rebuild the engine
// and replay it tick for tick.
type Session struct {
	ID             int64
	Player         string
	Seed           int64
	Dimension      int
	CellSize       float64
	InitialLength  int
	InitialHeading grid.Direction
	TickIntervalMs int
	FoodAvoidsBody bool
	Ticks          uint64
	CreatedAt      time.Time

	// Inputs is only loaded by Store.Session.
	Inputs []snake.InputEvent
	// InputCount is filled by both Session and RecentSessions.
	InputCount int
}

// NewSession captures a finished engine for the journal.
func NewSession(player string, e *snake.Engine, tickIntervalMs int) Session {
	cfg := e.Config()
	inputs := e.Inputs()
	return Session{
		Player:         player,
		Seed:           cfg.Seed,
		Dimension:      cfg.Dimension,
		CellSize:       cfg.CellSize,
		InitialLength:  cfg.InitialLength,
		InitialHeading: cfg.InitialHeading,
		TickIntervalMs: tickIntervalMs,
		FoodAvoidsBody: cfg.FoodAvoidsBody,
		Ticks:          e.Tick(),
		Inputs:         inputs,
		InputCount:     len(inputs),
	}
}

// EngineConfig rebuilds the engine parameters of the session around a
// display anchor.
func (s Session) EngineConfig(anchorX, anchorY float64) snake.Config {
	return snake.Config{
		CellSize:       s.CellSize,
		Dimension:      s.Dimension,
		AnchorX:        anchorX,
		AnchorY:        anchorY,
		InitialHeading: s.InitialHeading,
		InitialLength:  s.InitialLength,
		Seed:           s.Seed,
		FoodAvoidsBody: s.FoodAvoidsBody,
	}
}

// TickInterval returns the step interval the session was played at.
func (s Session) TickInterval() time.Duration {
	return time.Duration(s.TickIntervalMs) * time.Millisecond
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			dimension INTEGER NOT NULL,
			cell_size REAL NOT NULL,
			initial_length INTEGER NOT NULL,
			initial_heading TEXT NOT NULL,
			tick_interval_ms INTEGER NOT NULL,
			food_avoids_body INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS inputs (
			session_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
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

// SaveSession records a session and its input log in one transaction.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(sess Session) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO sessions
		 (player, seed, dimension, cell_size, initial_length, initial_heading, tick_interval_ms, food_avoids_body, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Player,
		sess.Seed,
		sess.Dimension,
		sess.CellSize,
		sess.InitialLength,
		sess.InitialHeading.String(),
		sess.TickIntervalMs,
		sess.FoodAvoidsBody,
		int64(sess.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO inputs (session_id, seq, tick, direction) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range sess.Inputs {
		if _, err := stmt.Exec(id, i, int64(in.Tick), in.Dir.String()); err != nil {
			return 0, fmt.Errorf("storage: cannot save input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

const sessionColumns = `s.id, s.player, s.seed, s.dimension, s.cell_size, s.initial_length,
	s.initial_heading, s.tick_interval_ms, s.food_avoids_body, s.ticks, s.created_at,
	(SELECT COUNT(*) FROM inputs i WHERE i.session_id = s.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var heading string
	var ticks int64
	var createdAt any
	if err := row.Scan(
		&sess.ID,
		&sess.Player,
		&sess.Seed,
		&sess.Dimension,
		&sess.CellSize,
		&sess.InitialLength,
		&heading,
		&sess.TickIntervalMs,
		&sess.FoodAvoidsBody,
		&ticks,
		&createdAt,
		&sess.InputCount,
	); err != nil {
		return Session{}, err
	}

	dir, err := grid.ParseDirection(heading)
	if err != nil {
		return Session{}, fmt.Errorf("storage: session %d: %w", sess.ID, err)
	}
	sess.InitialHeading = dir
	sess.Ticks = uint64(ticks)
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Session loads a session together with its input log.
func (s *Store) Session(id int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions s WHERE s.id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT tick, direction FROM inputs WHERE session_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tick int64
		var name string
		if err := rows.Scan(&tick, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		dir, err := grid.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("storage: session %d: %w", id, err)
		}
		sess.Inputs = append(sess.Inputs, snake.InputEvent{Tick: uint64(tick), Dir: dir})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
// Input logs are not loaded.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions s
		 ORDER BY s.created_at DESC, s.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// DeleteSession removes a session and its input log.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM inputs WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
