// Package storage provides SQLite-based persistence for preferences and
// finished sessions. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Prefs is the key/value persistence collaborator used for the record and
// audio settings. Writes may be buffered until Flush.
type Prefs interface {
	GetInt(key string, def int) int
	GetFloat(key string, def float64) float64
	SetInt(key string, value int)
	SetFloat(key string, value float64)
	Flush() error
}

// Store manages the SQLite database connection. It is safe for concurrent
// use; preference writes are cached until Flush.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	prefs map[string]float64
	dirty map[string]bool
}

// SessionEntry is one finished match.
type SessionEntry struct {
	ID        int64
	SessionID string
	Points    int
	Record    int
	Rank      string
	Reason    string // "time_up" or "no_lives"
	LivesLeft int
	Duration  float64 // Gameplay seconds
	CardsUsed int
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all sessions.
type Stats struct {
	Sessions    int
	BestPoints  int
	AvgPoints   float64
	TotalPoints int64
	TimeUps     int
	NoLives     int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed, runs migrations and loads
// the stored preferences.
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

	store := &Store{
		db:    db,
		prefs: make(map[string]float64),
		dirty: make(map[string]bool),
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	if err := store.loadPrefs(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			points INTEGER NOT NULL DEFAULT 0,
			record INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL,
			lives_left INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			cards_used INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(points DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) loadPrefs() error {
	rows, err := s.db.Query("SELECT key, value FROM prefs")
	if err != nil {
		return fmt.Errorf("storage: cannot load prefs: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("storage: cannot scan pref: %w", err)
		}
		s.prefs[key] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

// Close flushes pending preferences and closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// GetInt returns an integer preference, or def if it was never set.
func (s *Store) GetInt(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.prefs[key]; ok {
		return int(v)
	}
	return def
}

// GetFloat returns a float preference, or def if it was never set.
func (s *Store) GetFloat(key string, def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.prefs[key]; ok {
		return v
	}
	return def
}

// SetInt buffers an integer preference until Flush.
func (s *Store) SetInt(key string, value int) {
	s.SetFloat(key, float64(value))
}

// RaiseInt stores value under key only if it is higher than the current
// value. It returns the resulting value and whether it changed.
func (s *Store) RaiseInt(key string, value int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.prefs[key]; ok && int(v) >= value {
		return int(v), false
	}
	s.prefs[key] = float64(value)
	s.dirty[key] = true
	return value, true
}

// SetFloat buffers a float preference until Flush.
func (s *Store) SetFloat(key string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	s.dirty[key] = true
}

// Flush writes every buffered preference in one transaction.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.dirty) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin flush: %w", err)
	}

	for key := range s.dirty {
		_, err := tx.Exec(
			`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, s.prefs[key],
		)
		if err != nil {
			//nolint:errcheck // Rollback error is secondary to the write error
			tx.Rollback()
			return fmt.Errorf("storage: cannot write pref %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit prefs: %w", err)
	}
	s.dirty = make(map[string]bool)
	return nil
}

// PrefKeys returns the sorted keys of every known preference.
func (s *Store) PrefKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.prefs))
	for k := range s.prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeletePref removes a preference immediately.
func (s *Store) DeletePref(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM prefs WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete pref %s: %w", key, err)
	}
	delete(s.prefs, key)
	delete(s.dirty, key)
	return nil
}

// SaveSession records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(e SessionEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, points, record, rank, reason, lives_left, duration_secs, cards_used)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Points, e.Record, e.Rank, e.Reason, e.LivesLeft, e.Duration, e.CardsUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, session_id, points, record, rank, reason, lives_left, duration_secs, cards_used, created_at`

// TopSessions retrieves the N best sessions by points.
func (s *Store) TopSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY points DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentSessions retrieves the N most recent sessions.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// SessionByID retrieves a session by its session ID.
// Returns nil if no such session exists.
func (s *Store) SessionByID(sessionID string) (*SessionEntry, error) {
	entries, err := s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) querySessions(query string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.Points,
			&e.Record,
			&e.Rank,
			&e.Reason,
			&e.LivesLeft,
			&e.Duration,
			&e.CardsUsed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics over all sessions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(points), 0), COALESCE(AVG(points), 0), COALESCE(SUM(points), 0),
		        COALESCE(SUM(reason = 'time_up'), 0), COALESCE(SUM(reason = 'no_lives'), 0)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.BestPoints, &stats.AvgPoints, &stats.TotalPoints, &stats.TimeUps, &stats.NoLives)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions ORDER BY id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// ClearSessions deletes the whole session history.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
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

var _ Prefs = (*Store)(nil)
