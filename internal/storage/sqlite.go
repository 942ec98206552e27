// Package storage provides SQLite-based persistence for finished sessions.
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

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/session"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished session.
type SessionRecord struct {
	ID        int64
	Mode      config.Mode
	Group     config.AgeGroup
	Score     int
	Level     int
	Matches   int
	Attempts  int
	Accuracy  float64
	Tier      string
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// In-memory databases are per connection.
	db.SetMaxOpenConns(1)

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
			mode TEXT NOT NULL,
			age_group TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			matches INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL DEFAULT 0,
			tier TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(mode, score DESC);
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

// SaveSession inserts a finished session and returns its ID.
// A zero CreatedAt is stored as the current time.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (mode, age_group, score, level, matches, attempts, accuracy, tier, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Mode),
		string(rec.Group),
		rec.Score,
		rec.Level,
		rec.Matches,
		rec.Attempts,
		rec.Accuracy,
		rec.Tier,
		rec.Elapsed.Milliseconds(),
		created.UTC().Format(timeLayout),
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

// RecordSession implements session.Recorder.
func (s *Store) RecordSession(sum session.Summary) error {
	_, err := s.SaveSession(SessionRecord{
		Mode:      sum.Mode,
		Group:     sum.Group,
		Score:     sum.FinalScore,
		Level:     sum.FinalLevel,
		Matches:   sum.Matches,
		Attempts:  sum.Attempts,
		Accuracy:  sum.Accuracy,
		Tier:      sum.Tier.String(),
		Elapsed:   sum.FinalTime,
		CreatedAt: sum.FinishedAt,
	})
	return err
}

// Ensure Store implements session.Recorder
var _ session.Recorder = (*Store)(nil)

const selectColumns = `SELECT id, mode, age_group, score, level, matches, attempts, accuracy, tier, elapsed_ms, created_at
		 FROM sessions`

// TopSessions retrieves the best N sessions for a mode. Ties on score go to
// the faster session.
func (s *Store) TopSessions(mode config.Mode, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectColumns+`
		 WHERE mode = ?
		 ORDER BY score DESC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// RecentSessions retrieves the most recently finished sessions across modes.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		selectColumns+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]SessionRecord, error) {
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			r         SessionRecord
			mode      string
			group     string
			elapsedMS int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &mode, &group, &r.Score, &r.Level, &r.Matches,
			&r.Attempts, &r.Accuracy, &r.Tier, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Mode = config.Mode(mode)
		r.Group = config.AgeGroup(group)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the highest score for a mode.
// Returns 0 if no sessions exist.
func (s *Store) HighScore(mode config.Mode) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE mode = ?",
		string(mode),
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSessions deletes all sessions for a mode.
func (s *Store) ClearSessions(mode config.Mode) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE mode = ?", string(mode))
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode        config.Mode
	GamesCount  int
	HighScore   int
	AvgScore    float64
	AvgAccuracy float64
	BestLevel   int
	LastPlayed  time.Time
}

// GetModeStats retrieves aggregated statistics for a mode.
func (s *Store) GetModeStats(mode config.Mode) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(accuracy), 0), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM sessions WHERE mode = ?`,
		string(mode),
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore,
		&stats.AvgAccuracy, &stats.BestLevel, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllModeStats retrieves statistics for every mode that has been played.
func (s *Store) GetAllModeStats() (map[config.Mode]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), AVG(accuracy), MAX(level), MAX(created_at)
		 FROM sessions
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[config.Mode]*ModeStats)
	for rows.Next() {
		var (
			st         ModeStats
			mode       string
			lastPlayed any
		)
		if err := rows.Scan(&mode, &st.GamesCount, &st.HighScore, &st.AvgScore,
			&st.AvgAccuracy, &st.BestLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Mode = config.Mode(mode)
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
