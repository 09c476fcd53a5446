// Package journal provides SQLite-based recording of game runs: the seed,
// the effective config and every frame's input and elapsed time, which is
// enough to replay a run exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// ErrRunNotFound is returned when a run ID is not in the journal.
var ErrRunNotFound = errors.New("journal: run not found")

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunInfo describes one journaled run.
type RunInfo struct {
	ID         uuid.UUID
	GameID     string
	Seed       int64
	Config     config.DodgeConfig
	FrameCount int
	FinalScore int
	Finished   bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Frame is one frame of recorded input.
type Frame struct {
	Index   int
	Elapsed time.Duration
	Input   core.InputFrame
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("journal: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			frame_count INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			actions TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, idx)
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

// BeginRun records the start of a run and returns its ID.
func (s *Store) BeginRun(gameID string, seed int64, cfg config.DodgeConfig) (uuid.UUID, error) {
	data, err := config.MarshalDodge(cfg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("journal: %w", err)
	}

	id := uuid.New()
	_, err = s.db.Exec(
		"INSERT INTO runs (id, game_id, seed, config) VALUES (?, ?, ?, ?)",
		id.String(), gameID, seed, string(data),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("journal: cannot begin run: %w", err)
	}
	return id, nil
}

// AppendFrames stores frames for a run in a single transaction.
func (s *Store) AppendFrames(runID uuid.UUID, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("journal: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.Prepare("INSERT INTO frames (run_id, idx, elapsed_ns, actions) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("journal: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(runID.String(), f.Index, int64(f.Elapsed), f.Input.Encode()); err != nil {
			return fmt.Errorf("journal: cannot save frame %d: %w", f.Index, err)
		}
	}

	_, err = tx.Exec(
		"UPDATE runs SET frame_count = frame_count + ? WHERE id = ?",
		len(frames), runID.String(),
	)
	if err != nil {
		return fmt.Errorf("journal: cannot update frame count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("journal: cannot commit frames: %w", err)
	}
	return nil
}

// FinishRun records the final score of a run.
func (s *Store) FinishRun(runID uuid.UUID, score int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET final_score = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		score, runID.String(),
	)
	if err != nil {
		return fmt.Errorf("journal: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRunNotFound
	}
	return nil
}

const runColumns = `id, game_id, seed, config, frame_count, final_score, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunInfo, error) {
	var (
		info       RunInfo
		id         string
		cfgText    string
		finalScore sql.NullInt64
		startedAt  any
		finishedAt any
	)
	if err := row.Scan(&id, &info.GameID, &info.Seed, &cfgText, &info.FrameCount, &finalScore, &startedAt, &finishedAt); err != nil {
		return info, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return info, fmt.Errorf("journal: bad run id %q: %w", id, err)
	}
	info.ID = parsed

	// Stored configs are always complete, so decoding over the defaults is exact.
	cfg, err := config.DecodeDodge([]byte(cfgText))
	if err != nil {
		return info, fmt.Errorf("journal: bad config for run %s: %w", id, err)
	}
	info.Config = cfg

	if finalScore.Valid {
		info.Finished = true
		info.FinalScore = int(finalScore.Int64)
	}
	info.StartedAt = parseTime(startedAt)
	info.FinishedAt = parseTime(finishedAt)
	return info, nil
}

// parseTime handles both time.Time and string values returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Run retrieves a run by ID.
func (s *Store) Run(runID uuid.UUID) (*RunInfo, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", runID.String())
	info, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query run: %w", err)
	}
	return &info, nil
}

// FindRun resolves a full ID or a unique prefix of one. A prefix may only
// hold hex digits and dashes, so LIKE wildcards never reach the query.
func (s *Store) FindRun(prefix string) (*RunInfo, error) {
	if id, err := uuid.Parse(prefix); err == nil {
		return s.Run(id)
	}
	prefix = strings.ToLower(prefix)
	if !isIDPrefix(prefix) {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query("SELECT "+runColumns+" FROM runs WHERE id LIKE ? || '%' LIMIT 2", prefix)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query run: %w", err)
	}
	defer rows.Close()

	var matches []RunInfo
	for rows.Next() {
		info, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		matches = append(matches, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrRunNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("journal: run id prefix %q is ambiguous", prefix)
	}
}

func isIDPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, r := range prefix {
		if !strings.ContainsRune("0123456789abcdef-", r) {
			return false
		}
	}
	return true
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		info, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("journal: cannot scan row: %w", err)
		}
		runs = append(runs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}

	return runs, nil
}

// Frames retrieves all frames of a run in order.
func (s *Store) Frames(runID uuid.UUID) ([]Frame, error) {
	rows, err := s.db.Query(
		"SELECT idx, elapsed_ns, actions FROM frames WHERE run_id = ? ORDER BY idx",
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var (
			f       Frame
			ns      int64
			actions string
		)
		if err := rows.Scan(&f.Index, &ns, &actions); err != nil {
			return nil, fmt.Errorf("journal: cannot scan frame: %w", err)
		}
		f.Elapsed = time.Duration(ns)
		f.Input = core.DecodeInputFrame(actions)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteRun removes a run and its frames.
func (s *Store) DeleteRun(runID uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("journal: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM frames WHERE run_id = ?", runID.String()); err != nil {
		return fmt.Errorf("journal: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID.String())
	if err != nil {
		return fmt.Errorf("journal: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRunNotFound
	}
	return tx.Commit()
}
