package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/praetorian-inc/needle/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddRun stores a run together with its text record and assigns its ID.
func (s *SQLiteStore) AddRun(run *types.Run) error {
	indicesJSON, err := json.Marshal(nonNil(run.Indices))
	if err != nil {
		return fmt.Errorf("marshaling indices: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO texts (id, size) VALUES (?, ?)",
		run.TextID, run.TextLen,
	)
	if err != nil {
		return fmt.Errorf("inserting text: %w", err)
	}

	res, err := tx.Exec(`
		INSERT INTO runs (algorithm, text_id, pattern, pattern_id, match_count, indices_json, elapsed_ns, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.Algorithm,
		run.TextID,
		[]byte(run.Pattern),
		string(run.PatternID),
		len(run.Indices),
		string(indicesJSON),
		run.Elapsed.Nanoseconds(),
		run.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}

	run.ID = id
	return nil
}

const selectRuns = `
	SELECT r.id, r.algorithm, r.text_id, t.size, r.pattern, r.pattern_id, r.indices_json, r.elapsed_ns, r.recorded_at
	FROM runs r
	JOIN texts t ON t.id = r.text_id
`

// GetRuns retrieves all runs in insertion order.
func (s *SQLiteStore) GetRuns() ([]*types.Run, error) {
	return s.queryRuns(selectRuns + " ORDER BY r.id")
}

// GetRunsByText retrieves runs over a specific text.
func (s *SQLiteStore) GetRunsByText(id types.TextID) ([]*types.Run, error) {
	return s.queryRuns(selectRuns+" WHERE r.text_id = ? ORDER BY r.id", id)
}

// GetRunsByPattern retrieves runs for a specific pattern.
func (s *SQLiteStore) GetRunsByPattern(id types.PatternID) ([]*types.Run, error) {
	return s.queryRuns(selectRuns+" WHERE r.pattern_id = ? ORDER BY r.id", string(id))
}

// TextExists checks if a text has been recorded.
func (s *SQLiteStore) TextExists(id types.TextID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM texts WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking text existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryRuns(query string, args ...any) ([]*types.Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.Run
	for rows.Next() {
		var (
			r           types.Run
			pattern     []byte
			patternID   string
			indicesJSON string
			elapsedNs   int64
			recordedAt  string
		)

		err := rows.Scan(
			&r.ID, &r.Algorithm, &r.TextID, &r.TextLen, &pattern,
			&patternID, &indicesJSON, &elapsedNs, &recordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		if err := json.Unmarshal([]byte(indicesJSON), &r.Indices); err != nil {
			return nil, fmt.Errorf("unmarshaling indices: %w", err)
		}

		r.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}

		r.Pattern = string(pattern)
		r.PatternID = types.PatternID(patternID)
		r.Elapsed = time.Duration(elapsedNs)
		runs = append(runs, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

func nonNil(indices []int) []int {
	if indices == nil {
		return []int{}
	}
	return indices
}
