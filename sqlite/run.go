package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webtab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webtab.RunService = (*RunService)(nil)

// RunService implements webtab.RunService using SQLite.
type RunService struct {
	db  *DB
	now func() time.Time
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db, now: time.Now}
}

// CreateRun saves a run with a generated ID, content hash and timestamp.
func (s *RunService) CreateRun(ctx context.Context, run *webtab.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(run.Table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	run.ID = uuid.New().String()
	run.ContentHash = ContentHash(data)
	run.CreatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, url, mode, selector, table_json, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.URL, string(run.Mode), run.Selector, string(data), run.ContentHash,
		formatTime(run.CreatedAt))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*webtab.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, mode, selector, table_json, content_hash, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, webtab.Errorf(webtab.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter webtab.RunFilter) ([]*webtab.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, mode, selector, table_json, content_hash, created_at FROM runs WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*webtab.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webtab.Errorf(webtab.ENOTFOUND, "run not found")
	}

	return nil
}

// ContentHash returns the xxhash64 fingerprint of an encoded table as hex.
func ContentHash(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*webtab.Run, error) {
	var run webtab.Run
	var mode, tableJSON, createdAt string

	if err := row.Scan(&run.ID, &run.URL, &mode, &run.Selector, &tableJSON,
		&run.ContentHash, &createdAt); err != nil {
		return nil, err
	}
	run.Mode = webtab.Mode(mode)

	var table webtab.Table
	if err := json.Unmarshal([]byte(tableJSON), &table); err != nil {
		return nil, fmt.Errorf("failed to decode table for run %s: %w", run.ID, err)
	}
	run.Table = &table

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
