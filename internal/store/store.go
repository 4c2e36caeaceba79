// Package store persists extraction runs and their fitted distributions in
// SQLite.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/TrevorS/morphstats/internal/extract"
	"github.com/TrevorS/morphstats/stats"
)

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("store: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	population TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fits (
	run_id TEXT NOT NULL REFERENCES runs(id),
	feature TEXT NOT NULL,
	neurite_type TEXT NOT NULL,
	variant TEXT NOT NULL DEFAULT '',
	family TEXT NOT NULL,
	params TEXT NOT NULL,
	errs TEXT NOT NULL,
	sample_size INTEGER NOT NULL,
	PRIMARY KEY (run_id, feature, neurite_type, variant)
);`

// Store is a results database.
type Store struct {
	db *sqlx.DB
}

// Run is one stored extraction run.
type Run struct {
	ID         string
	Population string
	CreatedAt  time.Time
}

// Fit is one stored distribution of a run.
type Fit struct {
	RunID       string
	Feature     string
	NeuriteType string
	Variant     string
	Result      stats.FitResult
	SampleSize  int
}

type fitRow struct {
	RunID       string `db:"run_id"`
	Feature     string `db:"feature"`
	NeuriteType string `db:"neurite_type"`
	Variant     string `db:"variant"`
	Family      string `db:"family"`
	Params      string `db:"params"`
	Errs        string `db:"errs"`
	SampleSize  int    `db:"sample_size"`
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records dists as a new run of population and returns its id.
func (s *Store) SaveRun(ctx context.Context, population string, dists []extract.Distribution) (string, error) {
	id := uuid.NewString()
	created := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, population, created_at) VALUES (?, ?, ?)`,
		id, population, created); err != nil {
		return "", fmt.Errorf("store: inserting run: %w", err)
	}

	for _, d := range dists {
		row, err := newFitRow(id, d)
		if err != nil {
			return "", err
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO fits (run_id, feature, neurite_type, variant, family, params, errs, sample_size)
			VALUES (:run_id, :feature, :neurite_type, :variant, :family, :params, :errs, :sample_size)`,
			row); err != nil {
			return "", fmt.Errorf("store: inserting fit %s: %w", d.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

func newFitRow(runID string, d extract.Distribution) (fitRow, error) {
	params, err := json.Marshal(d.Fit.Params)
	if err != nil {
		return fitRow{}, fmt.Errorf("store: encoding params of %s: %w", d.Label(), err)
	}
	errs, err := json.Marshal(d.Fit.Errs)
	if err != nil {
		return fitRow{}, fmt.Errorf("store: encoding errs of %s: %w", d.Label(), err)
	}
	return fitRow{
		RunID:       runID,
		Feature:     d.Feature,
		NeuriteType: d.NeuriteType.String(),
		Variant:     d.Variant,
		Family:      string(d.Fit.Type),
		Params:      string(params),
		Errs:        string(errs),
		SampleSize:  len(d.Sample),
	}, nil
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var rows []struct {
		ID         string `db:"id"`
		Population string `db:"population"`
		CreatedAt  string `db:"created_at"`
	}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, population, created_at FROM runs ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("store: listing runs: %w", err)
	}
	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("store: run %s: bad created_at: %w", r.ID, err)
		}
		runs = append(runs, Run{ID: r.ID, Population: r.Population, CreatedAt: created})
	}
	return runs, nil
}

// Fits returns the distributions stored for runID, in insertion order.
func (s *Store) Fits(ctx context.Context, runID string) ([]Fit, error) {
	var exists int
	if err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID); err != nil {
		return nil, fmt.Errorf("store: looking up run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	var rows []fitRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT run_id, feature, neurite_type, variant, family, params, errs, sample_size
		FROM fits WHERE run_id = ? ORDER BY rowid`, runID); err != nil {
		return nil, fmt.Errorf("store: listing fits of %s: %w", runID, err)
	}

	fits := make([]Fit, 0, len(rows))
	for _, r := range rows {
		f := Fit{
			RunID:       r.RunID,
			Feature:     r.Feature,
			NeuriteType: r.NeuriteType,
			Variant:     r.Variant,
			SampleSize:  r.SampleSize,
		}
		f.Result.Type = stats.Family(r.Family)
		if err := json.Unmarshal([]byte(r.Params), &f.Result.Params); err != nil {
			return nil, fmt.Errorf("store: decoding params of %s/%s: %w", r.Feature, r.NeuriteType, err)
		}
		if err := json.Unmarshal([]byte(r.Errs), &f.Result.Errs); err != nil {
			return nil, fmt.Errorf("store: decoding errs of %s/%s: %w", r.Feature, r.NeuriteType, err)
		}
		fits = append(fits, f)
	}
	return fits, nil
}
