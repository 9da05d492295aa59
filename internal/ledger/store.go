// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps an optional SQLite history of generate runs and the
// documents each run wrote or failed to write.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

const dbFile = "ledger.db"

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit caps Runs when no positive limit is given.
const DefaultLimit = 20

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at cfg.Dir/ledger.db and creates the
// schema if it does not exist.
func NewStore(cfg types.LedgerConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("ledger directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			image_dir TEXT NOT NULL,
			images INTEGER NOT NULL,
			keep_going INTEGER NOT NULL,
			status TEXT NOT NULL,
			written INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			image TEXT NOT NULL,
			output_path TEXT NOT NULL,
			exif_tags INTEGER NOT NULL,
			sections TEXT,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID         string     `json:"id" yaml:"id"`
	ImageDir   string     `json:"image_dir" yaml:"image_dir"`
	Images     int        `json:"images" yaml:"images"`
	KeepGoing  bool       `json:"keep_going" yaml:"keep_going"`
	Status     string     `json:"status" yaml:"status"`
	Written    int        `json:"written" yaml:"written"`
	Failed     int        `json:"failed" yaml:"failed"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// DocumentEntry is one row of the documents table.
type DocumentEntry struct {
	RunID      string              `json:"run_id" yaml:"run_id"`
	Image      string              `json:"image" yaml:"image"`
	OutputPath string              `json:"output_path" yaml:"output_path"`
	ExifTags   int                 `json:"exif_tags" yaml:"exif_tags"`
	Sections   []types.SectionName `json:"sections" yaml:"sections"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt time.Time           `json:"recorded_at" yaml:"recorded_at"`
}

// Run is an open ledger entry. It records image outcomes until Finish.
type Run struct {
	store *Store
	ID    string
}

// StartRun inserts a running entry for a batch over images in imageDir.
func (s *Store) StartRun(ctx context.Context, imageDir string, images int, keepGoing bool) (*Run, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, image_dir, images, keep_going, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, imageDir, images, keepGoing, StatusRunning, now(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &Run{store: s, ID: id}, nil
}

// Record stores the outcome of one image and updates the run counters.
func (r *Run) Record(ctx context.Context, o types.ImageOutcome) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	sectionsJSON, _ := json.Marshal(o.Sections)
	var errText sql.NullString
	if o.Err != nil {
		errText = sql.NullString{String: o.Err.Error(), Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (run_id, image, output_path, exif_tags, sections, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, o.Name, o.OutputPath, o.ExifTags, string(sectionsJSON), errText, now(),
	)
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", o.Name, err)
	}

	counter := "written = written + 1"
	if o.Failed() {
		counter = "failed = failed + 1"
	}
	if _, err := tx.ExecContext(ctx, `UPDATE runs SET `+counter+` WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("updating run counters: %w", err)
	}

	return tx.Commit()
}

// Finish closes the run. A nil runErr marks it completed, anything else
// failed with the error text stored.
func (r *Run) Finish(ctx context.Context, runErr error) error {
	status := StatusCompleted
	var errText sql.NullString
	if runErr != nil {
		status = StatusFailed
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, errText, now(), r.ID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", r.ID, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, image_dir, images, keep_going, status, written, failed, error, started_at, finished_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs         RunSummary
			errText    sql.NullString
			startedAt  string
			finishedAt sql.NullString
		)
		if err := rows.Scan(&rs.ID, &rs.ImageDir, &rs.Images, &rs.KeepGoing, &rs.Status,
			&rs.Written, &rs.Failed, &errText, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rs.Error = errText.String
		rs.StartedAt, _ = time.Parse(timeLayout, startedAt)
		if finishedAt.Valid {
			t, _ := time.Parse(timeLayout, finishedAt.String)
			rs.FinishedAt = &t
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Documents returns the documents recorded for a run in recording order.
// runID may be a unique prefix of the full identifier.
func (s *Store) Documents(ctx context.Context, runID string) ([]DocumentEntry, error) {
	id, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, image, output_path, exif_tags, sections, error, recorded_at
		 FROM documents WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentEntry
	for rows.Next() {
		var (
			d            DocumentEntry
			sectionsJSON sql.NullString
			errText      sql.NullString
			recordedAt   string
		)
		if err := rows.Scan(&d.RunID, &d.Image, &d.OutputPath, &d.ExifTags,
			&sectionsJSON, &errText, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if sectionsJSON.Valid {
			_ = json.Unmarshal([]byte(sectionsJSON.String), &d.Sections)
		}
		d.Error = errText.String
		d.RecordedAt, _ = time.Parse(timeLayout, recordedAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) resolveRun(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("run id is empty")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return "", fmt.Errorf("resolving run %s: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("resolving run %s: %w", prefix, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolving run %s: %w", prefix, err)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %s not found", prefix)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("run id %s is ambiguous", prefix)
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}
