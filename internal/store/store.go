// Package store keeps generated layouts in an embedded sqlite database so
// they can be fetched again by ID.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no layout has the requested ID.
var ErrNotFound = errors.New("layout not found")

// Record is one stored layout. Request, Output, Metrics and Report hold
// JSON documents; Output is a GeoJSON FeatureCollection.
type Record struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Seed      uint32    `db:"seed" json:"seed"`
	Density   string    `db:"density" json:"density"`
	Request   []byte    `db:"request" json:"-"`
	Output    []byte    `db:"output" json:"-"`
	Metrics   []byte    `db:"metrics" json:"-"`
	Report    []byte    `db:"report" json:"-"`
	SVG       string    `db:"svg" json:"-"`
}

// Summary is the listing view of a record.
type Summary struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Seed      uint32    `db:"seed" json:"seed"`
	Density   string    `db:"density" json:"density"`
}

// Store is a sqlite-backed layout store.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and migrates it to the
// latest schema. Use ":memory:" only with a single connection.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save inserts rec, assigning a new ID and creation time when they are
// unset. It returns the stored ID.
func (s *Store) Save(ctx context.Context, rec *Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	const query = `
		INSERT INTO layouts (id, created_at, seed, density, request, output, metrics, report, svg)
		VALUES (:id, :created_at, :seed, :density, :request, :output, :metrics, :report, :svg)`
	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return "", fmt.Errorf("failed to insert layout: %w", err)
	}
	return rec.ID, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	var rec Record
	err := s.db.GetContext(ctx, &rec, `
		SELECT id, created_at, seed, density, request, output, metrics, report, svg
		FROM layouts
		WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query layout: %w", err)
	}
	return &rec, nil
}

// List returns up to limit summaries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []Summary{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, created_at, seed, density
		FROM layouts
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM layouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
