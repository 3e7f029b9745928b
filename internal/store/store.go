// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/axisview/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for segments and saved views.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS segments (
			id INTEGER PRIMARY KEY,
			domain TEXT NOT NULL,
			begin_value TEXT NOT NULL,
			end_value TEXT NOT NULL,
			color TEXT NOT NULL,
			tooltip TEXT NOT NULL,
			band_from REAL,
			band_to REAL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS views (
			name TEXT NOT NULL,
			domain TEXT NOT NULL,
			begin_value TEXT NOT NULL,
			end_value TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (name, domain)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_segments_domain ON segments(domain);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSegment stores a segment and returns its id.
func (s *Store) InsertSegment(ctx context.Context, seg model.SegmentRecord) (int64, error) {
	created := seg.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO segments (domain, begin_value, end_value, color, tooltip, band_from, band_to, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seg.Domain,
		seg.Begin,
		seg.End,
		seg.Color,
		seg.Tooltip,
		nullFloat(seg.BandFrom),
		nullFloat(seg.BandTo),
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSegments returns the segments of a domain in insertion order. An
// empty domain lists all segments.
func (s *Store) ListSegments(ctx context.Context, domain string) ([]model.SegmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, domain, begin_value, end_value, color, tooltip, band_from, band_to, created_at
		FROM segments
		WHERE (? = '' OR domain = ?)
		ORDER BY id ASC`, domain, domain)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SegmentRecord
	for rows.Next() {
		var seg model.SegmentRecord
		var from, to sql.NullFloat64
		var createdAt string
		if err := rows.Scan(&seg.ID, &seg.Domain, &seg.Begin, &seg.End, &seg.Color, &seg.Tooltip, &from, &to, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		seg.CreatedAt = parsed
		seg.BandFrom = floatPtr(from)
		seg.BandTo = floatPtr(to)
		result = append(result, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSegment removes a segment and reports whether it existed.
func (s *Store) DeleteSegment(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM segments WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveView inserts or replaces a named view.
func (s *Store) SaveView(ctx context.Context, v model.SavedView) error {
	updated := v.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO views (name, domain, begin_value, end_value, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name, domain) DO UPDATE SET
			begin_value = excluded.begin_value,
			end_value = excluded.end_value,
			updated_at = excluded.updated_at`,
		v.Name, v.Domain, v.Begin, v.End, updated.UTC().Format(time.RFC3339Nano))
	return err
}

// GetView loads a named view. The bool is false when no such view exists.
func (s *Store) GetView(ctx context.Context, name, domain string) (model.SavedView, bool, error) {
	var v model.SavedView
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, domain, begin_value, end_value, updated_at
		FROM views WHERE name = ? AND domain = ?`, name, domain).
		Scan(&v.Name, &v.Domain, &v.Begin, &v.End, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedView{}, false, nil
	}
	if err != nil {
		return model.SavedView{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return model.SavedView{}, false, err
	}
	v.UpdatedAt = parsed
	return v, true, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
