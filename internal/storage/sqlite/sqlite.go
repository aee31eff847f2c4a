// Package sqlite stores folder metadata in a local SQLite file. It is meant
// for development and single-node installs.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/models"
)

// Timestamps are unix nanoseconds so ordering and precision do not depend on
// the driver's text date handling.
const createTable = `
CREATE TABLE IF NOT EXISTS folder_metadata (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	folder_name TEXT NOT NULL UNIQUE,
	description TEXT NULL,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
)`

const upsertQuery = `
INSERT INTO folder_metadata (folder_name, description, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(folder_name) DO UPDATE
	SET description = excluded.description, updated_at = excluded.updated_at`

const selectColumns = `SELECT folder_name, description, created_at, updated_at FROM folder_metadata`

// Store is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database file named by cfg.DSN and creates the table.
func New(ctx context.Context, cfg config.Metadata) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open sqlite", err)
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, mapError(err, pragma)
		}
	}
	if err := s.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) CreateTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return mapError(err, "create folder_metadata")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) Upsert(ctx context.Context, name string, description *string) (models.FolderMetadata, error) {
	now := s.now().UTC().UnixNano()
	if _, err := s.db.ExecContext(ctx, upsertQuery, name, description, now, now); err != nil {
		return models.FolderMetadata{}, mapError(err, "upsert folder metadata")
	}
	m, err := scan(s.db.QueryRowContext(ctx, selectColumns+` WHERE folder_name = ?`, name))
	if err != nil {
		return models.FolderMetadata{}, mapError(err, "read folder metadata")
	}
	return m, nil
}

func (s *Store) DeleteByName(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM folder_metadata WHERE folder_name = ?`, name); err != nil {
		return mapError(err, "delete folder metadata")
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.FolderMetadata, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY folder_name`)
	if err != nil {
		return nil, mapError(err, "list folder metadata")
	}
	defer rows.Close()

	out := []models.FolderMetadata{}
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, mapError(err, "scan folder metadata")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list folder metadata")
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (models.FolderMetadata, error) {
	var (
		m                models.FolderMetadata
		desc             sql.NullString
		created, updated int64
	)
	if err := r.Scan(&m.FolderName, &desc, &created, &updated); err != nil {
		return models.FolderMetadata{}, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	m.CreatedAt = time.Unix(0, created).UTC()
	m.UpdatedAt = time.Unix(0, updated).UTC()
	return m, nil
}
