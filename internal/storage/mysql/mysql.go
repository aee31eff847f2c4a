// Package mysql stores folder metadata in MySQL through database/sql.
package mysql

import (
	"context"
	"database/sql"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/models"
)

const (
	defaultMaxOpenConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
)

const createTable = `
CREATE TABLE IF NOT EXISTS folder_metadata (
	id          BIGINT AUTO_INCREMENT PRIMARY KEY,
	folder_name VARCHAR(255) NOT NULL UNIQUE,
	description TEXT NULL,
	created_at  DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	updated_at  DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6)
)`

const upsertQuery = `
INSERT INTO folder_metadata (folder_name, description)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE description = VALUES(description), updated_at = CURRENT_TIMESTAMP(6)`

const selectColumns = `SELECT folder_name, description, created_at, updated_at FROM folder_metadata`

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// New opens the pool, pings and creates the folder_metadata table if needed.
func New(ctx context.Context, cfg config.Metadata) (*Store, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open mysql", err)
	}

	maxOpen := int(cfg.MaxConns)
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(max(int(cfg.MinConns), 1))
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	s := &Store{db: db}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// buildDSN forces parseTime so DATETIME columns scan into time.Time.
func buildDSN(cfg config.Metadata) (string, error) {
	mc, err := gomysql.ParseDSN(cfg.DSN)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindConnectionFailed, "invalid mysql DSN", err)
	}
	mc.ParseTime = true
	if mc.Loc == nil {
		mc.Loc = time.UTC
	}
	if cfg.ConnectTimeout > 0 {
		mc.Timeout = cfg.ConnectTimeout
	}
	return mc.FormatDSN(), nil
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
	if _, err := s.db.ExecContext(ctx, upsertQuery, name, description); err != nil {
		return models.FolderMetadata{}, mapError(err, "upsert folder metadata")
	}
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE folder_name = ?`, name)
	m, err := scan(row)
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
		m    models.FolderMetadata
		desc sql.NullString
	)
	if err := r.Scan(&m.FolderName, &desc, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return models.FolderMetadata{}, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	return m, nil
}
