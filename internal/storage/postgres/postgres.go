// Package postgres stores folder metadata in PostgreSQL through pgxpool.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/models"
)

const createTable = `
CREATE TABLE IF NOT EXISTS folder_metadata (
	id          BIGSERIAL PRIMARY KEY,
	folder_name TEXT NOT NULL UNIQUE,
	description TEXT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertQuery = `
INSERT INTO folder_metadata (folder_name, description)
VALUES ($1, $2)
ON CONFLICT (folder_name) DO UPDATE
	SET description = EXCLUDED.description, updated_at = NOW()
RETURNING folder_name, description, created_at, updated_at`

const listQuery = `
SELECT folder_name, description, created_at, updated_at
FROM folder_metadata
ORDER BY folder_name`

// Store is safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// New connects, pings and creates the folder_metadata table if needed.
func New(ctx context.Context, cfg config.Metadata) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid postgres DSN", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, mapError(err, "failed to create connection pool")
	}

	s := &Store{pool: pool}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.CreateTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) CreateTables(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return mapError(err, "create folder_metadata")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Upsert(ctx context.Context, name string, description *string) (models.FolderMetadata, error) {
	var m models.FolderMetadata
	err := s.pool.QueryRow(ctx, upsertQuery, name, description).
		Scan(&m.FolderName, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return models.FolderMetadata{}, mapError(err, "upsert folder metadata")
	}
	return m, nil
}

func (s *Store) DeleteByName(ctx context.Context, name string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM folder_metadata WHERE folder_name = $1`, name); err != nil {
		return mapError(err, "delete folder metadata")
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.FolderMetadata, error) {
	rows, err := s.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, mapError(err, "list folder metadata")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FolderMetadata, error) {
		var m models.FolderMetadata
		err := row.Scan(&m.FolderName, &m.Description, &m.CreatedAt, &m.UpdatedAt)
		return m, err
	})
	if err != nil {
		return nil, mapError(err, "scan folder metadata")
	}
	return out, nil
}
