// Package storage persists folder descriptions keyed by bare folder name.
package storage

import (
	"context"
	"fmt"

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/storage/mysql"
	"github.com/damacus/iron-gallery/internal/storage/postgres"
	"github.com/damacus/iron-gallery/internal/storage/sqlite"
)

// FolderMetadataStore is the relational side of the gallery.
//
// Rows are never tied to object existence: a row may outlive its folder and
// a folder may have no row.
type FolderMetadataStore interface {
	// Upsert creates or replaces the description for name.
	Upsert(ctx context.Context, name string, description *string) (models.FolderMetadata, error)
	// DeleteByName removes the row for name. A missing row is not an error.
	DeleteByName(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.FolderMetadata, error)
	Ping(ctx context.Context) error
	Close()
}

var (
	_ FolderMetadataStore = (*postgres.Store)(nil)
	_ FolderMetadataStore = (*mysql.Store)(nil)
	_ FolderMetadataStore = (*sqlite.Store)(nil)
)

// Open connects the driver named in cfg and makes sure its table exists.
func Open(ctx context.Context, cfg config.Metadata) (FolderMetadataStore, error) {
	var (
		store FolderMetadataStore
		err   error
	)
	switch cfg.Driver {
	case "postgres":
		store, err = postgres.New(ctx, cfg)
	case "mysql":
		store, err = mysql.New(ctx, cfg)
	case "sqlite":
		store, err = sqlite.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported metadata driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
