// Package store persists extracted invoice records and tracks which
// documents a batch run has already handled.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/fpl-auction/invoice-cli/internal/config"
	"github.com/fpl-auction/invoice-cli/internal/model"
)

// RecordFilter specifies criteria for listing records.
type RecordFilter struct {
	Band    model.ConfidenceBand `json:"band,omitempty"`
	Company string               `json:"company,omitempty"`
	Month   string               `json:"month,omitempty"`
	Limit   int                  `json:"limit,omitempty"`
	Offset  int                  `json:"offset,omitempty"`
}

// Store defines the persistence interface for the extraction pipeline.
type Store interface {
	// Records
	SaveRecord(ctx context.Context, rec *model.InvoiceRecord) error
	HasRecord(ctx context.Context, fileName string) (bool, error)
	ProcessedFileNames(ctx context.Context) (map[string]bool, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]model.InvoiceRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store from config. SQLite is the default driver; Postgres
// is available for shared deployments.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
