package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
)

// openStore loads the configured source once. Postgres connections are
// closed after the snapshot is taken.
func openStore(ctx context.Context, cfg *config.Config) (*catalog.Store, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.Open(ctx, catalog.FileSource{Path: cfg.Catalog.File})

	case config.SourcePostgres:
		conn, err := pgx.Connect(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		defer func() { _ = conn.Close(context.WithoutCancel(ctx)) }()
		return catalog.Open(ctx, catalog.NewPostgresSource(conn))

	default:
		return catalog.Open(ctx, catalog.SampleSource{})
	}
}
