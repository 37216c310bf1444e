package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

const selectProducts = `
	SELECT id, name, category, price::text, stock, description
	FROM products
	ORDER BY id ASC
`

// Querier is the subset of *pgx.Conn and *pgxpool.Pool the source needs.
type Querier interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource snapshots the products table. The store built from it does
// not observe later table changes.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Product, error) {
	if err := withTimeout(ctx, pingTimeout, s.db.Ping); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	var out []Product
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.Query(ctx, selectProducts)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scanProduct)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return out, nil
}

func scanProduct(row pgx.CollectableRow) (Product, error) {
	var (
		p        Product
		rawPrice string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &rawPrice, &p.Stock, &p.Description); err != nil {
		return Product{}, err
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return Product{}, fmt.Errorf("%w: bad price %q for %q", ErrInvalidCatalog, rawPrice, p.ID)
	}
	p.Price = price
	return p, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
