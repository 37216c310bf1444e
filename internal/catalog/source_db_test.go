package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Values() ([]any, error) { return r.data[r.i-1], nil }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case *int:
			*v = row[i].(int)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeQuerier struct {
	rows    *fakeRows
	pingErr error
	query   string
}

func (q *fakeQuerier) Ping(context.Context) error { return q.pingErr }

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.query = sql
	return q.rows, nil
}

func TestPostgresSource_Load(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{
		{"PROD-001", "Wireless Keyboard", "Electronics", "49.99", 150, "Ergonomic wireless keyboard."},
		{"PROD-002", "Running Shoes", "Sports", "89.99", 0, "Lightweight running shoes."},
	}}}

	store, err := Open(context.Background(), NewPostgresSource(q))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("len=%d want=2", store.Len())
	}

	p, ok := store.FindByID("prod-001")
	if !ok || p.Price.String() != "49.99" || p.Stock != 150 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if q.query != selectProducts {
		t.Fatalf("unexpected query: %s", q.query)
	}
}

func TestPostgresSource_BadPrice(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{
		{"PROD-001", "Keyboard", "Electronics", "abc", 1, ""},
	}}}

	_, err := NewPostgresSource(q).Load(context.Background())
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("err=%v want ErrInvalidCatalog", err)
	}
}

func TestPostgresSource_PingFailure(t *testing.T) {
	q := &fakeQuerier{pingErr: errors.New("connection refused")}

	if _, err := NewPostgresSource(q).Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
