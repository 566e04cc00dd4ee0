// Package pgrepo stores saved carts in PostgreSQL, one row per customer.
package pgrepo

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS saved_carts (
	customer_id TEXT PRIMARY KEY,
	items JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL
)`

	upsertSQL = `INSERT INTO saved_carts (customer_id, items, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (customer_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`

	selectSQL = `SELECT items, updated_at FROM saved_carts WHERE customer_id = $1`
)

// PgxIface is the subset of *pgxpool.Pool the repo needs; pgxmock pools satisfy it too.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

var _ savedcart.Repo = (*Repo)(nil)

type Repo struct {
	pool  PgxIface
	close func()
}

// New connects a pool to databaseURL and makes sure the table exists.
func New(ctx context.Context, databaseURL string) (*Repo, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgrepo: connect: %w", err)
	}
	r := &Repo{pool: pool, close: pool.Close}
	if err := r.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// NewWithPool wraps an existing pool without touching the schema.
func NewWithPool(pool PgxIface) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("pgrepo: create saved_carts: %w", err)
	}
	return nil
}

// Upsert writes the whole record in one statement; the row is replaced atomically.
func (r *Repo) Upsert(ctx context.Context, cart *savedcart.SavedCart) error {
	if cart == nil || cart.CustomerID == "" {
		return errors.ErrMissingCustomerID
	}
	items := cart.Items
	if items == nil {
		items = []savedcart.SavedItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("pgrepo: encode items: %w", err)
	}
	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	if _, err := r.pool.Exec(ctx, upsertSQL, cart.CustomerID, raw, updatedAt); err != nil {
		return fmt.Errorf("pgrepo: upsert %s: %w", cart.CustomerID, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, customerID string) (*savedcart.SavedCart, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, selectSQL, customerID).Scan(&raw, &updatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pgrepo: get %s: %w", customerID, err)
	}

	items := []savedcart.SavedItem{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("pgrepo: decode items for %s: %w", customerID, err)
		}
	}
	return &savedcart.SavedCart{CustomerID: customerID, Items: items, UpdatedAt: updatedAt}, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repo) Close() {
	if r.close != nil {
		r.close()
	}
}
