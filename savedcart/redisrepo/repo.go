// Package redisrepo stores saved carts in Redis as one JSON value per customer.
package redisrepo

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "savedcart:"

var _ savedcart.Repo = (*Repo)(nil)

type Repo struct {
	client *redis.Client
	prefix string
}

// New creates a repo from a redis:// URL.
func New(url, prefix string) (*Repo, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redisrepo: parse url: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), prefix), nil
}

func NewWithClient(client *redis.Client, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{client: client, prefix: prefix}
}

func (r *Repo) key(customerID string) string {
	return r.prefix + customerID
}

// Upsert replaces the record with a single SET, which Redis applies atomically.
func (r *Repo) Upsert(ctx context.Context, cart *savedcart.SavedCart) error {
	if cart == nil || cart.CustomerID == "" {
		return errors.ErrMissingCustomerID
	}
	stored := cart.Clone()
	if stored.Items == nil {
		stored.Items = []savedcart.SavedItem{}
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("redisrepo: encode %s: %w", cart.CustomerID, err)
	}
	if err := r.client.Set(ctx, r.key(cart.CustomerID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redisrepo: set %s: %w", cart.CustomerID, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, customerID string) (*savedcart.SavedCart, error) {
	raw, err := r.client.Get(ctx, r.key(customerID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisrepo: get %s: %w", customerID, err)
	}

	var cart savedcart.SavedCart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("redisrepo: decode %s: %w", customerID, err)
	}
	cart.CustomerID = customerID
	if cart.Items == nil {
		cart.Items = []savedcart.SavedItem{}
	}
	return &cart, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Repo) Close() error {
	return r.client.Close()
}
