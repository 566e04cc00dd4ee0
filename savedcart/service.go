package savedcart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/internal/metrics"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc is swapped by tests that assert on UpdatedAt.
var NowTimeFunc = time.Now

// Service implements the remote persistence operations on top of a Repo.
type Service struct {
	repo    Repo
	timeout time.Duration
}

// NewService creates a service. A zero timeout leaves storage calls bounded only by the caller's ctx.
func NewService(repo Repo, timeout time.Duration) *Service {
	return &Service{repo: repo, timeout: timeout}
}

// UpsertSavedCart creates the customer's record or replaces its items wholesale.
func (s *Service) UpsertSavedCart(ctx context.Context, customerID string, items []SavedItem) (*SavedCart, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, errors.ErrMissingCustomerID
	}
	normalized, err := NormalizeItems(items)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w: %w", customerID, errors.ErrInvalidRequest, err)
	}

	cart := &SavedCart{
		CustomerID: customerID,
		Items:      normalized,
		UpdatedAt:  NowTimeFunc().UTC(),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	if err := s.repo.Upsert(ctx, cart); err != nil {
		metrics.RecordSave("error", len(normalized), time.Since(start).Seconds())
		metrics.RecordError("upsert", "storage")
		log.Err(err).Str("customer_id", customerID).Int("items", len(normalized)).Msg("Failed to upsert saved cart")
		return nil, fmt.Errorf("upsert saved cart for %s: %w: %w", customerID, errors.ErrStorageFailure, err)
	}
	metrics.RecordSave("ok", len(normalized), time.Since(start).Seconds())

	log.Info().Str("customer_id", customerID).Int("items", len(normalized)).Msg("Saved cart upserted")
	return cart, nil
}

// RetrieveSavedCart returns the stored items, or an empty list when the customer never saved.
func (s *Service) RetrieveSavedCart(ctx context.Context, customerID string) ([]SavedItem, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, errors.ErrMissingCustomerID
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	cart, err := s.repo.Get(ctx, customerID)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		metrics.RecordRetrieve("not_found", time.Since(start).Seconds())
		return []SavedItem{}, nil
	case err != nil:
		metrics.RecordRetrieve("error", time.Since(start).Seconds())
		metrics.RecordError("retrieve", "storage")
		log.Err(err).Str("customer_id", customerID).Msg("Failed to retrieve saved cart")
		return nil, fmt.Errorf("retrieve saved cart for %s: %w: %w", customerID, errors.ErrStorageFailure, err)
	}
	metrics.RecordRetrieve("ok", time.Since(start).Seconds())

	if cart.Items == nil {
		return []SavedItem{}, nil
	}
	return cart.Items, nil
}

// Ping checks the storage backend.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Ping(ctx)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
