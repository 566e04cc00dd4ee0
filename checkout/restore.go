package checkout

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

const defaultRestoreConcurrency = 4

// RestoreReport lists the outcome of replaying a saved list into the cart.
type RestoreReport struct {
	Added  []string
	Failed []RestoreFailure
}

type RestoreFailure struct {
	VariantID string
	Err       error
}

// RestoreCoordinator fetches the saved list once per session and replays it on demand.
type RestoreCoordinator struct {
	backend     Backend
	concurrency int

	mu     sync.Mutex
	loaded bool
	items  []savedcart.SavedItem
}

func NewRestoreCoordinator(backend Backend, concurrency int) *RestoreCoordinator {
	if concurrency <= 0 {
		concurrency = defaultRestoreConcurrency
	}
	return &RestoreCoordinator{backend: backend, concurrency: concurrency}
}

// Load returns the saved list, fetching it on the first call only.
func (c *RestoreCoordinator) Load(ctx context.Context, identity IdentityProvider) ([]savedcart.SavedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.copyItems(), nil
	}
	return c.fetchLocked(ctx, identity)
}

// Reload fetches the saved list even if one is cached.
func (c *RestoreCoordinator) Reload(ctx context.Context, identity IdentityProvider) ([]savedcart.SavedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchLocked(ctx, identity)
}

func (c *RestoreCoordinator) fetchLocked(ctx context.Context, identity IdentityProvider) ([]savedcart.SavedItem, error) {
	cred, err := resolveCredential(ctx, identity)
	if err != nil {
		return nil, err
	}
	items, err := c.backend.RetrieveCart(ctx, cred)
	if err != nil {
		return nil, err
	}
	c.items = items
	c.loaded = true
	log.Debug().Int("items", len(items)).Msg("loaded saved cart")
	return c.copyItems(), nil
}

// Items returns the cached list, empty before the first successful Load.
func (c *RestoreCoordinator) Items() []savedcart.SavedItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

func (c *RestoreCoordinator) copyItems() []savedcart.SavedItem {
	out := make([]savedcart.SavedItem, len(c.items))
	copy(out, c.items)
	return out
}

// Restore adds every cached item to cart. Each add is independent: a failure
// neither stops the others nor undoes them.
func (c *RestoreCoordinator) Restore(ctx context.Context, cart CartMutator) RestoreReport {
	items := c.Items()
	errs := make([]error, len(items))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, item := range items {
		g.Go(func() error {
			errs[i] = cart.AddLine(ctx, CartLineChange{ID: item.VariantID, Quantity: item.Quantity})
			return nil
		})
	}
	_ = g.Wait()

	var report RestoreReport
	for i, item := range items {
		if errs[i] != nil {
			log.Warn().Err(errs[i]).Str("variant_id", item.VariantID).Msg("failed to restore item")
			report.Failed = append(report.Failed, RestoreFailure{VariantID: item.VariantID, Err: errs[i]})
			continue
		}
		report.Added = append(report.Added, item.VariantID)
	}
	return report
}
