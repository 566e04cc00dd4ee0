package checkout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

type fakeCart struct {
	mu    sync.Mutex
	added []CartLineChange
	fail  map[string]error
}

func (c *fakeCart) AddLine(_ context.Context, change CartLineChange) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail[change.ID]; err != nil {
		return err
	}
	c.added = append(c.added, change)
	return nil
}

func savedItems() []savedcart.SavedItem {
	return []savedcart.SavedItem{
		{VariantID: "A", Quantity: 2},
		{VariantID: "B", Quantity: 1},
		{VariantID: "C", Quantity: 5},
	}
}

func TestRestore_LoadOnce(t *testing.T) {
	backend := &fakeBackend{items: savedItems()}
	coord := NewRestoreCoordinator(backend, 0)

	items, err := coord.Load(context.Background(), shopper)
	require.NoError(t, err)
	require.Equal(t, savedItems(), items)

	backend.items = nil
	items, err = coord.Load(context.Background(), shopper)
	require.NoError(t, err)
	require.Equal(t, savedItems(), items)
	require.Equal(t, 1, backend.retrieveCalls)

	items, err = coord.Reload(context.Background(), shopper)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 2, backend.retrieveCalls)
}

func TestRestore_LoadNotAuthenticated(t *testing.T) {
	backend := &fakeBackend{items: savedItems()}
	coord := NewRestoreCoordinator(backend, 0)

	_, err := coord.Load(context.Background(), Anonymous)
	require.ErrorIs(t, err, errors.ErrNotAuthenticated)
	require.Equal(t, 0, backend.retrieveCalls)
	require.Empty(t, coord.Items())
}

func TestRestore_LoadFailureIsRetried(t *testing.T) {
	backend := &fakeBackend{items: savedItems(), retrieveErr: errors.ErrRemoteUnavailable}
	coord := NewRestoreCoordinator(backend, 0)

	_, err := coord.Load(context.Background(), shopper)
	require.ErrorIs(t, err, errors.ErrRemoteUnavailable)

	backend.retrieveErr = nil
	items, err := coord.Load(context.Background(), shopper)
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestRestore_AddsEveryItem(t *testing.T) {
	coord := NewRestoreCoordinator(&fakeBackend{items: savedItems()}, 2)
	_, err := coord.Load(context.Background(), shopper)
	require.NoError(t, err)

	cart := &fakeCart{}
	report := coord.Restore(context.Background(), cart)

	require.Equal(t, []string{"A", "B", "C"}, report.Added)
	require.Empty(t, report.Failed)

	sort.Slice(cart.added, func(i, j int) bool { return cart.added[i].ID < cart.added[j].ID })
	require.Equal(t, []CartLineChange{{ID: "A", Quantity: 2}, {ID: "B", Quantity: 1}, {ID: "C", Quantity: 5}}, cart.added)
}

func TestRestore_FailuresAreIndependent(t *testing.T) {
	coord := NewRestoreCoordinator(&fakeBackend{items: savedItems()}, 1)
	_, err := coord.Load(context.Background(), shopper)
	require.NoError(t, err)

	cart := &fakeCart{fail: map[string]error{"A": fmt.Errorf("sold out")}}
	report := coord.Restore(context.Background(), cart)

	require.Equal(t, []string{"B", "C"}, report.Added)
	require.Len(t, report.Failed, 1)
	require.Equal(t, "A", report.Failed[0].VariantID)
	require.EqualError(t, report.Failed[0].Err, "sold out")
	require.Len(t, cart.added, 2)
}

func TestRestore_NothingLoaded(t *testing.T) {
	coord := NewRestoreCoordinator(&fakeBackend{}, 0)
	report := coord.Restore(context.Background(), &fakeCart{})
	require.Empty(t, report.Added)
	require.Empty(t, report.Failed)
}
