package repofake

import (
	"context"
	"sync"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

var _ savedcart.Repo = (*FakeSavedCartRepo)(nil)

// FakeSavedCartRepo keeps saved carts in memory. It backs STORAGE_DRIVER=memory and the tests.
type FakeSavedCartRepo struct {
	carts map[string]*savedcart.SavedCart
	lock  sync.RWMutex

	// FailWith, when set, is returned by every call.
	FailWith error
}

func NewFakeSavedCartRepo() *FakeSavedCartRepo {
	return &FakeSavedCartRepo{
		carts: make(map[string]*savedcart.SavedCart),
	}
}

func (r *FakeSavedCartRepo) Upsert(_ context.Context, cart *savedcart.SavedCart) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.carts[cart.CustomerID] = cart.Clone()
	return nil
}

func (r *FakeSavedCartRepo) Get(_ context.Context, customerID string) (*savedcart.SavedCart, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	cart, ok := r.carts[customerID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return cart.Clone(), nil
}

func (r *FakeSavedCartRepo) Ping(context.Context) error {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.FailWith
}

// Len reports how many customers have a record.
func (r *FakeSavedCartRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.carts)
}
