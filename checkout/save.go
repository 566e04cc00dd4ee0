package checkout

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

const (
	msgMustLogIn   = "You must log in to save items for later."
	msgSaveFailed  = "Unable to save items. Please try again."
	msgSavedRemote = "Saved %d items for later"
	msgSavedLocal  = "Saved %d items locally"
)

// NowTimeFunc stamps outgoing save requests.
var NowTimeFunc = time.Now

// SaveCoordinator runs the save-for-later flow for one checkout.
type SaveCoordinator struct {
	selection *Selection
	store     LocalStore
	backend   Backend
	saving    atomic.Bool
}

func NewSaveCoordinator(selection *Selection, store LocalStore, backend Backend) *SaveCoordinator {
	return &SaveCoordinator{selection: selection, store: store, backend: backend}
}

// Saving reports whether a save is in flight.
func (c *SaveCoordinator) Saving() bool {
	return c.saving.Load()
}

// Save persists the selected lines locally and remotely and returns the message
// to show. It returns nil when nothing is selected or another save is running.
func (c *SaveCoordinator) Save(ctx context.Context, lines []CartLine, identity IdentityProvider) *Message {
	if c.selection.Size() == 0 {
		return nil
	}
	if !c.saving.CompareAndSwap(false, true) {
		log.Debug().Msg("save already in progress")
		return nil
	}
	defer c.saving.Store(false)

	selected := c.selection.Snapshot()

	cred, err := resolveCredential(ctx, identity)
	if err != nil {
		if !errors.Is(err, errors.ErrNotAuthenticated) {
			log.Error().Err(err).Msg("credential lookup failed")
		}
		return newMessage(StatusCritical, msgMustLogIn)
	}

	items := selectedItems(selected, lines)

	localErr := writeSnapshot(ctx, c.store, items)
	if localErr != nil {
		log.Warn().Err(localErr).Msg("failed to write saved cart locally")
	}

	req := SaveRequest{
		Items:      items,
		CustomerID: cred.CustomerID,
		Timestamp:  strconv.FormatInt(NowTimeFunc().Unix(), 10),
	}
	remoteErr := c.backend.SaveCart(ctx, cred, req)
	if remoteErr == nil {
		c.selection.Clear()
		return newMessage(StatusSuccess, fmt.Sprintf(msgSavedRemote, len(items)))
	}

	log.Warn().Err(remoteErr).Int("items", len(items)).Msg("backend save failed")
	if localErr != nil {
		return newMessage(StatusCritical, msgSaveFailed)
	}
	c.selection.Clear()
	return newMessage(StatusWarning, fmt.Sprintf(msgSavedLocal, len(items)))
}

// selectedItems keeps the cart lines whose merchandise id is selected, in cart order.
func selectedItems(selected []string, lines []CartLine) []savedcart.SavedItem {
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	items := make([]savedcart.SavedItem, 0, len(selected))
	for _, line := range lines {
		if _, ok := want[line.MerchandiseID]; !ok {
			continue
		}
		items = append(items, savedcart.SavedItem{VariantID: line.MerchandiseID, Quantity: line.Quantity})
	}
	return items
}
