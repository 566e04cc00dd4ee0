package savedcart

import "context"

// Repo persists SavedCart records keyed by customer id.
//
// Upsert must replace the whole record in a single atomic write. Get returns
// errors.ErrNotFound when the customer has never saved.
type Repo interface {
	Upsert(ctx context.Context, cart *SavedCart) error
	Get(ctx context.Context, customerID string) (*SavedCart, error)
	Ping(ctx context.Context) error
}
