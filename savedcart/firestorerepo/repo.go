// Package firestorerepo stores saved carts in Firestore.
//
// Collection design:
//   - collection: savedCarts (configurable)
//   - docId: path-escaped customer id (customer gids contain "/")
//   - fields: customerId, items[{variantId, quantity}], updatedAt
package firestorerepo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

const DefaultCollection = "savedCarts"

var _ savedcart.Repo = (*Repo)(nil)

type Repo struct {
	Client     *firestore.Client
	collection string
}

type itemDoc struct {
	VariantID string `firestore:"variantId"`
	Quantity  int64  `firestore:"quantity"`
}

type savedCartDoc struct {
	CustomerID string    `firestore:"customerId"`
	Items      []itemDoc `firestore:"items"`
	UpdatedAt  time.Time `firestore:"updatedAt"`
}

// New opens a Firestore client for projectID.
func New(ctx context.Context, projectID, collection string) (*Repo, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestorerepo: new client: %w", err)
	}
	return NewWithClient(client, collection), nil
}

func NewWithClient(client *firestore.Client, collection string) *Repo {
	if strings.TrimSpace(collection) == "" {
		collection = DefaultCollection
	}
	return &Repo{Client: client, collection: collection}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.Client.Collection(r.collection)
}

// DocID maps a customer id onto a legal Firestore document id.
func DocID(customerID string) string {
	return url.PathEscape(customerID)
}

// Upsert overwrites the full document, which Firestore applies as one write.
func (r *Repo) Upsert(ctx context.Context, cart *savedcart.SavedCart) error {
	if r == nil || r.Client == nil {
		return fmt.Errorf("firestorerepo: client is nil")
	}
	if cart == nil || strings.TrimSpace(cart.CustomerID) == "" {
		return errors.ErrMissingCustomerID
	}
	if _, err := r.col().Doc(DocID(cart.CustomerID)).Set(ctx, toDoc(cart)); err != nil {
		return fmt.Errorf("firestorerepo: set %s: %w", cart.CustomerID, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, customerID string) (*savedcart.SavedCart, error) {
	if r == nil || r.Client == nil {
		return nil, fmt.Errorf("firestorerepo: client is nil")
	}
	snap, err := r.col().Doc(DocID(customerID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("firestorerepo: get %s: %w", customerID, err)
	}

	var doc savedCartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestorerepo: decode %s: %w", customerID, err)
	}
	cart := fromDoc(doc)
	cart.CustomerID = customerID
	return cart, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return fmt.Errorf("firestorerepo: client is nil")
	}
	iter := r.col().Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (r *Repo) Close() error {
	return r.Client.Close()
}

func toDoc(cart *savedcart.SavedCart) savedCartDoc {
	items := make([]itemDoc, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, itemDoc{VariantID: item.VariantID, Quantity: int64(item.Quantity)})
	}
	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return savedCartDoc{CustomerID: cart.CustomerID, Items: items, UpdatedAt: updatedAt}
}

func fromDoc(doc savedCartDoc) *savedcart.SavedCart {
	items := make([]savedcart.SavedItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, savedcart.SavedItem{VariantID: item.VariantID, Quantity: int(item.Quantity)})
	}
	return &savedcart.SavedCart{CustomerID: doc.CustomerID, Items: items, UpdatedAt: doc.UpdatedAt}
}
