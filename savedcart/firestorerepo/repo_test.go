package firestorerepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

func TestDocID(t *testing.T) {
	require.Equal(t, "gid:%2F%2Fshopify%2FCustomer%2F42", DocID("gid://shopify/Customer/42"))
	require.Equal(t, "plain-id", DocID("plain-id"))
}

func TestDocRoundTrip(t *testing.T) {
	updatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cart := &savedcart.SavedCart{
		CustomerID: "c1",
		Items:      []savedcart.SavedItem{{VariantID: "A", Quantity: 2}, {VariantID: "B", Quantity: 1}},
		UpdatedAt:  updatedAt,
	}

	doc := toDoc(cart)
	require.Equal(t, []itemDoc{{VariantID: "A", Quantity: 2}, {VariantID: "B", Quantity: 1}}, doc.Items)
	require.Equal(t, cart, fromDoc(doc))
}

func TestFromDoc_EmptyItems(t *testing.T) {
	cart := fromDoc(savedCartDoc{CustomerID: "c1"})
	require.NotNil(t, cart.Items)
	require.Empty(t, cart.Items)
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestRepo_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	repo, err := New(ctx, "savecart-test", "savedCartsTest")
	require.NoError(t, err)
	defer repo.Close()

	customerID := "gid://shopify/Customer/" + time.Now().Format("150405.000000")
	_, err = repo.Get(ctx, customerID)
	require.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, &savedcart.SavedCart{
		CustomerID: customerID,
		Items:      []savedcart.SavedItem{{VariantID: "A", Quantity: 2}, {VariantID: "B", Quantity: 1}},
	}))
	require.NoError(t, repo.Upsert(ctx, &savedcart.SavedCart{
		CustomerID: customerID,
		Items:      []savedcart.SavedItem{{VariantID: "C", Quantity: 3}},
	}))

	cart, err := repo.Get(ctx, customerID)
	require.NoError(t, err)
	require.Equal(t, []savedcart.SavedItem{{VariantID: "C", Quantity: 3}}, cart.Items)
	require.NoError(t, repo.Ping(ctx))
}
