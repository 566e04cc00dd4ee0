package savedcart

import (
	"fmt"
	"strings"
	"time"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
)

// SavedItem is one merchandise line kept for later purchase.
type SavedItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// SavedCart is the per-customer record. A save replaces Items wholesale.
type SavedCart struct {
	CustomerID string      `json:"customerId"`
	Items      []SavedItem `json:"items"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func NewSavedItem(variantID string, quantity int) (SavedItem, error) {
	item := SavedItem{VariantID: strings.TrimSpace(variantID), Quantity: quantity}
	if err := item.Validate(); err != nil {
		return SavedItem{}, err
	}
	return item, nil
}

func (i SavedItem) Validate() error {
	if strings.TrimSpace(i.VariantID) == "" {
		return errors.Wrapf(errors.ErrInvalidItem, "empty variantId")
	}
	if i.Quantity <= 0 {
		return errors.Wrapf(errors.ErrInvalidItem, "variant %s: quantity must be positive, got %d", i.VariantID, i.Quantity)
	}
	return nil
}

// NormalizeItems validates items and coalesces repeated variant ids into the
// first occurrence, summing quantities. The result is never nil.
func NormalizeItems(items []SavedItem) ([]SavedItem, error) {
	normalized := make([]SavedItem, 0, len(items))
	index := make(map[string]int, len(items))
	for n, item := range items {
		item.VariantID = strings.TrimSpace(item.VariantID)
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", n, err)
		}
		if pos, ok := index[item.VariantID]; ok {
			normalized[pos].Quantity += item.Quantity
			continue
		}
		index[item.VariantID] = len(normalized)
		normalized = append(normalized, item)
	}
	return normalized, nil
}

// Clone returns a deep copy so stored records cannot be mutated by callers.
func (c *SavedCart) Clone() *SavedCart {
	if c == nil {
		return nil
	}
	items := make([]SavedItem, len(c.Items))
	copy(items, c.Items)
	return &SavedCart{CustomerID: c.CustomerID, Items: items, UpdatedAt: c.UpdatedAt}
}
