package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CartLineChange adds quantity of merchandise id to the cart.
type CartLineChange struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CartMutator adds lines to the shopper's current cart.
type CartMutator interface {
	AddLine(ctx context.Context, change CartLineChange) error
}

// HTTPCart drives a storefront's AJAX cart endpoint.
type HTTPCart struct {
	baseURL    string
	httpClient *http.Client
}

var _ CartMutator = (*HTTPCart)(nil)

func NewHTTPCart(baseURL string, timeout time.Duration) *HTTPCart {
	return &HTTPCart{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPCart) AddLine(ctx context.Context, change CartLineChange) error {
	body, err := json.Marshal(change)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/add.js", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("add %s to cart: %w", change.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var payload struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Description != "" {
			return fmt.Errorf("add %s to cart: %d: %s", change.ID, resp.StatusCode, payload.Description)
		}
		if payload.Message != "" {
			return fmt.Errorf("add %s to cart: %d: %s", change.ID, resp.StatusCode, payload.Message)
		}
	}
	return fmt.Errorf("add %s to cart: status %d", change.ID, resp.StatusCode)
}
