package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

const (
	saveCartPath     = "/save-cart"
	retrieveCartPath = "/retrieve-cart"

	defaultSaveFailure     = "Failed to save to backend"
	defaultRetrieveFailure = "Failed to retrieve from backend"

	maxResponseBytes = 1 << 20
)

// SaveRequest is the body posted to the saved cart API.
type SaveRequest struct {
	Items      []savedcart.SavedItem `json:"items"`
	CustomerID string                `json:"customer_id"`
	Timestamp  string                `json:"timestamp"`
}

// Backend is the remote side of save and restore.
type Backend interface {
	SaveCart(ctx context.Context, cred Credential, req SaveRequest) error
	RetrieveCart(ctx context.Context, cred Credential) ([]savedcart.SavedItem, error)
}

// RemoteError is a non-2xx answer from the saved cart API.
type RemoteError struct {
	StatusCode int
	Message    string
	Malformed  bool
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("saved cart api: %d: %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() []error {
	if e.Malformed {
		return []error{errors.ErrRemoteUnavailable, errors.ErrMalformedResponse}
	}
	return []error{errors.ErrRemoteUnavailable}
}

// RemoteClient talks to the saved cart API through a proxy base URL ending in /api.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*RemoteClient)(nil)

func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return NewRemoteClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewRemoteClientWithHTTP(baseURL string, httpClient *http.Client) *RemoteClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// bearerClient returns an http.Client that attaches cred's token to every request.
func (c *RemoteClient) bearerClient(ctx context.Context, cred Credential) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cred.Token,
		TokenType:   "Bearer",
	}))
}

// SaveCart replaces the customer's saved list.
func (c *RemoteClient) SaveCart(ctx context.Context, cred Credential, req SaveRequest) error {
	if req.CustomerID == "" {
		req.CustomerID = cred.CustomerID
	}
	if req.Items == nil {
		req.Items = []savedcart.SavedItem{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode save request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+saveCartPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build save request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.bearerClient(ctx, cred).Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", errors.ErrRemoteUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp.StatusCode, text, defaultSaveFailure)
	}

	log.Debug().Int("items", len(req.Items)).Str("customer_id", req.CustomerID).Msg("saved cart to backend")
	return nil
}

// RetrieveCart returns the customer's saved list. A customer with nothing saved gets an empty slice.
func (c *RemoteClient) RetrieveCart(ctx context.Context, cred Credential) ([]savedcart.SavedItem, error) {
	endpoint := c.baseURL + retrieveCartPath
	if cred.CustomerID != "" {
		endpoint += "?" + url.Values{"customer_id": {cred.CustomerID}}.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build retrieve request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.bearerClient(ctx, cred).Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", errors.ErrRemoteUnavailable, err)
	}

	// Older deployments answered 404 for a customer without a record.
	if resp.StatusCode == http.StatusNotFound {
		return []savedcart.SavedItem{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, text, defaultRetrieveFailure)
	}

	var out struct {
		Items []savedcart.SavedItem `json:"items"`
	}
	if err := json.Unmarshal(text, &out); err != nil {
		return nil, fmt.Errorf("%w: decode items: %w", errors.ErrMalformedResponse, err)
	}
	if out.Items == nil {
		out.Items = []savedcart.SavedItem{}
	}
	return out.Items, nil
}

// remoteError pulls "message" out of a JSON error body, falling back to fallback
// when the body is not JSON or carries no message.
func remoteError(status int, body []byte, fallback string) *RemoteError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &RemoteError{StatusCode: status, Message: fallback, Malformed: true}
	}
	if strings.TrimSpace(payload.Message) == "" {
		return &RemoteError{StatusCode: status, Message: fallback}
	}
	return &RemoteError{StatusCode: status, Message: payload.Message}
}
