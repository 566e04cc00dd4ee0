package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

func remoteFixture(t *testing.T, handler http.HandlerFunc) *RemoteClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRemoteClientWithHTTP(srv.URL+"/api/", srv.Client())
}

var testCred = Credential{Token: "tok-123", CustomerID: "customer-1"}

func TestRemoteClient_SaveCart(t *testing.T) {
	var got SaveRequest
	client := remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/save-cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true}`))
	})

	req := SaveRequest{Items: []savedcart.SavedItem{{VariantID: "A", Quantity: 2}}, Timestamp: "1700000000"}
	require.NoError(t, client.SaveCart(context.Background(), testCred, req))

	require.Equal(t, "customer-1", got.CustomerID)
	require.Equal(t, req.Items, got.Items)
	require.Equal(t, "1700000000", got.Timestamp)
}

func TestRemoteClient_SaveCartErrorMessage(t *testing.T) {
	client := remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"storage_failure","message":"Failed to save cart."}`))
	})

	err := client.SaveCart(context.Background(), testCred, SaveRequest{})

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	require.Equal(t, "Failed to save cart.", remoteErr.Message)
	require.ErrorIs(t, err, errors.ErrRemoteUnavailable)
	require.NotErrorIs(t, err, errors.ErrMalformedResponse)
}

func TestRemoteClient_SaveCartMalformedErrorBody(t *testing.T) {
	client := remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	err := client.SaveCart(context.Background(), testCred, SaveRequest{})

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "Failed to save to backend", remoteErr.Message)
	require.ErrorIs(t, err, errors.ErrMalformedResponse)
	require.ErrorIs(t, err, errors.ErrRemoteUnavailable)
}

func TestRemoteClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewRemoteClient(base+"/api", time.Second)
	err := client.SaveCart(context.Background(), testCred, SaveRequest{})
	require.ErrorIs(t, err, errors.ErrRemoteUnavailable)
}

func TestRemoteClient_RetrieveCart(t *testing.T) {
	client := remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/retrieve-cart", r.URL.Path)
		assert.Equal(t, "customer-1", r.URL.Query().Get("customer_id"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"items":[{"variantId":"A","quantity":2}]}`))
	})

	items, err := client.RetrieveCart(context.Background(), testCred)
	require.NoError(t, err)
	require.Equal(t, []savedcart.SavedItem{{VariantID: "A", Quantity: 2}}, items)
}

func TestRemoteClient_RetrieveCartEmpty(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"empty items": func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"items":[]}`)) },
		"null items":  func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"items":null}`)) },
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Cart not found"}`))
		},
	} {
		t.Run(name, func(t *testing.T) {
			items, err := remoteFixture(t, handler).RetrieveCart(context.Background(), testCred)
			require.NoError(t, err)
			require.NotNil(t, items)
			require.Empty(t, items)
		})
	}
}

func TestRemoteClient_RetrieveCartErrors(t *testing.T) {
	client := remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"invalid_token","message":"Invalid token"}`))
	})
	_, err := client.RetrieveCart(context.Background(), testCred)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "Invalid token", remoteErr.Message)

	client = remoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	_, err = client.RetrieveCart(context.Background(), testCred)
	require.ErrorIs(t, err, errors.ErrMalformedResponse)
}
