package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/MosheOgalbo/boa-home-assignment/session"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxBodyBytes    = 1 << 20
)

// SaveCartRequest is the body of POST /api/save-cart
type SaveCartRequest struct {
	Items      []savedcart.SavedItem `json:"items"`
	CustomerID string                `json:"customer_id"`
	Timestamp  string                `json:"timestamp,omitempty"` // unix seconds
}

// RetrieveCartResponse is the body of GET /api/retrieve-cart
type RetrieveCartResponse struct {
	Items []savedcart.SavedItem `json:"items"`
}

// SaveCartHandler upserts the customer's saved cart, replacing any previous list
func (s *Server) SaveCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveCartRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "Request body must be a JSON object", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.CustomerID) == "" {
			writeJSONError(w, "invalid_request", "customer_id is required", http.StatusBadRequest)
			return
		}
		if req.Timestamp != "" {
			if _, err := strconv.ParseInt(req.Timestamp, 10, 64); err != nil {
				writeJSONError(w, "invalid_request", "timestamp must be unix seconds", http.StatusBadRequest)
				return
			}
		}

		customerID, err := authorizeCustomer(r, req.CustomerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		cart, err := s.carts.UpsertSavedCart(r.Context(), customerID, req.Items)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.Debug().
			Str("customer_id", customerID).
			Int("items", len(cart.Items)).
			Str("client_timestamp", req.Timestamp).
			Str("request_id", r.Header.Get(headerRequestID)).
			Msg("Saved cart stored")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// RetrieveCartHandler returns the latest saved list. A customer who never saved gets 200 with no items.
func (s *Server) RetrieveCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := authorizeCustomer(r, r.URL.Query().Get("customer_id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		items, err := s.carts.RetrieveSavedCart(r.Context(), customerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, RetrieveCartResponse{Items: items})
	}
}

// authorizeCustomer picks the customer the request acts for. A token bound to a
// customer (sub claim) may only act for that customer.
func authorizeCustomer(r *http.Request, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	var subject string
	if claims, ok := session.ClaimsFromContext(r.Context()); ok {
		subject = claims.Subject
	}

	switch {
	case requested == "" && subject == "":
		return "", errors.ErrMissingCustomerID
	case requested == "":
		return subject, nil
	case subject != "" && subject != requested:
		return "", errors.Wrapf(errors.ErrForbidden, "token subject does not match customer %s", requested)
	default:
		return requested, nil
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errors.ErrMissingCustomerID):
		writeJSONError(w, "invalid_request", "customer_id is required", http.StatusBadRequest)
	case errors.Is(err, errors.ErrInvalidRequest), errors.Is(err, errors.ErrInvalidItem):
		writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
	case errors.Is(err, errors.ErrForbidden):
		writeJSONError(w, "forbidden", "Not allowed to access this customer's cart", http.StatusForbidden)
	default:
		log.Err(err).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get(headerRequestID)).
			Msg("Saved cart request failed")
		message := "Failed to retrieve cart."
		if r.Method == http.MethodPost {
			message = "Failed to save cart."
		}
		writeJSONError(w, "server_error", message, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes an error body the checkout client can read the message from
func writeJSONError(w http.ResponseWriter, errorCode, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   errorCode,
		"message": message,
	})
}
