// Package session verifies the bearer credentials the checkout hands to the saved cart API.
package session

import (
	"context"
	"time"
)

// Claims is what the API needs from a verified credential.
type Claims struct {
	Subject   string   // customer id, when the shopper is logged in
	Shop      string   // shop domain the token was minted for
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
}

// Verifier validates a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

type contextKey struct{}

// WithClaims stores verified claims on the request context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok && claims != nil
}
