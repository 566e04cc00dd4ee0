package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
)

// OIDCVerifier checks ID tokens issued by a customer-account OpenID provider.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ Verifier = (*OIDCVerifier)(nil)

// NewOIDCVerifier discovers the provider at issuerURL and verifies tokens for clientID.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("session: oidc discovery for %s: %w", issuerURL, err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID, SkipClientIDCheck: clientID == "", Now: now}),
	}, nil
}

// NewOIDCVerifierWithKeySet skips discovery, e.g. when the keys are pinned.
func NewOIDCVerifierWithKeySet(issuerURL, clientID string, keySet oidc.KeySet) *OIDCVerifier {
	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuerURL, keySet, &oidc.Config{ClientID: clientID, SkipClientIDCheck: clientID == "", Now: now}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrNotAuthenticated
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if stderrors.As(err, &expired) {
			return nil, errors.Wrapf(errors.ErrTokenExpired, "id token")
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}

	var extra struct {
		Dest string `json:"dest"`
	}
	_ = idToken.Claims(&extra)

	return &Claims{
		Subject:   idToken.Subject,
		Shop:      shopFromDest(extra.Dest),
		Issuer:    idToken.Issuer,
		Audience:  idToken.Audience,
		ExpiresAt: idToken.Expiry,
	}, nil
}

func now() time.Time {
	return NowTimeFunc()
}
