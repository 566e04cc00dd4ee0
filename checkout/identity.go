package checkout

import (
	"context"
	"strings"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
)

// Credential is the bearer token handed out by the checkout platform together
// with the customer it identifies. The token is opaque here.
type Credential struct {
	Token      string
	CustomerID string
}

// IdentityProvider supplies a credential on demand. Returning errors.ErrNotAuthenticated,
// or an empty token, means the shopper is not logged in.
type IdentityProvider interface {
	Credential(ctx context.Context) (Credential, error)
}

// IdentityFunc adapts a function to IdentityProvider.
type IdentityFunc func(ctx context.Context) (Credential, error)

func (f IdentityFunc) Credential(ctx context.Context) (Credential, error) {
	return f(ctx)
}

// StaticIdentity always returns the same credential.
type StaticIdentity Credential

func (s StaticIdentity) Credential(context.Context) (Credential, error) {
	return Credential(s), nil
}

// Anonymous is the identity of a shopper who is not logged in.
var Anonymous IdentityProvider = IdentityFunc(func(context.Context) (Credential, error) {
	return Credential{}, errors.ErrNotAuthenticated
})

func resolveCredential(ctx context.Context, identity IdentityProvider) (Credential, error) {
	if identity == nil {
		return Credential{}, errors.ErrNotAuthenticated
	}
	cred, err := identity.Credential(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrNotAuthenticated) {
			return Credential{}, err
		}
		return Credential{}, errors.Wrapf(err, "resolve credential")
	}
	if strings.TrimSpace(cred.Token) == "" {
		return Credential{}, errors.ErrNotAuthenticated
	}
	return cred, nil
}
