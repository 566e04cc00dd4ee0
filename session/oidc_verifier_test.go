package session_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/session"
)

const testIssuer = "https://shopify.com/authentication/1234"

func setupOIDC(t *testing.T) (*session.OIDCVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	return session.NewOIDCVerifierWithKeySet(testIssuer, testAudience, keySet), key
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func idTokenClaims() jwtlib.MapClaims {
	now := time.Now()
	return jwtlib.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"sub": testCustomer,
		"exp": now.Add(time.Minute).Unix(),
		"iat": now.Unix(),
	}
}

func TestOIDCVerifier_Verify(t *testing.T) {
	v, key := setupOIDC(t)
	ctx := context.Background()

	t.Run("valid id token", func(t *testing.T) {
		claims, err := v.Verify(ctx, signRS256(t, key, idTokenClaims()))
		require.NoError(t, err)
		require.Equal(t, testCustomer, claims.Subject)
		require.Equal(t, testIssuer, claims.Issuer)
		require.Equal(t, []string{testAudience}, claims.Audience)
	})

	t.Run("expired", func(t *testing.T) {
		c := idTokenClaims()
		c["exp"] = time.Now().Add(-time.Hour).Unix()
		_, err := v.Verify(ctx, signRS256(t, key, c))
		require.ErrorIs(t, err, errors.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := idTokenClaims()
		c["iss"] = "https://evil.example.com"
		_, err := v.Verify(ctx, signRS256(t, key, c))
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("signed by another key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(ctx, signRS256(t, other, idTokenClaims()))
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify(ctx, "")
		require.ErrorIs(t, err, errors.ErrNotAuthenticated)
	})
}
