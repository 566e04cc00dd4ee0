package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
)

// NowTimeFunc is the clock used for exp/nbf checks; tests replace it.
var NowTimeFunc = time.Now

// shopClaims are the claims carried by a checkout session token.
type shopClaims struct {
	jwtlib.RegisteredClaims
	Dest string `json:"dest,omitempty"`
}

// HMACVerifier checks HS256 session tokens signed with the app's shared secret.
type HMACVerifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
}

var _ Verifier = (*HMACVerifier)(nil)

// NewHMACVerifier creates a verifier. An empty audience disables the aud check.
func NewHMACVerifier(secret, audience string, leeway time.Duration) (*HMACVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: empty signing secret")
	}
	return &HMACVerifier{secret: []byte(secret), audience: audience, leeway: leeway}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrNotAuthenticated
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithLeeway(v.leeway),
		jwtlib.WithTimeFunc(NowTimeFunc),
	}
	if v.audience != "" {
		opts = append(opts, jwtlib.WithAudience(v.audience))
	}

	claims := &shopClaims{}
	token, err := jwtlib.ParseWithClaims(rawToken, claims, v.keyFunc, opts...)
	if err != nil {
		if stderrors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, errors.Wrapf(errors.ErrTokenExpired, "session token")
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	result := &Claims{
		Subject:  claims.Subject,
		Shop:     shopFromDest(claims.Dest),
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

func (v *HMACVerifier) keyFunc(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return v.secret, nil
}

// shopFromDest reduces "https://shop.myshopify.com" to "shop.myshopify.com".
func shopFromDest(dest string) string {
	if dest == "" {
		return ""
	}
	u, err := url.Parse(dest)
	if err != nil || u.Host == "" {
		return dest
	}
	return u.Host
}
