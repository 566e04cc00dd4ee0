package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/session"
)

// RequireAuth is middleware that validates a Bearer session token
// and stores the verified claims on the request context
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeJSONError(w, "unauthorized", "Missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := s.verifier.Verify(r.Context(), token)
			if err != nil {
				description := "Invalid token"
				if errors.Is(err, errors.ErrTokenExpired) {
					description = "Token expired"
				}
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Session token rejected")
				writeJSONError(w, "unauthorized", description, http.StatusUnauthorized)
				return
			}

			next(w, r.WithContext(session.WithClaims(r.Context(), claims)))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
