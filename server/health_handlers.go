package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// HealthHandler reports liveness and whether the storage backend answers
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.carts.Ping(r.Context()); err != nil {
			log.Warn().Err(err).Msg("Storage health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": s.config.GetAppName()})
	}
}
