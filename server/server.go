package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MosheOgalbo/boa-home-assignment/internal/config"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/MosheOgalbo/boa-home-assignment/session"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	carts    *savedcart.Service
	verifier session.Verifier
	limiter  *RateLimiter
}

func New(config config.Config, carts *savedcart.Service, verifier session.Verifier) (*Server, error) {
	if carts == nil {
		return nil, fmt.Errorf("[Server New] saved cart service is required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("[Server New] session verifier is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		carts:    carts,
		verifier: verifier,
	}
	s.env = config.GetEnv()
	if config.GetEnableRateLimiting() {
		s.limiter = NewRateLimiter(config.GetRateLimitRPS(), config.GetRateLimitBurst())
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
