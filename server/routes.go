package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Saved cart API (requires a verified session token)
	s.RegisterRouteHandler("POST "+RouteSaveCart, ChainMiddleware(s.SaveCartHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteRetrieveCart, ChainMiddleware(s.RetrieveCartHandler(), s.APIMiddleware(s.RequireAuth())...))

	// CORS preflight for everything under /api/
	s.RegisterRouteHandler("OPTIONS "+RouteAPIPrefix, ChainMiddleware(http.NotFound, s.CorsMiddleware))

	// Operational endpoints
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RecoverMiddleware))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}
