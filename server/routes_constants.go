package server

// One canonical scheme: the checkout is configured with a proxy base ending in /api
// and appends the operation name.
const (
	RouteAPIPrefix    = "/api/"
	RouteSaveCart     = "/api/save-cart"
	RouteRetrieveCart = "/api/retrieve-cart"

	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
