package api

import (
	"net/http"

	"github.com/bookingmx/citygraph/internal/api/handlers"
	"github.com/bookingmx/citygraph/internal/api/requestid"
	"github.com/bookingmx/citygraph/internal/catalog"
	"github.com/bookingmx/citygraph/internal/config"
	"github.com/bookingmx/citygraph/internal/nearby"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	cities *catalog.Service,
	results *handlers.NearbyCache,
) http.Handler {
	mux := http.NewServeMux()

	defaults := nearby.Options{
		MaxDistanceKm: cfg.DefaultMaxDistanceKm,
		TopK:          cfg.DefaultTopK,
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cities)
	rootHandler := handlers.NewRootHandler()
	cityHandler := handlers.NewCityHandler(cities, results, defaults, cfg.MaxTopK)
	graphHandler := handlers.NewGraphHandler(defaults)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("/", rootHandler.NotFound)

	// Catalog routes
	mux.HandleFunc("GET /cities", cityHandler.ListCities)
	mux.HandleFunc("GET /cities/{id}", cityHandler.GetCity)
	mux.HandleFunc("GET /cities/{id}/nearby", cityHandler.GetNearby)

	// Graph routes for caller-supplied data
	mux.HandleFunc("POST /graph/nearby", graphHandler.BuildNearby)
	mux.HandleFunc("POST /graph/edges", graphHandler.BuildEdges)

	// Apply middleware stack
	handler := Chain(mux,
		requestid.Middleware,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.HTTPTimeout),
	)

	return handler
}
