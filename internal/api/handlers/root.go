package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "citygraph",
		"description": "Nearby city graphs and weighted distance graphs",
		"version":     version,
		"endpoints": map[string]string{
			"GET /api":                "API information",
			"GET /health":             "Health check",
			"GET /cities":             "List catalog cities",
			"GET /cities/{id}":        "Get a catalog city",
			"GET /cities/{id}/nearby": "Nearby graph for a catalog city (max_distance_km, top_k)",
			"POST /graph/nearby":      "Nearby graph for a supplied destination and city list",
			"POST /graph/edges":       "Weighted graph from an edge list (city)",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the /api endpoint for available routes",
	})
}
