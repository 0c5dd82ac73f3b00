// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"

	"github.com/bookingmx/citygraph/internal/catalog"
)

const version = "1.0.0"

type HealthHandler struct {
	startTime time.Time
	catalog   *catalog.Service
}

func NewHealthHandler(cities *catalog.Service) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), catalog: cities}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "OK",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        version,
		"uptime":         time.Since(h.startTime).String(),
		"catalog_loaded": h.catalog.IsLoaded(),
		"catalog_cities": h.catalog.Count(),
	})
}
