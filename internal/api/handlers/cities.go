package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookingmx/citygraph/internal/cache"
	"github.com/bookingmx/citygraph/internal/catalog"
	"github.com/bookingmx/citygraph/internal/models"
	"github.com/bookingmx/citygraph/internal/nearby"
)

// NearbyKey identifies a memoized catalog resolution
type NearbyKey struct {
	CityID        string
	MaxDistanceKm float64
	TopK          int
}

// NearbyCache memoizes catalog resolutions
type NearbyCache = cache.Cache[NearbyKey, models.NearbyGraph]

// NewNearbyCache creates a result cache whose entries live for ttl
func NewNearbyCache(ttl time.Duration) *NearbyCache {
	return cache.New[NearbyKey, models.NearbyGraph](ttl)
}

type CityHandler struct {
	catalog  *catalog.Service
	results  *NearbyCache
	defaults nearby.Options
	maxTopK  int
}

func NewCityHandler(cities *catalog.Service, results *NearbyCache, defaults nearby.Options, maxTopK int) *CityHandler {
	return &CityHandler{
		catalog:  cities,
		results:  results,
		defaults: defaults,
		maxTopK:  maxTopK,
	}
}

// ListCities returns every valid city in the catalog
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities := h.catalog.Cities()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(cities),
		"cities":  cities,
	})
}

// GetCity returns one catalog record
func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, found := h.catalog.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "City not found",
			"message": "City " + id + " is not in the catalog",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"city":    record,
	})
}

// GetNearby resolves the closest catalog cities to a catalog city
func (h *CityHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	dest, found := h.catalog.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "City not found",
			"message": "City " + id + " is not in the catalog",
		})
		return
	}

	maxDistance, err := parseFloatParam(r, "max_distance_km", h.defaults.MaxDistanceKm)
	if err != nil {
		writeError(w, r, "Invalid parameter", err)
		return
	}
	topK, err := parseIntParam(r, "top_k", h.defaults.TopK, h.maxTopK)
	if err != nil {
		writeError(w, r, "Invalid parameter", err)
		return
	}

	opts := nearby.Options{MaxDistanceKm: maxDistance, TopK: topK}
	key := NearbyKey{CityID: id, MaxDistanceKm: maxDistance, TopK: topK}

	g, cached, err := h.results.GetOrLoad(key, func() (models.NearbyGraph, error) {
		return nearby.BuildGraph(dest, h.catalog.Records(), opts)
	})
	if err != nil {
		summary := "Failed to resolve nearby cities"
		if errors.Is(err, nearby.ErrInvalidOption) {
			summary = "Invalid parameter"
		}
		writeError(w, r, summary, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"city_id":         id,
		"max_distance_km": maxDistance,
		"top_k":           topK,
		"graph":           g,
		"metadata": map[string]any{
			"cities_found": g.Meta.Count,
			"candidates":   h.catalog.Count(),
			"cached":       cached,
		},
	})
}
