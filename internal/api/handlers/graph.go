package handlers

import (
	"net/http"

	"github.com/bookingmx/citygraph/internal/graph"
	"github.com/bookingmx/citygraph/internal/nearby"
)

type GraphHandler struct {
	defaults nearby.Options
}

func NewGraphHandler(defaults nearby.Options) *GraphHandler {
	return &GraphHandler{defaults: defaults}
}

type nearbyRequest struct {
	Destination any            `json:"destination"`
	Cities      any            `json:"cities"`
	Options     nearby.Options `json:"options"`
}

type edgesRequest struct {
	Edges    any   `json:"edges"`
	Validate *bool `json:"validate"`
}

// BuildNearby resolves a destination against caller-supplied cities
func (h *GraphHandler) BuildNearby(w http.ResponseWriter, r *http.Request) {
	req := nearbyRequest{Options: h.defaults}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, "Invalid request body", err)
		return
	}

	g, err := nearby.BuildGraph(req.Destination, req.Cities, req.Options)
	if err != nil {
		writeError(w, r, "Failed to build nearby graph", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"options": req.Options,
		"graph":   g,
	})
}

// BuildEdges builds a weighted graph from an edge list. With ?city= the
// neighbors of that city are included.
func (h *GraphHandler) BuildEdges(w http.ResponseWriter, r *http.Request) {
	var req edgesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, "Invalid request body", err)
		return
	}

	opts := graph.BuildOptions{SkipValidation: req.Validate != nil && !*req.Validate}
	g, err := graph.FromRecords(req.Edges, opts)
	if err != nil {
		writeError(w, r, "Failed to build graph", err)
		return
	}

	resp := map[string]any{
		"success":    true,
		"size":       g.Size(),
		"edge_count": g.EdgeCount(),
		"nodes":      g.Nodes(),
		"adjacency":  g.Adjacency(),
	}
	if city := r.URL.Query().Get("city"); city != "" {
		resp["city"] = city
		resp["neighbors"] = g.Neighbors(city)
	}

	writeJSON(w, http.StatusOK, resp)
}
