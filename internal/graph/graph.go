// Package graph provides an undirected weighted graph of city distances.
//
// Parallel edges collapse into one edge carrying the smallest weight ever
// supplied for that pair, and self-loops are dropped without error. A
// WeightedGraph is not safe for concurrent mutation; concurrent reads are
// fine once construction is done.
package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when an edge list is not a list.
	ErrInvalidInput = errors.New("edges must be a list")

	// ErrInvalidEndpoint is returned for a missing, empty or non-string endpoint.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidWeight is returned for a negative, NaN or infinite weight.
	ErrInvalidWeight = errors.New("km must be a non-negative finite number")

	// ErrInvariantViolation is returned by Validate when the adjacency is
	// inconsistent. InsertEdge never produces such a state.
	ErrInvariantViolation = errors.New("graph invariant violated")
)

// Edge is an undirected distance between two cities.
type Edge struct {
	From string  `json:"from" yaml:"from"`
	To   string  `json:"to" yaml:"to"`
	Km   float64 `json:"km" yaml:"km"`
}

// Neighbor is a city adjacent to another, with the distance between them.
type Neighbor struct {
	City   string  `json:"city"`
	Weight float64 `json:"weight"`
}

// pair is an unordered pair of cities with a <= b.
type pair struct {
	a, b string
}

func pairOf(u, v string) pair {
	if u > v {
		u, v = v, u
	}
	return pair{a: u, b: v}
}

// WeightedGraph stores one weight per unordered pair. The per-node neighbor
// lists only record order.
type WeightedGraph struct {
	weights map[pair]float64
	adj     map[string][]string
	nodes   []string
}

// New creates an empty graph.
func New() *WeightedGraph {
	return &WeightedGraph{
		weights: make(map[pair]float64),
		adj:     make(map[string][]string),
	}
}

// InsertEdge adds the undirected edge u-v. If the pair already exists the
// smaller of the two weights is kept. Self-loops are ignored.
func (g *WeightedGraph) InsertEdge(u, v string, weight float64) error {
	if u == "" || v == "" {
		return fmt.Errorf("%w: from/to cannot be empty", ErrInvalidEndpoint)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, weight)
	}
	if u == v {
		return nil
	}

	key := pairOf(u, v)
	if prev, ok := g.weights[key]; ok {
		g.weights[key] = math.Min(prev, weight)
		return nil
	}

	g.weights[key] = weight
	g.link(u, v)
	g.link(v, u)
	return nil
}

func (g *WeightedGraph) link(a, b string) {
	if _, ok := g.adj[a]; !ok {
		g.nodes = append(g.nodes, a)
	}
	g.adj[a] = append(g.adj[a], b)
}

// Validate checks that no self-loop is stored, that every weight is finite
// and non-negative, and that both directions of every pair are present.
func (g *WeightedGraph) Validate() error {
	entries := 0
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if u == v {
				return fmt.Errorf("%w: self-loop on %q", ErrInvariantViolation, u)
			}
			w, ok := g.weights[pairOf(u, v)]
			if !ok {
				return fmt.Errorf("%w: %q-%q has no weight", ErrInvariantViolation, u, v)
			}
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return fmt.Errorf("%w: %q-%q has weight %v", ErrInvariantViolation, u, v, w)
			}
			entries++
		}
	}

	if entries != 2*len(g.weights) {
		return fmt.Errorf("%w: %d directed entries for %d edges", ErrInvariantViolation, entries, len(g.weights))
	}
	return nil
}

// Neighbors returns the cities adjacent to u in the order they were first
// linked to it. Unknown cities have no neighbors.
func (g *WeightedGraph) Neighbors(u string) []Neighbor {
	nbrs := g.adj[u]
	out := make([]Neighbor, 0, len(nbrs))
	for _, v := range nbrs {
		out = append(out, Neighbor{City: v, Weight: g.weights[pairOf(u, v)]})
	}
	return out
}

// Weight returns the stored distance between u and v.
func (g *WeightedGraph) Weight(u, v string) (float64, bool) {
	if u == v {
		return 0, false
	}
	w, ok := g.weights[pairOf(u, v)]
	return w, ok
}

// Nodes returns every city in the order it first appeared.
func (g *WeightedGraph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Size returns the number of cities.
func (g *WeightedGraph) Size() int {
	return len(g.nodes)
}

// EdgeCount returns the number of unique undirected edges.
func (g *WeightedGraph) EdgeCount() int {
	sum := 0
	for _, nbrs := range g.adj {
		sum += len(nbrs)
	}
	return sum / 2
}

// Adjacency returns a copy of the graph as city -> neighbor -> km.
func (g *WeightedGraph) Adjacency() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(g.adj))
	for u, nbrs := range g.adj {
		m := make(map[string]float64, len(nbrs))
		for _, v := range nbrs {
			m[v] = g.weights[pairOf(u, v)]
		}
		out[u] = m
	}
	return out
}
