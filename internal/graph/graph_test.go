package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ring(n int, km float64) []Edge {
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{From: fmt.Sprintf("C%d", i), To: fmt.Sprintf("C%d", (i+1)%n), Km: km})
	}
	return edges
}

func denseCluster(n int, km float64) []Edge {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{From: fmt.Sprintf("C%d", i), To: fmt.Sprintf("C%d", j), Km: km})
		}
	}
	return edges
}

func findNeighbor(t *testing.T, g *WeightedGraph, u, v string) Neighbor {
	t.Helper()
	for _, n := range g.Neighbors(u) {
		if n.City == v {
			return n
		}
	}
	t.Fatalf("%s is not a neighbor of %s", v, u)
	return Neighbor{}
}

func TestFromEdges_KeepsMinimumWeight(t *testing.T) {
	g, err := FromEdges([]Edge{
		{From: "A", To: "B", Km: 20},
		{From: "A", To: "B", Km: 15},
		{From: "B", To: "A", Km: 22},
	}, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, Neighbor{City: "B", Weight: 15}, findNeighbor(t, g, "A", "B"))
	assert.Equal(t, Neighbor{City: "A", Weight: 15}, findNeighbor(t, g, "B", "A"))
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestFromEdges_MinimumIndependentOfOrder(t *testing.T) {
	orders := [][]Edge{
		{{"A", "B", 15}, {"B", "A", 22}, {"A", "B", 20}},
		{{"B", "A", 22}, {"A", "B", 20}, {"A", "B", 15}},
	}
	for _, edges := range orders {
		g, err := FromEdges(edges, BuildOptions{})
		require.NoError(t, err)
		w, ok := g.Weight("B", "A")
		require.True(t, ok)
		assert.Equal(t, 15.0, w)
	}
}

func TestFromEdges_SelfLoopDropped(t *testing.T) {
	g, err := FromEdges([]Edge{{From: "A", To: "A", Km: 0}}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Neighbors("A"))
}

func TestFromEdges_ReversedDuplicateCountsOnce(t *testing.T) {
	g := New()
	require.NoError(t, g.InsertEdge("u", "v", 42))
	before := g.EdgeCount()

	require.NoError(t, g.InsertEdge("v", "u", 42))
	assert.Equal(t, before, g.EdgeCount())

	w, ok := g.Weight("u", "v")
	require.True(t, ok)
	assert.Equal(t, 42.0, w)
}

func TestFromEdges_Ring(t *testing.T) {
	const n = 1000
	start := time.Now()
	g, err := FromEdges(ring(n, 10), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, n, g.Size())
	assert.Equal(t, n, g.EdgeCount())
	assert.Less(t, time.Since(start), time.Second)
}

func TestFromEdges_DenseCluster(t *testing.T) {
	const n = 200
	g, err := FromEdges(denseCluster(n, 5), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, n, g.Size())
	assert.Equal(t, n*(n-1)/2, g.EdgeCount())
	assert.Len(t, g.Neighbors("C0"), n-1)
}

func TestFromEdges_EmptyAndNil(t *testing.T) {
	g, err := FromEdges([]Edge{}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())

	_, err = FromEdges(nil, BuildOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromEdges_ErrorAborts(t *testing.T) {
	_, err := FromEdges([]Edge{{"A", "B", 1}, {"A", "", 1}, {"C", "D", -1}}, BuildOptions{})
	require.ErrorIs(t, err, ErrInvalidEndpoint)
	assert.Contains(t, err.Error(), "edge 1")
}

func TestInsertEdge_Errors(t *testing.T) {
	tests := []struct {
		name string
		u, v string
		km   float64
		want error
	}{
		{"empty from", "", "B", 10, ErrInvalidEndpoint},
		{"empty to", "A", "", 10, ErrInvalidEndpoint},
		{"negative", "A", "B", -1, ErrInvalidWeight},
		{"NaN", "A", "B", math.NaN(), ErrInvalidWeight},
		{"infinite", "A", "B", math.Inf(1), ErrInvalidWeight},
		{"NaN self-loop", "A", "A", math.NaN(), ErrInvalidWeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			assert.ErrorIs(t, g.InsertEdge(tc.u, tc.v, tc.km), tc.want)
			assert.Equal(t, 0, g.Size())
		})
	}
}

func TestNeighbors_InsertionOrder(t *testing.T) {
	g := New()
	require.NoError(t, g.InsertEdge("MTY", "SALT", 72))
	require.NoError(t, g.InsertEdge("MTY", "CDMX", 705))
	require.NoError(t, g.InsertEdge("REYN", "MTY", 209))
	require.NoError(t, g.InsertEdge("MTY", "SALT", 70))

	assert.Equal(t, []Neighbor{
		{City: "SALT", Weight: 70},
		{City: "CDMX", Weight: 705},
		{City: "REYN", Weight: 209},
	}, g.Neighbors("MTY"))
	assert.Equal(t, []string{"MTY", "SALT", "CDMX", "REYN"}, g.Nodes())

	unknown := g.Neighbors("GDL")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestAdjacency_Symmetric(t *testing.T) {
	g, err := FromEdges(denseCluster(6, 3), BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, g.InsertEdge("C0", "C5", 1))

	adj := g.Adjacency()
	for u, nbrs := range adj {
		for v, w := range nbrs {
			assert.NotEqual(t, u, v)
			assert.Equal(t, w, adj[v][u])
		}
	}
	assert.Equal(t, 1.0, adj["C5"]["C0"])
}

func TestFromRecords(t *testing.T) {
	var raw any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"from": "A", "to": "B", "km": 20},
		{"from": "A", "to": "B", "km": 15},
		{"from": "B", "to": "A", "km": 22}
	]`), &raw))

	g, err := FromRecords(raw, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, Neighbor{City: "B", Weight: 15}, findNeighbor(t, g, "A", "B"))
}

func TestFromRecords_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want error
	}{
		{"nil", nil, ErrInvalidInput},
		{"object", map[string]any{}, ErrInvalidInput},
		{"non-record element", []any{"A-B"}, ErrInvalidInput},
		{"numeric from", []any{map[string]any{"from": 1.0, "to": "B", "km": 10.0}}, ErrInvalidEndpoint},
		{"object to", []any{map[string]any{"from": "A", "to": map[string]any{}, "km": 10.0}}, ErrInvalidEndpoint},
		{"empty from", []any{map[string]any{"from": "", "to": "B", "km": 10.0}}, ErrInvalidEndpoint},
		{"empty to", []any{map[string]any{"from": "A", "to": "", "km": 10.0}}, ErrInvalidEndpoint},
		{"negative km", []any{map[string]any{"from": "A", "to": "B", "km": -1.0}}, ErrInvalidWeight},
		{"NaN km", []any{map[string]any{"from": "A", "to": "B", "km": math.NaN()}}, ErrInvalidWeight},
		{"infinite km", []any{map[string]any{"from": "A", "to": "B", "km": math.Inf(1)}}, ErrInvalidWeight},
		{"string km", []any{map[string]any{"from": "A", "to": "B", "km": "10"}}, ErrInvalidWeight},
		{"missing km", []any{map[string]any{"from": "A", "to": "B"}}, ErrInvalidWeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromRecords(tc.in, BuildOptions{})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFromRecords_SelfLoop(t *testing.T) {
	g, err := FromRecords([]map[string]any{{"from": "A", "to": "A", "km": 0}}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestValidate_DetectsCorruption(t *testing.T) {
	g := New()
	require.NoError(t, g.InsertEdge("A", "B", 1))
	require.NoError(t, g.Validate())

	g.weights[pairOf("A", "B")] = -3
	assert.ErrorIs(t, g.Validate(), ErrInvariantViolation)

	g = New()
	g.link("A", "A")
	g.weights[pairOf("A", "A")] = 0
	assert.ErrorIs(t, g.Validate(), ErrInvariantViolation)

	g = New()
	g.link("A", "B")
	g.weights[pairOf("A", "B")] = 2
	assert.ErrorIs(t, g.Validate(), ErrInvariantViolation)

	_, err := finish(g, BuildOptions{SkipValidation: true})
	assert.NoError(t, err)
	_, err = finish(g, BuildOptions{})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}
