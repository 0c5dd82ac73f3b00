package graph

import (
	"fmt"

	"github.com/bookingmx/citygraph/internal/models"
)

// BuildOptions controls graph construction. The zero value validates.
type BuildOptions struct {
	SkipValidation bool
}

// FromEdges builds a graph by inserting edges in order. The first invalid
// edge aborts construction. A nil slice is rejected; an empty one is not.
func FromEdges(edges []Edge, opts BuildOptions) (*WeightedGraph, error) {
	if edges == nil {
		return nil, ErrInvalidInput
	}

	g := New()
	for i, e := range edges {
		if err := g.InsertEdge(e.From, e.To, e.Km); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return finish(g, opts)
}

// FromRecords builds a graph from decoded JSON or YAML. v must be a list of
// records with string "from" and "to" fields and a numeric "km" field.
// Records are checked and inserted one at a time, in order.
func FromRecords(v any, opts BuildOptions) (*WeightedGraph, error) {
	var list []any
	switch x := v.(type) {
	case []any:
		list = x
	case []map[string]any:
		list = make([]any, len(x))
		for i, r := range x {
			list[i] = r
		}
	case []Edge:
		return FromEdges(x, opts)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInput, v)
	}

	g := New()
	for i, item := range list {
		e, err := edgeFromRecord(item)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if err := g.InsertEdge(e.From, e.To, e.Km); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return finish(g, opts)
}

func edgeFromRecord(item any) (Edge, error) {
	r, ok := item.(map[string]any)
	if !ok || r == nil {
		return Edge{}, fmt.Errorf("%w: edge must be an object, got %T", ErrInvalidInput, item)
	}

	from, fromOK := r["from"].(string)
	to, toOK := r["to"].(string)
	if !fromOK || !toOK {
		return Edge{}, fmt.Errorf("%w: from/to must be strings", ErrInvalidEndpoint)
	}

	km, ok := models.Number(r["km"])
	if !ok {
		return Edge{}, fmt.Errorf("%w: got %v", ErrInvalidWeight, r["km"])
	}

	return Edge{From: from, To: to, Km: km}, nil
}

func finish(g *WeightedGraph, opts BuildOptions) (*WeightedGraph, error) {
	if opts.SkipValidation {
		return g, nil
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
