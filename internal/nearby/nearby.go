package nearby

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/bookingmx/citygraph/internal/geo"
	"github.com/bookingmx/citygraph/internal/models"
)

const (
	DefaultMaxDistanceKm = 300
	DefaultTopK          = 5
)

// ErrInvalidOption is returned for a non-positive radius or result limit.
var ErrInvalidOption = errors.New("invalid option")

// Options controls the radius filter and the result limit.
type Options struct {
	MaxDistanceKm float64 `json:"maxDistanceKm"`
	TopK          int     `json:"topK"`
}

// DefaultOptions returns a 300 km radius and a limit of 5 cities.
func DefaultOptions() Options {
	return Options{
		MaxDistanceKm: DefaultMaxDistanceKm,
		TopK:          DefaultTopK,
	}
}

// Validate checks that both options are positive.
func (o Options) Validate() error {
	if !(o.MaxDistanceKm > 0) {
		return fmt.Errorf("%w: maxDistanceKm must be > 0, got %v", ErrInvalidOption, o.MaxDistanceKm)
	}
	if o.TopK <= 0 {
		return fmt.Errorf("%w: topK must be > 0, got %d", ErrInvalidOption, o.TopK)
	}
	return nil
}

// ComputeNearby returns the cities within opts.MaxDistanceKm of dest, closest
// first, capped at opts.TopK. Cities at equal distance keep their input order.
func ComputeNearby(dest models.City, cities []models.City, opts Options) ([]models.AnnotatedCity, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	origin := dest.Coordinate()
	results := make([]models.AnnotatedCity, 0, len(cities))

	for _, c := range cities {
		dist, err := geo.DistanceKm(origin, c.Coordinate())
		if err != nil {
			return nil, fmt.Errorf("distance from %q to %q: %w", dest.ID, c.ID, err)
		}
		if dist <= opts.MaxDistanceKm {
			results = append(results, models.AnnotatedCity{City: c, DistanceKm: dist})
		}
	}

	// Sort by distance
	slices.SortStableFunc(results, func(a, b models.AnnotatedCity) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}

	return results, nil
}

// BuildGraph normalizes the input, resolves the nearby cities and returns
// them as a star graph: the destination node first, then one node and one
// edge per nearby city in distance order.
func BuildGraph(destination, cities any, opts Options) (models.NearbyGraph, error) {
	in, err := NormalizeInput(destination, cities)
	if err != nil {
		return models.NearbyGraph{}, err
	}

	nearby, err := ComputeNearby(in.Destination, in.Cities, opts)
	if err != nil {
		return models.NearbyGraph{}, err
	}

	dest := in.Destination
	nodes := make([]models.GraphNode, 0, len(nearby)+1)
	edges := make([]models.GraphEdge, 0, len(nearby))

	nodes = append(nodes, models.GraphNode{
		ID:    dest.ID,
		Label: dest.Name,
		Type:  models.NodeDestination,
	})

	for _, c := range nearby {
		nodes = append(nodes, models.GraphNode{
			ID:    c.ID,
			Label: CityLabel(c),
			Type:  models.NodeCity,
		})
		edges = append(edges, models.GraphEdge{
			From:   dest.ID,
			To:     c.ID,
			Weight: c.DistanceKm,
		})
	}

	return models.NearbyGraph{
		Nodes: nodes,
		Edges: edges,
		Meta:  models.GraphMeta{Count: len(edges)},
	}, nil
}

// CityLabel renders "<name> (<distance> km)" with the shortest decimal form
// of the distance.
func CityLabel(c models.AnnotatedCity) string {
	return c.Name + " (" + strconv.FormatFloat(c.DistanceKm, 'f', -1, 64) + " km)"
}
