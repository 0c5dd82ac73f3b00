package nearby

import (
	"fmt"

	"github.com/bookingmx/citygraph/internal/models"
)

// Input is a validated destination with its deduplicated candidate cities.
type Input struct {
	Destination models.City
	Cities      []models.City
}

// NormalizeInput validates destination and cleans up the candidate list.
//
// A cities value that is not a list is treated as empty. Nil entries are
// dropped, the rest are coerced to cities and validated, and the first
// invalid entry aborts the call. Duplicates by ID keep the first occurrence
// and the destination itself is excluded. Input order is preserved.
func NormalizeInput(destination, cities any) (Input, error) {
	if err := ValidateCity(destination); err != nil {
		return Input{}, err
	}
	dest := asCity(destination)

	entries := sequence(cities)
	coerced := make([]models.City, 0, len(entries))
	for i, e := range entries {
		if isNil(e) {
			continue
		}

		c, err := ToCity(e)
		if err != nil {
			return Input{}, fmt.Errorf("city at index %d: %w", i, err)
		}
		coerced = append(coerced, c)
	}

	seen := make(map[string]bool, len(coerced))
	unique := make([]models.City, 0, len(coerced))
	for _, c := range coerced {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		if c.ID == dest.ID {
			continue
		}
		unique = append(unique, c)
	}

	return Input{Destination: dest, Cities: unique}, nil
}

// ToCity coerces v to a City and validates the result.
func ToCity(v any) (models.City, error) {
	c, ok := coerce(v)
	if !ok {
		return models.City{}, ValidateCity(v)
	}
	if err := ValidateCity(c); err != nil {
		return models.City{}, err
	}
	return c, nil
}

// asCity converts a value that already passed ValidateCity.
func asCity(v any) models.City {
	switch c := v.(type) {
	case models.City:
		return c
	case *models.City:
		return *c
	case map[string]any:
		return recordToCity(c)
	}
	return models.City{}
}

func coerce(v any) (models.City, bool) {
	switch c := v.(type) {
	case models.City:
		return c, true
	case *models.City:
		if c != nil {
			return *c, true
		}
	case map[string]any:
		if c != nil {
			return coerceRecord(c), true
		}
	}
	return models.City{}, false
}

func isNil(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case *models.City:
		return c == nil
	case map[string]any:
		return c == nil
	}
	return false
}

// sequence flattens the list shapes callers pass in. Anything else is empty.
func sequence(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []map[string]any:
		out := make([]any, len(list))
		for i, r := range list {
			out[i] = r
		}
		return out
	case []models.City:
		out := make([]any, len(list))
		for i, c := range list {
			out[i] = c
		}
		return out
	case []*models.City:
		out := make([]any, len(list))
		for i, c := range list {
			out[i] = c
		}
		return out
	}
	return nil
}
