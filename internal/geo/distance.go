// Package geo computes great-circle distances between coordinates.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/umahmood/haversine"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is NaN.
	ErrInvalidCoordinate = errors.New("invalid coordinate: expected numeric lat/lng")

	// ErrCoordinateOutOfRange is returned when a latitude is outside [-90, 90]
	// or a longitude is outside [-180, 180].
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")
)

// Coordinate is a point on the Earth's surface in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that c is numeric and within geographic bounds.
func Validate(c Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return ErrInvalidCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrCoordinateOutOfRange, c.Lat, c.Lng)
	}
	return nil
}

// DistanceKm returns the haversine distance between a and b in kilometers,
// rounded to three decimal places.
func DistanceKm(a, b Coordinate) (float64, error) {
	if err := Validate(a); err != nil {
		return 0, err
	}
	if err := Validate(b); err != nil {
		return 0, err
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lng},
		haversine.Coord{Lat: b.Lat, Lon: b.Lng},
	)

	return Round3(km), nil
}

// Round3 rounds v to three decimal places, halves away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
