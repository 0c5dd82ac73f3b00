// Package nearby resolves the cities closest to a destination and shapes
// them into a star graph centered on that destination.
//
// Inputs are accepted either as typed models.City values or as plain records
// (map[string]any) decoded from JSON or YAML. Records are validated strictly
// for the destination and coerced best-effort for candidate cities.
package nearby

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bookingmx/citygraph/internal/models"
)

// ErrInvalidCity is returned when a city record is missing a field or has a
// field of the wrong type.
var ErrInvalidCity = errors.New("invalid city")

var requiredFields = []string{"id", "name", "lat", "lng"}

// ValidateCity checks that c is a city with a non-empty id and name and
// numeric coordinates. c may be a models.City, a *models.City or a record.
//
// NaN coordinates pass; they are rejected when a distance is computed.
func ValidateCity(c any) error {
	switch v := c.(type) {
	case models.City:
		return validateTyped(v)
	case *models.City:
		if v == nil {
			break
		}
		return validateTyped(*v)
	case map[string]any:
		if v == nil {
			break
		}
		return validateRecord(v)
	}
	return fmt.Errorf("%w: city must be an object", ErrInvalidCity)
}

func validateTyped(c models.City) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: city.id must be a non-empty string", ErrInvalidCity)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: city.name must be a non-empty string", ErrInvalidCity)
	}
	return nil
}

func validateRecord(r map[string]any) error {
	for _, k := range requiredFields {
		if _, ok := r[k]; !ok {
			return fmt.Errorf("%w: missing required field: %s", ErrInvalidCity, k)
		}
	}

	if s, ok := r["id"].(string); !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: city.id must be a non-empty string", ErrInvalidCity)
	}
	if s, ok := r["name"].(string); !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: city.name must be a non-empty string", ErrInvalidCity)
	}

	_, latOK := models.Number(r["lat"])
	_, lngOK := models.Number(r["lng"])
	if !latOK || !lngOK {
		return fmt.Errorf("%w: city lat/lng must be numbers", ErrInvalidCity)
	}
	return nil
}

// toNumber coerces v to a float64. Values that cannot be read as a number
// become NaN.
func toNumber(v any, present bool) float64 {
	if !present {
		return math.NaN()
	}
	if f, ok := models.Number(v); ok {
		return f
	}

	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return parseNumeric(strings.TrimSpace(x))
	}
	return math.NaN()
}

// parseNumeric reads a trimmed numeric string. It accepts signed decimals
// with an optional exponent, "Infinity" with an optional sign, and unsigned
// 0x/0o/0b integers. Everything else, including "inf", "NaN" and hex floats,
// is NaN.
func parseNumeric(s string) float64 {
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		if base, ok := radixPrefix[s[1]]; ok {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return math.NaN()
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

var radixPrefix = map[byte]int{
	'x': 16, 'X': 16,
	'o': 8, 'O': 8,
	'b': 2, 'B': 2,
}

// toString coerces v to a string. Missing and null values become "".
func toString(v any, present bool) string {
	if !present {
		return ""
	}

	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// recordToCity reads a validated record without coercing it.
func recordToCity(r map[string]any) models.City {
	lat, _ := models.Number(r["lat"])
	lng, _ := models.Number(r["lng"])
	return models.City{
		ID:   r["id"].(string),
		Name: r["name"].(string),
		Lat:  lat,
		Lng:  lng,
	}
}

// coerceRecord converts a record field by field.
func coerceRecord(r map[string]any) models.City {
	id, idOK := r["id"]
	name, nameOK := r["name"]
	lat, latOK := r["lat"]
	lng, lngOK := r["lng"]

	return models.City{
		ID:   toString(id, idOK),
		Name: toString(name, nameOK),
		Lat:  toNumber(lat, latOK),
		Lng:  toNumber(lng, lngOK),
	}
}
