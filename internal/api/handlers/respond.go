package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/bookingmx/citygraph/internal/api/reqlog"
	"github.com/bookingmx/citygraph/internal/geo"
	"github.com/bookingmx/citygraph/internal/graph"
	"github.com/bookingmx/citygraph/internal/nearby"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps err to a status code, reports its kind to the request
// logger and writes an error body
func writeError(w http.ResponseWriter, r *http.Request, summary string, err error) {
	status, kind := classify(err)
	reqlog.SetError(r.Context(), kind, err)

	writeJSON(w, status, map[string]any{
		"error":   summary,
		"message": err.Error(),
	})
}

func errorStatus(err error) int {
	status, _ := classify(err)
	return status
}

// classify returns the HTTP status and a short kind label for err
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, graph.ErrInvariantViolation):
		return http.StatusInternalServerError, "invariant_violation"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, nearby.ErrInvalidCity):
		return http.StatusBadRequest, "invalid_city"
	case errors.Is(err, nearby.ErrInvalidOption):
		return http.StatusBadRequest, "invalid_option"
	case errors.Is(err, geo.ErrInvalidCoordinate):
		return http.StatusBadRequest, "invalid_coordinate"
	case errors.Is(err, geo.ErrCoordinateOutOfRange):
		return http.StatusBadRequest, "coordinate_out_of_range"
	case errors.Is(err, graph.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, graph.ErrInvalidEndpoint):
		return http.StatusBadRequest, "invalid_endpoint"
	case errors.Is(err, graph.ErrInvalidWeight):
		return http.StatusBadRequest, "invalid_weight"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "internal"
}

// decodeBody reads a size-limited JSON body into v, keeping numbers as json.Number
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: decoding body: %w", errBadRequest, err)
	}
	return nil
}

func parseFloatParam(r *http.Request, name string, defaultVal float64) (float64, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal, nil
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("%w: %s must be a finite number", errBadRequest, name)
	}
	return val, nil
}

func parseIntParam(r *http.Request, name string, defaultVal, max int) (int, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	if val > max {
		return max, nil
	}
	return val, nil
}
