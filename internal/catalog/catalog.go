// Package catalog loads the city dataset served by the API
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bookingmx/citygraph/internal/models"
	"github.com/bookingmx/citygraph/internal/nearby"
)

// Service holds city records keyed by ID. Records are kept as decoded so
// that every resolution runs the resolver's own normalization.
type Service struct {
	records []models.Record
	byID    map[string]models.Record
	mu      sync.RWMutex
	loaded  bool
}

// New creates an empty catalog
func New() *Service {
	return &Service{
		byID: make(map[string]models.Record),
	}
}

// Load reads a JSON or YAML list of city records, replacing any previous data
func (s *Service) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading cities file: %w", err)
	}

	var records []models.Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("parsing cities JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("parsing cities YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported cities file extension %q", ext)
	}

	byID := make(map[string]models.Record, len(records))
	for i, r := range records {
		id, ok := recordID(r)
		if !ok {
			return fmt.Errorf("city record %d has no usable id", i)
		}
		if _, dup := byID[id]; !dup {
			byID[id] = r
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.byID = byID
	s.loaded = true
	return nil
}

// Get returns a copy of the record with the given ID
func (s *Service) Get(id string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(r), true
}

// Records returns copies of all records in file order
func (s *Service) Records() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]any, len(s.records))
	for i, r := range s.records {
		out[i] = maps.Clone(r)
	}
	return out
}

// Cities returns the records that coerce to valid cities, in file order
func (s *Service) Cities() []models.City {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cities := make([]models.City, 0, len(s.records))
	for _, r := range s.records {
		c, err := nearby.ToCity(r)
		if err != nil {
			continue
		}
		cities = append(cities, c)
	}
	return cities
}

// Count returns the number of loaded records
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IsLoaded returns true if data has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func recordID(r models.Record) (string, bool) {
	id, ok := r["id"].(string)
	return id, ok && strings.TrimSpace(id) != ""
}
