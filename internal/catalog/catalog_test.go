package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingmx/citygraph/internal/nearby"
)

func TestLoadJSON(t *testing.T) {
	svc := New()
	assert.False(t, svc.IsLoaded())

	require.NoError(t, svc.Load(filepath.Join("testdata", "cities.json")))
	assert.True(t, svc.IsLoaded())
	assert.Equal(t, 2, svc.Count())

	r, ok := svc.Get("SALT")
	require.True(t, ok)
	assert.Equal(t, "Saltillo", r["name"])
	assert.Equal(t, json.Number("25.438"), r["lat"])

	_, ok = svc.Get("GDL")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	svc := New()
	require.NoError(t, svc.Load(filepath.Join("testdata", "cities.yaml")))
	assert.Equal(t, 5, svc.Count())

	r, ok := svc.Get("SALT")
	require.True(t, ok)
	assert.Equal(t, "Saltillo", r["name"], "first record wins for duplicate ids")

	cities := svc.Cities()
	ids := make([]string, len(cities))
	for i, c := range cities {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"MTY", "SALT", "REYN", "SALT"}, ids)
	assert.Equal(t, 26.0922, cities[2].Lat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join("testdata", "nope.json")},
		{"broken yaml", filepath.Join("testdata", "broken.yaml")},
		{"record without id", filepath.Join("testdata", "no_id.json")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New()
			assert.Error(t, svc.Load(tc.path))
			assert.False(t, svc.IsLoaded())
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n"), 0o644))

	err := New().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestRecordsAreCopies(t *testing.T) {
	svc := New()
	require.NoError(t, svc.Load(filepath.Join("testdata", "cities.json")))

	records := svc.Records()
	records[0].(map[string]any)["name"] = "changed"

	r, _ := svc.Get("MTY")
	assert.Equal(t, "Monterrey", r["name"])
}

func TestRecordsFeedResolver(t *testing.T) {
	svc := New()
	require.NoError(t, svc.Load(filepath.Join("..", "..", "data", "cities.json")))

	dest, ok := svc.Get("MTY")
	require.True(t, ok)

	g, err := nearby.BuildGraph(dest, svc.Records(), nearby.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "MTY", g.Nodes[0].ID)
	assert.LessOrEqual(t, g.Meta.Count, nearby.DefaultTopK)
	require.NotEmpty(t, g.Edges)
	assert.Equal(t, "SALT", g.Edges[0].To)
}
