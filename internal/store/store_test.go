package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func squareRequest(size float64) *spec.SiteRequest {
	h := size / 2
	proj := geo.NewProjector(geo.LatLng{Latitude: 51.5, Longitude: -0.12})
	ring := proj.UnprojectRing([]geo.Point2D{geo.Pt(-h, -h), geo.Pt(h, -h), geo.Pt(h, h), geo.Pt(-h, h)})
	return &spec.SiteRequest{Boundary: spec.NewBoundary(ring), Seed: "store"}
}

func TestOpenMigrates(t *testing.T) {
	s := openTestStore(t)

	version, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// A second run finds nothing to do.
	require.NoError(t, s.MigrateUp())
	require.NoError(t, s.Ping(context.Background()))
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := &Record{
		Seed:    42,
		Density: "medium",
		Request: []byte(`{"seed":"x"}`),
		Output:  []byte(`{"type":"FeatureCollection","features":[]}`),
		Metrics: []byte(`{}`),
		Report:  []byte(`{"valid":true}`),
		SVG:     "<svg></svg>",
	}
	id, err := s.Save(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got.Seed)
	assert.Equal(t, "medium", got.Density)
	assert.JSONEq(t, string(rec.Output), string(got.Output))
	assert.Equal(t, rec.SVG, got.SVG)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetUnknown(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Save(ctx, &Record{
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Seed:      uint32(i),
			Density:   "low",
			Request:   []byte(`{}`),
			Output:    []byte(`{}`),
			Metrics:   []byte(`{}`),
			Report:    []byte(`{}`),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID, "newest first")
	assert.Equal(t, ids[1], list[1].ID)

	require.NoError(t, s.Delete(ctx, ids[0]))
	assert.ErrorIs(t, s.Delete(ctx, ids[0]), ErrNotFound)

	list, err = s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNewRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	req := squareRequest(200)
	l, report, err := layout.Generate(req)
	require.NoError(t, err)

	rec, err := NewRecord(req, l, report)
	require.NoError(t, err)
	assert.Equal(t, l.Seed, rec.Seed)
	assert.Equal(t, "medium", rec.Density)
	assert.True(t, strings.HasPrefix(rec.SVG, "<?xml"))

	id, err := s.Save(ctx, rec)
	require.NoError(t, err)
	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(got.Output, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotEmpty(t, fc.Features)

	var back spec.SiteRequest
	require.NoError(t, json.Unmarshal(got.Request, &back))
	assert.Equal(t, "store", back.Seed)
	assert.Len(t, back.Boundary.Ring, len(req.Boundary.Ring))
}
