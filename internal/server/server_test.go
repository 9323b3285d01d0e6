package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/siteplanner/internal/store"
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func testConfig() Config {
	return Config{Port: "0", ReadTimeout: time.Minute, WriteTimeout: time.Minute, BodyLimit: 8 << 20}
}

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(filepath.Join(t.TempDir(), "layouts.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
	}
	return New(testConfig(), st)
}

func do(t *testing.T, s *Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, fiber.TestConfig{Timeout: time.Minute})
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func ring(pts ...geo.Point2D) geo.Ring {
	return geo.NewProjector(geo.LatLng{Latitude: 48.85, Longitude: 2.35}).UnprojectRing(pts)
}

func square(h float64) geo.Ring {
	return ring(geo.Pt(-h, -h), geo.Pt(h, -h), geo.Pt(h, h), geo.Pt(-h, h))
}

func siteRequest() *spec.SiteRequest {
	return &spec.SiteRequest{Boundary: spec.NewBoundary(square(100)), Seed: "server"}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)

	resp, body := do(t, s, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, string(body))

	resp, body = do(t, s, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready"}`, string(body))
}

func TestPostLayout(t *testing.T) {
	s := newTestServer(t, false)

	resp, body := do(t, s, http.MethodPost, "/api/layout", siteRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got struct {
		ID     string `json:"id"`
		Seed   uint32 `json:"seed"`
		Output struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
		} `json:"output"`
		Metrics map[string]json.RawMessage `json:"metrics"`
		Cost    map[string]json.RawMessage `json:"cost"`
		Report  struct {
			Valid bool `json:"valid"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Empty(t, got.ID, "no store, no id")
	assert.NotZero(t, got.Seed)
	assert.Equal(t, "FeatureCollection", got.Output.Type)
	assert.NotEmpty(t, got.Output.Features)
	assert.Contains(t, got.Metrics, "site")
	assert.Contains(t, got.Cost, "summary")
	assert.True(t, got.Report.Valid)
}

func TestPostLayoutJSONFormat(t *testing.T) {
	s := newTestServer(t, false)

	resp, body := do(t, s, http.MethodPost, "/api/layout?format=json", siteRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got struct {
		Output struct {
			Roads     []json.RawMessage `json:"roads"`
			Parcels   []json.RawMessage `json:"parcels"`
			Buildings []json.RawMessage `json:"buildings"`
		} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.NotNil(t, got.Output.Roads)
	assert.NotEmpty(t, got.Output.Parcels)
}

func TestPostLayoutInvalid(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"empty body", nil, "body required"},
		{"two points", &spec.SiteRequest{Boundary: spec.NewBoundary(geo.Ring{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}})}, "distinct points"},
		{"bad density", &spec.SiteRequest{Boundary: spec.NewBoundary(square(100)), Density: "huge"}, "density"},
		{"bad encoding", map[string]any{"boundary": "north field"}, "unsupported boundary encoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, s, http.MethodPost, "/api/layout", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Contains(t, e.Error, tt.want)
		})
	}
}

func TestStoredLayoutRoundTrip(t *testing.T) {
	s := newTestServer(t, true)

	resp, body := do(t, s, http.MethodPost, "/api/layout", siteRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var created struct {
		ID   string `json:"id"`
		Seed uint32 `json:"seed"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)

	resp, body = do(t, s, http.MethodGet, "/api/layouts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		ID     string `json:"id"`
		Seed   uint32 `json:"seed"`
		Output struct {
			Type string `json:"type"`
		} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Seed, got.Seed)
	assert.Equal(t, "FeatureCollection", got.Output.Type)

	resp, body = do(t, s, http.MethodGet, "/api/layouts/"+created.ID+"/svg", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<svg")

	resp, body = do(t, s, http.MethodGet, "/api/layouts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), created.ID)
}

func TestGetLayoutUnknown(t *testing.T) {
	s := newTestServer(t, true)

	resp, body := do(t, s, http.MethodGet, "/api/layouts/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "layout not found")
}

func TestGetLayoutWithoutStore(t *testing.T) {
	s := newTestServer(t, false)

	resp, _ := do(t, s, http.MethodGet, "/api/layouts/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLayoutSVG(t *testing.T) {
	s := newTestServer(t, false)

	resp, body := do(t, s, http.MethodPost, "/api/layout/svg", siteRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, strings.HasPrefix(string(body), "<?xml"))
}

func TestValidateZone(t *testing.T) {
	s := newTestServer(t, false)

	footprint := ring(geo.Pt(10, 10), geo.Pt(20, 10), geo.Pt(20, 20), geo.Pt(10, 20))
	zone := square(100)

	req := spec.PlacementRequest{
		Footprint:    spec.NewBoundary(footprint),
		BuildingType: "house_detached",
		Zones:        []spec.ZoneDef{{Kind: "commercial", Ring: spec.NewBoundary(zone)}},
	}
	resp, body := do(t, s, http.MethodPost, "/api/zones/validate", req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var check struct {
		IsValid        bool     `json:"is_valid"`
		Reasons        []string `json:"reasons"`
		CompatibleZone *string  `json:"compatible_zone"`
	}
	require.NoError(t, json.Unmarshal(body, &check))
	assert.False(t, check.IsValid)
	require.NotEmpty(t, check.Reasons)
	assert.Contains(t, check.Reasons[0], "not compatible")
	assert.Nil(t, check.CompatibleZone)

	req.Zones[0].Kind = "residential"
	resp, body = do(t, s, http.MethodPost, "/api/zones/validate", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &check))
	assert.True(t, check.IsValid)
	require.NotNil(t, check.CompatibleZone)
	assert.Equal(t, "residential", *check.CompatibleZone)

	req.Zones[0].Kind = "industrial"
	resp, _ = do(t, s, http.MethodPost, "/api/zones/validate", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SITEPLANNER_PORT", "9090")
	t.Setenv("SITEPLANNER_DB", "/tmp/x.db")
	t.Setenv("SITEPLANNER_READ_TIMEOUT", "bogus")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}
