package validation

import (
	"testing"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/settings"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func squareRequest() *spec.SiteRequest {
	return &spec.SiteRequest{
		Boundary: spec.NewBoundary(geo.Ring{
			{Latitude: 51.48, Longitude: -0.01},
			{Latitude: 51.48, Longitude: -0.0028},
			{Latitude: 51.4845, Longitude: -0.0028},
			{Latitude: 51.4845, Longitude: -0.01},
		}),
		Density: "medium",
	}
}

func TestValidateRequestValid(t *testing.T) {
	r := ValidateRequest(squareRequest())
	if !r.Valid {
		t.Errorf("expected valid, got errors: %+v", r.Errors)
	}
}

func TestValidateRequestTooFewPoints(t *testing.T) {
	req := squareRequest()
	req.Boundary.Ring = req.Boundary.Ring[:2]
	r := ValidateRequest(req)
	if r.Valid {
		t.Fatal("expected invalid")
	}
	if r.Errors[0].Field != "boundary" {
		t.Errorf("field = %q, want boundary", r.Errors[0].Field)
	}
}

func TestValidateRequestOutOfRange(t *testing.T) {
	req := squareRequest()
	req.Boundary.Ring[0].Latitude = 95
	if r := ValidateRequest(req); r.Valid {
		t.Error("expected invalid for latitude 95")
	}
}

func TestValidateRequestBowtieWarns(t *testing.T) {
	req := squareRequest()
	ring := req.Boundary.Ring
	ring[2], ring[3] = ring[3], ring[2]
	r := ValidateRequest(req)
	if !r.Valid {
		t.Fatalf("repairable ring should only warn, got %+v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected self-intersection warning")
	}
}

func TestValidateRequestBadSettings(t *testing.T) {
	req := squareRequest()
	req.Density = "megacity"
	if r := ValidateRequest(req); r.Valid {
		t.Error("expected invalid density to fail")
	}

	req = squareRequest()
	req.Overrides.MinWidth = settings.Float(30)
	if r := ValidateRequest(req); r.Valid {
		t.Error("expected inverted width range to fail")
	}
}

func TestValidateRequestZones(t *testing.T) {
	req := squareRequest()
	req.Zones = []spec.ZoneDef{{Kind: "", Ring: req.Boundary}}
	r := ValidateRequest(req)
	if r.Valid {
		t.Fatal("expected empty zone kind to fail")
	}
	if r.Errors[0].Field != "zones[0].kind" {
		t.Errorf("field = %q", r.Errors[0].Field)
	}
}
