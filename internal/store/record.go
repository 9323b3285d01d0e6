package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
	"github.com/ChicagoDave/siteplanner/pkg/scene2d"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// NewRecord serializes one pipeline run: the request, the GeoJSON output,
// the layout metrics, the run report and a top-down SVG.
func NewRecord(req *spec.SiteRequest, l *layout.Layout, report *validation.Report) (*Record, error) {
	request, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	output, err := json.Marshal(scene.FromLayout(l).FeatureCollection())
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	m, _ := analytics.Compute(l)
	metrics, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metrics: %w", err)
	}
	if report == nil {
		report = validation.NewReport()
	}
	rep, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	var svg bytes.Buffer
	if err := scene2d.RenderSVG(&svg, scene2d.Assemble2D(l), scene2d.DefaultRenderOptions()); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return &Record{
		Seed:    l.Seed,
		Density: string(l.Settings.Density),
		Request: request,
		Output:  output,
		Metrics: metrics,
		Report:  rep,
		SVG:     svg.String(),
	}, nil
}
