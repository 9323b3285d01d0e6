package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/siteplanner/internal/server"
	"github.com/ChicagoDave/siteplanner/internal/store"
	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/cost"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
	"github.com/ChicagoDave/siteplanner/pkg/scene2d"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

type generateOptions struct {
	format string
	check  bool
	seed   string
	store  string
}

// loadAndGenerate loads a request and runs the pipeline on it.
func loadAndGenerate(path, seed string) (*spec.SiteRequest, *layout.Layout, *validation.Report, error) {
	req, err := spec.LoadAny(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading request: %w", err)
	}
	if seed != "" {
		req.Seed = seed
	}
	l, report, err := layout.Generate(req)
	if err != nil {
		return nil, nil, report, fmt.Errorf("generating layout: %w", err)
	}
	return req, l, report, nil
}

func runGenerate(w io.Writer, path string, opts generateOptions) error {
	if opts.format != "geojson" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want geojson or json)", opts.format)
	}
	req, l, report, err := loadAndGenerate(path, opts.seed)
	if err != nil {
		return err
	}

	if opts.check {
		checkReport := scene.ValidateLayout(l)
		report.Merge(checkReport)
		if !checkReport.Valid {
			printValidationReport(os.Stderr, report)
			return errors.New("layout failed invariant checks")
		}
	}
	for _, warn := range report.Warnings {
		log.Printf("[generate] warning: %s", warn.Message)
	}

	if opts.store != "" {
		id, err := recordLayout(opts.store, req, l, report)
		if err != nil {
			return err
		}
		log.Printf("[generate] stored layout %s in %s", id, opts.store)
	}

	out := scene.FromLayout(l)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if opts.format == "json" {
		return enc.Encode(map[string]any{
			"output":     out,
			"validation": report,
		})
	}
	return enc.Encode(out.FeatureCollection())
}

func recordLayout(dbPath string, req *spec.SiteRequest, l *layout.Layout, report *validation.Report) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()
	rec, err := store.NewRecord(req, l, report)
	if err != nil {
		return "", err
	}
	return st.Save(context.Background(), rec)
}

func runValidate(w io.Writer, path string) error {
	req, err := spec.LoadAny(path)
	if err != nil {
		return fmt.Errorf("loading request: %w", err)
	}
	report := validation.ValidateRequest(req)
	printValidationReport(w, report)
	if !report.Valid {
		return report.Err()
	}
	return nil
}

func runValidateZone(w io.Writer, path string) error {
	req, err := spec.LoadPlacement(path)
	if err != nil {
		return err
	}
	check, _, err := layout.CheckPlacement(req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(check)
}

func runRender(w io.Writer, path, outPath string, ppm float64) error {
	_, l, _, err := loadAndGenerate(path, "")
	if err != nil {
		return err
	}
	opts := scene2d.DefaultRenderOptions()
	if ppm > 0 {
		opts.PixelsPerMeter = ppm
	}
	if outPath == "" {
		return scene2d.RenderSVG(w, scene2d.Assemble2D(l), opts)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := scene2d.RenderSVG(f, scene2d.Assemble2D(l), opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[render] wrote %s", outPath)
	return nil
}

func runMetrics(w io.Writer, path string, asJSON bool) error {
	_, l, report, err := loadAndGenerate(path, "")
	if err != nil {
		return err
	}
	m, metricsReport := analytics.Compute(l)
	report.Merge(metricsReport)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"metrics":    m,
			"validation": report,
		})
	}
	printMetrics(w, m)
	if len(report.Warnings) > 0 || len(report.Info) > 0 {
		fmt.Fprintln(w)
		printValidationReport(w, report)
	}
	return nil
}

func runCost(w io.Writer, path string, fin cost.Financing) error {
	_, l, _, err := loadAndGenerate(path, "")
	if err != nil {
		return err
	}
	m, _ := analytics.Compute(l)
	printCostReport(w, cost.Estimate(l, m, fin))
	return nil
}

func runServe(cmd *cobra.Command, port, dbPath string) error {
	cfg := server.LoadConfig()
	if port != "" {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	var st *store.Store
	if cfg.DBPath != "" {
		var err error
		st, err = store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()
	}

	srv := server.New(cfg, st)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Printf("[server] shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()
	return srv.Start()
}
