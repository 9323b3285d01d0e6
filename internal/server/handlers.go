package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/ChicagoDave/siteplanner/internal/store"
	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/cost"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
	"github.com/ChicagoDave/siteplanner/pkg/scene2d"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func (s *Server) handleLive(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

func (s *Server) handleReady(c fiber.Ctx) error {
	if s.store != nil {
		if err := s.store.Ping(c.Context()); err != nil {
			log.Printf("[server] store not ready: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// decodeRequest reads a site request from the body.
func decodeRequest(c fiber.Ctx) (*spec.SiteRequest, error) {
	if len(c.Body()) == 0 {
		return nil, errors.New("body required")
	}
	var req spec.SiteRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Server) handleLayout(c fiber.Ctx) error {
	req, err := decodeRequest(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	l, report, err := layout.Generate(req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	metrics, metricsReport := analytics.Compute(l)
	report.Merge(metricsReport)

	out := scene.FromLayout(l)
	resp := fiber.Map{
		"seed":    l.Seed,
		"metrics": metrics,
		"cost":    cost.Estimate(l, metrics, cost.DefaultFinancing()),
		"report":  report,
	}
	if c.Query("format") == "json" {
		resp["output"] = out
	} else {
		resp["output"] = out.FeatureCollection()
	}

	if s.store != nil {
		rec, err := store.NewRecord(req, l, report)
		if err != nil {
			log.Printf("[layout] encode record: %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, err.Error())
		}
		id, err := s.store.Save(c.Context(), rec)
		if err != nil {
			log.Printf("[layout] save: %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, err.Error())
		}
		resp["id"] = id
	}
	return c.JSON(resp)
}

func (s *Server) handleLayoutSVG(c fiber.Ctx) error {
	req, err := decodeRequest(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	l, _, err := layout.Generate(req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	var buf bytes.Buffer
	if err := scene2d.RenderSVG(&buf, scene2d.Assemble2D(l), scene2d.DefaultRenderOptions()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (s *Server) handleValidateZone(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "body required")
	}
	var req spec.PlacementRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	check, _, err := layout.CheckPlacement(&req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(check)
}

func (s *Server) lookup(c fiber.Ctx) (*store.Record, error) {
	if s.store == nil {
		return nil, errorJSON(c, fiber.StatusServiceUnavailable, "layout store is disabled")
	}
	rec, err := s.store.Get(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return nil, errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		log.Printf("[layout] get %s: %v", c.Params("id"), err)
		return nil, errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return rec, nil
}

func (s *Server) handleListLayouts(c fiber.Ctx) error {
	if s.store == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "layout store is disabled")
	}
	limit := fiber.Query[int](c, "limit", 50)
	list, err := s.store.List(c.Context(), limit)
	if err != nil {
		log.Printf("[layout] list: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(list)
}

func (s *Server) handleGetLayout(c fiber.Ctx) error {
	rec, err := s.lookup(c)
	if rec == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":         rec.ID,
		"created_at": rec.CreatedAt,
		"seed":       rec.Seed,
		"density":    rec.Density,
		"request":    json.RawMessage(rec.Request),
		"output":     json.RawMessage(rec.Output),
		"metrics":    json.RawMessage(rec.Metrics),
		"report":     json.RawMessage(rec.Report),
	})
}

func (s *Server) handleGetLayoutSVG(c fiber.Ctx) error {
	rec, err := s.lookup(c)
	if rec == nil {
		return err
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(rec.SVG)
}
