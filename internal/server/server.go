// Package server exposes the layout pipeline over HTTP.
package server

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ChicagoDave/siteplanner/internal/store"
)

// Server is the site-layout HTTP API.
type Server struct {
	cfg   Config
	store *store.Store
	app   *fiber.App
}

// New creates a server. st may be nil, in which case layouts are not
// persisted and the /api/layouts routes answer 503.
func New(cfg Config, st *store.Store) *Server {
	s := &Server{cfg: cfg, store: st}
	s.app = fiber.New(fiber.Config{
		AppName:      "siteplanner",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))

	s.app.Get("/health/live", s.handleLive)
	s.app.Get("/health/ready", s.handleReady)

	api := s.app.Group("/api")
	api.Post("/layout", s.handleLayout)
	api.Post("/layout/svg", s.handleLayoutSVG)
	api.Post("/zones/validate", s.handleValidateZone)
	api.Get("/layouts", s.handleListLayouts)
	api.Get("/layouts/:id", s.handleGetLayout)
	api.Get("/layouts/:id/svg", s.handleGetLayoutSVG)
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured port until the server is shut down.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	log.Printf("[server] siteplanner starting on http://localhost%s", addr)
	if s.store != nil {
		log.Printf("[server] storing layouts in %s", s.cfg.DBPath)
	}
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
