package server

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"stablearb/internal/pipeline"
	"stablearb/internal/store"
	"stablearb/internal/version"
)

// Runner executes one pipeline pass. Satisfied by *pipeline.Dispatcher.
type Runner interface {
	Run(ctx context.Context, p pipeline.Params) *pipeline.Response
}

// Server wraps the fiber app around the pipeline.
type Server struct {
	app    *fiber.App
	runner Runner
	store  store.Store
	logger *slog.Logger
}

// New builds the HTTP server and registers its routes.
func New(runner Runner, st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			ServerHeader:          "stablearb",
			AppName:               "stablearb " + version.Version,
			DisableStartupMessage: true,
		}),
		runner: runner,
		store:  st,
		logger: logger,
	}

	s.app.Use(cors.New(cors.Config{AllowOrigins: "*"}))
	s.app.Get("/api", s.handleAPI)
	s.app.Get("/health", s.handleHealth)
	return s
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(port int) error {
	s.logger.Info("http server listening", "port", port)
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleAPI(c *fiber.Ctx) error {
	p := parseParams(c)
	resp := s.runner.Run(c.UserContext(), p)

	if resp.Cron {
		return c.JSON(cronBody{
			Status:      resp.Status,
			Saved:       resp.Saved(),
			SavedResult: resp.Save,
		})
	}
	return c.JSON(interactiveBody{
		Live:    resp.Live,
		History: resp.History,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	st := "disabled"
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		st = "connected"
		if err := p.Ping(c.UserContext()); err != nil {
			st = "unreachable"
		}
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version.Version,
		"store":   st,
	})
}

// parseParams decodes the query string. Every parameter is optional and
// tolerant: anything other than the literal "true" is false, an
// unparseable since is ignored.
func parseParams(c *fiber.Ctx) pipeline.Params {
	p := pipeline.Params{
		Cron:  c.Query("cron") == "true",
		Force: c.Query("force") == "true",
	}
	if raw := c.Query("since"); raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			p.Since = &t
		}
	}
	return p
}
