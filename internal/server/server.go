// Package server exposes the interview engine over HTTP.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/interview"
	"ai-mock-interview/internal/metrics"
	"ai-mock-interview/internal/storage"
)

// Gateway is the model server surface the HTTP layer needs: generation
// plus the availability probe for the engine, and the advisory model
// listing for the health endpoint.
type Gateway interface {
	interview.Generator
	ListModels() ([]string, error)
}

// sessionEntry pairs an engine instance with the presentation-level state
// the engine deliberately does not track: the opening question, the
// closing evaluation, and the finished flag.
type sessionEntry struct {
	mu       sync.Mutex
	session  *interview.Session
	opening  string
	closing  string
	closedAt time.Time
	finished bool
}

// Server routes HTTP requests to per-session interview engines.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	gateway  Gateway
	store    *storage.Store
	metrics  *metrics.Metrics
	sessions *cache.Cache
	validate *validator.Validate
	logger   *zap.Logger
}

// New assembles the server and registers its routes.
func New(cfg *config.Config, gateway Gateway, store *storage.Store, m *metrics.Metrics, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AppName:      "ai-mock-interview",
	})

	s := &Server{
		app:      app,
		cfg:      cfg,
		gateway:  gateway,
		store:    store,
		metrics:  m,
		sessions: cache.New(cfg.Server.SessionTTL, 10*time.Minute),
		validate: validator.New(),
		logger:   logger,
	}

	app.Use(s.requestLogger)

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/models", s.handleModels)
	api.Post("/sessions", s.handleCreateSession)
	api.Post("/sessions/:id/start", s.handleStart)
	api.Post("/sessions/:id/answers", s.handleAnswer)
	api.Post("/sessions/:id/skip", s.handleSkip)
	api.Get("/sessions/:id", s.handleProgress)
	api.Get("/sessions/:id/transcript", s.handleTranscript)

	return s
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Server.Port))
}

// Shutdown drains connections within the given timeout.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(s.cfg.Server.ShutdownTimeout)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Info("http request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)))
	return err
}

func (s *Server) entry(c *fiber.Ctx) (*sessionEntry, bool) {
	if value, ok := s.sessions.Get(c.Params("id")); ok {
		return value.(*sessionEntry), true
	}
	return nil, false
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
