package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	measurementHandler "xray-angles/internal/api/measurement/handler"
	measurementService "xray-angles/internal/api/measurement/service"
	"xray-angles/internal/middleware"
	"xray-angles/internal/session"
)

// ServerOption configures the server during construction.
type ServerOption func(*Server) error

// Server wires the fiber app, middleware, and the measurement domain.
type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	middleware middleware.Middleware
	validator  *validator.Validate
	sessions   *session.Manager
	handlers   []handler
}

type handler interface {
	Start(srv fiber.Router)
}

// NewServer builds a server from the given options.
func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	return server, nil
}

// WithFiber sets the fiber app.
func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

// WithValidator sets the request validator.
func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithMiddleware builds the middleware bundle. Requires the logger.
func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithSessionManager sets the session manager.
func WithSessionManager(sessions *session.Manager) ServerOption {
	return func(s *Server) error {
		s.sessions = sessions
		return nil
	}
}

// RegisterHandler assembles the measurement domain.
func (s *Server) RegisterHandler() {
	measurementServices := measurementService.New(s.log, s.sessions)
	measurementHandlers := measurementHandler.New(s.log, s.validator, s.middleware, measurementServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, measurementHandlers)
}

// Mount attaches middleware and routes to the fiber app.
func (s *Server) Mount() {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}
}

// Run mounts the routes and listens on APP_PORT (default 3000).
func (s *Server) Run() error {
	s.Mount()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Engine exposes the fiber app, mainly for tests.
func (s *Server) Engine() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
