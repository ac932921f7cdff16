package measurementHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	measurementService "xray-angles/internal/api/measurement/service"
	"xray-angles/internal/middleware"
)

// MeasurementHandler exposes the session wizard over HTTP.
type MeasurementHandler struct {
	log                *logrus.Logger
	validator          *validator.Validate
	middleware         middleware.Middleware
	measurementService measurementService.IMeasurementService
}

// New creates the handler.
func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ms measurementService.IMeasurementService,
) *MeasurementHandler {
	return &MeasurementHandler{
		log:                log,
		validator:          validator,
		middleware:         middleware,
		measurementService: ms,
	}
}

// Start registers the routes.
func (h *MeasurementHandler) Start(srv fiber.Router) {
	sessions := srv.Group("/sessions")
	sessions.Post("", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.DeleteSession)
	sessions.Put("/:id/view", h.SetView)
	sessions.Post("/:id/landmarks", h.PlaceLandmark)
	sessions.Post("/:id/hip-points", h.AddHipPoint)
	sessions.Post("/:id/hip-fit", h.FitHipCenter)
	sessions.Get("/:id/measurement", h.Measure)
	sessions.Get("/:id/overlay", h.Overlay)
	sessions.Post("/:id/reset", h.Reset)
}
