// Package handlerutil maps domain errors to HTTP responses.
package handlerutil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"xray-angles/internal/circlefit"
	"xray-angles/internal/measure"
	"xray-angles/internal/session"
	"xray-angles/pkg/log"
	"xray-angles/pkg/response"
)

// ErrorHandler translates errors bubbling out of services into JSON error
// responses with the right status code, logging each one with its request ID.
type ErrorHandler struct {
	logger *logrus.Logger
}

// New creates an ErrorHandler.
func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle maps err to an HTTP response.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	if errors.Is(err, session.ErrSessionNotFound) {
		h.logger.WithFields(fields).Warn("Session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
			"code":  "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, session.ErrOutOfBounds) {
		h.logger.WithFields(fields).Warn("Coordinate outside image bounds")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "COORDINATE_OUT_OF_BOUNDS",
		})
	}

	if errors.Is(err, session.ErrAllPlaced) {
		h.logger.WithFields(fields).Warn("All landmarks already placed")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "All landmarks already placed; reset to start over",
			"code":  "ALL_LANDMARKS_PLACED",
		})
	}

	if errors.Is(err, session.ErrHipPointsPending) {
		h.logger.WithFields(fields).Warn("Hip boundary points pending fit")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Hip boundary points are pending; fit them or reset the session",
			"code":  "HIP_POINTS_PENDING",
		})
	}

	if errors.Is(err, session.ErrNotCollectingHip) {
		h.logger.WithFields(fields).Warn("Hip boundary points not being collected")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Hip center has already been placed",
			"code":  "NOT_COLLECTING_HIP",
		})
	}

	if errors.Is(err, circlefit.ErrTooFewPoints) {
		h.logger.WithFields(fields).Warn("Too few hip boundary points")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Mark at least 3 points around the femoral head circumference",
			"code":  "TOO_FEW_HIP_POINTS",
		})
	}

	if errors.Is(err, circlefit.ErrCollinearPoints) {
		h.logger.WithFields(fields).Warn("Hip boundary points are collinear")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Hip boundary points lie on a line; mark points spread around the femoral head",
			"code":  "COLLINEAR_HIP_POINTS",
		})
	}

	if errors.Is(err, measure.ErrIncompleteLandmarks) {
		h.logger.WithFields(fields).Warn("Landmark set incomplete")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Mark all landmarks before requesting the measurement",
			"code":  "LANDMARKS_INCOMPLETE",
		})
	}

	if errors.Is(err, measure.ErrZeroLengthVector) {
		h.logger.WithFields(fields).Warn("Degenerate measurement axis")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Two landmarks defining an axis coincide; re-mark them",
			"code":  "DEGENERATE_AXIS",
		})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

// HandleValidationError maps request validation failures to a 400 response.
func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

// HandleSuccess writes a JSON success response.
func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
