package measurementHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"xray-angles/internal/api/measurement"
	contextPkg "xray-angles/pkg/context"
	"xray-angles/pkg/handlerutil"
	"xray-angles/pkg/log"
)

const requestTimeout = 5 * time.Second

func (h *MeasurementHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	var req measurement.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, measurement.ErrBadRequest, ctx.Path(), "parse_request_body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.measurementService.CreateSession(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"session_id": resp.ID,
	}).Info("Session created")
	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *MeasurementHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	resp, err := h.measurementService.GetSession(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) DeleteSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	if err := h.measurementService.DeleteSession(c, ctx.Params("id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_session")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
}

func (h *MeasurementHandler) SetView(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	var req measurement.ViewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, measurement.ErrBadRequest, ctx.Path(), "parse_request_body")
	}

	resp, err := h.measurementService.SetView(c, ctx.Params("id"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_view")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) PlaceLandmark(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	var req measurement.PointRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, measurement.ErrBadRequest, ctx.Path(), "parse_request_body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.measurementService.PlaceLandmark(c, ctx.Params("id"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "place_landmark")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"placed":     resp.Placed,
		"next":       resp.Next,
	}).Debug("Landmark placed")
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) AddHipPoint(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	var req measurement.PointRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, measurement.ErrBadRequest, ctx.Path(), "parse_request_body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.measurementService.AddHipPoint(c, ctx.Params("id"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_hip_point")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) FitHipCenter(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	resp, err := h.measurementService.FitHipCenter(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "fit_hip_center")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"center_x":   resp.Center.X,
		"center_y":   resp.Center.Y,
	}).Info("Hip center fitted")
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) Measure(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	resp, err := h.measurementService.Measure(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "measure")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"hka":        resp.Data.HKA,
		"jlca":       resp.Data.JLCA,
		"ldfa":       resp.Data.LDFA,
		"mpta":       resp.Data.MPTA,
	}).Info("Measurement computed")
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) Overlay(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	resp, err := h.measurementService.Overlay(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "overlay")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MeasurementHandler) Reset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerutil.New(h.log)

	if err := h.measurementService.Reset(c, ctx.Params("id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_session")
	}

	resp, err := h.measurementService.GetSession(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}
