package config

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xray-angles/internal/api/measurement"
	"xray-angles/internal/session"
	"xray-angles/pkg/geometry"
	"xray-angles/pkg/log"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	logger := log.NewLogger()
	logger.SetOutput(io.Discard)

	manager := session.NewManager(time.Hour)
	t.Cleanup(manager.Close)

	srv, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithSessionManager(manager),
	)
	require.NoError(t, err)

	srv.RegisterHandler()
	srv.Mount()
	return srv.Engine()
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(raw, out))
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"width":  800,
		"height": 2000,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created measurement.CreateSessionResponse
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "hip_center", created.CurrentLandmark)
	require.Equal(t, "hip center", created.CurrentPrompt)
	return created.ID
}

func TestHealthCheck(t *testing.T) {
	app := newTestServer(t)

	resp := doRequest(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// TestSessionWalkthrough drives one measurement end to end: hip circle fit,
// seven direct placements, the four angles, the overlay, reset, delete.
func TestSessionWalkthrough(t *testing.T) {
	app := newTestServer(t)
	id := createSession(t, app)
	base := "/api/v1/sessions/" + id

	for _, p := range geometry.GenerateCirclePoints(100, 50, 30, 5) {
		resp := doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": p.X, "y": p.Y})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp := doRequest(t, app, http.MethodPost, base+"/hip-fit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var fit measurement.HipFitResponse
	decodeBody(t, resp, &fit)
	assert.InDelta(t, 100, fit.Center.X, 1e-6)
	assert.InDelta(t, 50, fit.Center.Y, 1e-6)
	assert.InDelta(t, 30, fit.Radius, 1e-6)
	assert.Equal(t, "femoral_condyles_center", fit.Next)

	points := []geometry.Point2D{
		{X: 100, Y: 200},
		{X: 90, Y: 210},
		{X: 110, Y: 210},
		{X: 90, Y: 220},
		{X: 110, Y: 220},
		{X: 100, Y: 300},
		{X: 100, Y: 350},
	}
	var placed measurement.LandmarkResponse
	for _, p := range points {
		resp = doRequest(t, app, http.MethodPost, base+"/landmarks", fiber.Map{"x": p.X, "y": p.Y})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		placed = measurement.LandmarkResponse{}
		decodeBody(t, resp, &placed)
	}
	assert.True(t, placed.Complete)
	assert.Equal(t, "ankle_center", placed.Placed)
	assert.Empty(t, placed.Next)

	resp = doRequest(t, app, http.MethodGet, base+"/measurement", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var meas measurement.MeasurementResponse
	decodeBody(t, resp, &meas)
	assert.InDelta(t, 0, meas.Data.HKA, 1e-6)
	assert.InDelta(t, 0, meas.Data.JLCA, 1e-6)
	assert.InDelta(t, 90, meas.Data.LDFA, 1e-6)
	assert.InDelta(t, 90, meas.Data.MPTA, 1e-6)

	resp = doRequest(t, app, http.MethodGet, base+"/overlay", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ov measurement.OverlayResponse
	decodeBody(t, resp, &ov)
	assert.Len(t, ov.Data.Markers, 8)
	assert.Len(t, ov.Data.Segments, 4)

	resp = doRequest(t, app, http.MethodPost, base+"/reset", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var snap measurement.SnapshotResponse
	decodeBody(t, resp, &snap)
	assert.False(t, snap.Complete)
	assert.Equal(t, 0, snap.HipPoints)
	assert.Equal(t, "hip_center", snap.CurrentLandmark)

	resp = doRequest(t, app, http.MethodDelete, base, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, base, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestViewTransformOverAPI places a landmark while a flipped view is active
// and checks the snapshot reports it in the canonical frame.
func TestViewTransformOverAPI(t *testing.T) {
	app := newTestServer(t)
	id := createSession(t, app)
	base := "/api/v1/sessions/" + id

	resp := doRequest(t, app, http.MethodPut, base+"/view", fiber.Map{"flip_horizontal": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var snap measurement.SnapshotResponse
	decodeBody(t, resp, &snap)
	require.True(t, snap.View.FlipHorizontal)

	// Canonical (100, 50) shows up at x = 799 - 100 under the flip.
	resp = doRequest(t, app, http.MethodPost, base+"/landmarks", fiber.Map{"x": 699, "y": 50})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, base, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &snap)

	hip := snap.Landmarks[0]
	require.True(t, hip.Placed)
	require.NotNil(t, hip.Canonical)
	assert.InDelta(t, 100, hip.Canonical.X, 1e-9)
	assert.InDelta(t, 50, hip.Canonical.Y, 1e-9)
	require.NotNil(t, hip.Display)
	assert.InDelta(t, 699, hip.Display.X, 1e-9)
}

func TestErrorResponses(t *testing.T) {
	app := newTestServer(t)

	t.Run("unknown session", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/v1/sessions/no-such-id", nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "SESSION_NOT_FOUND", body.Code)
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{"width": 0, "height": 2000})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	})

	t.Run("missing coordinate", func(t *testing.T) {
		id := createSession(t, app)
		resp := doRequest(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/landmarks", fiber.Map{"x": 10})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	})

	t.Run("out of bounds", func(t *testing.T) {
		id := createSession(t, app)
		resp := doRequest(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/landmarks", fiber.Map{"x": 801, "y": 10})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "COORDINATE_OUT_OF_BOUNDS", body.Code)
	})

	t.Run("too few hip points", func(t *testing.T) {
		id := createSession(t, app)
		base := "/api/v1/sessions/" + id
		doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": 100, "y": 50})
		doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": 120, "y": 50})

		resp := doRequest(t, app, http.MethodPost, base+"/hip-fit", nil)
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "TOO_FEW_HIP_POINTS", body.Code)
	})

	t.Run("collinear hip points", func(t *testing.T) {
		id := createSession(t, app)
		base := "/api/v1/sessions/" + id
		for _, x := range []float64{100, 120, 140} {
			doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": x, "y": 50})
		}

		resp := doRequest(t, app, http.MethodPost, base+"/hip-fit", nil)
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "COLLINEAR_HIP_POINTS", body.Code)
	})

	t.Run("measurement before completion", func(t *testing.T) {
		id := createSession(t, app)
		resp := doRequest(t, app, http.MethodGet, "/api/v1/sessions/"+id+"/measurement", nil)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "LANDMARKS_INCOMPLETE", body.Code)
	})

	t.Run("landmark during hip collection", func(t *testing.T) {
		id := createSession(t, app)
		base := "/api/v1/sessions/" + id
		doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": 100, "y": 80})

		resp := doRequest(t, app, http.MethodPost, base+"/landmarks", fiber.Map{"x": 100, "y": 50})
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "HIP_POINTS_PENDING", body.Code)
	})

	t.Run("hip points after hip placed", func(t *testing.T) {
		id := createSession(t, app)
		base := "/api/v1/sessions/" + id
		doRequest(t, app, http.MethodPost, base+"/landmarks", fiber.Map{"x": 100, "y": 50})

		resp := doRequest(t, app, http.MethodPost, base+"/hip-points", fiber.Map{"x": 100, "y": 80})
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "NOT_COLLECTING_HIP", body.Code)
	})
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestServer(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"width":  800,
		"height": 2000,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
