package measurement

import (
	"xray-angles/internal/display"
	"xray-angles/internal/measure"
	"xray-angles/internal/overlay"
	"xray-angles/pkg/geometry"
)

// CreateSessionRequest carries the canonical dimensions of the decoded
// X-ray image. Decoding itself is the image-source collaborator's job.
type CreateSessionRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

// CreateSessionResponse returns the new session and the first wizard step.
type CreateSessionResponse struct {
	ID              string `json:"id"`
	CurrentLandmark string `json:"current_landmark"`
	CurrentPrompt   string `json:"current_prompt"`
}

// ViewRequest sets the view transform flags.
type ViewRequest struct {
	FlipHorizontal bool `json:"flip_horizontal"`
	FlipVertical   bool `json:"flip_vertical"`
	Rotate90       bool `json:"rotate_90"`
}

// PointRequest carries one display-space coordinate. Pointers distinguish a
// missing field from a legitimate zero coordinate.
type PointRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// Point converts the request to a geometry point.
func (r PointRequest) Point() geometry.Point2D {
	return geometry.Point2D{X: *r.X, Y: *r.Y}
}

// LandmarkResponse reports a placed landmark and the next wizard step.
type LandmarkResponse struct {
	Placed   string `json:"placed"`
	Next     string `json:"next,omitempty"`
	Complete bool   `json:"complete"`
}

// HipPointResponse reports the boundary point count after an addition.
type HipPointResponse struct {
	Count  int  `json:"count"`
	CanFit bool `json:"can_fit"`
}

// HipFitResponse reports the fitted circle and the next wizard step.
type HipFitResponse struct {
	Center geometry.Point2D `json:"center"`
	Radius float64          `json:"radius"`
	Next   string           `json:"next,omitempty"`
}

// LandmarkDTO describes one landmark in a session snapshot.
type LandmarkDTO struct {
	Name      string            `json:"name"`
	Placed    bool              `json:"placed"`
	Canonical *geometry.Point2D `json:"canonical,omitempty"`
	Display   *geometry.Point2D `json:"display,omitempty"`
}

// SnapshotResponse is the full session state.
type SnapshotResponse struct {
	ID              string            `json:"id"`
	Width           float64           `json:"width"`
	Height          float64           `json:"height"`
	DisplayWidth    float64           `json:"display_width"`
	DisplayHeight   float64           `json:"display_height"`
	View            display.Transform `json:"view"`
	Landmarks       []LandmarkDTO     `json:"landmarks"`
	CurrentLandmark string            `json:"current_landmark,omitempty"`
	CurrentPrompt   string            `json:"current_prompt,omitempty"`
	HipPoints       int               `json:"hip_points"`
	Complete        bool              `json:"complete"`
}

// MeasurementResponse wraps the four clinical angles.
type MeasurementResponse struct {
	Data measure.Result `json:"data"`
}

// OverlayResponse wraps the drawing instructions for the display surface.
type OverlayResponse struct {
	Data overlay.Overlay `json:"data"`
}
