package measurementService

import (
	"context"

	"github.com/sirupsen/logrus"

	"xray-angles/internal/api/measurement"
	"xray-angles/internal/session"
)

// IMeasurementService drives the landmark-collection wizard and exposes the
// derived measurement and overlay for each session.
type IMeasurementService interface {
	CreateSession(ctx context.Context, req measurement.CreateSessionRequest) (*measurement.CreateSessionResponse, error)
	GetSession(ctx context.Context, id string) (*measurement.SnapshotResponse, error)
	SetView(ctx context.Context, id string, req measurement.ViewRequest) (*measurement.SnapshotResponse, error)
	PlaceLandmark(ctx context.Context, id string, req measurement.PointRequest) (*measurement.LandmarkResponse, error)
	AddHipPoint(ctx context.Context, id string, req measurement.PointRequest) (*measurement.HipPointResponse, error)
	FitHipCenter(ctx context.Context, id string) (*measurement.HipFitResponse, error)
	Measure(ctx context.Context, id string) (*measurement.MeasurementResponse, error)
	Overlay(ctx context.Context, id string) (*measurement.OverlayResponse, error)
	Reset(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
}

type measurementService struct {
	log      *logrus.Logger
	sessions *session.Manager
}

// New creates the measurement service on top of a session manager.
func New(log *logrus.Logger, sessions *session.Manager) IMeasurementService {
	return &measurementService{
		log:      log,
		sessions: sessions,
	}
}
