package measurementService

import (
	"context"

	"xray-angles/internal/api/measurement"
	"xray-angles/internal/circlefit"
	"xray-angles/internal/display"
	"xray-angles/internal/session"
	"xray-angles/pkg/geometry"
	"xray-angles/pkg/log"
)

func (s *measurementService) CreateSession(ctx context.Context, req measurement.CreateSessionRequest) (*measurement.CreateSessionResponse, error) {
	sess := s.sessions.Create(geometry.NewSize(req.Width, req.Height))
	s.subscribeLogging(sess)

	s.log.WithFields(log.Fields{
		"session_id": sess.ID(),
		"width":      req.Width,
		"height":     req.Height,
	}).Info("Measurement session created")

	name, _ := sess.Current()
	return &measurement.CreateSessionResponse{
		ID:              sess.ID(),
		CurrentLandmark: string(name),
		CurrentPrompt:   name.DisplayName(),
	}, nil
}

// subscribeLogging attaches wizard-transition logging to the session's
// change events.
func (s *measurementService) subscribeLogging(sess *session.Session) {
	id := sess.ID()

	sess.On(session.EventLandmarkPlaced, func(data interface{}) {
		s.log.WithFields(log.Fields{
			"session_id": id,
			"landmark":   data,
		}).Debug("Landmark placed")
	})
	sess.On(session.EventHipCenterFitted, func(data interface{}) {
		s.log.WithFields(log.Fields{
			"session_id": id,
			"center":     data,
		}).Debug("Hip center fitted")
	})
	sess.On(session.EventCompleted, func(interface{}) {
		s.log.WithFields(log.Fields{
			"session_id": id,
		}).Info("All landmarks placed, measurement available")
	})
	sess.On(session.EventReset, func(interface{}) {
		s.log.WithFields(log.Fields{
			"session_id": id,
		}).Info("Session reset")
	})
}

func (s *measurementService) GetSession(ctx context.Context, id string) (*measurement.SnapshotResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return snapshotResponse(sess), nil
}

func (s *measurementService) SetView(ctx context.Context, id string, req measurement.ViewRequest) (*measurement.SnapshotResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.SetView(display.Transform{
		FlipHorizontal: req.FlipHorizontal,
		FlipVertical:   req.FlipVertical,
		Rotate90:       req.Rotate90,
	})

	return snapshotResponse(sess), nil
}

func (s *measurementService) PlaceLandmark(ctx context.Context, id string, req measurement.PointRequest) (*measurement.LandmarkResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	placed, err := sess.PlaceLandmark(req.Point())
	if err != nil {
		return nil, err
	}

	resp := &measurement.LandmarkResponse{
		Placed:   string(placed),
		Complete: sess.Complete(),
	}
	if next, ok := sess.Current(); ok {
		resp.Next = string(next)
	}
	return resp, nil
}

func (s *measurementService) AddHipPoint(ctx context.Context, id string, req measurement.PointRequest) (*measurement.HipPointResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	count, err := sess.AddHipPoint(req.Point())
	if err != nil {
		return nil, err
	}

	return &measurement.HipPointResponse{
		Count:  count,
		CanFit: count >= circlefit.MinPoints,
	}, nil
}

func (s *measurementService) FitHipCenter(ctx context.Context, id string) (*measurement.HipFitResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	res, err := sess.FitHipCenter()
	if err != nil {
		return nil, err
	}

	resp := &measurement.HipFitResponse{
		Center: res.Center,
		Radius: res.Radius,
	}
	if next, ok := sess.Current(); ok {
		resp.Next = string(next)
	}
	return resp, nil
}

func (s *measurementService) Measure(ctx context.Context, id string) (*measurement.MeasurementResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	result, err := sess.Measure()
	if err != nil {
		return nil, err
	}
	return &measurement.MeasurementResponse{Data: result}, nil
}

func (s *measurementService) Overlay(ctx context.Context, id string) (*measurement.OverlayResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return &measurement.OverlayResponse{Data: sess.Overlay()}, nil
}

func (s *measurementService) Reset(ctx context.Context, id string) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}

func (s *measurementService) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.sessions.Get(id); err != nil {
		return err
	}
	s.sessions.Delete(id)

	s.log.WithFields(log.Fields{
		"session_id": id,
	}).Info("Measurement session deleted")
	return nil
}

func snapshotResponse(sess *session.Session) *measurement.SnapshotResponse {
	snap := sess.Snapshot()

	resp := &measurement.SnapshotResponse{
		ID:              snap.ID,
		Width:           snap.Size.Width,
		Height:          snap.Size.Height,
		DisplayWidth:    snap.DisplaySize.Width,
		DisplayHeight:   snap.DisplaySize.Height,
		View:            snap.View,
		CurrentLandmark: string(snap.Current),
		CurrentPrompt:   snap.CurrentPrompt,
		HipPoints:       snap.HipPoints,
		Complete:        snap.Complete,
	}
	for _, st := range snap.Landmarks {
		dto := measurement.LandmarkDTO{
			Name:   string(st.Name),
			Placed: st.Placed,
		}
		if st.Placed {
			canonical := st.Canonical
			displayPt := st.Display
			dto.Canonical = &canonical
			dto.Display = &displayPt
		}
		resp.Landmarks = append(resp.Landmarks, dto)
	}
	return resp
}
