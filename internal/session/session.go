// Package session holds the per-session measurement state: image dimensions,
// view transform flags, the landmark set being collected, and the wizard
// position. Sessions are fully isolated from one another.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"xray-angles/internal/circlefit"
	"xray-angles/internal/display"
	"xray-angles/internal/landmark"
	"xray-angles/internal/measure"
	"xray-angles/internal/overlay"
	"xray-angles/pkg/geometry"
)

var (
	// ErrOutOfBounds is returned for a coordinate outside the displayed image.
	ErrOutOfBounds = errors.New("coordinate outside image bounds")

	// ErrAllPlaced is returned when a landmark is submitted after the wizard
	// has already collected all eight.
	ErrAllPlaced = errors.New("all landmarks already placed")

	// ErrNotCollectingHip is returned when hip boundary points are submitted
	// outside the hip-center collection step.
	ErrNotCollectingHip = errors.New("not collecting hip boundary points")

	// ErrHipPointsPending is returned when a direct hip-center placement is
	// attempted while collected boundary points are waiting for a fit.
	ErrHipPointsPending = errors.New("hip boundary points pending fit")
)

// EventType identifies session state changes.
type EventType int

const (
	EventViewChanged EventType = iota
	EventLandmarkPlaced
	EventHipPointAdded
	EventHipCenterFitted
	EventCompleted
	EventReset
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the mutable state for one measurement in progress. All methods
// are safe for concurrent use, though each interaction is expected to be a
// single synchronous request.
type Session struct {
	mu sync.RWMutex

	id   string
	size geometry.Size

	view      display.Transform
	landmarks *landmark.Set
	hipPoints []geometry.Point2D
	step      int

	lastActive time.Time

	listeners map[EventType][]EventListener
}

// New creates a session for an image with the given canonical dimensions.
func New(id string, size geometry.Size) *Session {
	return &Session{
		id:         id,
		size:       size,
		landmarks:  landmark.NewSet(),
		lastActive: time.Now(),
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// emit triggers all listeners for the event type. Must not be called with
// the mutex held.
func (s *Session) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Size returns the canonical image dimensions.
func (s *Session) Size() geometry.Size {
	return s.size
}

// View returns the active view transform flags.
func (s *Session) View() display.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView updates the view transform flags. Stored canonical coordinates are
// untouched; only presentation changes.
func (s *Session) SetView(t display.Transform) {
	s.mu.Lock()
	s.view = t
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.emit(EventViewChanged, t)
}

// Current returns the landmark the wizard is collecting, or false once all
// eight are placed.
func (s *Session) Current() (landmark.Name, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (landmark.Name, bool) {
	if s.step >= len(landmark.Order) {
		return "", false
	}
	return landmark.Order[s.step], true
}

// toCanonical validates a display-space point and maps it to the canonical
// frame. The mirrored edge uses pixel indices (w-1-x), so a click at exactly
// the inclusive display edge inverts to -1; the canonical point is checked
// too so stored coordinates are always in-bounds. Caller holds the mutex.
func (s *Session) toCanonical(p geometry.Point2D) (geometry.Point2D, error) {
	if !s.view.DisplaySize(s.size).Contains(p) {
		return geometry.Point2D{}, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, p.X, p.Y)
	}
	canonical := s.view.Invert(p, s.size)
	if !s.size.Contains(canonical) {
		return geometry.Point2D{}, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, p.X, p.Y)
	}
	return canonical, nil
}

// Complete returns true once all landmarks are placed.
func (s *Session) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.landmarks.Complete()
}

// PlaceLandmark records a display-space coordinate for the landmark the
// wizard is currently collecting. The point is mapped back to the canonical
// frame before storage, and the wizard advances to the next landmark.
// Returns the landmark that was placed. Once hip-boundary collection has
// started, direct hip-center placement is rejected until the points are
// fitted or the session is reset.
func (s *Session) PlaceLandmark(p geometry.Point2D) (landmark.Name, error) {
	s.mu.Lock()

	name, ok := s.currentLocked()
	if !ok {
		s.mu.Unlock()
		return "", ErrAllPlaced
	}
	if name == landmark.HipCenter && len(s.hipPoints) > 0 {
		s.mu.Unlock()
		return "", ErrHipPointsPending
	}

	canonical, err := s.toCanonical(p)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if err := s.landmarks.Place(name, canonical); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.step++
	s.lastActive = time.Now()
	done := s.landmarks.Complete()
	s.mu.Unlock()

	s.emit(EventLandmarkPlaced, name)
	if done {
		s.emit(EventCompleted, nil)
	}
	return name, nil
}

// AddHipPoint records one display-space point on the femoral head boundary.
// Only valid while the wizard is collecting the hip center.
func (s *Session) AddHipPoint(p geometry.Point2D) (int, error) {
	s.mu.Lock()

	if name, ok := s.currentLocked(); !ok || name != landmark.HipCenter {
		s.mu.Unlock()
		return 0, ErrNotCollectingHip
	}

	canonical, err := s.toCanonical(p)
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}

	s.hipPoints = append(s.hipPoints, canonical)
	s.lastActive = time.Now()
	count := len(s.hipPoints)
	s.mu.Unlock()

	s.emit(EventHipPointAdded, count)
	return count, nil
}

// HipPointCount returns the number of boundary points collected so far.
func (s *Session) HipPointCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hipPoints)
}

// FitHipCenter estimates the hip center from the collected boundary points,
// stores it as the hip_center landmark, discards the boundary points, and
// advances the wizard. On a degenerate fit the boundary points are kept so
// the user can add more and retry.
func (s *Session) FitHipCenter() (circlefit.Result, error) {
	s.mu.Lock()

	if name, ok := s.currentLocked(); !ok || name != landmark.HipCenter {
		s.mu.Unlock()
		return circlefit.Result{}, ErrNotCollectingHip
	}

	res, err := circlefit.Fit(s.hipPoints)
	if err != nil {
		s.mu.Unlock()
		return circlefit.Result{}, err
	}

	if err := s.landmarks.Place(landmark.HipCenter, res.Center); err != nil {
		s.mu.Unlock()
		return circlefit.Result{}, err
	}
	s.hipPoints = nil
	s.step++
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.emit(EventHipCenterFitted, res.Center)
	return res, nil
}

// Measure computes the four clinical angles. Fails while the landmark set
// is incomplete.
func (s *Session) Measure() (measure.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return measure.Compute(s.landmarks)
}

// Overlay returns the drawing instructions for the current state, in display
// space under the active view transform.
func (s *Session) Overlay() overlay.Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return overlay.Build(s.landmarks, s.view, s.size)
}

// Reset clears all landmarks and boundary points and returns the wizard to
// the first step. View flags survive: they are a presentation preference,
// not measurement data.
func (s *Session) Reset() {
	s.mu.Lock()
	s.landmarks.Clear()
	s.hipPoints = nil
	s.step = 0
	s.lastActive = time.Now()
	s.mu.Unlock()

	s.emit(EventReset, nil)
}

// LastActive returns the time of the most recent mutation.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// LandmarkState describes one landmark in a snapshot.
type LandmarkState struct {
	Name      landmark.Name
	Canonical geometry.Point2D
	Display   geometry.Point2D
	Placed    bool
}

// Snapshot is a consistent read of the session state.
type Snapshot struct {
	ID            string
	Size          geometry.Size
	DisplaySize   geometry.Size
	View          display.Transform
	Landmarks     []LandmarkState
	Current       landmark.Name
	CurrentPrompt string
	HipPoints     int
	Complete      bool
}

// Snapshot returns a consistent copy of the session state, with each placed
// landmark reported in both canonical and display coordinates.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ID:          s.id,
		Size:        s.size,
		DisplaySize: s.view.DisplaySize(s.size),
		View:        s.view,
		HipPoints:   len(s.hipPoints),
		Complete:    s.landmarks.Complete(),
	}
	if name, ok := s.currentLocked(); ok {
		snap.Current = name
		snap.CurrentPrompt = name.DisplayName()
	}
	for _, name := range landmark.Order {
		st := LandmarkState{Name: name}
		if p, ok := s.landmarks.Get(name); ok {
			st.Placed = true
			st.Canonical = p
			st.Display = s.view.Apply(p, s.size)
		}
		snap.Landmarks = append(snap.Landmarks, st)
	}
	return snap
}
