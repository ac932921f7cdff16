// Package landmark defines the anatomical landmarks collected from a
// lower-limb X-ray and the set that stores their canonical coordinates.
package landmark

import (
	"fmt"
	"strings"

	"xray-angles/pkg/geometry"
)

// Name identifies one of the eight anatomical landmarks.
type Name string

// The eight landmarks, in the order the collection wizard walks through them.
const (
	HipCenter             Name = "hip_center"
	FemoralCondylesCenter Name = "femoral_condyles_center"
	MedialCondyle         Name = "medial_condyle"
	LateralCondyle        Name = "lateral_condyle"
	MedialTibialPlateau   Name = "medial_tibial_plateau"
	LateralTibialPlateau  Name = "lateral_tibial_plateau"
	TibiaCenter           Name = "tibia_center"
	AnkleCenter           Name = "ankle_center"
)

// Order lists all landmarks in collection order.
var Order = []Name{
	HipCenter,
	FemoralCondylesCenter,
	MedialCondyle,
	LateralCondyle,
	MedialTibialPlateau,
	LateralTibialPlateau,
	TibiaCenter,
	AnkleCenter,
}

// Count is the number of landmarks in a complete set.
const Count = 8

// Valid returns true if n is one of the eight known landmarks.
func (n Name) Valid() bool {
	for _, name := range Order {
		if n == name {
			return true
		}
	}
	return false
}

// DisplayName returns the landmark name with underscores replaced by spaces,
// suitable for wizard prompts and overlay labels.
func (n Name) DisplayName() string {
	return strings.ReplaceAll(string(n), "_", " ")
}

// Set maps landmarks to their coordinates in canonical image space. A zero
// Set is not usable; construct with NewSet.
type Set struct {
	points map[Name]geometry.Point2D
}

// NewSet creates an empty landmark set.
func NewSet() *Set {
	return &Set{points: make(map[Name]geometry.Point2D, Count)}
}

// Place stores the canonical coordinate for a landmark, replacing any
// previous value.
func (s *Set) Place(n Name, p geometry.Point2D) error {
	if !n.Valid() {
		return fmt.Errorf("unknown landmark %q", n)
	}
	s.points[n] = p
	return nil
}

// Get returns the coordinate for a landmark and whether it has been placed.
func (s *Set) Get(n Name) (geometry.Point2D, bool) {
	p, ok := s.points[n]
	return p, ok
}

// Placed returns the number of landmarks placed so far.
func (s *Set) Placed() int {
	return len(s.points)
}

// Complete returns true once all eight landmarks have coordinates.
func (s *Set) Complete() bool {
	return len(s.points) == Count
}

// Clear removes all placed landmarks.
func (s *Set) Clear() {
	s.points = make(map[Name]geometry.Point2D, Count)
}
