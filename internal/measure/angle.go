// Package measure computes the clinical angle measurements from a completed
// landmark set.
package measure

import (
	"errors"
	"math"

	"xray-angles/pkg/geometry"
)

// ErrZeroLengthVector is returned when a line segment has coincident
// endpoints, leaving its direction undefined.
var ErrZeroLengthVector = errors.New("angle between lines: zero-length direction vector")

// AngleBetween returns the angle in degrees between the line through a1,a2
// and the line through b1,b2, folded to [0,180]. The fold replaces any raw
// difference above 180 with 360 minus that difference, so the result is the
// smaller of the two angles the lines form.
func AngleBetween(a1, a2, b1, b2 geometry.Point2D) (float64, error) {
	v1 := a2.Sub(a1)
	v2 := b2.Sub(b1)
	if v1.IsZero() || v2.IsZero() {
		return 0, ErrZeroLengthVector
	}

	rad := math.Atan2(v2.Y, v2.X) - math.Atan2(v1.Y, v1.X)
	deg := math.Abs(rad * 180.0 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg, nil
}
