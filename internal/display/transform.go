// Package display maps between canonical image coordinates and the
// possibly flipped or rotated frame the image is viewed in.
package display

import (
	"xray-angles/pkg/geometry"
)

// Transform describes how the canonical image is currently presented.
// It is purely a view concern: stored landmark coordinates always stay in
// the canonical frame.
//
// Composition order is fixed: flips are applied in the canonical frame
// first (horizontal, then vertical), then the 90-degree counter-clockwise
// rotation. The inverse undoes the rotation before undoing the flips.
// Applying the operations in any other order breaks round-trips whenever
// rotation is combined with a flip.
type Transform struct {
	FlipHorizontal bool `json:"flip_horizontal"`
	FlipVertical   bool `json:"flip_vertical"`
	Rotate90       bool `json:"rotate_90"`
}

// IsIdentity returns true if no view transformation is active.
func (t Transform) IsIdentity() bool {
	return !t.FlipHorizontal && !t.FlipVertical && !t.Rotate90
}

// DisplaySize returns the dimensions of the displayed image. Rotation by 90
// degrees swaps width and height; flips do not change dimensions.
func (t Transform) DisplaySize(canonical geometry.Size) geometry.Size {
	if t.Rotate90 {
		return canonical.Swapped()
	}
	return canonical
}

// Apply maps a canonical point to display space. Flips mirror pixel indices
// within the canonical dimensions (x -> w-1-x, y -> h-1-y); the rotation then
// maps (x, y) to (y, w-1-x).
func (t Transform) Apply(p geometry.Point2D, canonical geometry.Size) geometry.Point2D {
	x, y := p.X, p.Y
	if t.FlipHorizontal {
		x = canonical.Width - 1 - x
	}
	if t.FlipVertical {
		y = canonical.Height - 1 - y
	}
	if t.Rotate90 {
		x, y = y, canonical.Width-1-x
	}
	return geometry.Point2D{X: x, Y: y}
}

// Invert maps a display-space point back to the canonical frame, recovering
// exactly the point that Apply would have produced it from.
func (t Transform) Invert(p geometry.Point2D, canonical geometry.Size) geometry.Point2D {
	x, y := p.X, p.Y
	if t.Rotate90 {
		x, y = canonical.Width-1-y, x
	}
	if t.FlipVertical {
		y = canonical.Height - 1 - y
	}
	if t.FlipHorizontal {
		x = canonical.Width - 1 - x
	}
	return geometry.Point2D{X: x, Y: y}
}
