package display

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xray-angles/pkg/geometry"
)

var testSize = geometry.NewSize(640, 480)

func allTransforms() []Transform {
	var transforms []Transform
	for _, fh := range []bool{false, true} {
		for _, fv := range []bool{false, true} {
			for _, r := range []bool{false, true} {
				transforms = append(transforms, Transform{
					FlipHorizontal: fh,
					FlipVertical:   fv,
					Rotate90:       r,
				})
			}
		}
	}
	return transforms
}

func TestApplyFixedPoints(t *testing.T) {
	p := geometry.NewPoint2D(10, 20)

	tests := []struct {
		name      string
		transform Transform
		want      geometry.Point2D
	}{
		{
			name:      "identity",
			transform: Transform{},
			want:      geometry.NewPoint2D(10, 20),
		},
		{
			name:      "flip horizontal",
			transform: Transform{FlipHorizontal: true},
			want:      geometry.NewPoint2D(629, 20),
		},
		{
			name:      "flip vertical",
			transform: Transform{FlipVertical: true},
			want:      geometry.NewPoint2D(10, 459),
		},
		{
			name:      "rotate 90",
			transform: Transform{Rotate90: true},
			want:      geometry.NewPoint2D(20, 629),
		},
		{
			name:      "flip horizontal then rotate",
			transform: Transform{FlipHorizontal: true, Rotate90: true},
			want:      geometry.NewPoint2D(20, 10),
		},
		{
			name:      "all three",
			transform: Transform{FlipHorizontal: true, FlipVertical: true, Rotate90: true},
			want:      geometry.NewPoint2D(459, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transform.Apply(p, testSize))
		})
	}
}

// TestRoundTrip verifies that Invert recovers the exact canonical point for
// every combination of the three flags.
func TestRoundTrip(t *testing.T) {
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 639, Y: 479},
		{X: 10, Y: 20},
		{X: 320, Y: 240},
		{X: 617, Y: 3},
	}

	for _, tr := range allTransforms() {
		tr := tr
		t.Run(fmt.Sprintf("fh=%v fv=%v r90=%v", tr.FlipHorizontal, tr.FlipVertical, tr.Rotate90), func(t *testing.T) {
			for _, p := range points {
				displayed := tr.Apply(p, testSize)
				back := tr.Invert(displayed, testSize)
				require.Equal(t, p, back)

				// The displayed point must land inside the display bounds.
				assert.True(t, tr.DisplaySize(testSize).Contains(displayed), "point %v -> %v", p, displayed)
			}
		})
	}
}

// TestInvertOfDisplayClick feeds display-space corners through Invert and
// checks they map back to the expected canonical corners.
func TestInvertOfDisplayClick(t *testing.T) {
	tr := Transform{FlipHorizontal: true, Rotate90: true}

	// Display origin under flip-then-rotate: canonical (w-1, 0) flips to
	// (0, 0), rotation sends (0, 0) to (0, w-1); so display (0, w-1) is the
	// canonical right-top corner.
	got := tr.Invert(geometry.NewPoint2D(0, 639), testSize)
	assert.Equal(t, geometry.NewPoint2D(639, 0), got)
}

func TestDisplaySize(t *testing.T) {
	assert.Equal(t, testSize, Transform{FlipHorizontal: true}.DisplaySize(testSize))
	assert.Equal(t, geometry.NewSize(480, 640), Transform{Rotate90: true}.DisplaySize(testSize))
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, Transform{}.IsIdentity())
	assert.False(t, Transform{Rotate90: true}.IsIdentity())
}
