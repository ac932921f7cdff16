package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xray-angles/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 geometry.Point2D
		want           float64
	}{
		{
			name: "right angle",
			a1:   pt(0, 0), a2: pt(0, 1),
			b1: pt(0, 0), b2: pt(1, 0),
			want: 90,
		},
		{
			name: "identical directions",
			a1:   pt(0, 0), a2: pt(3, 4),
			b1: pt(10, 10), b2: pt(13, 14),
			want: 0,
		},
		{
			name: "opposite directions",
			a1:   pt(0, 0), a2: pt(1, 0),
			b1: pt(0, 0), b2: pt(-1, 0),
			want: 180,
		},
		{
			name: "45 degrees",
			a1:   pt(0, 0), a2: pt(1, 0),
			b1: pt(0, 0), b2: pt(1, 1),
			want: 45,
		},
		{
			name: "antiparallel diagonals",
			a1:   pt(0, 0), a2: pt(1, -1), // -45
			b1: pt(0, 0), b2: pt(-1, 1), // 135
			want: 180,
		},
		{
			name: "fold across the branch cut",
			a1:   pt(0, 0), a2: pt(-1, -1), // -135
			b1: pt(0, 0), b2: pt(-1, 1), // 135, raw diff 270 -> 90
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AngleBetween(tt.a1, tt.a2, tt.b1, tt.b2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAngleBetweenZeroLengthVector(t *testing.T) {
	_, err := AngleBetween(pt(5, 5), pt(5, 5), pt(0, 0), pt(1, 0))
	require.ErrorIs(t, err, ErrZeroLengthVector)

	_, err = AngleBetween(pt(0, 0), pt(1, 0), pt(5, 5), pt(5, 5))
	require.ErrorIs(t, err, ErrZeroLengthVector)
}

// TestAngleBetweenFoldingLaw checks that for any pair of directions the
// result equals min(|d| mod 360, 360 - |d| mod 360) and lies in [0,180].
func TestAngleBetweenFoldingLaw(t *testing.T) {
	for d1 := 0.0; d1 < 360; d1 += 15 {
		for d2 := 0.0; d2 < 360; d2 += 15 {
			r1 := d1 * math.Pi / 180
			r2 := d2 * math.Pi / 180
			a2 := pt(math.Cos(r1), math.Sin(r1))
			b2 := pt(math.Cos(r2), math.Sin(r2))

			got, err := AngleBetween(pt(0, 0), a2, pt(0, 0), b2)
			require.NoError(t, err)

			raw := math.Mod(math.Abs(d2-d1), 360)
			want := math.Min(raw, 360-raw)

			assert.InDelta(t, want, got, 1e-9, "d1=%v d2=%v", d1, d2)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 180.0)
		}
	}
}
