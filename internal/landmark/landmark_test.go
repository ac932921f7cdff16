package landmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xray-angles/pkg/geometry"
)

func TestOrder(t *testing.T) {
	require.Len(t, Order, Count)
	assert.Equal(t, HipCenter, Order[0], "hip center is collected first")
	assert.Equal(t, AnkleCenter, Order[Count-1])

	for _, name := range Order {
		assert.True(t, name.Valid())
	}
	assert.False(t, Name("patella").Valid())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "femoral condyles center", FemoralCondylesCenter.DisplayName())
	assert.Equal(t, "hip center", HipCenter.DisplayName())
}

func TestSetLifecycle(t *testing.T) {
	set := NewSet()
	assert.Equal(t, 0, set.Placed())
	assert.False(t, set.Complete())

	_, ok := set.Get(HipCenter)
	assert.False(t, ok)

	require.NoError(t, set.Place(HipCenter, geometry.NewPoint2D(100, 50)))
	p, ok := set.Get(HipCenter)
	require.True(t, ok)
	assert.Equal(t, geometry.NewPoint2D(100, 50), p)

	// Replacing an existing landmark keeps the set size.
	require.NoError(t, set.Place(HipCenter, geometry.NewPoint2D(101, 51)))
	assert.Equal(t, 1, set.Placed())

	for i, name := range Order {
		require.NoError(t, set.Place(name, geometry.NewPoint2D(float64(i), float64(i))))
	}
	assert.True(t, set.Complete())

	set.Clear()
	assert.Equal(t, 0, set.Placed())
	assert.False(t, set.Complete())
}

func TestPlaceUnknownLandmark(t *testing.T) {
	set := NewSet()
	err := set.Place(Name("patella"), geometry.NewPoint2D(1, 2))
	require.Error(t, err)
}
