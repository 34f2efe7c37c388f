package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Run("known distance Mumbai to Delhi", func(t *testing.T) {
		d := Haversine(19.0760, 72.8777, 28.7041, 77.1025)
		assert.InDelta(t, 1153.3, d, 1.0)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		d := Haversine(0, 0, 0, 1)
		assert.InDelta(t, 111.195, d, 0.01)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := Haversine(23.241, 69.669, 22.470, 70.057)
		ba := Haversine(22.470, 70.057, 23.241, 69.669)
		assert.Equal(t, ab, ba)
	})

	t.Run("zero at identity", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(23.241, 69.669, 23.241, 69.669))
	})

	t.Run("short hop is positive", func(t *testing.T) {
		d := Haversine(23.241, 69.669, 23.242, 69.669)
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 1.0)
	})
}
