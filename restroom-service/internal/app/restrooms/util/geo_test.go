package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ===================== DistanceMeters Tests =====================

func TestDistanceMeters_SamePoint(t *testing.T) {
	d := DistanceMeters(40.7536, -73.9832, 40.7536, -73.9832)

	assert.Equal(t, 0.0, d)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	d1 := DistanceMeters(40.7536, -73.9832, 40.7484, -73.9857)
	d2 := DistanceMeters(40.7484, -73.9857, 40.7536, -73.9832)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceMeters_OneDegreeLongitudeAtEquator(t *testing.T) {
	// Один градус долготы на экваторе - около 111.19 км
	d := DistanceMeters(0, 0, 0, 1)

	assert.InDelta(t, 111194.9, d, 1.0)
}

func TestDistanceMeters_MidtownManhattan(t *testing.T) {
	// Bryant Park -> Herald Square, примерно 600 метров
	d := DistanceMeters(40.7536, -73.9832, 40.7484, -73.9857)

	assert.InDelta(t, 616, d, 10)
}

func TestDistanceMeters_MonotonicInLongitude(t *testing.T) {
	near := DistanceMeters(40.0, -73.0, 40.0, -73.01)
	far := DistanceMeters(40.0, -73.0, 40.0, -73.1)

	assert.Less(t, near, far)
}
