package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name           string
		latOne, lonOne float64
		latTwo, lonTwo float64
		want           float64
		tolerance      float64
	}{
		{
			name:      "same point",
			latOne:    45.46,
			lonOne:    9.19,
			latTwo:    45.46,
			lonTwo:    9.19,
			want:      0,
			tolerance: 1e-9,
		},
		{
			name:      "one degree of latitude",
			latOne:    45.0,
			lonOne:    9.0,
			latTwo:    46.0,
			lonTwo:    9.0,
			want:      111.195,
			tolerance: 0.01,
		},
		{
			name:      "milan duomo to milano centrale",
			latOne:    45.4642,
			lonOne:    9.1900,
			latTwo:    45.4860,
			lonTwo:    9.2040,
			want:      2.67,
			tolerance: 0.05,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(45.46, 9.19, 90, 1.0)
	dist := CalculateHaversineDistance(45.46, 9.19, lat, lon)
	assert.InDelta(t, 1.0, dist, 1e-6)
	assert.Greater(t, lon, 9.19)
}

func TestSphericalCentroidSmallGrid(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(45.0, 9.0),
		NewCoordinate(45.0, 9.002),
		NewCoordinate(45.002, 9.0),
		NewCoordinate(45.002, 9.002),
	}
	c := SphericalCentroid(coords)
	assert.InDelta(t, 45.001, c.Lat, 1e-5)
	assert.InDelta(t, 9.001, c.Lon, 1e-5)

	single := SphericalCentroid(coords[:1])
	assert.Equal(t, coords[0], single)

	assert.Equal(t, Coordinate{}, SphericalCentroid(nil))
}
