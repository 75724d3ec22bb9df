package geo

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// SphericalCentroid. centroid of points on the unit sphere: sum of unit vectors, normalized back to lat/lon.
// falls back to the first point if the vectors cancel out (antipodal input).
func SphericalCentroid(coords []Coordinate) Coordinate {
	if len(coords) == 0 {
		return Coordinate{}
	}
	if len(coords) == 1 {
		return coords[0]
	}

	sum := r3.Vector{}
	for _, c := range coords {
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
		sum = sum.Add(p.Vector)
	}
	if sum.Norm() == 0 {
		return coords[0]
	}

	centroid := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return NewCoordinate(centroid.Lat.Degrees(), centroid.Lng.Degrees())
}
