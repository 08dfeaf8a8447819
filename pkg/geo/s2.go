package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	if pointAS2 == pointBS2 {
		return pointA
	}
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// return in meter
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}

// PointPolylineDistance. shortest distance in meter from snap to any segment of the (merged) polyline.
func PointPolylineDistance(line []Coordinate, snap Coordinate) float64 {
	switch len(line) {
	case 0:
		return math.Inf(1)
	case 1:
		return CalculateHaversineDistance(snap.Lat, snap.Lon, line[0].Lat, line[0].Lon) * 1000
	}

	best := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		d := PointLinePerpendicularDistance(line[i], line[i+1], snap)
		if d < best {
			best = d
		}
	}
	return best
}

// BoundingBox. min & max corner ([lon, lat]) of the polyline.
func BoundingBox(line []Coordinate) ([2]float64, [2]float64) {
	min := [2]float64{math.Inf(1), math.Inf(1)}
	max := [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, c := range line {
		min[0] = math.Min(min[0], c.Lon)
		min[1] = math.Min(min[1], c.Lat)
		max[0] = math.Max(max[0], c.Lon)
		max[1] = math.Max(max[1], c.Lat)
	}
	return min, max
}
