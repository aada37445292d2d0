package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters between two
// lat/lng pairs in degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert coordinates from degrees to S2 points
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	// Calculate angle between points
	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	// Convert angle to distance on Earth's surface
	return angle.Radians() * earthRadiusMeters
}

// Distance is HaversineDistance over Coordinate values.
func Distance(a, b model.Coordinate) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// MoveToward returns the coordinate reached by traveling distanceMeters from
// start along the great circle toward end. If the requested distance exceeds
// the separation, end is returned.
func MoveToward(start, end model.Coordinate, distanceMeters float64) model.Coordinate {
	startPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(start.Lat, start.Lng))
	endPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(end.Lat, end.Lng))

	totalDistanceAngle := s1.Angle(s2.ChordAngleBetweenPoints(startPoint, endPoint).Angle())
	totalDistanceMeters := totalDistanceAngle.Radians() * earthRadiusMeters

	if distanceMeters >= totalDistanceMeters {
		return end
	}

	fraction := distanceMeters / totalDistanceMeters

	// Interpolate on the great circle path
	newPoint := s2.Interpolate(fraction, startPoint, endPoint)
	newLatLng := s2.LatLngFromPoint(newPoint)

	return model.Coordinate{Lat: newLatLng.Lat.Degrees(), Lng: newLatLng.Lng.Degrees()}
}
