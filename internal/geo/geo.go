package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371008.8

// PointType is the GeoJSON type tag stored alongside coordinates.
const PointType = "Point"

// Location is the public coordinate shape.
type Location struct {
	Longitude float64 `validate:"gte=-180,lte=180"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
}

// Point is the stored GeoJSON representation used by 2dsphere indexes.
// Coordinates are ordered [longitude, latitude].
type Point struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// ToPoint converts a public location to its stored representation.
func ToPoint(l Location) Point {
	return Point{
		Type:        PointType,
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// ToLocation converts a stored point back to the public shape.
func (p Point) ToLocation() (Location, error) {
	if p.Type != PointType || len(p.Coordinates) != 2 {
		return Location{}, fmt.Errorf("malformed geo point: type=%q coordinates=%v", p.Type, p.Coordinates)
	}
	return Location{Longitude: p.Coordinates[0], Latitude: p.Coordinates[1]}, nil
}

// Distance returns the great-circle distance between a and b in meters
// (haversine).
func Distance(a, b Location) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
