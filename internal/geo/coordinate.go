// Package geo provides geographic coordinates and great-circle distance
// computation for the proximity engine.
package geo

// Coordinate represents a geographic point in floating-point degrees.
// Latitude is expected in [-90, 90] and longitude in [-180, 180], but
// out-of-range values are tolerated: every coordinate pair yields a
// distance, never an error.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinate creates a coordinate from latitude and longitude degrees.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Latitude: lat, Longitude: lon}
}

// IsZero reports whether the coordinate is the zero value (0, 0).
// The service uses the zero value to mean "not set" on optional locations.
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Equals checks if two coordinates are identical.
func (c Coordinate) Equals(other Coordinate) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}
