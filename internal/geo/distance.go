package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// Distance returns the great-circle distance between two coordinates in
// meters, computed with the haversine formula. It is a total function:
// identical or antipodal inputs produce valid degenerate distances.
func Distance(a, b Coordinate) float64 {
	phi1 := radians(a.Latitude)
	phi2 := radians(b.Latitude)
	deltaPhi := radians(b.Latitude - a.Latitude)
	deltaLambda := radians(b.Longitude - a.Longitude)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
