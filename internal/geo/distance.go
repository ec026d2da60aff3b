package geo

import "math"

// earthRadiusKM is the mean radius of the Earth in kilometers.
const earthRadiusKM = 6371.0

// CalculateDistance returns the great-circle distance in kilometers between
// two points, using the Haversine formula. It is symmetric in its arguments.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// IsWithinRadius reports whether the two points are at most radiusKM apart.
// The interval is closed: a point exactly on the radius is within it.
func IsWithinRadius(lat1, lon1, lat2, lon2, radiusKM float64) bool {
	return CalculateDistance(lat1, lon1, lat2, lon2) <= radiusKM
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
