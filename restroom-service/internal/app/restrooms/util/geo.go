package util

import "math"

// Радиус Земли в метрах для формулы гаверсинуса
const earthRadiusMeters = 6371000.0

// DistanceMeters вычисляет расстояние большого круга между двумя точками
// в метрах по формуле гаверсинуса. Валидность координат гарантирует
// вызывающая сторона.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := toRadians(lat2 - lat1)
	dlon := toRadians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
