// Package geo 提供经纬度上的距离计算，所有"附近/范围内"判断都基于它。
package geo

import "math"

// EarthRadiusM 地球半径（米）。
const EarthRadiusM = 6371000.0

// DistanceMeters 用 haversine 公式计算两点大圆距离，输入为十进制度。
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// Within 判断距离是否在阈值内（含边界）。
func Within(lat1, lng1, lat2, lng2, limitM float64) bool {
	return DistanceMeters(lat1, lng1, lat2, lng2) <= limitM
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
