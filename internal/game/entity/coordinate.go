package entity

import "ParallelRealms/internal/shared/geo"

// RealmRealWorld 是目前唯一的位面。
const RealmRealWorld = "real-world"

// Coordinate: X 纬度，Y 经度。
type Coordinate struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Realm string  `json:"realm"`
}

func At(lat, lng float64) Coordinate {
	return Coordinate{X: lat, Y: lng, Realm: RealmRealWorld}
}

func (c Coordinate) DistanceTo(o Coordinate) float64 {
	return geo.DistanceMeters(c.X, c.Y, o.X, o.Y)
}

// Within 含边界。
func (c Coordinate) Within(o Coordinate, meters float64) bool {
	return c.DistanceTo(o) <= meters
}
