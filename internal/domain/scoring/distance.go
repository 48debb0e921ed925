package scoring

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerKilometer = 1000.0

// DistanceKm returns the great-circle distance between two lng/lat points in kilometres.
func DistanceKm(from, to orb.Point) float64 {
	return geo.DistanceHaversine(from, to) / metersPerKilometer
}
