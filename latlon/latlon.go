package latlon

import "math"

const π = math.Pi

// R is the mean Earth radius used by the spherical model.
const R = 6371e3

type Calculator interface {
	DistanceTo(from, to LatLon) float64
	BearingTo(from, to LatLon) float64
	Destination(from LatLon, bearing float64, distance float64) LatLon
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRadians(a float64) float64 {
	return a * π / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / π
}

func wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	d1 := d + 360.0
	d2 := d1 - float64(int(d1/360.0)*360)
	return d2
}
