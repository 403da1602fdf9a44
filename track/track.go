package track

import "github.com/flightrack/track-server/latlon"

// Sample is one row of the input data: groundspeed in knots and heading in
// degrees clockwise from true north. Samples are ordered, the order is the
// temporal sequence.
type Sample struct {
	Groundspeed float64
	Heading     float64
}

// TrackPoint is one predicted position. Step is 1-based, step 1 being the
// initial position.
type TrackPoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Step int     `json:"step"`
}

func (p TrackPoint) LatLon() latlon.LatLon {
	return latlon.LatLon{Lat: p.Lat, Lon: p.Lon}
}

// Trajectory is the predicted track, in order. Its length is always the
// number of samples plus one.
type Trajectory []TrackPoint

func (t Trajectory) Final() TrackPoint {
	return t[len(t)-1]
}
