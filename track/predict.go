package track

import "github.com/flightrack/track-server/latlon"

// knotsToMps is kept truncated for compatibility with previously produced
// tracks. Do not replace it with the exact factor.
const knotsToMps = 0.514444

// Predictor dead-reckons a trajectory from a reference position and a
// sequence of groundspeed/heading samples. The same geodesic solution is
// used for every step of a run.
type Predictor struct {
	Geo latlon.Calculator
}

func NewPredictor() Predictor {
	return Predictor{Geo: latlon.LatLonVincenty{}}
}

// Predict advances the position once per sample: the distance covered at the
// sample's groundspeed over interval seconds is projected from the current
// position along the sample's heading. Headings are taken as given, without
// normalization. The returned trajectory starts with the initial position at
// step 1 and holds len(samples)+1 points.
func (p Predictor) Predict(start latlon.LatLon, samples []Sample, interval float64) Trajectory {
	trajectory := make(Trajectory, 0, len(samples)+1)
	trajectory = append(trajectory, TrackPoint{Lat: start.Lat, Lon: start.Lon, Step: 1})

	current := start
	for i, sample := range samples {
		distance := sample.Groundspeed * knotsToMps * interval
		current = p.Geo.Destination(current, sample.Heading, distance)
		trajectory = append(trajectory, TrackPoint{Lat: current.Lat, Lon: current.Lon, Step: i + 2})
	}

	return trajectory
}
