package export

import (
	"fmt"

	"github.com/flightrack/track-server/track"
)

// FeatureCollection follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

type Geometry struct {
	Type string `json:"type"`
	// [Lon, Lat] for a Point, a list of those for a LineString
	Coordinates interface{} `json:"coordinates"`
}

// GeoJSON builds the map layer for a trajectory: one point feature per track
// point, labeled by step, plus a single line through them in order.
func GeoJSON(trajectory track.Trajectory) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection"}

	line := make([][]float64, 0, len(trajectory))
	for _, p := range trajectory {
		coords := []float64{p.Lon, p.Lat}
		line = append(line, coords)
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"name": fmt.Sprintf("Step %d", p.Step),
				"step": p.Step,
			},
			Geometry: Geometry{Type: "Point", Coordinates: coords},
		})
	}

	fc.Features = append(fc.Features, Feature{
		Type:       "Feature",
		Properties: map[string]interface{}{"name": "Predicted track"},
		Geometry:   Geometry{Type: "LineString", Coordinates: line},
	})

	return fc
}
