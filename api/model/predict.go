package model

import (
	"github.com/flightrack/track-server/export"
	"github.com/flightrack/track-server/latlon"
	"github.com/flightrack/track-server/track"
)

// Prediction is the response of a prediction run.
type Prediction struct {
	Run     string                    `json:"run"`
	Points  track.Trajectory          `json:"points"`
	Final   latlon.LatLon             `json:"final"`
	GeoJSON *export.FeatureCollection `json:"geojson"`
	CSV     string                    `json:"csv"`
	KML     string                    `json:"kml"`
}

// Error is the single human-readable failure message of a run.
type Error struct {
	Error string `json:"error"`
}
