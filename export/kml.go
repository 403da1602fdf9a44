package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/flightrack/track-server/track"
)

const kmlNamespace = "http://www.opengis.net/kml/2.2"

type kml struct {
	XMLName    xml.Name       `xml:"kml"`
	Xmlns      string         `xml:"xmlns,attr"`
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Coordinates string `xml:"Point>coordinates"`
}

// WriteKML writes one named placemark per track point. The KML convention is
// longitude first.
func WriteKML(w io.Writer, trajectory track.Trajectory) error {
	doc := kml{Xmlns: kmlNamespace}
	for _, p := range trajectory {
		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name: fmt.Sprintf("Step %d", p.Step),
			Coordinates: strconv.FormatFloat(p.Lon, 'g', -1, 64) + "," +
				strconv.FormatFloat(p.Lat, 'g', -1, 64),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	e := xml.NewEncoder(w)
	e.Indent("", "    ")
	return e.Encode(doc)
}
