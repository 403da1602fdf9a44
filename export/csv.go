package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flightrack/track-server/track"
)

// WriteCSV writes one row per track point, trajectory order, with the step
// number in the name column. Coordinates are formatted so they parse back to
// the same float64.
func WriteCSV(w io.Writer, trajectory track.Trajectory) error {
	c := csv.NewWriter(w)

	if err := c.Write([]string{"latitude", "longitude", "name"}); err != nil {
		return err
	}
	for _, p := range trajectory {
		record := []string{
			strconv.FormatFloat(p.Lat, 'g', -1, 64),
			strconv.FormatFloat(p.Lon, 'g', -1, 64),
			strconv.Itoa(p.Step),
		}
		if err := c.Write(record); err != nil {
			return err
		}
	}

	c.Flush()
	return c.Error()
}

// ReadCSV reads a trajectory back from WriteCSV output.
func ReadCSV(r io.Reader) (track.Trajectory, error) {
	c := csv.NewReader(r)

	header, err := c.Read()
	if err != nil {
		return nil, fmt.Errorf("read trajectory header: %w", err)
	}
	if len(header) < 3 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "latitude") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "longitude") ||
		!strings.EqualFold(strings.TrimSpace(header[2]), "name") {
		return nil, fmt.Errorf("unexpected trajectory header %v", header)
	}

	var trajectory track.Trajectory
	for {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		lat, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", record[0], err)
		}
		lon, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", record[1], err)
		}
		step, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid name %q: %w", record[2], err)
		}

		trajectory = append(trajectory, track.TrackPoint{Lat: lat, Lon: lon, Step: step})
	}

	return trajectory, nil
}
