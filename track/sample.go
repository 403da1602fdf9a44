package track

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var requiredColumns = []string{"groundspeed", "heading"}

// MissingColumnsError lists every required column absent from the input
// header after case normalization.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// InvalidSampleError reports a data row whose groundspeed or heading is not
// numeric. Row is the 0-based data row index.
type InvalidSampleError struct {
	Row    int
	Column string
	Value  string
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("row %d: invalid %s value %q", e.Row, e.Column, e.Value)
}

// ReadSamples parses CSV input. Column names are matched case-insensitively,
// extra columns are ignored and row order is preserved. Zero data rows is
// legal and yields an empty sample list.
func ReadSamples(r io.Reader) ([]Sample, error) {
	c := csv.NewReader(r)

	header, err := c.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Columns: requiredColumns}
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, found := columns[name]; !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	speedCol := columns["groundspeed"]
	headingCol := columns["heading"]

	var samples []Sample
	for row := 0; ; row++ {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		speed, err := strconv.ParseFloat(strings.TrimSpace(record[speedCol]), 64)
		if err != nil {
			return nil, &InvalidSampleError{Row: row, Column: "groundspeed", Value: record[speedCol]}
		}
		heading, err := strconv.ParseFloat(strings.TrimSpace(record[headingCol]), 64)
		if err != nil {
			return nil, &InvalidSampleError{Row: row, Column: "heading", Value: record[headingCol]}
		}

		samples = append(samples, Sample{Groundspeed: speed, Heading: heading})
	}

	return samples, nil
}
