package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

// ReadRome. headerless rome taxi traces: userid;datetime;POINT(lat lng).
// everything after the seconds of the datetime (fraction and zone offset) is dropped.
func ReadRome(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = ROME_SEPARATOR
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	ds := newDataset()
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, err
			}
			ds.Rows++
			if err := ds.reject(opts, row, parseErr.Err.Error()); err != nil {
				return nil, err
			}
			continue
		}
		ds.Rows++

		p, reason := parseRomeRow(record)
		if p == nil {
			if err := ds.reject(opts, row, reason); err != nil {
				return nil, err
			}
			continue
		}
		ds.Points = append(ds.Points, p)
	}
	return ds, nil
}

func parseRomeRow(record []string) (*da.GPSPoint, string) {
	if len(record) != 3 {
		return nil, fmt.Sprintf("expected 3 fields, got %d", len(record))
	}
	user := strings.TrimSpace(record[0])
	if user == "" {
		return nil, "empty userid"
	}

	datetime, _, _ := strings.Cut(strings.TrimSpace(record[1]), ".")
	t, err := ParseTime(datetime)
	if err != nil {
		return nil, err.Error()
	}

	lat, lon, err := parsePoint(record[2])
	if err != nil {
		return nil, err.Error()
	}
	return da.NewGPSPoint(user, lat, lon, t), ""
}

// parsePoint. "POINT(lat lng)", latitude first.
func parsePoint(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "POINT(") || !strings.HasSuffix(s, ")") {
		return 0, 0, fmt.Errorf("invalid position %q", s)
	}
	fields := strings.Fields(s[len("POINT(") : len(s)-1])
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid position %q", s)
	}
	return parseCoordinate(fields[0], fields[1])
}
