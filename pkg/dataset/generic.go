package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

const (
	COL_USER     = "userid"
	COL_DATETIME = "datetime"
	COL_LAT      = "lat"
	COL_LNG      = "lng"
	COL_LON      = "lon"
)

type columns struct {
	user, datetime, lat, lng int
}

func headerColumns(header []string) (columns, error) {
	cols := columns{user: -1, datetime: -1, lat: -1, lng: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case COL_USER:
			cols.user = i
		case COL_DATETIME:
			cols.datetime = i
		case COL_LAT:
			cols.lat = i
		case COL_LNG, COL_LON:
			cols.lng = i
		}
	}
	missing := make([]string, 0)
	for _, c := range []struct {
		name string
		idx  int
	}{{COL_USER, cols.user}, {COL_DATETIME, cols.datetime}, {COL_LAT, cols.lat}, {COL_LNG, cols.lng}} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing columns %v", missing)
	}
	return cols, nil
}

func (c columns) max() int {
	return max(c.user, c.datetime, c.lat, c.lng)
}

// ReadGeneric. csv with a header naming userid, datetime, lat and lng (or lon) in any order.
func ReadGeneric(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.Separator
	if reader.Comma == 0 {
		reader.Comma = DEFAULT_SEPARATOR
	}
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty dataset")
		}
		return nil, err
	}
	cols, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	ds := newDataset()
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				ds.Rows++
				if err := ds.reject(opts, row, parseErr.Err.Error()); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		ds.Rows++

		if len(record) <= cols.max() {
			if err := ds.reject(opts, row, fmt.Sprintf("expected at least %d fields, got %d", cols.max()+1, len(record))); err != nil {
				return nil, err
			}
			continue
		}

		p, reason := parseGenericRow(record, cols)
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

func parseGenericRow(record []string, cols columns) (*da.GPSPoint, string) {
	user := strings.TrimSpace(record[cols.user])
	if user == "" {
		return nil, "empty userid"
	}
	t, err := ParseTime(record[cols.datetime])
	if err != nil {
		return nil, err.Error()
	}
	lat, lon, err := parseCoordinate(record[cols.lat], record[cols.lng])
	if err != nil {
		return nil, err.Error()
	}
	return da.NewGPSPoint(user, lat, lon, t), ""
}
