package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"golang.org/x/sync/errgroup"
)

// LoadSanFrancisco. cabspotting traces, one new_*.txt file per cab with space separated "lat lng occupancy unixtime"
// lines. the user id of a cab is the index of its file in lexical order.
func LoadSanFrancisco(ctx context.Context, dir string, opts Options) (*Dataset, error) {
	files, err := filepath.Glob(filepath.Join(dir, SANFRANCISCO_PATTERN))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", SANFRANCISCO_PATTERN, dir)
	}

	parts := make([]*Dataset, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := loadFile(file, func(r io.Reader) (*Dataset, error) {
				return ReadCab(r, strconv.Itoa(i), opts)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(file), err)
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := newDataset()
	for _, part := range parts {
		ds.Points = append(ds.Points, part.Points...)
		ds.Rows += part.Rows
		ds.Dropped += part.Dropped
	}
	return ds, nil
}

// ReadCab. trace of a single cab.
func ReadCab(r io.Reader, user string, opts Options) (*Dataset, error) {
	ds := newDataset()
	scanner := bufio.NewScanner(r)
	for row := 1; scanner.Scan(); row++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ds.Rows++

		p, reason := parseCabLine(line, user)
		if p == nil {
			if err := ds.reject(opts, row, reason); err != nil {
				return nil, err
			}
			continue
		}
		ds.Points = append(ds.Points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func parseCabLine(line, user string) (*da.GPSPoint, string) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, fmt.Sprintf("expected 4 fields, got %d", len(fields))
	}
	lat, lon, err := parseCoordinate(fields[0], fields[1])
	if err != nil {
		return nil, err.Error()
	}
	unix, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("invalid unix time %q", fields[3])
	}
	return da.NewGPSPoint(user, lat, lon, time.Unix(unix, 0).UTC()), ""
}
