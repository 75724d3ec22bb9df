package dataset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	ErrMalformedRow  = errors.New("malformed row")
	ErrUnknownFormat = errors.New("unknown dataset format")
)

const (
	FORMAT_GENERIC       = "generic"
	FORMAT_ROME          = "rome"
	FORMAT_SANFRANCISCO  = "sanfrancisco"
	DEFAULT_SEPARATOR    = ','
	ROME_SEPARATOR       = ';'
	SANFRANCISCO_PATTERN = "new_*.txt*"
)

type Options struct {
	Format    string
	Separator rune
	// Strict rejects the whole dataset on the first malformed row instead of dropping the row.
	Strict         bool
	SampleFraction float64
	SampleSeed     uint64
}

func DefaultOptions() Options {
	return Options{
		Format:         FORMAT_GENERIC,
		Separator:      DEFAULT_SEPARATOR,
		SampleFraction: 1.0,
		SampleSeed:     1,
	}
}

// Dataset. gps fixes of every user, in file order.
type Dataset struct {
	Points  []*da.GPSPoint
	Rows    int // data rows read, header excluded
	Dropped int // malformed rows skipped in lenient mode
}

func newDataset() *Dataset {
	return &Dataset{Points: make([]*da.GPSPoint, 0)}
}

// reject. in strict mode the row aborts the load, otherwise it is counted and skipped.
func (d *Dataset) reject(opts Options, row int, reason string) error {
	if opts.Strict {
		return fmt.Errorf("row %d: %w: %s", row, ErrMalformedRow, reason)
	}
	d.Dropped++
	return nil
}

// Load. read the dataset at path in the configured format. path is a file for the generic and rome formats
// and a directory of cab traces for the sanfrancisco format.
func Load(ctx context.Context, path string, opts Options, logger *zap.Logger) (*Dataset, error) {
	start := time.Now()

	var (
		ds  *Dataset
		err error
	)
	switch opts.Format {
	case FORMAT_GENERIC, "":
		ds, err = loadFile(path, func(r io.Reader) (*Dataset, error) { return ReadGeneric(r, opts) })
	case FORMAT_ROME:
		ds, err = loadFile(path, func(r io.Reader) (*Dataset, error) { return ReadRome(r, opts) })
	case FORMAT_SANFRANCISCO:
		ds, err = LoadSanFrancisco(ctx, path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}

	read := len(ds.Points)
	ds.Points = Sample(ds.Points, opts.SampleFraction, opts.SampleSeed)

	logger.Info("dataset loaded",
		zap.String("path", path),
		zap.String("format", opts.Format),
		zap.String("rows", humanize.Comma(int64(ds.Rows))),
		zap.String("dropped", humanize.Comma(int64(ds.Dropped))),
		zap.String("sampled", humanize.Comma(int64(len(ds.Points)))+"/"+humanize.Comma(int64(read))),
		zap.Duration("took", time.Since(start)))
	return ds, nil
}

func loadFile(path string, read func(r io.Reader) (*Dataset, error)) (*Dataset, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

// Sample. keep each point with probability fraction, deterministic for a given seed and input order.
func Sample(points []*da.GPSPoint, fraction float64, seed uint64) []*da.GPSPoint {
	if fraction >= 1 {
		return points
	}
	rd := rand.New(rand.NewSource(seed))
	sampled := make([]*da.GPSPoint, 0, int(float64(len(points))*fraction)+1)
	for _, p := range points {
		if rd.Float64() < fraction {
			sampled = append(sampled, p)
		}
	}
	return sampled
}

// Partition. split the dataset by user once. every user gets its own slice.
func Partition(points []*da.GPSPoint) map[string][]*da.GPSPoint {
	users := make(map[string][]*da.GPSPoint)
	for _, p := range points {
		users[p.UserId()] = append(users[p.UserId()], p)
	}
	return users
}

// Users. user ids of a partition, numeric ids in numeric order first, then the rest lexicographically.
func Users(partition map[string][]*da.GPSPoint) []string {
	users := make([]string, 0, len(partition))
	for u := range partition {
		users = append(users, u)
	}
	slices.SortFunc(users, CompareUserIds)
	return users
}

func CompareUserIds(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
