package preprocessor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/geo"
	"go.uber.org/zap"
)

var ErrEmptyTrajectory = errors.New("empty trajectory")

type Config struct {
	MaxSpeedKmh         float64
	CompressionRadiusKm float64
}

func DefaultConfig() Config {
	return Config{
		MaxSpeedKmh:         500,
		CompressionRadiusKm: 0.1,
	}
}

// Cleaner. turns the raw gps fixes of one user into a trajectory: drops implausible jumps, then merges
// consecutive fixes that barely moved.
type Cleaner struct {
	cfg    Config
	logger *zap.Logger
}

func NewCleaner(cfg Config, logger *zap.Logger) *Cleaner {
	return &Cleaner{
		cfg:    cfg,
		logger: logger,
	}
}

// Clean. sort by time, FilterBySpeed, then Compress. Clean(Clean(x)) == Clean(x).
func (c *Cleaner) Clean(userId string, raw []*datastructure.GPSPoint) (*datastructure.Trajectory, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("user %s: %w", userId, ErrEmptyTrajectory)
	}

	points := slices.Clone(raw)
	slices.SortStableFunc(points, func(a, b *datastructure.GPSPoint) int {
		return a.Time().Compare(b.Time())
	})

	filtered := FilterBySpeed(points, c.cfg.MaxSpeedKmh)
	compressed := Compress(filtered, c.cfg.CompressionRadiusKm)

	c.logger.Debug("trajectory cleaned",
		zap.String("user", userId),
		zap.Int("raw", len(raw)),
		zap.Int("filtered", len(filtered)),
		zap.Int("compressed", len(compressed)))

	if len(compressed) == 0 {
		return nil, fmt.Errorf("user %s: %w", userId, ErrEmptyTrajectory)
	}
	return datastructure.NewTrajectory(userId, compressed), nil
}

// FilterBySpeed. keep the first fix, drop every fix whose speed from the previous kept fix exceeds maxSpeedKmh.
// points must be sorted by time. a jump with zero elapsed time has infinite speed unless it covers no distance.
func FilterBySpeed(points []*datastructure.GPSPoint, maxSpeedKmh float64) []*datastructure.GPSPoint {
	if len(points) == 0 {
		return []*datastructure.GPSPoint{}
	}
	kept := make([]*datastructure.GPSPoint, 0, len(points))
	kept = append(kept, points[0])
	for _, p := range points[1:] {
		prev := kept[len(kept)-1]
		distKm := geo.CalculateHaversineDistance(prev.Lat(), prev.Lon(), p.Lat(), p.Lon())
		hours := p.Time().Sub(prev.Time()).Hours()
		if hours <= 0 {
			if distKm == 0 {
				kept = append(kept, p)
			}
			continue
		}
		if distKm/hours > maxSpeedKmh {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Compress. collapse every run of fixes lying strictly within radiusKm of the first fix of the run into that fix.
// the kept fixes are pairwise at least radiusKm from their predecessor, so compressing twice changes nothing.
func Compress(points []*datastructure.GPSPoint, radiusKm float64) []*datastructure.GPSPoint {
	if len(points) == 0 {
		return []*datastructure.GPSPoint{}
	}
	kept := make([]*datastructure.GPSPoint, 0, len(points))
	ref := points[0]
	kept = append(kept, ref)
	for _, p := range points[1:] {
		if geo.CalculateHaversineDistance(ref.Lat(), ref.Lon(), p.Lat(), p.Lon()) < radiusKm {
			continue
		}
		ref = p
		kept = append(kept, ref)
	}
	return kept
}
