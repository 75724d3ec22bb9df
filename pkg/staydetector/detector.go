package staydetector

import (
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/geo"
	"go.uber.org/zap"
)

type Config struct {
	StopRadiusFactor float64
	MinStopMinutes   float64
	SpatialRadiusKm  float64
	// a gap between consecutive fixes longer than this ends the confinement window. 0 disables it.
	NoDataForMinutes float64
}

func DefaultConfig() Config {
	return Config{
		StopRadiusFactor: 0.3,
		MinStopMinutes:   10.0,
		SpatialRadiusKm:  0.2,
	}
}

// StopRadiusKm. SpatialRadiusKm scaled by StopRadiusFactor, a zero factor keeps the spatial radius.
func (c Config) StopRadiusKm() float64 {
	if c.StopRadiusFactor == 0 {
		return c.SpatialRadiusKm
	}
	return c.SpatialRadiusKm * c.StopRadiusFactor
}

type Detector struct {
	cfg    Config
	logger *zap.Logger
}

func NewDetector(cfg Config, logger *zap.Logger) *Detector {
	return &Detector{
		cfg:    cfg,
		logger: logger,
	}
}

// Detect. scan the trajectory for runs of fixes confined within the stop radius of the run's first fix.
// a run lasting at least MinStopMinutes (from its first fix to the first fix that leaves the radius, or to the
// last fix when the trajectory ends inside it) is a stay point and the scan resumes at the fix that left.
// fewer than two stay points is a valid result.
func (d *Detector) Detect(traj *datastructure.Trajectory) []*datastructure.StayPoint {
	points := traj.Points()
	n := len(points)
	radiusKm := d.cfg.StopRadiusKm()
	minStop := time.Duration(d.cfg.MinStopMinutes * float64(time.Minute))
	noData := time.Duration(d.cfg.NoDataForMinutes * float64(time.Minute))

	stays := make([]*datastructure.StayPoint, 0)
	i := 0
	for i < n {
		anchor := points[i]

		j := i + 1
		gapBreak := false
		for ; j < n; j++ {
			if noData > 0 && points[j].Time().Sub(points[j-1].Time()) > noData {
				gapBreak = true
				break
			}
			if geo.CalculateHaversineDistance(anchor.Lat(), anchor.Lon(), points[j].Lat(), points[j].Lon()) >= radiusKm {
				break
			}
		}

		// confined fixes are points[i:j]
		departure := points[j-1].Time()
		if j < n && !gapBreak {
			departure = points[j].Time()
		}

		if departure.Sub(anchor.Time()) < minStop {
			i++
			continue
		}

		centroid := geo.SphericalCentroid(coordinatesOf(points[i:j]))
		stays = append(stays, datastructure.NewStayPoint(traj.UserId(), centroid.GetLat(), centroid.GetLon(),
			anchor.Time(), departure))
		i = j
	}

	d.logger.Debug("stay points detected",
		zap.String("user", traj.UserId()),
		zap.Int("fixes", n),
		zap.Int("stays", len(stays)))
	return stays
}

func coordinatesOf(points []*datastructure.GPSPoint) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		coords[i] = geo.NewCoordinate(p.Lat(), p.Lon())
	}
	return coords
}
