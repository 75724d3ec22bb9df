package pathcompare

import (
	"context"
	"fmt"
	"sort"
	"time"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/engine/routing"
	"go.uber.org/zap"
)

// Reconstruction. modeled and observed routes of one user, chained over every leg between consecutive stay points.
type Reconstruction struct {
	// nearest nodes of the fixes recorded during each leg, one group per leg
	ObservedNodeGroups [][]da.Index
	ObservedRoute      []da.Index
	ModeledRoute       []da.Index
	ObservedLength     int
	ModeledLength      int
	Legs               int
}

func newReconstruction(legs int) *Reconstruction {
	return &Reconstruction{
		ObservedNodeGroups: make([][]da.Index, 0, legs),
		ObservedRoute:      make([]da.Index, 0),
		ModeledRoute:       make([]da.Index, 0),
		Legs:               legs,
	}
}

type Reconstructor struct {
	roadGraph routing.RoadGraph
	logger    *zap.Logger
}

func NewReconstructor(roadGraph routing.RoadGraph, logger *zap.Logger) *Reconstructor {
	return &Reconstructor{
		roadGraph: roadGraph,
		logger:    logger,
	}
}

// Reconstruct. for every pair of consecutive stops (leg), route between their nearest nodes (modeled route) and
// collect the nearest nodes of the fixes recorded between the two stop times, both ends inclusive. the observed
// route chains shortest paths between consecutive observed nodes of each leg.
// fewer than two stops gives an empty reconstruction with zero legs.
func (r *Reconstructor) Reconstruct(ctx context.Context, traj *da.Trajectory,
	stops []*da.StayPoint) (*Reconstruction, error) {
	if len(stops) < 2 {
		return newReconstruction(0), nil
	}

	rec := newReconstruction(len(stops) - 1)
	points := traj.Points()

	for leg := 0; leg < len(stops)-1; leg++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("leg %d: %w", leg, err)
		}
		orig, dest := stops[leg], stops[leg+1]

		if err := r.modeledLeg(ctx, rec, orig, dest); err != nil {
			return nil, fmt.Errorf("leg %d: modeled route: %w", leg, err)
		}

		group, err := r.observedNodes(fixesBetween(points, orig.Time(), dest.Time()))
		if err != nil {
			return nil, fmt.Errorf("leg %d: snap fixes: %w", leg, err)
		}
		rec.ObservedNodeGroups = append(rec.ObservedNodeGroups, group)
	}

	if err := r.chainObserved(ctx, rec); err != nil {
		return nil, err
	}

	r.logger.Debug("routes reconstructed",
		zap.String("user", traj.UserId()),
		zap.Int("legs", rec.Legs),
		zap.Int("modeledNodes", len(rec.ModeledRoute)),
		zap.Int("observedNodes", len(rec.ObservedRoute)),
		zap.Int("modeledLength", rec.ModeledLength),
		zap.Int("observedLength", rec.ObservedLength))
	return rec, nil
}

func (r *Reconstructor) modeledLeg(ctx context.Context, rec *Reconstruction, orig, dest *da.StayPoint) error {
	s, err := r.roadGraph.NearestNode(orig.Lat(), orig.Lon())
	if err != nil {
		return err
	}
	t, err := r.roadGraph.NearestNode(dest.Lat(), dest.Lon())
	if err != nil {
		return err
	}

	path, err := r.roadGraph.ShortestPath(ctx, s, t)
	if err != nil {
		return err
	}
	length, err := r.roadGraph.ShortestPathLength(ctx, s, t)
	if err != nil {
		return err
	}

	// the shared boundary node of consecutive legs is kept twice
	rec.ModeledRoute = append(rec.ModeledRoute, path...)
	rec.ModeledLength += length
	return nil
}

func (r *Reconstructor) observedNodes(fixes []*da.GPSPoint) ([]da.Index, error) {
	if len(fixes) == 0 {
		return []da.Index{}, nil
	}
	lats := make([]float64, len(fixes))
	lons := make([]float64, len(fixes))
	for i, p := range fixes {
		lats[i] = p.Lat()
		lons[i] = p.Lon()
	}
	return r.roadGraph.NearestNodes(lats, lons)
}

// chainObserved. per group: the shortest path of every consecutive node pair without its last node, then the
// group's last node. the last node of the last group closes the route.
func (r *Reconstructor) chainObserved(ctx context.Context, rec *Reconstruction) error {
	for leg, group := range rec.ObservedNodeGroups {
		if len(group) == 0 {
			continue
		}
		for j := 0; j+1 < len(group); j++ {
			path, err := r.roadGraph.ShortestPath(ctx, group[j], group[j+1])
			if err != nil {
				return fmt.Errorf("leg %d: observed route: %w", leg, err)
			}
			length, err := r.roadGraph.ShortestPathLength(ctx, group[j], group[j+1])
			if err != nil {
				return fmt.Errorf("leg %d: observed route: %w", leg, err)
			}
			rec.ObservedRoute = append(rec.ObservedRoute, path[:len(path)-1]...)
			rec.ObservedLength += length
		}
		rec.ObservedRoute = append(rec.ObservedRoute, group[len(group)-1])
	}

	if n := len(rec.ObservedNodeGroups); n > 0 {
		if last := rec.ObservedNodeGroups[n-1]; len(last) > 0 {
			rec.ObservedRoute = append(rec.ObservedRoute, last[len(last)-1])
		}
	}
	return nil
}

// fixesBetween. fixes with from <= time <= to. points are sorted by time.
func fixesBetween(points []*da.GPSPoint, from, to time.Time) []*da.GPSPoint {
	lo := sort.Search(len(points), func(i int) bool {
		return !points[i].Time().Before(from)
	})
	hi := sort.Search(len(points), func(i int) bool {
		return points[i].Time().After(to)
	})
	if lo >= hi {
		return nil
	}
	return points[lo:hi]
}
