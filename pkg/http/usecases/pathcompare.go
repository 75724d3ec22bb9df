package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/engine/routing"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
	"github.com/lintang-b-s/pathcompare/pkg/pathcompare"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// PathComparison. pipeline result of one api request, routes encoded for transport.
type PathComparison struct {
	Record metrics.Record
	Stops  []*datastructure.StayPoint
	Legs   int

	ModeledPolyline  string
	ObservedPolyline string
	// geometric length of the routes in meters, legs joined by straight lines
	ModeledDistance  float64
	ObservedDistance float64
	Warning          string
}

type PathCompareService struct {
	log      *zap.Logger
	pipeline Pipeline
	engine   RoutingEngine
}

func NewPathCompareService(log *zap.Logger, pipeline Pipeline, engine RoutingEngine) *PathCompareService {
	return &PathCompareService{
		log:      log,
		pipeline: pipeline,
		engine:   engine,
	}
}

func (s *PathCompareService) PathCompare(ctx context.Context, userID string,
	fixes []*datastructure.GPSPoint) (*PathComparison, error) {
	res, err := s.pipeline.Compare(ctx, userID, fixes)
	if err != nil {
		return nil, s.classify(err)
	}

	rec := res.Reconstruction
	out := &PathComparison{
		Record:           res.Record,
		Stops:            res.Stops,
		Legs:             rec.Legs,
		ModeledPolyline:  s.routePolyline(rec.ModeledRoute),
		ObservedPolyline: s.routePolyline(rec.ObservedRoute),
		ModeledDistance:  util.RoundFloat(s.engine.RouteDistance(rec.ModeledRoute), 2),
		ObservedDistance: util.RoundFloat(s.engine.RouteDistance(rec.ObservedRoute), 2),
	}
	if res.Warning != nil {
		out.Warning = res.Warning.Reason
	}
	return out, nil
}

func (s *PathCompareService) classify(err error) error {
	var stageErr *pathcompare.StageError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return util.WrapErrorf(err, util.ErrInternalServerError, "request cancelled")
	case errors.As(err, &stageErr) && stageErr.Stage == metrics.STAGE_CLEAN:
		return util.WrapErrorf(err, util.ErrBadParamInput, "no usable gps fixes")
	case errors.Is(err, routing.ErrNoPath):
		return util.WrapErrorf(err, util.ErrNotFound, "stay points are not connected by the road network")
	default:
		s.log.Error("path compare failed", zap.Error(err))
		return util.WrapErrorf(err, util.ErrInternalServerError, "path compare failed")
	}
}

func (s *PathCompareService) routePolyline(route []datastructure.Index) string {
	coords := make([][]float64, 0, len(route))
	for _, u := range route {
		lat, lon := s.engine.GetVertexCoordinates(u)
		coords = append(coords, []float64{lat, lon})
	}
	return string(polyline.EncodeCoords(coords))
}
