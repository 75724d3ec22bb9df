package pathcompare

import (
	"context"
	"errors"
	"fmt"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
	"github.com/lintang-b-s/pathcompare/pkg/preprocessor"
	"github.com/lintang-b-s/pathcompare/pkg/staydetector"
	"go.uber.org/zap"
)

var ErrTooFewStops = errors.New("fewer than two stay points")

// StageError. a user the pipeline could not score, with the step that failed.
type StageError struct {
	User  string
	Stage metrics.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("user %s: %s: %v", e.User, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Failure() metrics.Failure {
	return metrics.Failure{User: e.User, Stage: e.Stage, Reason: e.Err.Error()}
}

type Result struct {
	Record         metrics.Record
	Stops          []*da.StayPoint
	Reconstruction *Reconstruction
	// set for users scored with an undefined jaccard because fewer than two stops were detected
	Warning *metrics.Failure
}

func (r Result) RouteExport() metrics.RouteExport {
	return metrics.RouteExport{
		User:     r.Record.User,
		Observed: r.Reconstruction.ObservedRoute,
		Modeled:  r.Reconstruction.ModeledRoute,
		Stops:    r.Stops,
		Record:   r.Record,
	}
}

// Pipeline. clean, detect stays, reconstruct routes and score one user. safe for concurrent use as long as the
// road graph is.
type Pipeline struct {
	cleaner       *preprocessor.Cleaner
	detector      *staydetector.Detector
	reconstructor *Reconstructor
	logger        *zap.Logger
}

func NewPipeline(cleaner *preprocessor.Cleaner, detector *staydetector.Detector, reconstructor *Reconstructor,
	logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cleaner:       cleaner,
		detector:      detector,
		reconstructor: reconstructor,
		logger:        logger,
	}
}

// Compare. returns a *StageError when the user cannot be scored (empty trajectory or a road graph failure).
func (p *Pipeline) Compare(ctx context.Context, user string, raw []*da.GPSPoint) (Result, error) {
	traj, err := p.cleaner.Clean(user, raw)
	if err != nil {
		return Result{}, &StageError{User: user, Stage: metrics.STAGE_CLEAN, Err: err}
	}

	stops := p.detector.Detect(traj)

	rec, err := p.reconstructor.Reconstruct(ctx, traj, stops)
	if err != nil {
		return Result{}, &StageError{User: user, Stage: metrics.STAGE_ROUTE, Err: err}
	}

	res := Result{
		Record: metrics.Score(user, rec.ObservedRoute, rec.ModeledRoute,
			rec.ObservedLength, rec.ModeledLength),
		Stops:          stops,
		Reconstruction: rec,
	}
	if len(stops) < 2 {
		res.Warning = &metrics.Failure{
			User:   user,
			Stage:  metrics.STAGE_DETECT,
			Reason: fmt.Sprintf("%d stay points detected: %v", len(stops), ErrTooFewStops),
		}
		p.logger.Debug("user has too few stay points", zap.String("user", user), zap.Int("stays", len(stops)))
	}
	return res, nil
}
