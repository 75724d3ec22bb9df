package batch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/lintang-b-s/pathcompare/pkg/concurrent"
	"github.com/lintang-b-s/pathcompare/pkg/dataset"
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
	"github.com/lintang-b-s/pathcompare/pkg/pathcompare"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const PROGRESS_LOG_INTERVAL = 10 * time.Second

type Config struct {
	NumOfProcess int
	GraphArea    string
	OutputDir    string
	// one geojson file per scored user is written here when set
	RoutesDir string
}

type userJob struct {
	user   string
	points []*da.GPSPoint
}

type userResult struct {
	user    string
	result  pathcompare.Result
	failure *metrics.Failure
	status  string
	elapsed time.Duration
}

// Summary. outcome of one batch run.
type Summary struct {
	RunID        string
	StartedAt    time.Time
	Records      []metrics.Record
	Failures     []metrics.Failure
	MetricsFile  string
	FailuresFile string
	RoutesFiles  int
	Skipped      int
	Cancelled    bool
}

// Runner. fans the users of a dataset out over a fixed size worker pool and persists the metrics table.
type Runner struct {
	pipeline *pathcompare.Pipeline
	locator  metrics.VertexLocator
	cfg      Config
	metrics  *Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewRunner(pipeline *pathcompare.Pipeline, locator metrics.VertexLocator, cfg Config, m *Metrics,
	logger *zap.Logger) *Runner {
	return &Runner{
		pipeline: pipeline,
		locator:  locator,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Run. compare every user of partition. a failing or panicking user is recorded in the failure log and never aborts
// the batch. once ctx is done no new user is dispatched, users already finished are still written.
func (r *Runner) Run(ctx context.Context, partition map[string][]*da.GPSPoint) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		Records:   make([]metrics.Record, 0, len(partition)),
		Failures:  make([]metrics.Failure, 0),
	}
	logger := r.logger.With(zap.String("run", summary.RunID))

	users := dataset.Users(partition)
	logger.Info("batch started",
		zap.String("users", humanize.Comma(int64(len(users)))),
		zap.Int("workers", r.cfg.NumOfProcess),
		zap.String("area", r.cfg.GraphArea))

	wp := concurrent.NewWorkerPool[userJob, userResult](r.cfg.NumOfProcess, r.cfg.NumOfProcess).
		WithPanicHandler(func(job userJob, recovered any) userResult {
			logger.Error("user panicked", zap.String("user", job.user), zap.Any("panic", recovered))
			return userResult{
				user:    job.user,
				status:  STATUS_FAILED,
				failure: &metrics.Failure{User: job.user, Stage: metrics.STAGE_PANIC, Reason: fmt.Sprint(recovered)},
			}
		})
	wp.Start(ctx, r.processUser)

	go func() {
		defer wp.Close()
		for _, u := range users {
			// each job owns a copy of its user's slice
			job := userJob{user: u, points: slices.Clone(partition[u])}
			if err := wp.AddJob(ctx, job); err != nil {
				return
			}
		}
	}()
	go wp.Wait()

	progress := rate.Sometimes{First: 1, Interval: PROGRESS_LOG_INTERVAL}
	done := 0
	for res := range wp.CollectResults() {
		done++
		r.metrics.observe(res.status, res.elapsed.Seconds())

		switch res.status {
		case STATUS_SKIPPED:
			summary.Skipped++
			continue
		case STATUS_SCORED, STATUS_UNDEFINED:
			summary.Records = append(summary.Records, res.result.Record)
			if r.cfg.RoutesDir != "" && res.result.Reconstruction != nil {
				if _, err := metrics.WriteRoutesFile(r.cfg.RoutesDir, r.locator, res.result.RouteExport()); err != nil {
					logger.Warn("writing routes failed", zap.String("user", res.user), zap.Error(err))
				} else {
					summary.RoutesFiles++
				}
			}
		}
		if res.failure != nil {
			summary.Failures = append(summary.Failures, *res.failure)
		}

		progress.Do(func() {
			logger.Sugar().Infof("processed %s/%s users, %s scored, %s failures", humanize.Comma(int64(done)),
				humanize.Comma(int64(len(users))), humanize.Comma(int64(len(summary.Records))),
				humanize.Comma(int64(len(summary.Failures))))
		})
	}
	summary.Cancelled = ctx.Err() != nil
	// users never handed to a worker
	if pending := len(users) - done; pending > 0 {
		summary.Skipped += pending
		r.metrics.skipped(pending)
	}

	slices.SortFunc(summary.Records, func(a, b metrics.Record) int {
		return dataset.CompareUserIds(a.User, b.User)
	})
	slices.SortStableFunc(summary.Failures, func(a, b metrics.Failure) int {
		return dataset.CompareUserIds(a.User, b.User)
	})

	var err error
	summary.MetricsFile, err = metrics.WriteMetricsFile(r.cfg.OutputDir,
		metrics.MetricsFileName(r.cfg.GraphArea, summary.StartedAt), summary.Records)
	if err != nil {
		return summary, err
	}
	summary.FailuresFile, err = metrics.WriteFailuresFile(r.cfg.OutputDir,
		metrics.FailuresFileName(r.cfg.GraphArea, summary.StartedAt), summary.Failures)
	if err != nil {
		return summary, err
	}

	logger.Info("batch finished",
		zap.Int("records", len(summary.Records)),
		zap.Int("failures", len(summary.Failures)),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("cancelled", summary.Cancelled),
		zap.String("metricsFile", summary.MetricsFile),
		zap.String("failuresFile", summary.FailuresFile),
		zap.Duration("took", r.now().Sub(summary.StartedAt)))
	return summary, nil
}

func (r *Runner) processUser(ctx context.Context, job userJob) userResult {
	if ctx.Err() != nil {
		return userResult{user: job.user, status: STATUS_SKIPPED}
	}

	start := time.Now()
	res, err := r.pipeline.Compare(ctx, job.user, job.points)
	out := userResult{user: job.user, result: res, elapsed: time.Since(start)}

	var stageErr *pathcompare.StageError
	switch {
	case err == nil && res.Record.Defined:
		out.status = STATUS_SCORED
	case err == nil:
		out.status = STATUS_UNDEFINED
		out.failure = res.Warning
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		out.status = STATUS_SKIPPED
	case errors.As(err, &stageErr):
		out.status = STATUS_FAILED
		f := stageErr.Failure()
		out.failure = &f
		r.logger.Debug("user failed", zap.String("user", job.user), zap.String("stage", string(f.Stage)),
			zap.Error(err))
	default:
		out.status = STATUS_FAILED
		out.failure = &metrics.Failure{User: job.user, Stage: metrics.STAGE_ROUTE, Reason: err.Error()}
	}
	return out
}
