package pathcompare

import (
	"github.com/lintang-b-s/pathcompare/pkg/engine/routing"
	"github.com/lintang-b-s/pathcompare/pkg/preprocessor"
	"github.com/lintang-b-s/pathcompare/pkg/staydetector"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"go.uber.org/zap"
)

// NewPipelineFromConfig. pipeline with the cleaner and detector thresholds of cfg.
func NewPipelineFromConfig(cfg util.Config, roadGraph routing.RoadGraph, logger *zap.Logger) *Pipeline {
	cleaner := preprocessor.NewCleaner(preprocessor.Config{
		MaxSpeedKmh:         cfg.MaxSpeedKmh,
		CompressionRadiusKm: cfg.CompressionRadiusKm,
	}, logger)
	detector := staydetector.NewDetector(staydetector.Config{
		StopRadiusFactor: cfg.StopRadiusFactor,
		MinStopMinutes:   cfg.MinStopMinutes,
		SpatialRadiusKm:  cfg.SpatialRadiusKm,
		NoDataForMinutes: cfg.NoDataForMinutes,
	}, logger)
	return NewPipeline(cleaner, detector, NewReconstructor(roadGraph, logger), logger)
}
