package pathcompare

import (
	"context"
	"testing"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/engine/routing"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
	"github.com/lintang-b-s/pathcompare/pkg/preprocessor"
	"github.com/lintang-b-s/pathcompare/pkg/staydetector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// commuteFixes. 15 minutes parked at node 0, driving through node 1, 15 minutes parked at node 2, then leaving.
// fixes are given newest first.
func commuteFixes(user string) []*da.GPSPoint {
	raw := []*da.GPSPoint{
		da.NewGPSPoint(user, 45.475, 9.205, minutes(40)),
		da.NewGPSPoint(user, 45.47, 9.20, minutes(25)),
		da.NewGPSPoint(user, 45.465, 9.195, minutes(20)),
	}
	for m := 15; m >= 0; m-- {
		raw = append(raw, da.NewGPSPoint(user, 45.46, 9.19, minutes(m)))
	}
	return raw
}

func newTestPipeline(roadGraph routing.RoadGraph) *Pipeline {
	logger := zap.NewNop()
	return NewPipeline(
		preprocessor.NewCleaner(preprocessor.DefaultConfig(), logger),
		staydetector.NewDetector(staydetector.DefaultConfig(), logger),
		NewReconstructor(roadGraph, logger),
		logger,
	)
}

func TestPipelineCompare(t *testing.T) {
	res, err := newTestPipeline(lineEngine(t)).Compare(context.Background(), "17", commuteFixes("17"))
	require.NoError(t, err)

	require.Len(t, res.Stops, 2)
	assert.Equal(t, minutes(0), res.Stops[0].Arrival())
	assert.Equal(t, minutes(25), res.Stops[1].Arrival())
	assert.Nil(t, res.Warning)

	assert.Equal(t, 1, res.Reconstruction.Legs)
	assert.Equal(t, []da.Index{0, 1, 2}, res.Reconstruction.ModeledRoute)

	assert.Equal(t, "17", res.Record.User)
	assert.True(t, res.Record.Defined)
	assert.Equal(t, 1.0, res.Record.Jaccard)
	assert.Equal(t, 1000, res.Record.LengthReal)
	assert.Equal(t, 1000, res.Record.LengthCalc)
	assert.Equal(t, 0, res.Record.LengthDif)

	exp := res.RouteExport()
	assert.Equal(t, res.Reconstruction.ObservedRoute, exp.Observed)
	assert.Len(t, exp.Stops, 2)
}

func TestPipelineSingleStay(t *testing.T) {
	raw := commuteFixes("3")[1:] // never leaves node 2
	res, err := newTestPipeline(lineEngine(t)).Compare(context.Background(), "3", raw)
	require.NoError(t, err)

	assert.Len(t, res.Stops, 1)
	assert.False(t, res.Record.Defined)
	assert.Equal(t, metrics.UNDEFINED_JACCARD, res.Record.JaccardString())
	assert.Equal(t, 0, res.Record.LengthReal)
	assert.Equal(t, 0, res.Record.LengthCalc)
	assert.Equal(t, 0, res.Reconstruction.Legs)

	require.NotNil(t, res.Warning)
	assert.Equal(t, metrics.STAGE_DETECT, res.Warning.Stage)
	assert.Equal(t, "3", res.Warning.User)
}

func TestPipelineCompareFailures(t *testing.T) {
	failing := &fakeRoadGraph{
		coords: [][2]float64{{45.46, 9.19}, {45.465, 9.195}, {45.47, 9.20}},
		failOn: map[[2]da.Index]error{{0, 2}: routing.ErrNoPath},
	}

	testCases := []struct {
		name      string
		roadGraph routing.RoadGraph
		raw       []*da.GPSPoint
		wantStage metrics.Stage
		wantErr   error
	}{
		{
			name:      "no fixes",
			roadGraph: newFakeRoadGraph(),
			raw:       nil,
			wantStage: metrics.STAGE_CLEAN,
			wantErr:   preprocessor.ErrEmptyTrajectory,
		},
		{
			name:      "unreachable stop",
			roadGraph: failing,
			raw:       commuteFixes("9"),
			wantStage: metrics.STAGE_ROUTE,
			wantErr:   routing.ErrNoPath,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPipeline(tt.roadGraph).Compare(context.Background(), "9", tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tt.wantStage, stageErr.Stage)

			failure := stageErr.Failure()
			assert.Equal(t, "9", failure.User)
			assert.Equal(t, tt.wantStage, failure.Stage)
			assert.NotEmpty(t, failure.Reason)
		})
	}
}
