package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOsmXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="45.0" lon="9.0"/>
  <node id="2" lat="45.0" lon="9.001"/>
  <node id="3" lat="45.0" lon="9.002"/>
  <node id="4" lat="45.001" lon="9.002"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="11">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
    <tag k="oneway" v="yes"/>
  </way>
</osm>`

func TestNewEngine(t *testing.T) {
	dir := t.TempDir()
	mapFile := filepath.Join(dir, "area.osm")
	require.NoError(t, os.WriteFile(mapFile, []byte(testOsmXML), 0644))

	cfg := util.Config{
		GraphArea:     "test",
		GraphFile:     mapFile,
		Mode:          "drive",
		Weight:        "length",
		PathCacheSize: 16,
		RouteTimeout:  time.Second,
	}
	e, err := NewEngine(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	re := e.GetRoutingEngine()
	// the dead end reached through the oneway is not strongly connected
	assert.Equal(t, 2, re.GetGraph().NumberOfVertices())

	s, err := re.NearestNode(45.0, 9.0)
	require.NoError(t, err)
	tgt, err := re.NearestNode(45.0005, 9.0021)
	require.NoError(t, err)

	length, err := re.ShortestPathLength(context.Background(), s, tgt)
	require.NoError(t, err)
	// 0.002 degree of longitude at latitude 45
	assert.InDelta(t, 157, length, 1)
}

func TestNewEngineErrors(t *testing.T) {
	g := datastructure.NewGraph([]*datastructure.Vertex{}, [][]*datastructure.OutEdge{}, [][]*datastructure.InEdge{})

	testCases := []struct {
		name   string
		run    func() error
		wantIs error
	}{
		{
			name: "unknown weight",
			run: func() error {
				_, err := NewEngineDirect(g, "fuel", 16, time.Second, zap.NewNop())
				return err
			},
			wantIs: util.ErrBadParamInput,
		},
		{
			name: "empty graph",
			run: func() error {
				_, err := NewEngineDirect(g, "length", 16, time.Second, zap.NewNop())
				return err
			},
			wantIs: util.ErrBadParamInput,
		},
		{
			name: "unknown mode",
			run: func() error {
				_, err := NewEngine(context.Background(), util.Config{Mode: "boat", GraphFile: "x.osm"}, zap.NewNop())
				return err
			},
			wantIs: util.ErrBadParamInput,
		},
		{
			name: "missing map file",
			run: func() error {
				_, err := NewEngine(context.Background(), util.Config{Mode: "drive", Weight: "length",
					GraphFile: filepath.Join(t.TempDir(), "missing.osm.pbf")}, zap.NewNop())
				return err
			},
			wantIs: os.ErrNotExist,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			if tt.wantIs == util.ErrBadParamInput {
				assert.ErrorIs(t, util.ErrorCode(err), util.ErrBadParamInput)
			} else {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}
