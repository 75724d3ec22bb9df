package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, ReadConfig(v, writeConfig(t, "graph_file: ./data/milano.osm.pbf\n")))

	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.NumOfProcess)
	assert.Equal(t, "drive", cfg.Mode)
	assert.Equal(t, "length", cfg.Weight)
	assert.Equal(t, 500.0, cfg.MaxSpeedKmh)
	assert.Equal(t, 0.1, cfg.CompressionRadiusKm)
	assert.Equal(t, 0.3, cfg.StopRadiusFactor)
	assert.Equal(t, 10.0, cfg.MinStopMinutes)
	assert.Equal(t, 0.2, cfg.SpatialRadiusKm)
	assert.Equal(t, 30*time.Second, cfg.RouteTimeout)
	assert.Equal(t, 1<<16, cfg.PathCacheSize)
	assert.Equal(t, ",", cfg.Separator)
	assert.Equal(t, 1.0, cfg.SampleFraction)
	assert.Equal(t, 6060, cfg.ApiPort)
	assert.Equal(t, 60*time.Second, cfg.ApiTimeout)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigSources(t *testing.T) {
	t.Setenv("PATHCOMPARE_NUM_OF_PROCESS", "16")

	v := viper.New()
	require.NoError(t, ReadConfig(v, writeConfig(t, `
graph_file: ./data/roma.osm.pbf
graph_area: Roma
num_of_process: 2
dataset_format: rome
sample_fraction: 0.1
route_timeout: 5s
metrics_addr: ":9100"
`)))

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "Roma", cfg.GraphArea)
	assert.Equal(t, 16, cfg.NumOfProcess, "env overrides the config file")
	assert.Equal(t, "rome", cfg.DatasetFormat)
	assert.Equal(t, 0.1, cfg.SampleFraction)
	assert.Equal(t, 5*time.Second, cfg.RouteTimeout)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		config string
	}{
		{name: "missing graph file", config: "graph_area: Milano\n"},
		{name: "unknown mode", config: "graph_file: a.pbf\nmode: boat\n"},
		{name: "unknown weight", config: "graph_file: a.pbf\nweight: hops\n"},
		{name: "sample fraction above one", config: "graph_file: a.pbf\nsample_fraction: 1.5\n"},
		{name: "zero workers", config: "graph_file: a.pbf\nnum_of_process: 0\n"},
		{name: "separator of two runes", config: "graph_file: a.pbf\nseparator: ';;'\n"},
		{name: "metrics address without port", config: "graph_file: a.pbf\nmetrics_addr: localhost\n"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			require.NoError(t, ReadConfig(v, writeConfig(t, tt.config)))
			_, err := LoadConfig(v)
			require.Error(t, err)
			assert.Equal(t, ErrBadParamInput, ErrorCode(err))
		})
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	v := viper.New()
	err := ReadConfig(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRoundToInt(t *testing.T) {
	testCases := []struct {
		val  float64
		want int
	}{
		{100.5, 100},
		{101.5, 102},
		{99.4, 99},
		{99.6, 100},
		{0, 0},
	}
	for _, tt := range testCases {
		assert.Equal(t, tt.want, RoundToInt(tt.val), "%v", tt.val)
	}
}

func TestRoundHalfEven(t *testing.T) {
	testCases := []struct {
		val  float64
		want float64
	}{
		{0.0625, 0.062},
		{0.3125, 0.312},
		{0.5625, 0.562},
		{0.8125, 0.812},
		{0.1875, 0.188},
		{0.28571, 0.286},
		{1, 1},
	}
	for _, tt := range testCases {
		assert.Equal(t, tt.want, RoundHalfEven(tt.val, 3), "%v", tt.val)
	}
}
