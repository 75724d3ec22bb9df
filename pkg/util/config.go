package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config. every option recognized by the batch runner and the api server.
type Config struct {
	NumOfProcess int    `mapstructure:"num_of_process" validate:"min=1"`
	GraphArea    string `mapstructure:"graph_area"`
	GraphFile    string `mapstructure:"graph_file" validate:"required"`
	Mode         string `mapstructure:"mode" validate:"oneof=drive walk bike all"`
	Weight       string `mapstructure:"weight" validate:"oneof=length travel_time"`

	MaxSpeedKmh         float64 `mapstructure:"max_speed_kmh" validate:"gt=0"`
	CompressionRadiusKm float64 `mapstructure:"compression_radius_km" validate:"gte=0"`
	StopRadiusFactor    float64 `mapstructure:"stop_radius_factor" validate:"gte=0"`
	MinStopMinutes      float64 `mapstructure:"min_stop_minutes" validate:"gte=0"`
	SpatialRadiusKm     float64 `mapstructure:"spatial_radius_km" validate:"gt=0"`
	NoDataForMinutes    float64 `mapstructure:"no_data_for_minutes" validate:"gte=0"`

	RouteTimeout  time.Duration `mapstructure:"route_timeout"`
	PathCacheSize int           `mapstructure:"path_cache_size" validate:"min=1"`

	Dataset        string  `mapstructure:"dataset"`
	DatasetFormat  string  `mapstructure:"dataset_format" validate:"oneof=generic rome sanfrancisco"`
	Separator      string  `mapstructure:"separator" validate:"len=1"`
	Strict         bool    `mapstructure:"strict"`
	SampleFraction float64 `mapstructure:"sample_fraction" validate:"gt=0,lte=1"`
	SampleSeed     uint64  `mapstructure:"sample_seed"`

	OutputDir string `mapstructure:"output_dir"`
	RoutesDir string `mapstructure:"routes_dir"`
	// host:port serving /metrics while a batch runs, empty disables it
	MetricsAddr string `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`

	ApiPort    int           `mapstructure:"api_port" validate:"min=1,max=65535"`
	ApiTimeout time.Duration `mapstructure:"api_timeout"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("num_of_process", 4)
	v.SetDefault("graph_area", "")
	v.SetDefault("mode", "drive")
	v.SetDefault("weight", "length")

	v.SetDefault("max_speed_kmh", 500.0)
	v.SetDefault("compression_radius_km", 0.1)
	v.SetDefault("stop_radius_factor", 0.3)
	v.SetDefault("min_stop_minutes", 10.0)
	v.SetDefault("spatial_radius_km", 0.2)
	v.SetDefault("no_data_for_minutes", 0.0)

	v.SetDefault("route_timeout", "30s")
	v.SetDefault("path_cache_size", 1<<16)

	v.SetDefault("dataset_format", "generic")
	v.SetDefault("separator", ",")
	v.SetDefault("strict", false)
	v.SetDefault("sample_fraction", 1.0)
	v.SetDefault("sample_seed", 1)

	v.SetDefault("output_dir", ".")
	v.SetDefault("routes_dir", "")
	v.SetDefault("metrics_addr", "")

	v.SetDefault("api_port", 6060)
	v.SetDefault("api_timeout", "60s")

	v.SetDefault("log_level", "info")
}

// ReadConfig. read ./data/config.yaml or ./config.yaml if present, then PATHCOMPARE_* env vars.
// a missing config file is not an error.
func ReadConfig(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("PATHCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./data/")
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, WrapErrorf(err, ErrBadParamInput, "invalid config")
	}
	return cfg, nil
}
