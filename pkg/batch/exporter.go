package batch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const METRICS_READ_HEADER_TIMEOUT = 5 * time.Second

// MetricsExporter. serves the collectors of a registry on /metrics while a batch runs.
type MetricsExporter struct {
	server *http.Server
	logger *zap.Logger
}

func NewMetricsExporter(addr string, gatherer prometheus.Gatherer, logger *zap.Logger) *MetricsExporter {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &MetricsExporter{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: METRICS_READ_HEADER_TIMEOUT,
		},
		logger: logger,
	}
}

// Start. bind the listener and serve in the background. returns the bound address.
func (m *MetricsExporter) Start() (net.Addr, error) {
	ln, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("metrics exporter stopped", zap.Error(err))
		}
	}()
	m.logger.Info("serving batch metrics", zap.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

func (m *MetricsExporter) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}
