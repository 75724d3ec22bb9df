package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	READ_HEADER_TIMEOUT = 10 * time.Second
	IDLE_TIMEOUT        = 120 * time.Second
	SHUTDOWN_TIMEOUT    = 15 * time.Second
)

type Config struct {
	Port int
	// upper bound on handling one request
	Timeout time.Duration
}

// New. http server on config.Port whose request contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	if config.Timeout > 0 {
		handler = http.TimeoutHandler(handler, config.Timeout, `{"error":{"code":"Service Unavailable","message":"request timed out"}}`)
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: READ_HEADER_TIMEOUT,
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + READ_HEADER_TIMEOUT,
		IdleTimeout:       IDLE_TIMEOUT,
	}
}
