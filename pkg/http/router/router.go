package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/pathcompare/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/pathcompare/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/pathcompare/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/lintang-b-s/pathcompare/docs"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			pathcompare API
//	@version		1.0
//	@description	Compares GPS trajectories with shortest paths on an openstreetmap road network.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api

// Handler. the api routes behind the middleware chain. reg receives the http collectors and is served on /metrics.
func (api *API) Handler(pathCompareService controllers.PathCompareService, reg *prometheus.Registry) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	router.GET("/doc/*any", swaggerHandler)

	group := router_helper.NewRouteGroup(router, "/api")

	pathCompareRoutes := controllers.New(pathCompareService, api.log)

	pathCompareRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, RequestID, Instrument(reg), EnforceJSONHandler,
		api.recoverPanic, Heartbeat("healthz"), Logger(api.log)}
	return alice.New(mwChain...).Then(router)
}

// Run. serve until ctx is done, then shut down gracefully.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	pathCompareService controllers.PathCompareService,
	reg *prometheus.Registry,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(pathCompareService, reg), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err

	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), http_server.SHUTDOWN_TIMEOUT)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
