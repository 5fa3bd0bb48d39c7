package http_router

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lintang-b-s/osm-places/docs"
	"github.com/lintang-b-s/osm-places/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/osm-places/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/osm-places/pkg/http/server"
	"github.com/lintang-b-s/osm-places/pkg/metrics"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the routed handler with the full middleware chain.
func (api *API) Handler(
	placeService controllers.PlaceService,
	home controllers.HomePage,
	baseURL string,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "")

	placesRoutes := controllers.New(placeService, home, baseURL, api.log)
	placesRoutes.Routes(group)

	group.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	group.Handler(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)

	router.NotFound = http.HandlerFunc(placesRoutes.NotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(placesRoutes.MethodNotAllowedResponse)
	// OPTIONS without a cors preflight still gets an empty 204
	router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})

	return alice.New(api.recoverPanic, corsHandler.Handler, RealIP, Heartbeat("healthz"),
		Logger(api.log), metrics.Middleware).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	placeService controllers.PlaceService,
	home controllers.HomePage,
	baseURL string,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(placeService, home, baseURL), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	errC := make(chan error, 1)
	go func() {
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		api.log.Info("shutting down API")
		return srv.Shutdown(shutdownCtx)
	}
}
