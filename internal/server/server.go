// Package server assembles the HTTP router and runs it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/georgemunganga/vendor-api/internal/config"
	"github.com/georgemunganga/vendor-api/internal/modules/auth"
	"github.com/georgemunganga/vendor-api/internal/platform/httpx"
	"github.com/georgemunganga/vendor-api/internal/platform/observability"
)

const (
	apiName    = "Vendor Management API"
	apiVersion = "1.0.0"
)

// RouteRegistrar is implemented by every module handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// NewRouter builds the router with the shared middleware chain and mounts
// the given module handlers. metrics may be nil.
func NewRouter(cfg *config.Config, log *zap.Logger, metrics *observability.Metrics, resolver *auth.Resolver, handlers ...RouteRegistrar) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(secure.New(secure.Options{
		SSLRedirect:        cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:         31536000,
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !cfg.IsProduction(),
	}).Handler)
	router.Use(httpx.CORS(cfg.CORSAllowedOrigins))
	if cfg.RateLimitPerMinute > 0 {
		router.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	}
	if cfg.MetricsEnabled && metrics != nil {
		router.Use(metrics.Middleware)
	}
	router.Use(resolver.Middleware)

	router.Get("/", index)
	router.Get("/health", health)
	if cfg.MetricsEnabled && metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusNotFound, "Route not found")
	})
	return router
}

func index(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": apiName,
		"version": apiVersion,
		"documentation": map[string]any{
			"auth": map[string]string{
				"login": "POST /api/auth/login",
			},
			"users": map[string]string{
				"register": "POST /api/users/register",
				"get":      "GET /api/users/:id",
			},
			"vendors": map[string]string{
				"getAll": "GET /api/vendors",
				"getOne": "GET /api/vendors/:id",
				"create": "POST /api/vendors",
				"update": "PUT /api/vendors/:id",
				"delete": "DELETE /api/vendors/:id",
			},
		},
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves handler on cfg.Addr until ctx is cancelled, then drains
// in-flight requests for at most cfg.AppShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		ErrorLog:     zap.NewStdLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
