package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/auth"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/configs"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/ratelimiter"
	auditHandler "github.com/hilthontt/scenario-tracker/internal/presentation/handler/audit"
	healthHandler "github.com/hilthontt/scenario-tracker/internal/presentation/handler/health"
	scenarioHandler "github.com/hilthontt/scenario-tracker/internal/presentation/handler/scenarios"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config          configs.Config
	scenarioHandler *scenarioHandler.Handler
	auditHandler    *auditHandler.Handler
	healthHandler   *healthHandler.Handler
	authenticator   *auth.Authenticator
	logger          logging.Logger
	ratelimiter     ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	scenarioHandler *scenarioHandler.Handler,
	auditHandler *auditHandler.Handler,
	healthHandler *healthHandler.Handler,
	authenticator *auth.Authenticator,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:          config,
		scenarioHandler: scenarioHandler,
		auditHandler:    auditHandler,
		healthHandler:   healthHandler,
		authenticator:   authenticator,
		logger:          logger,
		ratelimiter:     ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.corsMiddleware)
	r.Use(app.loggerMiddleware)
	r.Use(app.metricsMiddleware)
	r.Use(app.authenticator.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/scenarios", func(r chi.Router) {
			r.MethodNotAllowed(app.scenarioHandler.MethodNotAllowedHandler)

			r.Get("/", app.scenarioHandler.ListScenariosHandler)
			r.Post("/", app.scenarioHandler.CreateScenarioHandler)
			r.Get("/{id}", app.scenarioHandler.GetScenarioHandler)
			r.Put("/{id}", app.scenarioHandler.UpdateScenarioHandler)
			r.Delete("/{id}", app.scenarioHandler.DeleteScenarioHandler)

			r.Get("/{id}/audit", app.auditHandler.GetScenarioAuditHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      otelhttp.NewHandler(mux, "scenario-tracker"),
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
