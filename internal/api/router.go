package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hirepipe/ats/internal/api/handler"
	"github.com/hirepipe/ats/internal/api/middleware"
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth       ports.AuthService
	Sessions   ports.SessionService
	Jobs       ports.JobService
	Candidates ports.CandidateService
	Reset      ports.ResetService
}

// Options tune the router. The zero value serves metrics from the default
// Prometheus registry and reports ready without checking anything.
type Options struct {
	Cookie    middleware.SessionCookie
	Readiness map[string]handler.Pinger

	// Registerer receives the HTTP request metrics, Gatherer backs /metrics.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "ats",
		Registerer: registerer,
		Skipper:    skipProbes,
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(httpMetrics)
	e.Use(middleware.Session(svc.Sessions, svc.Auth, opts.Cookie, log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.Sessions, opts.Cookie, log)
	jobHandler := handler.NewJobHandler(svc.Jobs)
	candidateHandler := handler.NewCandidateHandler(svc.Candidates)
	resetHandler := handler.NewResetHandler(svc.Reset)

	signedIn := middleware.RequireRole()
	managers := middleware.RequireRole(domain.RoleManager)
	recruiters := middleware.RequireRole(domain.RoleRecruiter)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/me", authHandler.Me, signedIn)

	// --- Jobs ---
	api.GET("/jobs", jobHandler.List)
	api.POST("/jobs", jobHandler.Create, managers)
	api.GET("/jobs/:jobId/candidates", candidateHandler.ListByJob)
	api.GET("/jobs/:jobId/export", jobHandler.Export, signedIn)

	// --- Candidates ---
	api.POST("/candidates", candidateHandler.Create, recruiters)
	api.PATCH("/candidates/:id/stage", candidateHandler.UpdateStage, signedIn)
	api.GET("/candidates/:id/history", candidateHandler.History, signedIn)

	// --- Admin ---
	api.POST("/reset", resetHandler.Reset, managers)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func skipProbes(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// requestLogger emits one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipProbes,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
