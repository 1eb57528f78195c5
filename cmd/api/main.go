package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"newshub/internal/config"
	hhttp "newshub/internal/handler/http"
	"newshub/internal/handler/http/middleware"
	hnews "newshub/internal/handler/http/news"
	"newshub/internal/handler/http/requestid"
	"newshub/internal/infra/newsapi"
	"newshub/internal/infra/newsclient"
	"newshub/internal/observability/logging"
	"newshub/internal/observability/tracing"
	"newshub/internal/resilience/circuitbreaker"
	"newshub/internal/usecase/news"
	"newshub/internal/web"
	"newshub/pkg/security/csp"
)

// @title           Newshub API
// @version         1.0
// @description     Credential-hiding proxy in front of NewsAPI plus a server-rendered news page.
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /

const (
	maxRequestBodyBytes = 1 << 20
	shutdownTimeout     = 10 * time.Second
)

func main() {
	loadEnvFile()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	tp := initTracing()

	components := setupServer(logger, cfg)
	if err := runServer(logger, cfg, components, tp); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadEnvFile reads a local .env if present. Real environment variables win.
func loadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.Any("error", err))
	}
}

func initLogger(cfg *config.ServerConfig) *slog.Logger {
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)
	return logger
}

// initTracing installs an in-process tracer provider so every request gets a
// trace ID and inbound traceparent headers are honoured. No exporter is
// configured.
func initTracing() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp
}

// ServerComponents holds the wired handler and the pieces health reporting
// needs.
type ServerComponents struct {
	Handler http.Handler
	Breaker *circuitbreaker.CircuitBreaker
}

func setupServer(logger *slog.Logger, cfg *config.ServerConfig) *ServerComponents {
	opts := []newsapi.Option{
		newsapi.WithHTTPClient(&http.Client{Timeout: cfg.NewsAPI.Timeout}),
		newsapi.WithMetrics(newsapi.NewPrometheusMetrics()),
	}
	var breaker *circuitbreaker.CircuitBreaker
	if cfg.CircuitBreakerEnabled {
		breaker = circuitbreaker.New(newsapi.BreakerConfig())
		opts = append(opts, newsapi.WithCircuitBreaker(breaker))
	} else {
		logger.Warn("newsapi circuit breaker is disabled")
	}
	provider := newsapi.NewClient(cfg.NewsAPI, opts...)

	credential := config.CredentialFromEnv()
	if credential() == "" {
		logger.Warn("NEWS_API_KEY is not set; /api/news will answer 500 until it is",
			slog.String("env", config.CredentialEnv))
	}

	svc := &news.Service{
		Provider:   provider,
		Credential: credential,
		Options:    news.Options{Country: cfg.Country, PageSize: cfg.PageSize},
		Logger:     logger,
	}

	proxy, err := newsclient.New(cfg.ProxyBaseURL,
		newsclient.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		newsclient.WithUserAgent("newshub-web/"+cfg.Version),
	)
	if err != nil {
		logger.Error("invalid proxy base URL", slog.Any("error", err))
		os.Exit(1)
	}

	mux := setupRoutes(logger, cfg, svc, proxy, breaker)
	return &ServerComponents{
		Handler: applyMiddleware(logger, cfg, mux),
		Breaker: breaker,
	}
}

func setupRoutes(
	logger *slog.Logger,
	cfg *config.ServerConfig,
	svc *news.Service,
	proxy *newsclient.Client,
	breaker *circuitbreaker.CircuitBreaker,
) *http.ServeMux {
	mux := http.NewServeMux()

	hnews.Register(mux, svc, logger)
	web.Register(mux, web.Handler{News: proxy, Location: cfg.Location, Logger: logger})

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:    cfg.Version,
		Credential: svc.Credential,
		Breaker:    breaker,
		CSPEnabled: cfg.CSPEnabled,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Credential: svc.Credential})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return mux
}

// applyMiddleware wraps the mux. Everything between tracing and the mux
// passes the request through unchanged, so the pattern ServeMux records is
// visible to both tracing and metrics.
func applyMiddleware(logger *slog.Logger, cfg *config.ServerConfig, mux http.Handler) http.Handler {
	cspMiddleware := hhttp.Middleware(func(next http.Handler) http.Handler { return next })
	if cfg.CSPEnabled {
		cspMiddleware = middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
			Enabled:       true,
			DefaultPolicy: web.CSPPolicy(),
			PathPolicies: map[string]*csp.CSPBuilder{
				"/api/": csp.StrictPolicy(),
			},
		}).Middleware()
	} else {
		logger.Warn("CSP is disabled")
	}

	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Timeout(cfg.RequestTimeout),
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxRequestBodyBytes),
		cspMiddleware,
		hhttp.MetricsMiddleware,
	)
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServer(
	logger *slog.Logger,
	cfg *config.ServerConfig,
	components *ServerComponents,
	tp *sdktrace.TracerProvider,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version),
			slog.String("proxy_base_url", cfg.ProxyBaseURL),
			slog.Bool("circuit_breaker", components.Breaker != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return tp.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
