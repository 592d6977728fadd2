// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/api"
	"github.com/garyellow/strcheck/internal/buildinfo"
	"github.com/garyellow/strcheck/internal/charset"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/metrics"
	"github.com/garyellow/strcheck/internal/ratelimit"
	"github.com/garyellow/strcheck/internal/webhook"
)

// Self-check corpus size per alphabet.
const (
	selfCheckCases  = 200
	selfCheckMaxLen = 32
	selfCheckSeed   = 1
)

// readiness is the outcome of the startup self-check.
type readiness struct {
	ready  bool
	reason string
}

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	analyzer       *analyzer.Service
	webhookHandler *webhook.Handler // nil when the LINE bot is disabled
	userLimiter    *ratelimit.KeyedLimiter
	router         *gin.Engine
	server         *http.Server
	readiness      atomic.Pointer[readiness]
	wg             sync.WaitGroup // background jobs
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterstackToken: cfg.BetterStackToken,
	})

	log = log.WithField("service", "strcheck").WithField("version", buildinfo.String())
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog calls get the same handler chain, including context values.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.Info("Better Stack logging enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	gin.SetMode(gin.ReleaseMode)
	app, err := newApplication(cfg, log, registry)
	if err != nil {
		return nil, err
	}

	log.Info("Initialization complete")
	return app, nil
}

// newApplication wires services and routes without touching process state.
func newApplication(cfg *config.Config, log *logger.Logger, registry *prometheus.Registry) (*Application, error) {
	m := metrics.New(registry)

	svc, err := analyzer.New(cfg.Check, m, log)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	app := &Application{
		cfg:      cfg,
		logger:   log,
		metrics:  m,
		registry: registry,
		analyzer: svc,
	}
	app.readiness.Store(&readiness{reason: "self-check pending"})

	if cfg.Bot.Enabled() {
		app.userLimiter = ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
			Name:          "user",
			Burst:         cfg.Bot.UserRateLimitBurst,
			RefillPerSec:  cfg.Bot.UserRateLimitRefillPerSec,
			CleanupPeriod: config.RateLimiterCleanupInterval,
			IdleTTL:       config.RateLimiterIdleTTL,
			Metrics:       m,
		})

		app.webhookHandler, err = webhook.NewHandler(webhook.HandlerConfig{
			BotConfig:   cfg.Bot,
			Analyzer:    svc,
			Metrics:     m,
			Logger:      log,
			UserLimiter: app.userLimiter,
		})
		if err != nil {
			app.userLimiter.Stop()
			return nil, fmt.Errorf("webhook: %w", err)
		}
		log.Info("LINE bot enabled")
	}

	app.router = app.newRouter()
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gzhttp.GzipHandler(app.router),
		ReadHeaderTimeout: config.HTTPReadHeader,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	return app, nil
}

func (a *Application) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(a.logger))

	router.GET("/", a.index)
	router.GET("/livez", a.livenessCheck)
	router.HEAD("/livez", a.livenessCheck)
	router.GET("/readyz", a.readinessCheck)
	router.HEAD("/readyz", a.readinessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsAuthEnabled, a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	api.NewHandler(a.analyzer, a.metrics, a.logger).Register(&router.RouterGroup)

	if a.webhookHandler != nil {
		router.POST("/webhook", a.readinessMiddleware(), a.webhookHandler.Handle)
	}

	return router
}

func (a *Application) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "strcheck",
		"version": buildinfo.String(),
		"docs":    "/api/v1/strategies",
	})
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	state := a.readiness.Load()
	if !state.ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": state.reason,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"features": gin.H{
			"line_bot": a.webhookHandler != nil,
		},
	})
}

// readinessMiddleware rejects webhook requests with 503 until the self-check
// passes. LINE retries failed deliveries.
func (a *Application) readinessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if state := a.readiness.Load(); !state.ready {
			c.Header("Retry-After", "10")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": state.reason,
			})
			return
		}
		c.Next()
	}
}

// Run starts the HTTP server and background jobs, then blocks until
// SIGINT/SIGTERM and shuts down gracefully.
//
// Background jobs are stopped and awaited before the server and its
// dependencies are closed.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.startBackgroundJobs(ctx)
	errCh := a.startHTTPServer()

	select {
	case sig := <-a.waitForShutdownSignal():
		a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errCh:
		a.logger.WithError(err).Error("HTTP server error")
		cancel()
		a.wg.Wait()
		_ = a.shutdown()
		return err
	}

	cancel()

	a.logger.Info("Waiting for background jobs to finish...")
	start := time.Now()
	a.wg.Wait()
	a.logger.WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("All background jobs completed")

	return a.shutdown()
}

func (a *Application) startBackgroundJobs(ctx context.Context) {
	a.wg.Go(func() {
		a.selfCheck(ctx)
	})
}

// startHTTPServer starts the HTTP server in a goroutine. The returned channel
// receives an error if the server stops for any reason other than Shutdown.
func (a *Application) startHTTPServer() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func (a *Application) waitForShutdownSignal() <-chan os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return quit
}

// shutdown stops accepting requests, drains in-flight webhook events, then
// releases the rate limiter and flushes logs.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if a.webhookHandler != nil {
		a.logger.Info("Waiting for webhook events to complete...")
		if err := a.webhookHandler.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("Webhook handler shutdown timeout")
		}
	}

	if a.userLimiter != nil {
		a.userLimiter.Stop()
	}

	a.logger.Info("Shutdown complete")
	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("flush logs: %w", err)
	}
	return nil
}

// selfCheck cross-checks every strategy on a generated corpus for each
// configured alphabet and marks the service ready only if they all agree.
func (a *Application) selfCheck(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, config.SelfCheck)
	defer cancel()

	start := time.Now()
	maxLen := min(a.cfg.Check.MaxInputRunes, selfCheckMaxLen)

	for _, name := range a.cfg.Check.VerifyAlphabets {
		alphabet, err := charset.Lookup(name)
		if err != nil {
			a.markNotReady("self-check failed")
			a.logger.WithError(err).Error("Self-check failed")
			return
		}

		cases := analyzer.GenerateCorpus(alphabet, selfCheckCases, maxLen, selfCheckSeed)
		report, err := a.analyzer.Verify(ctx, alphabet.Name, cases)
		if err != nil {
			a.markNotReady("self-check failed")
			a.logger.WithError(err).WithField("alphabet", alphabet.Name).Error("Self-check failed")
			return
		}
		if !report.OK() {
			a.markNotReady("strategies disagree")
			a.logger.WithField("alphabet", alphabet.Name).
				WithField("disagreements", len(report.Disagreements)).
				Error("Self-check found strategy disagreements")
			return
		}
	}

	a.readiness.Store(&readiness{ready: true})
	a.logger.WithField("alphabets", a.cfg.Check.VerifyAlphabets).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("Self-check passed; service ready")
}

func (a *Application) markNotReady(reason string) {
	a.readiness.Store(&readiness{reason: reason})
}
