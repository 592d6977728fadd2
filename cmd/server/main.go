// Package main provides the strcheck server entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/garyellow/strcheck/internal/app"
	"github.com/garyellow/strcheck/internal/buildinfo"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/sentry"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		Release:          buildinfo.Version,
		SampleRate:       cfg.SentrySampleRate,
		TracesSampleRate: cfg.SentryTracesSampleRate,
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Sentry disabled: %v\n", err)
	}
	defer sentry.Flush(sentryFlushTimeout)

	application, err := app.Initialize(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Server stopped with error: %v\n", err)
		return 1
	}
	return 0
}
