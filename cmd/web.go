/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/analyzer"
	"github.com/lablens/lablens/db"
	"github.com/lablens/lablens/logging"
	"github.com/lablens/lablens/routes"
	"github.com/lablens/lablens/static"
	"github.com/lablens/lablens/templates"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string for the optional event store",
		},
		&cli.StringFlag{
			Name:    "session-secret",
			Sources: cli.EnvVars("SESSION_SECRET"),
			Usage:   "secret used to sign CSRF tokens",
		},
		&cli.FloatFlag{
			Name:  "rate-limit",
			Value: 10,
			Usage: "analysis and message requests allowed per IP per minute",
		},
		&cli.BoolFlag{
			Name:    "trust-proxy",
			Sources: cli.EnvVars("LABLENS_TRUST_PROXY"),
			Usage:   "rate limit on X-Forwarded-For/X-Real-IP (only behind a proxy that sets them)",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (for templates)",
		},
	}, analyzerFlags()...),
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) (err error) {
	if err := logging.SetLevel(cmd.String("log-level")); err != nil {
		return err
	}

	base, err := analyzerConfig(cmd)
	if err != nil {
		return err
	}

	var opts []analyzer.Option

	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		appLogger.Info("Connecting to database")

		if err := db.Init(ctx, databaseURL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		appLogger.Info("Syncing database schema")

		if err := db.SyncSchema(ctx, databaseURL); err != nil {
			return fmt.Errorf("failed to sync schema: %w", err)
		}

		opts = append(opts, analyzer.WithRecorder(db.EventStore{}))
	} else {
		appLogger.Info("No database configured, history is disabled")
	}

	if !base.HasCredentials() {
		appLogger.Warn("No credentials for provider, analyses will use sample data", "provider", base.Provider)
	}

	f, err := newServer(base, analyzer.New(opts...), serverOptions{
		SessionSecret: cmd.String("session-secret"),
		RateLimit:     cmd.Float("rate-limit"),
		TrustProxy:    cmd.Bool("trust-proxy"),
		Dev:           cmd.Bool("dev"),
	})
	if err != nil {
		return err
	}

	port := cmd.String("port")
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: base.EffectiveTimeout() + 30*time.Second,
		ErrorLog:     requestStdLogger,
	}

	appLogger.Info("Starting web server", "port", port, "provider", base.Provider, "model", base.EffectiveModel())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}

	return nil
}

type serverOptions struct {
	SessionSecret string
	RateLimit     float64
	TrustProxy    bool
	Dev           bool
}

// newServer wires middleware and routes around the analyzer.
func newServer(base analyzer.Config, a *analyzer.Analyzer, opts serverOptions) (*flamego.Flame, error) {
	if opts.Dev {
		flamego.SetEnv(flamego.EnvTypeDev)
	} else {
		flamego.SetEnv(flamego.EnvTypeProd)
	}

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(session.Sessioner(session.Options{
		Cookie: session.CookieOptions{
			Name:     "lablens_session",
			HTTPOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}))
	f.Use(routes.RequestLogger)
	f.Use(csrf.Csrfer(csrf.Options{
		Secret: opts.SessionSecret,
	}))
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
	}))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.Services(a, base))

	limiter := routes.NewIPRateLimiter(opts.RateLimit, 3)
	limiter.TrustProxy = opts.TrustProxy

	f.Get("/healthz", routes.Healthz)
	f.Get("/metrics", routes.Metrics)
	f.Get("/api/models", routes.APIModels)
	f.Get("/api/panel", routes.APIPanel)

	f.Group("", func() {
		f.Get("/", routes.Index)
		f.Post("/analyze", csrf.Validate, limiter.Handler(), routes.Analyze)
		f.Get("/results", routes.Results)
		f.Post("/results/clear", csrf.Validate, routes.ClearResults)
		f.Post("/messages/patient", csrf.Validate, limiter.Handler(), routes.PatientMessage)
		f.Post("/messages/staff", csrf.Validate, limiter.Handler(), routes.StaffMessage)
		f.Get("/settings", routes.Settings)
		f.Post("/settings", csrf.Validate, routes.UpdateSettings)
		f.Get("/history", routes.History)
	}, routes.CSRFInjector(), routes.FlashInjector(), routes.SettingsInjector())

	configureEmptyNotFoundHandler(f)

	return f, nil
}

// configureEmptyNotFoundHandler returns bare 404s for unknown paths.
func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}
