package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hospiops/facilityhub/internal/config"
	"github.com/hospiops/facilityhub/internal/domain/audit"
	"github.com/hospiops/facilityhub/internal/domain/booking"
	"github.com/hospiops/facilityhub/internal/domain/dashboard"
	"github.com/hospiops/facilityhub/internal/domain/hygiene"
	"github.com/hospiops/facilityhub/internal/domain/identity"
	"github.com/hospiops/facilityhub/internal/domain/incident"
	"github.com/hospiops/facilityhub/internal/domain/maintenance"
	"github.com/hospiops/facilityhub/internal/domain/qhsedoc"
	"github.com/hospiops/facilityhub/internal/domain/risk"
	"github.com/hospiops/facilityhub/internal/domain/training"
	"github.com/hospiops/facilityhub/internal/domain/visitor"
	"github.com/hospiops/facilityhub/internal/platform/alerts"
	"github.com/hospiops/facilityhub/internal/platform/auth"
	"github.com/hospiops/facilityhub/internal/platform/backend"
	"github.com/hospiops/facilityhub/internal/platform/db"
	"github.com/hospiops/facilityhub/internal/platform/middleware"
	"github.com/hospiops/facilityhub/internal/platform/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "facility-server",
		Short: "Hospital facility management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sessionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the facility API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage persisted sessions",
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions and stale alert journal rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := auth.NewPGSessionStoreFromPool(pool, cfg.SessionTTL())
			if err := store.Cleanup(ctx); err != nil {
				return err
			}
			journal := alerts.NewPGJournalFromPool(pool)
			if err := journal.Cleanup(ctx, cfg.SessionTTL()); err != nil {
				return err
			}
			logger.Info().Msg("expired sessions and alert journal rows purged")
			return nil
		},
	}
	cmd.AddCommand(purgeCmd)
	return cmd
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Local state tables (sessions, alert journal)
	for _, ddl := range []string{auth.MigrationSessions, alerts.MigrationAlertJournal} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply local migrations")
		}
	}

	metrics := telemetry.New("facility_server")

	// Upstream facility backend client
	backendOpts := []backend.Option{backend.WithObserver(metrics)}
	if cfg.BackendToken != "" {
		backendOpts = append(backendOpts, backend.WithToken(func() string { return cfg.BackendToken }))
	}
	client := backend.New(cfg.BackendBaseURL, cfg.BackendRequestTimeout(), backendOpts...)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("2M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(metrics.Middleware())

	// Health and metrics, outside authentication
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", metrics.Handler())

	// API group
	sessions := auth.NewPGSessionStoreFromPool(pool, cfg.SessionTTL())
	api := e.Group("/api/v1")
	if cfg.IsDev() {
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			SigningKey: []byte(cfg.AuthSigningKey),
			Sessions:   sessions,
		}))
	}
	api.Use(middleware.Audit(logger))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RequestTimeout(cfg.BackendRequestTimeout() + 5*time.Second))

	// Alert engine
	journal := alerts.NewPGJournalFromPool(pool)
	alertMgr := alerts.NewManager(journal, cfg.AlertWindowDays, alerts.WithObserver(metrics))

	// -- Domain wiring --

	identitySvc := identity.NewService(identity.NewHTTPUserRepository(client))
	identity.NewHandler(identitySvc).RegisterRoutes(api)

	incidentSvc := incident.NewService(incident.NewHTTPRepository(client), identitySvc)
	incident.NewHandler(incidentSvc, incident.WithExportObserver(metrics)).RegisterRoutes(api)

	qhsedocSvc := qhsedoc.NewService(qhsedoc.NewHTTPRepository(client), cfg.AlertWindowDays)
	qhsedoc.NewHandler(qhsedocSvc, alertMgr, qhsedoc.WithExportObserver(metrics)).RegisterRoutes(api)

	riskSvc := risk.NewService(risk.NewHTTPRepository(client))
	risk.NewHandler(riskSvc).RegisterRoutes(api)

	auditSvc := audit.NewService(audit.NewHTTPRepository(client))
	audit.NewHandler(auditSvc).RegisterRoutes(api)

	trainingSvc := training.NewService(
		training.NewHTTPRepository(client),
		training.NewHTTPCompetencyRepository(client),
		cfg.AlertWindowDays,
	)
	training.NewHandler(trainingSvc).RegisterRoutes(api)

	maintenanceSvc := maintenance.NewService(
		maintenance.NewHTTPRepository(client),
		maintenance.NewHTTPEquipmentRepository(client),
		identitySvc,
	)
	maintenance.NewHandler(maintenanceSvc).RegisterRoutes(api)

	hygieneSvc := hygiene.NewService(
		hygiene.NewHTTPCycleRepository(client),
		hygiene.NewHTTPWasteRepository(client),
		hygiene.NewHTTPLaundryRepository(client),
	)
	hygiene.NewHandler(hygieneSvc).RegisterRoutes(api)

	bookingSvc := booking.NewService(booking.NewHTTPRepository(client))
	booking.NewHandler(bookingSvc).RegisterRoutes(api)

	visitorSvc := visitor.NewService(visitor.NewHTTPRepository(client), identitySvc)
	visitor.NewHandler(visitorSvc).RegisterRoutes(api)

	dashboardSvc := dashboard.NewService(
		incidentSvc, maintenanceSvc, bookingSvc, qhsedocSvc,
		riskSvc, auditSvc, trainingSvc, hygieneSvc, visitorSvc,
		logger,
	)
	dashboard.NewHandler(dashboardSvc, dashboard.WithExportObserver(metrics)).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
