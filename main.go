package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/c14220110/clinic-backend/config"
	"github.com/c14220110/clinic-backend/internal/common/middlewares"
	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/routes"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/c14220110/clinic-backend/pkg/metrics"
	"github.com/c14220110/clinic-backend/pkg/storage/mariadb"
	"github.com/c14220110/clinic-backend/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var migrate bool

	rootCmd := &cobra.Command{
		Use:           "clinic",
		Short:         "Clinic API server: patient queue, records and medicine stock",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(migrate)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&migrate, "migrate", false, "apply the database schema before serving")

	rootCmd.AddCommand(serveCmd(&migrate))
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(migrate *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*migrate)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log, err := initLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := cmd.Context()
			db, err := mariadb.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := mariadb.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info("database schema is up to date", zap.String("database", cfg.DBName))
			return nil
		},
	}
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func runServer(migrate bool) error {
	cfg := config.LoadConfig()
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mariadb.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	if migrate || cfg.AutoMigrate {
		if err := mariadb.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("database schema applied")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName, reg)

	hub := ws.NewHub(log.Named("ws"))
	go hub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
	}))
	e.Use(middlewares.RequestID())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	if err := routes.Init(e, routes.Deps{
		DB:       db,
		Hub:      hub,
		Gatherer: reg,
		Metrics:  metrics.NewRecorder(reg),
	}); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
