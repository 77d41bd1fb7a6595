package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/pkg/logging"
	"storefront/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Service: "storefront",
		Level:   configs.LogLevel,
		File:    configs.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logCloser.Close() }()

	gormDB := mustOpenDB(configs)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	app, err := cmd.NewCompositionRoot(configs, gormDB, m, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close notification channels", "error", closeErr)
		}
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Failed to create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Failed to get sql.DB: %v", err)
	}
	router := httpin.NewRouter(app.CreateHTTPServer(), m, metrics.Handler(registry), sqlDB.PingContext)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr)
		if startErr := router.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = router.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}
