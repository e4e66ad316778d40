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

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/pgchannel"
	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryboyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/jobs"
	"fulfillment/internal/metrics"
	"fulfillment/internal/notifier"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// A .env file is a convenience for local runs; in deployment the
	// variables come from the environment directly.
	_ = godotenv.Load()

	config, err := cmd.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&deliveryboyrepo.DeliveryBoyDTO{},
		&paymentrepo.ShopPaymentDTO{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	bus := notifier.NewBus()
	defer bus.Close()

	root := cmd.NewCompositionRoot(config, db,
		metrics.NewInstrumentedPublisher(bus, engineMetrics))

	listener := pgchannel.NewListener(config.DSN(), bus, logger)
	if err := listener.Start(); err != nil {
		logger.Error("Failed to start Postgres change listener", "error", err)
		os.Exit(1)
	}
	defer listener.Stop()

	jobManager := jobs.NewJobManager(
		root.CreateReconcileSettlementsCommandHandler(),
		logger,
		func(created int) {
			engineMetrics.SettlementObligationsTotal.Add(float64(created))
		},
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAdvanceOrderStatusCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateProposeAssignmentCommandHandler(),
		root.CreateRespondToAssignmentCommandHandler(),
		root.CreateReconcileSettlementsCommandHandler(),
		root.CreateMarkPaymentPaidCommandHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
		root.CreateGetPendingAssignmentsQueryHandler(),
		root.CreateGetShopSettlementSummaryQueryHandler(),
		engineMetrics,
	)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
