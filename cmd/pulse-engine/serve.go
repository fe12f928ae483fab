package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/miradorstack/logistics-pulse/internal/api"
	"github.com/miradorstack/logistics-pulse/internal/charts"
	"github.com/miradorstack/logistics-pulse/internal/config"
	"github.com/miradorstack/logistics-pulse/internal/dashboard"
	"github.com/miradorstack/logistics-pulse/internal/engine"
	"github.com/miradorstack/logistics-pulse/internal/metrics"
	"github.com/miradorstack/logistics-pulse/internal/services"
	"github.com/miradorstack/logistics-pulse/internal/utils"
)

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (YAML)")
	return cmd
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting logistics-pulse", slog.String("address", cfg.Server.Address), slog.String("version", Version))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	seed, err := engine.LoadSeed(cfg.Stream.SeedPath, logger)
	if err != nil {
		return err
	}
	format, err := charts.ParseFormat(cfg.Charts.Format)
	if err != nil {
		return err
	}
	deliverySurface := charts.NewMemorySurface(cfg.Charts.Width, cfg.Charts.Height, format)
	volumeSurface := charts.NewMemorySurface(cfg.Charts.Width, cfg.Charts.Height, format)

	loadDelay := cfg.Stream.LoadDelay
	if loadDelay == 0 {
		loadDelay = -1
	}
	thresholds := engine.Thresholds{
		AvgDeliveryTimeDays: cfg.Alerts.AvgDeliveryTimeDays,
		OnTimeRatePercent:   cfg.Alerts.OnTimeRatePercent,
	}
	dash := dashboard.New(logger, dashboard.Options{
		TickInterval:    cfg.Stream.TickInterval,
		LoadDelay:       loadDelay,
		Seed:            seed,
		Thresholds:      thresholds,
		DeliverySurface: deliverySurface,
		VolumeSurface:   volumeSurface,
	})
	defer dash.Teardown()

	service := services.NewDashboardService(logger, dash, cfg.Stream.WatchBuffer)
	server, err := api.NewServer(cfg.Server, service)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dash.Activate(ctx); err != nil {
		return err
	}

	var httpServer *http.Server
	if cfg.Server.HTTPAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/charts/delivery-time", charts.FrameHandler(deliverySurface))
		mux.Handle("/charts/shipment-volume", charts.FrameHandler(volumeSurface))
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		httpServer = &http.Server{
			Addr:         cfg.Server.HTTPAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("http server listening", slog.String("address", cfg.Server.HTTPAddress))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		logger.Info("gRPC server listening", slog.String("address", server.Addr()))
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("gRPC server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Open watch streams hold GracefulStop until the service closes them.
	service.Close()
	if forced := server.Shutdown(context.Background()); forced {
		logger.Warn("gRPC calls cut after graceful timeout", slog.Duration("timeout", cfg.Server.GracefulTimeout))
	}
	dash.Teardown()

	if httpServer != nil {
		httpCtx, cancelHTTP := context.WithTimeout(context.Background(), 5*time.Second)
		if err := httpServer.Shutdown(httpCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("http server shutdown", slog.Any("error", err))
		}
		cancelHTTP()
	}

	logger.Info("logistics-pulse stopped")
	return nil
}
