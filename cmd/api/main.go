// Package main is the entry point for the birdcams-tv kiosk server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"birdcams-tv/internal/app"
	"birdcams-tv/internal/app/service"
	"birdcams-tv/internal/config"
	"birdcams-tv/internal/job"
	"birdcams-tv/internal/transport/httpserver"
	"birdcams-tv/internal/validator"
	"birdcams-tv/pkg/locker"
)

func main() {
	cfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Close() }()

	log.Info("starting birdcams-tv",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.Bool("substitute_on_failure", cfg.Fallback.SubstituteOnFailure),
	)

	components, err := app.New(cfg, log.Logger)
	if err != nil {
		log.Fatal("failed to build services", zap.Error(err))
	}

	station := service.NewStationService(components.Aggregates, nil, log.Logger)

	// Scheduled and manual rebuilds share one in-process lock
	scheduler := job.NewRefreshScheduler(
		components.Aggregates,
		job.RefreshConfig{
			Interval: cfg.Refresh.Interval,
			Timeout:  cfg.Refresh.Timeout,
		},
		log.Logger,
		locker.NewLocalLocker(log.Logger),
	)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 64 * 1024,
			Debug:     cfg.App.Debug,
		},
		httpserver.Deps{
			Aggregates: components.Aggregates,
			Station:    station,
			Cache:      components.Aggregates,
			Rebuilder:  scheduler,
			Ready:      components.Ready,
		},
		validator.New(),
		log.Logger,
	)

	if cfg.Refresh.Enabled {
		scheduler.Start(cfg.Refresh.OnStartup)
	} else {
		log.Info("background refresh disabled, cache refills on demand")
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
