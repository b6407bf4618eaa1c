package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MobiqoAnalytics/mobiqo-go/internal/client"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/config"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/database"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/device"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/logger"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/models"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/session"
	"github.com/MobiqoAnalytics/mobiqo-go/internal/storage"

	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	userID := flag.String("user", "demo-user", "External user id to sync")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting mobiqo demo",
		zap.String("env", cfg.Env),
		zap.String("config_path", *configPath),
	)

	// Initialize storage
	var store storage.Store
	if cfg.Storage.Driver == "sqlite" {
		db, err := database.New(cfg.Storage.Path, log.Logger)
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
		}()
		store = storage.NewKeyValueStore(db.DB, log.Logger)
	} else {
		store = storage.NewMemoryStore()
	}

	// Resolve device metadata (stable install id)
	dev, err := device.Info(store, "demo")
	if err != nil {
		log.Fatal("Failed to resolve device info", zap.Error(err))
	}
	log.Info("Resolved install id", zap.String("install_id", dev.InstallID))

	// Initialize API client
	apiClient := client.NewAPIClient(
		cfg.Backend.BaseURL,
		cfg.Backend.APIKey,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log.Logger,
	)

	// Initialize session manager
	manager := session.NewManager(
		apiClient,
		store,
		dev,
		time.Duration(cfg.Heartbeat.Interval)*time.Second,
		log.Logger,
	)

	ctx := context.Background()

	if err := manager.Initialize(ctx, cfg.Backend.APIKey); err != nil {
		log.Fatal("Initialization failed", zap.Error(err))
	}

	syncResp, err := manager.SyncUser(ctx, *userID, false, nil)
	if err != nil {
		log.Fatal("Sync failed", zap.Error(err))
	}
	log.Info("Session opened",
		zap.Bool("is_new_user", syncResp.IsNewUser),
		zap.String("username", syncResp.AppUser.Username),
	)

	if err := manager.TrackEvent(ctx, "demo_started", models.EventTypeAction, map[string]any{
		"source": "mobiqo-demo",
	}); err != nil {
		log.Error("Failed to track event", zap.Error(err))
	}

	log.Info("Demo running, heartbeating until interrupted",
		zap.Int("heartbeat_interval_seconds", cfg.Heartbeat.Interval),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	manager.Dispose()
	log.Info("Mobiqo demo stopped")
}
