package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/javierferna/nasa-asteroid-dashboard/api"
	"github.com/javierferna/nasa-asteroid-dashboard/config"
	"github.com/javierferna/nasa-asteroid-dashboard/models"
	"github.com/javierferna/nasa-asteroid-dashboard/services"
	"github.com/javierferna/nasa-asteroid-dashboard/source"
	"github.com/javierferna/nasa-asteroid-dashboard/storage"
	"github.com/javierferna/nasa-asteroid-dashboard/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	if cfg.LogLevel == "debug" {
		logger.EnableDebug()
	}

	logger.Info("=== NASA Asteroid Dashboard starting ===")
	logger.Info("Config — source: %s | window: %dd | cache TTL: %dm | port: %d",
		cfg.DataSource, cfg.WindowDays, cfg.CacheTTLMinutes, cfg.ServerPort)

	var src source.RecordSource
	switch cfg.DataSource {
	case "demo":
		logger.Warn("Using synthetic demo data (DATA_SOURCE=demo)")
		src = source.NewDemoSource(cfg.DemoSeed, cfg.WindowDays)
	default:
		pg, err := source.NewPostgresSource(cfg.DSN(), cfg.NeoTable, cfg.WindowDays, logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure the warehouse is running: docker compose up -d")
			os.Exit(1)
		}
		defer pg.Close()
		src = pg
	}

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	store := services.NewSnapshotStore(src, ttl, logger)
	pipeline := services.NewPipeline(logger)

	retry := &utils.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	ctx := context.Background()
	var records []models.ApproachRecord
	err := retry.Do(ctx, "initial snapshot load", func() error {
		var loadErr error
		records, loadErr = store.Records(ctx)
		return loadErr
	})
	if err != nil {
		logger.Error("Initial load failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d approach records for the trailing %d-day window",
		len(records), cfg.WindowDays)

	if err := exportCSV(cfg, pipeline, records); err != nil {
		logger.Error("CSV export failed: %v", err)
	} else {
		logger.Info("Snapshot table exported to %s", cfg.CSVOutputPath)
	}

	handler := api.NewHandler(store, pipeline, cfg, logger)
	router := api.NewRouter(handler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("Serving dashboard API on %s", addr)
		if err := router.Run(addr); err != nil {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")
}

// exportCSV writes the unfiltered display projection of the snapshot.
func exportCSV(cfg *config.Config, pipeline *services.Pipeline, records []models.ApproachRecord) error {
	wide := models.FilterCriteria{
		HazardMode:     models.HazardAll,
		MaxDistanceMkm: 100,
		TopN:           models.MaxTopN,
	}
	result, err := pipeline.Apply(records, wide)
	if err != nil {
		return err
	}

	writer, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return err
	}
	defer writer.Close()

	return writer.WriteRows(result.Rows)
}
