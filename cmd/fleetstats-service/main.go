package main

import (
	"context"
	"fmt"
	"os"

	"fleetstats-service/internal/auth"
	"fleetstats-service/internal/config"
	"fleetstats-service/internal/db"
	httphandler "fleetstats-service/internal/http"
	"fleetstats-service/internal/http/middleware"
	"fleetstats-service/internal/logger"
	"fleetstats-service/internal/model"
	"fleetstats-service/internal/repository"
	"fleetstats-service/internal/service"
	"fleetstats-service/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	fleetRepo := repository.NewFleetRepository(database)

	engineOpts := []stats.EngineOption{
		stats.WithCostCenterTag(cfg.Stats.CostCenterTag),
	}
	if epoch := cfg.Epoch(); !epoch.IsZero() {
		engineOpts = append(engineOpts, stats.WithCompanyEpoch(epoch))
	}
	engine := stats.NewEngine(engineOpts...)

	statisticsService := service.NewStatisticsService(fleetRepo, engine, cfg.Debounce(), appLogger)
	defer statisticsService.Close()

	// Warm the first snapshot so early clients see data instead of a long
	// loading state.
	warmup := model.Principal{Role: model.RoleAdmin}
	if err := statisticsService.Refresh(context.Background(), warmup); err != nil {
		appLogger.Warn().Err(err).Msg("initial collection load failed")
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(statisticsService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet statistics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
