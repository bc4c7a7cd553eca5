// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/demand-planner/internal/api"
	"github.com/andresuchdata/demand-planner/internal/cache"
	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/repository/postgres"
	"github.com/andresuchdata/demand-planner/internal/service"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("forecast cache unavailable, continuing without")
		forecastCache = cache.NewNoopForecastCache()
	}
	alertCache, err := cache.NewAlertCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("alert cache unavailable, continuing without")
		alertCache = cache.NewNoopAlertCache()
	}

	demandRepo := postgres.NewDemandRepository(db.DB)
	forecastRepo := postgres.NewForecastRepository(db.DB)
	planRepo := postgres.NewPlanRepository(db.DB)
	scenarioRepo := postgres.NewScenarioRepository(db.DB)
	inventoryRepo := postgres.NewInventoryRepository(db.DB)
	vendorRepo := postgres.NewVendorRepository(db.DB)
	procurement := postgres.NewProcurementRepository(db.DB)

	services := &api.Services{
		ForecastService: service.NewForecastService(demandRepo, forecastRepo, forecastCache, cfg.Engine.Forecast),
		PlanningService: service.NewPlanningService(forecastRepo, planRepo, vendorRepo, inventoryRepo, cfg.Engine.Optimizer),
		ScenarioService: service.NewScenarioService(scenarioRepo, demandRepo, cfg.Engine.Scenario),
		AlertService:    service.NewAlertService(inventoryRepo, forecastRepo, planRepo, procurement, alertCache, cfg.Engine.Agents),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
