// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/demand-planner/internal/api/handlers"
	"github.com/andresuchdata/demand-planner/internal/api/middleware"
	"github.com/andresuchdata/demand-planner/internal/service"
)

type Services struct {
	ForecastService *service.ForecastService
	PlanningService *service.PlanningService
	ScenarioService *service.ScenarioService
	AlertService    *service.AlertService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/forecasts")
			{
				forecastGroup.POST("", forecastHandler.Generate)
				forecastGroup.POST("/batch", forecastHandler.GenerateBatch)
				forecastGroup.POST("/:id/approve", forecastHandler.Approve)
				forecastGroup.POST("/:id/reforecast", forecastHandler.Reforecast)
			}
			apiGroup.GET("/classification", forecastHandler.Classify)
		}

		if services.PlanningService != nil {
			planningHandler := handlers.NewPlanningHandler(services.PlanningService)
			planGroup := apiGroup.Group("/plans")
			{
				planGroup.POST("", planningHandler.CreatePlan)
				planGroup.GET("/:id", planningHandler.GetPlan)
			}
			apiGroup.GET("/sourcing/recommendation", planningHandler.RecommendSourcing)
			apiGroup.GET("/buffers/:product_id", planningHandler.BufferStatus)
			apiGroup.GET("/order_quantity/:product_id", planningHandler.OrderQuantity)
		}

		if services.ScenarioService != nil {
			scenarioHandler := handlers.NewScenarioHandler(services.ScenarioService)
			scenarioGroup := apiGroup.Group("/scenarios")
			{
				scenarioGroup.POST("", scenarioHandler.Create)
				scenarioGroup.GET("", scenarioHandler.List)
				scenarioGroup.GET("/:id", scenarioHandler.Get)
				scenarioGroup.PUT("/:id", scenarioHandler.Update)
				scenarioGroup.POST("/:id/simulate", scenarioHandler.Simulate)
				scenarioGroup.GET("/:id/pnl", scenarioHandler.ProjectPnL)
				scenarioGroup.GET("/:id/sensitivity", scenarioHandler.Sensitivity)
				scenarioGroup.POST("/compare", scenarioHandler.Compare)
			}
		}

		if services.AlertService != nil {
			alertHandler := handlers.NewAlertHandler(services.AlertService)
			alertGroup := apiGroup.Group("/alerts")
			{
				alertGroup.GET("", alertHandler.Scan)
				alertGroup.GET("/reorders", alertHandler.SuggestReorders)
				alertGroup.POST("/requisitions", alertHandler.CreateRequisition)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
