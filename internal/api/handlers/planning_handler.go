// internal/api/handlers/planning_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/optimizer"
	"github.com/andresuchdata/demand-planner/internal/service"
)

type PlanningHandler struct {
	service *service.PlanningService
}

func NewPlanningHandler(service *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

func (h *PlanningHandler) CreatePlan(c *gin.Context) {
	var body struct {
		ForecastID  string                 `json:"forecast_id" binding:"required"`
		Constraints domain.PlanConstraints `json:"constraints"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	record, err := h.service.CreatePlan(c.Request.Context(), body.ForecastID, body.Constraints)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *PlanningHandler) GetPlan(c *gin.Context) {
	record, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *PlanningHandler) RecommendSourcing(c *gin.Context) {
	recommendation, err := h.service.RecommendSourcing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendation)
}

func (h *PlanningHandler) BufferStatus(c *gin.Context) {
	productID := c.Param("product_id")
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		respondError(c, domain.NewValidationError("warehouse_id", "is required"))
		return
	}

	inputs := optimizer.BufferInputs{
		LeadTimeDays:   parseFloat(c, "lead_time_days", 7),
		MOQ:            parseFloat(c, "moq", 0),
		OrderCycleDays: parseFloat(c, "order_cycle_days", 0),
		LeadTimeFactor: parseFloat(c, "lead_time_factor", 0),
		SpikeFactor:    parseFloat(c, "spike_factor", 0),
	}

	profile, err := h.service.BufferStatus(c.Request.Context(), productID, warehouseID, inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *PlanningHandler) OrderQuantity(c *gin.Context) {
	productID := c.Param("product_id")
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		respondError(c, domain.NewValidationError("warehouse_id", "is required"))
		return
	}

	eoq, err := h.service.OrderQuantity(c.Request.Context(), productID, warehouseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "order_quantity": eoq})
}

func parseFloat(c *gin.Context, param string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(c.Query(param), 64); err == nil {
		return v
	}
	return fallback
}
