// internal/api/handlers/alert_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/service"
)

type AlertHandler struct {
	service *service.AlertService
}

func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) Scan(c *gin.Context) {
	warehouseID := c.Query("warehouse_id")
	max := parseLimit(c, 0)

	scan, err := h.service.Scan(c.Request.Context(), warehouseID, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scan)
}

func (h *AlertHandler) SuggestReorders(c *gin.Context) {
	suggestions, err := h.service.SuggestReorders(c.Request.Context(), c.Query("warehouse_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *AlertHandler) CreateRequisition(c *gin.Context) {
	var suggestion domain.ReorderSuggestion
	if err := c.ShouldBindJSON(&suggestion); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}
	if suggestion.ProductID == "" || suggestion.SuggestedOrder <= 0 {
		respondError(c, domain.NewValidationError("suggestion", "product_id and a positive order quantity are required"))
		return
	}

	id, err := h.service.CreateRequisition(c.Request.Context(), suggestion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"requisition_id": id})
}
