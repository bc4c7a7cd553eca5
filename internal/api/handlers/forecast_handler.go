// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
	"github.com/andresuchdata/demand-planner/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

type forecastRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	CategoryID  string  `json:"category_id"`
	WarehouseID string  `json:"warehouse_id"`
	RegionID    string  `json:"region_id"`
	Channel     string  `json:"channel"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Granularity string  `json:"granularity"`
	Horizon     int     `json:"horizon" binding:"required"`
	Save        bool    `json:"save"`
}

func (req forecastRequest) toFilter() (repository.DemandFilter, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return repository.DemandFilter{}, domain.NewValidationError("start_date", "must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return repository.DemandFilter{}, domain.NewValidationError("end_date", "must be YYYY-MM-DD")
	}

	granularity := domain.Granularity(strings.ToLower(req.Granularity))
	if req.Granularity == "" {
		granularity = domain.GranularityDaily
	}
	switch granularity {
	case domain.GranularityDaily, domain.GranularityWeekly, domain.GranularityMonthly:
	default:
		return repository.DemandFilter{}, domain.NewValidationError("granularity", "must be daily, weekly or monthly")
	}

	return repository.DemandFilter{
		ProductID:   req.ProductID,
		CategoryID:  req.CategoryID,
		WarehouseID: req.WarehouseID,
		RegionID:    req.RegionID,
		Channel:     req.Channel,
		StartDate:   start,
		EndDate:     end,
		Granularity: granularity,
	}, nil
}

func (h *ForecastHandler) Generate(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Save {
		record, err := h.service.GenerateAndSave(c.Request.Context(), filter, req.Horizon)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, record)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), filter, req.Horizon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type batchRequest struct {
	Requests []forecastRequest `json:"requests" binding:"required"`
	Horizon  int               `json:"horizon" binding:"required"`
}

func (h *ForecastHandler) GenerateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	filters := make([]repository.DemandFilter, 0, len(req.Requests))
	for _, r := range req.Requests {
		filter, err := r.toFilter()
		if err != nil {
			respondError(c, err)
			return
		}
		filters = append(filters, filter)
	}

	items := h.service.GenerateBatch(c.Request.Context(), filters, req.Horizon)

	type batchItemResponse struct {
		ProductID string                 `json:"product_id"`
		Result    *domain.ForecastResult `json:"result,omitempty"`
		Error     string                 `json:"error,omitempty"`
	}

	out := make([]batchItemResponse, len(items))
	for i, item := range items {
		out[i].ProductID = item.Filter.ProductID
		if item.Err != nil {
			out[i].Error = item.Err.Error()
			continue
		}
		result := item.Result
		out[i].Result = &result
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *ForecastHandler) Classify(c *gin.Context) {
	req := forecastRequest{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		Granularity: c.DefaultQuery("granularity", string(domain.GranularityDaily)),
	}
	if req.ProductID == "" {
		respondError(c, domain.NewValidationError("product_id", "is required"))
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		respondError(c, err)
		return
	}

	classification, err := h.service.Classify(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classification)
}

func (h *ForecastHandler) Approve(c *gin.Context) {
	var body struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	if err := h.service.Approve(c.Request.Context(), c.Param("id"), *body.Approved); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ForecastHandler) Reforecast(c *gin.Context) {
	// Product, warehouse and granularity are inherited from the parent
	// forecast; only a fresh history window is needed.
	var body struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	start, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		respondError(c, domain.NewValidationError("start_date", "must be YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		respondError(c, domain.NewValidationError("end_date", "must be YYYY-MM-DD"))
		return
	}
	filter := repository.DemandFilter{StartDate: start, EndDate: end}

	record, err := h.service.Reforecast(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func parseLimit(c *gin.Context, fallback int) int {
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && limit > 0 {
		return limit
	}
	return fallback
}
