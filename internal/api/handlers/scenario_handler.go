// internal/api/handlers/scenario_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
}

func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

func (h *ScenarioHandler) Create(c *gin.Context) {
	var sc domain.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	id, err := h.service.Create(c.Request.Context(), &sc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ScenarioHandler) Update(c *gin.Context) {
	var sc domain.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}
	sc.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), &sc); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScenarioHandler) Get(c *gin.Context) {
	sc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *ScenarioHandler) List(c *gin.Context) {
	scenarios, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func (h *ScenarioHandler) Simulate(c *gin.Context) {
	var body struct {
		Iterations int   `json:"iterations"`
		Seed       int64 `json:"seed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	result, err := h.service.Simulate(c.Request.Context(), c.Param("id"), body.Iterations, body.Seed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScenarioHandler) ProjectPnL(c *gin.Context) {
	projection, err := h.service.ProjectPnL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection)
}

func (h *ScenarioHandler) Sensitivity(c *gin.Context) {
	variation := parseFloat(c, "variation_pct", 20)

	entries, err := h.service.Sensitivity(c.Request.Context(), c.Param("id"), variation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ScenarioHandler) Compare(c *gin.Context) {
	var body struct {
		ScenarioIDs []string               `json:"scenario_ids" binding:"required"`
		Weights     *domain.CompareWeights `json:"weights"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}

	weights := domain.DefaultCompareWeights()
	if body.Weights != nil {
		weights = *body.Weights
	}

	ranked, err := h.service.Compare(c.Request.Context(), body.ScenarioIDs, weights)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranked": ranked})
}
