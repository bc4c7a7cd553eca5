// internal/agents/reorder.go
package agents

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
)

// ReorderAgent suggests replenishment orders for items below their
// reorder point.
type ReorderAgent struct {
	leadTimeBufferPct float64
}

func NewReorderAgent(cfg config.AgentConfig) *ReorderAgent {
	return &ReorderAgent{
		leadTimeBufferPct: cfg.LeadTimeBufferPct,
	}
}

// Suggest builds a reorder suggestion for every position at or below its
// reorder point. Target stock is twice the reorder point; the lead time
// estimate pads the base lead time with the configured buffer.
func (a *ReorderAgent) Suggest(positions []domain.InventoryPosition, baseLeadTimeDays float64) []domain.ReorderSuggestion {
	var suggestions []domain.ReorderSuggestion
	now := time.Now()

	leadTime := baseLeadTimeDays * (1 + a.leadTimeBufferPct/100)

	for _, pos := range positions {
		if pos.ReorderPoint <= 0 || pos.AvailableQty > pos.ReorderPoint {
			continue
		}

		target := 2 * pos.ReorderPoint
		order := target - pos.AvailableQty
		if order <= 0 {
			continue
		}

		urgency := domain.UrgencyNormal
		switch {
		case pos.AvailableQty <= 0:
			urgency = domain.UrgencyEmergency
		case pos.AvailableQty <= pos.SafetyStock:
			urgency = domain.UrgencyUrgent
		}

		suggestions = append(suggestions, domain.ReorderSuggestion{
			ProductID:        pos.ProductID,
			WarehouseID:      pos.WarehouseID,
			AvailableQty:     pos.AvailableQty,
			ReorderPoint:     pos.ReorderPoint,
			TargetStock:      target,
			SuggestedOrder:   order,
			Urgency:          urgency,
			LeadTimeDays:     leadTime,
			ExpectedDelivery: now.AddDate(0, 0, int(leadTime+0.5)),
		})
	}
	return suggestions
}

// Alerts converts suggestions into ranked alert-center input.
func (a *ReorderAgent) Alerts(suggestions []domain.ReorderSuggestion) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(suggestions))
	now := time.Now()

	for _, s := range suggestions {
		severity := domain.SeverityMedium
		switch s.Urgency {
		case domain.UrgencyEmergency:
			severity = domain.SeverityCritical
		case domain.UrgencyUrgent:
			severity = domain.SeverityHigh
		}

		alerts = append(alerts, domain.Alert{
			ID:       uuid.New().String(),
			Category: domain.CategoryReorder,
			Severity: severity,
			Title:    fmt.Sprintf("Reorder needed for product %s", s.ProductID),
			Message: fmt.Sprintf("available %.0f is below reorder point %.0f; order %.0f to reach target %.0f",
				s.AvailableQty, s.ReorderPoint, s.SuggestedOrder, s.TargetStock),
			Data: map[string]interface{}{
				"product_id":          s.ProductID,
				"warehouse_id":        s.WarehouseID,
				"suggested_order_qty": s.SuggestedOrder,
				"urgency":             string(s.Urgency),
				"expected_delivery":   s.ExpectedDelivery,
			},
			RecommendedAction: fmt.Sprintf("raise a requisition for %.0f units", s.SuggestedOrder),
			Timestamp:         now,
		})
	}
	return alerts
}
