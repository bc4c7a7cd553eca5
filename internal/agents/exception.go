// internal/agents/exception.go

// Package agents holds the stateless planning rule engines. Each agent
// scans a snapshot of forecasts, plans or inventory handed to it by the
// caller and emits alerts; nothing here reads stores or keeps state
// between runs.
package agents

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
)

// SupplyGapInput is one product's demand-vs-supply comparison over the
// rolling horizon, precomputed by the caller from approved forecasts and
// planned supply.
type SupplyGapInput struct {
	ProductID      string  `json:"product_id"`
	ForecastDemand float64 `json:"forecast_demand"`
	PlannedSupply  float64 `json:"planned_supply"`
}

// Supply gap severity cutoffs, in percent of forecast demand.
const (
	gapCriticalPct = 30.0
	gapHighPct     = 20.0
)

// ExceptionAgent raises stockout, overstock and demand-supply gap alerts.
type ExceptionAgent struct {
	overstockDays float64
	supplyGapPct  float64
}

func NewExceptionAgent(cfg config.AgentConfig) *ExceptionAgent {
	return &ExceptionAgent{
		overstockDays: cfg.OverstockDaysThreshold,
		supplyGapPct:  cfg.SupplyGapThresholdPct,
	}
}

// ScanInventory checks each position for stockout risk and overstock.
func (a *ExceptionAgent) ScanInventory(positions []domain.InventoryPosition) []domain.Alert {
	var alerts []domain.Alert
	now := time.Now()

	for _, pos := range positions {
		if alert, ok := a.stockoutAlert(pos, now); ok {
			alerts = append(alerts, alert)
		}
		if alert, ok := a.overstockAlert(pos, now); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func (a *ExceptionAgent) stockoutAlert(pos domain.InventoryPosition, now time.Time) (domain.Alert, bool) {
	if pos.SafetyStock <= 0 || pos.AvailableQty > pos.SafetyStock {
		return domain.Alert{}, false
	}

	severity := domain.SeverityMedium
	switch {
	case pos.AvailableQty <= 0 || pos.AvailableQty <= 0.5*pos.SafetyStock:
		severity = domain.SeverityCritical
	case pos.AvailableQty <= 0.75*pos.SafetyStock:
		severity = domain.SeverityHigh
	}

	return domain.Alert{
		ID:       uuid.New().String(),
		Category: domain.CategoryStockout,
		Severity: severity,
		Title:    fmt.Sprintf("Stockout risk for product %s", pos.ProductID),
		Message: fmt.Sprintf("available %.0f is at or below safety stock %.0f in warehouse %s",
			pos.AvailableQty, pos.SafetyStock, pos.WarehouseID),
		Data: map[string]interface{}{
			"product_id":    pos.ProductID,
			"warehouse_id":  pos.WarehouseID,
			"available_qty": pos.AvailableQty,
			"safety_stock":  pos.SafetyStock,
		},
		RecommendedAction: "expedite open orders or raise an emergency requisition",
		Timestamp:         now,
	}, true
}

func (a *ExceptionAgent) overstockAlert(pos domain.InventoryPosition, now time.Time) (domain.Alert, bool) {
	if pos.AvgDailyDemand <= 0 {
		return domain.Alert{}, false
	}
	daysOfSupply := pos.AvailableQty / pos.AvgDailyDemand
	if daysOfSupply <= a.overstockDays {
		return domain.Alert{}, false
	}

	severity := domain.SeverityLow
	switch {
	case daysOfSupply > 3*a.overstockDays:
		severity = domain.SeverityHigh
	case daysOfSupply > 2*a.overstockDays:
		severity = domain.SeverityMedium
	}

	return domain.Alert{
		ID:       uuid.New().String(),
		Category: domain.CategoryOverstock,
		Severity: severity,
		Title:    fmt.Sprintf("Overstock for product %s", pos.ProductID),
		Message: fmt.Sprintf("%.0f days of supply on hand exceeds the %.0f day threshold in warehouse %s",
			daysOfSupply, a.overstockDays, pos.WarehouseID),
		Data: map[string]interface{}{
			"product_id":     pos.ProductID,
			"warehouse_id":   pos.WarehouseID,
			"days_of_supply": daysOfSupply,
			"available_qty":  pos.AvailableQty,
		},
		RecommendedAction: "pause replenishment and consider markdown or transfer",
		Timestamp:         now,
	}, true
}

// ScanSupplyGaps flags products whose planned supply trails approved
// forecast demand by more than the configured threshold percentage.
func (a *ExceptionAgent) ScanSupplyGaps(gaps []SupplyGapInput) []domain.Alert {
	var alerts []domain.Alert
	now := time.Now()

	for _, g := range gaps {
		if g.ForecastDemand <= 0 {
			continue
		}
		gapPct := (g.ForecastDemand - g.PlannedSupply) / g.ForecastDemand * 100
		if gapPct <= a.supplyGapPct {
			continue
		}

		severity := domain.SeverityMedium
		switch {
		case gapPct > gapCriticalPct:
			severity = domain.SeverityCritical
		case gapPct > gapHighPct:
			severity = domain.SeverityHigh
		}

		alerts = append(alerts, domain.Alert{
			ID:       uuid.New().String(),
			Category: domain.CategorySupplyGap,
			Severity: severity,
			Title:    fmt.Sprintf("Supply gap for product %s", g.ProductID),
			Message: fmt.Sprintf("planned supply %.0f covers only %.0f%% of forecast demand %.0f",
				g.PlannedSupply, 100-gapPct, g.ForecastDemand),
			Data: map[string]interface{}{
				"product_id":      g.ProductID,
				"forecast_demand": g.ForecastDemand,
				"planned_supply":  g.PlannedSupply,
				"gap_pct":         gapPct,
			},
			RecommendedAction: "increase planned production or source additional procurement",
			Timestamp:         now,
		})
	}
	return alerts
}
