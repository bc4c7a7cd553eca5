// internal/domain/alert.go
package domain

import "time"

// Severity orders alerts from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Weight maps a severity to a sortable rank. Lower is more urgent.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// AlertCategory groups alerts by the condition that raised them.
type AlertCategory string

const (
	CategoryStockout     AlertCategory = "stockout"
	CategoryOverstock    AlertCategory = "overstock"
	CategorySupplyGap    AlertCategory = "supply_gap"
	CategoryReorder      AlertCategory = "reorder"
	CategoryForecastBias AlertCategory = "forecast_bias"
	CategoryAccuracy     AlertCategory = "forecast_accuracy"
)

// Alert is ephemeral: regenerated on each agent run. Ranking order, not
// identity, is the contract callers depend on.
type Alert struct {
	ID                string                 `json:"id"`
	Category          AlertCategory          `json:"category"`
	Severity          Severity               `json:"severity"`
	Title             string                 `json:"title"`
	Message           string                 `json:"message"`
	Data              map[string]interface{} `json:"data,omitempty"`
	RecommendedAction string                 `json:"recommended_action"`
	AgentSource       string                 `json:"agent_source"`
	Timestamp         time.Time              `json:"timestamp"`
}

// Urgency classifies a reorder suggestion.
type Urgency string

const (
	UrgencyEmergency Urgency = "EMERGENCY"
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyNormal    Urgency = "NORMAL"
)

// ReorderSuggestion is the reorder agent's output; it may be handed to the
// procurement system as a requisition.
type ReorderSuggestion struct {
	ProductID        string    `json:"product_id"`
	WarehouseID      string    `json:"warehouse_id"`
	AvailableQty     float64   `json:"available_qty"`
	ReorderPoint     float64   `json:"reorder_point"`
	TargetStock      float64   `json:"target_stock"`
	SuggestedOrder   float64   `json:"suggested_order_qty"`
	Urgency          Urgency   `json:"urgency"`
	LeadTimeDays     float64   `json:"estimated_lead_time_days"`
	ExpectedDelivery time.Time `json:"expected_delivery"`
}

// AlertScan is the alert center's trimmed, ranked output.
type AlertScan struct {
	Alerts      []Alert               `json:"alerts"`
	TotalBefore int                   `json:"total_before_truncation"`
	BySeverity  map[Severity]int      `json:"by_severity"`
	ByCategory  map[AlertCategory]int `json:"by_category"`
	ByAgent     map[string]int        `json:"by_agent"`
	GeneratedAt time.Time             `json:"generated_at"`
}
