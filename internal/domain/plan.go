// internal/domain/plan.go
package domain

import "time"

// OptimizationMethod tags how a supply plan was produced.
type OptimizationMethod string

const (
	MethodLinearProgramming OptimizationMethod = "linear_programming"
	MethodHeuristic         OptimizationMethod = "heuristic"
)

// PlanConstraints is the constraint set fed into the supply optimizer.
type PlanConstraints struct {
	MaxProductionCapacity  float64 `json:"max_production_capacity"`
	MaxBudget              float64 `json:"max_budget"`
	MinOrderQty            float64 `json:"min_order_qty"`
	MaxLeadTimeDays        float64 `json:"max_lead_time_days"`
	TargetServiceLevel     float64 `json:"target_service_level"`
	HoldingCostPerUnit     float64 `json:"holding_cost_per_unit"`
	StockoutPenaltyPerUnit float64 `json:"stockout_penalty_per_unit"`
	ProductionCostPerUnit  float64 `json:"production_cost_per_unit"`
	ProcurementCostPerUnit float64 `json:"procurement_cost_per_unit"`
	InitialStock           float64 `json:"initial_stock"`
}

// SupplyScheduleEntry is one period of a supply plan.
type SupplyScheduleEntry struct {
	Date               time.Time `json:"date" db:"date"`
	ProductionQty      float64   `json:"production_qty" db:"production_qty"`
	ProcurementQty     float64   `json:"procurement_qty" db:"procurement_qty"`
	EndingInventory    float64   `json:"ending_inventory" db:"ending_inventory"`
	CapacityUtilPct    float64   `json:"capacity_utilization_pct" db:"capacity_utilization_pct"`
	HoldingCost        float64   `json:"holding_cost" db:"holding_cost"`
	StockoutCost       float64   `json:"stockout_cost" db:"stockout_cost"`
}

// SupplyPlan is an ordered schedule plus aggregate totals.
type SupplyPlan struct {
	Schedule             []SupplyScheduleEntry `json:"schedule"`
	Method               OptimizationMethod    `json:"optimization_method"`
	TotalCost            float64               `json:"total_cost"`
	ServiceLevelAchieved float64               `json:"service_level_achieved"`
	AvgCapacityUtilPct   float64               `json:"avg_capacity_utilization"`
	BottleneckPeriods    []int                 `json:"bottleneck_periods"`
}

// SupplyPlanRecord is a persisted plan with host-assigned identity.
type SupplyPlanRecord struct {
	ID          string          `json:"id" db:"id"`
	ProductID   string          `json:"product_id" db:"product_id"`
	ForecastID  string          `json:"forecast_id" db:"forecast_id"`
	Constraints PlanConstraints `json:"constraints"`
	Plan        SupplyPlan      `json:"plan"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Vendor is a row from the vendor catalog reference data.
type Vendor struct {
	VendorID         string  `json:"vendor_id" db:"vendor_id"`
	Name             string  `json:"name" db:"name"`
	UnitCost         float64 `json:"unit_cost" db:"unit_cost"`
	LeadTimeDays     float64 `json:"lead_time_days" db:"lead_time_days"`
	MOQ              float64 `json:"moq" db:"moq"`
	ReliabilityScore float64 `json:"reliability_score" db:"reliability_score"`
	QualityRating    float64 `json:"quality_rating" db:"quality_rating"`
}

// VendorScore is a ranked sourcing candidate. Sub-scores are 0-100.
type VendorScore struct {
	Vendor           Vendor  `json:"vendor"`
	CostScore        float64 `json:"cost_score"`
	LeadTimeScore    float64 `json:"lead_time_score"`
	ReliabilityScore float64 `json:"reliability_score"`
	MOQScore         float64 `json:"moq_flexibility_score"`
	TotalScore       float64 `json:"total_score"`
	Rank             int     `json:"rank"`
}

// SourcingRecommendation names the preferred vendor and an optional split
// partner for risk diversification.
type SourcingRecommendation struct {
	Scores         []VendorScore `json:"scores"`
	Recommended    string        `json:"recommended_vendor_id"`
	SplitWith      string        `json:"split_with_vendor_id,omitempty"`
	SplitRationale string        `json:"split_rationale,omitempty"`
}

// BufferZoneStatus is the DDMRP zone an item's net flow position falls in.
type BufferZoneStatus string

const (
	ZoneRed    BufferZoneStatus = "RED"
	ZoneYellow BufferZoneStatus = "YELLOW"
	ZoneGreen  BufferZoneStatus = "GREEN"
)

// BufferProfile is a sized DDMRP buffer plus the current position assessment.
type BufferProfile struct {
	RedZone         float64          `json:"red_zone"`
	YellowZone      float64          `json:"yellow_zone"`
	GreenZone       float64          `json:"green_zone"`
	NetFlowPosition float64          `json:"net_flow_position"`
	Zone            BufferZoneStatus `json:"zone"`
	PenetrationPct  float64          `json:"penetration_pct"`
	ActionNeeded    bool             `json:"action_needed"`
}

// InventoryPosition is read-only reference data from the inventory system.
type InventoryPosition struct {
	ProductID      string  `json:"product_id" db:"product_id"`
	WarehouseID    string  `json:"warehouse_id" db:"warehouse_id"`
	AvailableQty   float64 `json:"available_qty" db:"available_qty"`
	OnOrderQty     float64 `json:"on_order_qty" db:"on_order_qty"`
	ReorderPoint   float64 `json:"reorder_point" db:"reorder_point"`
	SafetyStock    float64 `json:"safety_stock" db:"safety_stock"`
	AvgDailyDemand float64 `json:"avg_daily_demand" db:"avg_daily_demand"`
}
