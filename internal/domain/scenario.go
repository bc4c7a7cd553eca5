// internal/domain/scenario.go
package domain

import "time"

// ScenarioAssumptions are the caller-supplied what-if multipliers. Pure
// input; combined with a history-derived baseline to produce simulation
// parameters.
type ScenarioAssumptions struct {
	DemandMultiplier    float64 `json:"demand_multiplier"`
	SupplyConstraintPct float64 `json:"supply_constraint_pct"` // (0,100]
	LeadTimeMultiplier  float64 `json:"lead_time_multiplier"`
	PriceChangePct      float64 `json:"price_change_pct"`
}

// Baseline is derived from recent history before assumptions are applied.
type Baseline struct {
	DailyDemand    float64 `json:"daily_demand"`
	RevenuePerUnit float64 `json:"revenue_per_unit"`
	CostPerUnit    float64 `json:"cost_per_unit"`
	SupplyCapacity float64 `json:"supply_capacity"`
	LeadTimeDays   float64 `json:"lead_time_days"`
}

// Scenario is a persisted what-if definition. BaseScenarioID is a foreign
// key into the scenario store, never an owning reference.
type Scenario struct {
	ID             string              `json:"id" db:"id"`
	Name           string              `json:"name" db:"name"`
	ProductID      string              `json:"product_id" db:"product_id"`
	HorizonDays    int                 `json:"horizon_days" db:"horizon_days"`
	Assumptions    ScenarioAssumptions `json:"assumptions"`
	BaseScenarioID *string             `json:"base_scenario_id,omitempty" db:"base_scenario_id"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}

// MetricStats summarizes one simulated metric across all iterations.
type MetricStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	P5   float64 `json:"p5"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P95  float64 `json:"p95"`
}

// HistogramBucket is one of ten equal-width revenue buckets.
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// MonteCarloResult aggregates a simulation run.
type MonteCarloResult struct {
	Iterations          int                    `json:"iterations"`
	Seed                int64                  `json:"seed"`
	Metrics             map[string]MetricStats `json:"metrics"`
	StockoutProbability float64                `json:"stockout_probability"`
	RevenueHistogram    []HistogramBucket      `json:"revenue_histogram"`
}

// PnLLine is one month of the financial projection.
type PnLLine struct {
	Month       time.Time `json:"month"`
	Revenue     float64   `json:"revenue"`
	COGS        float64   `json:"cogs"`
	GrossMargin float64   `json:"gross_margin"`
	OpEx        float64   `json:"opex"`
	EBITDA      float64   `json:"ebitda"`
	Tax         float64   `json:"tax"`
	NetIncome   float64   `json:"net_income"`
}

// WaterfallStep is one bar of the P&L waterfall breakdown.
type WaterfallStep struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PnLProjection is the month-by-month financial view of a scenario.
type PnLProjection struct {
	Lines     []PnLLine       `json:"lines"`
	Waterfall []WaterfallStep `json:"waterfall"`
	Totals    PnLLine         `json:"totals"`
}

// SensitivityEntry records the outcome swing from varying one parameter.
type SensitivityEntry struct {
	Parameter     string  `json:"parameter"`
	LowRevenue    float64 `json:"low_revenue"`
	HighRevenue   float64 `json:"high_revenue"`
	LowNetIncome  float64 `json:"low_net_income"`
	HighNetIncome float64 `json:"high_net_income"`
	Spread        float64 `json:"spread"`
}

// ScenarioOutcome is the deterministic single-run outcome used by the
// sensitivity analyzer and the composite ranker.
type ScenarioOutcome struct {
	Revenue      float64 `json:"revenue"`
	NetIncome    float64 `json:"net_income"`
	ServiceLevel float64 `json:"service_level"`
	StockoutRisk float64 `json:"stockout_risk"`
	Efficiency   float64 `json:"efficiency"`
}

// CompareWeights are the composite ranking weights.
type CompareWeights struct {
	Revenue      float64 `json:"revenue"`
	NetIncome    float64 `json:"net_income"`
	ServiceLevel float64 `json:"service_level"`
	Risk         float64 `json:"risk"`
	Efficiency   float64 `json:"efficiency"`
}

// DefaultCompareWeights mirror the standard planning trade-off.
func DefaultCompareWeights() CompareWeights {
	return CompareWeights{
		Revenue:      0.30,
		NetIncome:    0.25,
		ServiceLevel: 0.20,
		Risk:         0.15,
		Efficiency:   0.10,
	}
}

// RankedScenario is one row of a composite comparison.
type RankedScenario struct {
	ScenarioID     string          `json:"scenario_id"`
	Name           string          `json:"name"`
	CompositeScore float64         `json:"composite_score"`
	Rank           int             `json:"rank"`
	Outcome        ScenarioOutcome `json:"outcome"`
}
