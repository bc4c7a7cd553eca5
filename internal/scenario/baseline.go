// internal/scenario/baseline.go

// Package scenario is the what-if engine: it derives a baseline from
// recent demand history, runs seeded Monte Carlo simulations over it,
// projects a monthly P&L, ranks parameter sensitivity and compares
// scenarios on a composite score. Every path in the package is
// deterministic for a given seed and input.
package scenario

import (
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const (
	// History window the baseline is derived from.
	baselineWindow = 30

	// Fallbacks when history carries no revenue or lead-time signal.
	defaultRevenuePerUnit = 100.0
	defaultLeadTimeDays   = 7.0

	// Cost as a fraction of realized revenue per unit, and headroom of
	// supply capacity over average demand, absent better data.
	costFraction     = 0.6
	capacityHeadroom = 1.2
)

// DeriveBaseline summarizes the most recent history window into the
// parameter set simulations run against. Revenue per unit comes from
// realized revenue over realized quantity when the history carries it.
func DeriveBaseline(series domain.TimeSeries) domain.Baseline {
	if len(series) > baselineWindow {
		series = series[len(series)-baselineWindow:]
	}

	b := domain.Baseline{
		RevenuePerUnit: defaultRevenuePerUnit,
		LeadTimeDays:   defaultLeadTimeDays,
	}
	if len(series) == 0 {
		return b
	}

	quantities := series.Quantities()
	b.DailyDemand = timeseries.Mean(quantities)
	b.SupplyCapacity = b.DailyDemand * capacityHeadroom

	var totalQty, totalRevenue float64
	for _, p := range series {
		totalQty += p.Quantity
		totalRevenue += p.Revenue
	}
	if totalQty > 0 && totalRevenue > 0 {
		b.RevenuePerUnit = totalRevenue / totalQty
	}
	b.CostPerUnit = b.RevenuePerUnit * costFraction
	return b
}

// ApplyAssumptions folds the what-if multipliers into a baseline. Zero
// multipliers are treated as "unchanged" so partially filled assumption
// sets behave sensibly.
func ApplyAssumptions(b domain.Baseline, a domain.ScenarioAssumptions) domain.Baseline {
	out := b
	if a.DemandMultiplier > 0 {
		out.DailyDemand *= a.DemandMultiplier
	}
	if a.SupplyConstraintPct > 0 {
		out.SupplyCapacity *= 1 - a.SupplyConstraintPct/100
		if out.SupplyCapacity < 0 {
			out.SupplyCapacity = 0
		}
	}
	if a.LeadTimeMultiplier > 0 {
		out.LeadTimeDays *= a.LeadTimeMultiplier
	}
	out.RevenuePerUnit *= 1 + a.PriceChangePct/100
	if out.RevenuePerUnit < 0 {
		out.RevenuePerUnit = 0
	}
	return out
}
