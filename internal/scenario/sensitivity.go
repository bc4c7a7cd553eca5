// internal/scenario/sensitivity.go
package scenario

import (
	"math"
	"sort"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// Parameter names reported by the tornado analysis.
const (
	ParamDemandMultiplier   = "demand_multiplier"
	ParamSupplyConstraint   = "supply_constraint_pct"
	ParamLeadTimeMultiplier = "lead_time_multiplier"
	ParamPriceChange        = "price_change_pct"
)

// Outcome evaluates a scenario deterministically: assumptions applied to
// the baseline, no sampling. Shared by the tornado analyzer and the
// composite ranker so both see the same numbers.
func Outcome(baseline domain.Baseline, assumptions domain.ScenarioAssumptions, horizonDays int) domain.ScenarioOutcome {
	b := ApplyAssumptions(baseline, assumptions)

	horizon := float64(horizonDays)
	demand := b.DailyDemand * horizon
	supply := b.SupplyCapacity * horizon

	units := math.Min(demand, supply)
	revenue := units * b.RevenuePerUnit
	cogs := units * b.CostPerUnit
	grossMargin := revenue - cogs
	opex := revenue * opexRate
	ebitda := grossMargin - opex
	tax := 0.0
	if ebitda > 0 {
		tax = ebitda * taxRate
	}

	out := domain.ScenarioOutcome{
		Revenue:      revenue,
		NetIncome:    ebitda - tax,
		ServiceLevel: 1,
		Efficiency:   0,
	}
	if demand > 0 {
		out.ServiceLevel = units / demand
		out.StockoutRisk = math.Max(demand-supply, 0) / demand
	}
	if supply > 0 {
		out.Efficiency = units / supply
	}
	return out
}

// Tornado varies each assumption parameter by ±variationPct (of its
// current value) in isolation, evaluates the deterministic outcome at
// both extremes, and ranks parameters by net-income spread descending.
func Tornado(baseline domain.Baseline, assumptions domain.ScenarioAssumptions, horizonDays int, variationPct float64) ([]domain.SensitivityEntry, error) {
	if horizonDays <= 0 {
		return nil, domain.NewValidationError("horizon_days", "must be positive")
	}
	if variationPct < 0 {
		return nil, domain.NewValidationError("variation_pct", "must not be negative")
	}

	v := variationPct / 100

	type variant struct {
		name      string
		low, high domain.ScenarioAssumptions
	}

	base := normalized(assumptions)
	variants := []variant{
		{
			name: ParamDemandMultiplier,
			low:  withDemand(base, base.DemandMultiplier*(1-v)),
			high: withDemand(base, base.DemandMultiplier*(1+v)),
		},
		{
			name: ParamSupplyConstraint,
			low:  withSupplyConstraint(base, base.SupplyConstraintPct*(1-v)),
			high: withSupplyConstraint(base, base.SupplyConstraintPct*(1+v)),
		},
		{
			name: ParamLeadTimeMultiplier,
			low:  withLeadTime(base, base.LeadTimeMultiplier*(1-v)),
			high: withLeadTime(base, base.LeadTimeMultiplier*(1+v)),
		},
		{
			name: ParamPriceChange,
			low:  withPriceChange(base, base.PriceChangePct-variationPct),
			high: withPriceChange(base, base.PriceChangePct+variationPct),
		},
	}

	entries := make([]domain.SensitivityEntry, 0, len(variants))
	for _, vr := range variants {
		low := Outcome(baseline, vr.low, horizonDays)
		high := Outcome(baseline, vr.high, horizonDays)
		entries = append(entries, domain.SensitivityEntry{
			Parameter:     vr.name,
			LowRevenue:    low.Revenue,
			HighRevenue:   high.Revenue,
			LowNetIncome:  low.NetIncome,
			HighNetIncome: high.NetIncome,
			Spread:        math.Abs(high.NetIncome - low.NetIncome),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Spread > entries[j].Spread
	})
	return entries, nil
}

// normalized fills unset multiplier fields with their identity values so
// percentage variations have a base to vary from.
func normalized(a domain.ScenarioAssumptions) domain.ScenarioAssumptions {
	if a.DemandMultiplier <= 0 {
		a.DemandMultiplier = 1
	}
	if a.LeadTimeMultiplier <= 0 {
		a.LeadTimeMultiplier = 1
	}
	return a
}

func withDemand(a domain.ScenarioAssumptions, v float64) domain.ScenarioAssumptions {
	a.DemandMultiplier = v
	return a
}

func withSupplyConstraint(a domain.ScenarioAssumptions, v float64) domain.ScenarioAssumptions {
	a.SupplyConstraintPct = v
	return a
}

func withLeadTime(a domain.ScenarioAssumptions, v float64) domain.ScenarioAssumptions {
	a.LeadTimeMultiplier = v
	return a
}

func withPriceChange(a domain.ScenarioAssumptions, v float64) domain.ScenarioAssumptions {
	a.PriceChangePct = v
	return a
}
