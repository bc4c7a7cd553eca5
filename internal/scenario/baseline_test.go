// internal/scenario/baseline_test.go
package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func historySeries(days int, quantity, revenuePerUnit float64) domain.TimeSeries {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	ts := make(domain.TimeSeries, days)
	for i := range ts {
		ts[i] = domain.DemandPoint{
			Date:     start.AddDate(0, 0, i),
			Quantity: quantity,
			Revenue:  quantity * revenuePerUnit,
		}
	}
	return ts
}

func TestDeriveBaselineFromHistory(t *testing.T) {
	b := DeriveBaseline(historySeries(30, 20, 50))

	require.InDelta(t, 20.0, b.DailyDemand, 1e-9)
	require.InDelta(t, 50.0, b.RevenuePerUnit, 1e-9)
	require.InDelta(t, 30.0, b.CostPerUnit, 1e-9)
	require.InDelta(t, 24.0, b.SupplyCapacity, 1e-9)
	require.InDelta(t, 7.0, b.LeadTimeDays, 1e-9)
}

func TestDeriveBaselineUsesRecentWindow(t *testing.T) {
	// 60 days of quantity 5 followed by 30 days of quantity 20: only the
	// trailing window should count.
	old := historySeries(60, 5, 50)
	recent := historySeries(30, 20, 50)
	for i := range recent {
		recent[i].Date = old[len(old)-1].Date.AddDate(0, 0, i+1)
	}

	b := DeriveBaseline(append(old, recent...))
	require.InDelta(t, 20.0, b.DailyDemand, 1e-9)
}

func TestDeriveBaselineEmptyHistory(t *testing.T) {
	b := DeriveBaseline(nil)

	require.Zero(t, b.DailyDemand)
	require.InDelta(t, 100.0, b.RevenuePerUnit, 1e-9)
	require.InDelta(t, 7.0, b.LeadTimeDays, 1e-9)
}

func TestDeriveBaselineWithoutRevenueSignal(t *testing.T) {
	series := historySeries(10, 15, 50)
	for i := range series {
		series[i].Revenue = 0
	}

	b := DeriveBaseline(series)
	require.InDelta(t, 100.0, b.RevenuePerUnit, 1e-9)
	require.InDelta(t, 60.0, b.CostPerUnit, 1e-9)
}

func TestApplyAssumptions(t *testing.T) {
	base := domain.Baseline{
		DailyDemand:    100,
		RevenuePerUnit: 50,
		CostPerUnit:    30,
		SupplyCapacity: 120,
		LeadTimeDays:   7,
	}

	out := ApplyAssumptions(base, domain.ScenarioAssumptions{
		DemandMultiplier:    1.5,
		SupplyConstraintPct: 25,
		LeadTimeMultiplier:  2,
		PriceChangePct:      -10,
	})

	require.InDelta(t, 150.0, out.DailyDemand, 1e-9)
	require.InDelta(t, 90.0, out.SupplyCapacity, 1e-9)
	require.InDelta(t, 14.0, out.LeadTimeDays, 1e-9)
	require.InDelta(t, 45.0, out.RevenuePerUnit, 1e-9)
	require.InDelta(t, 30.0, out.CostPerUnit, 1e-9)
}

func TestApplyAssumptionsZeroMeansUnchanged(t *testing.T) {
	base := domain.Baseline{DailyDemand: 100, SupplyCapacity: 120, RevenuePerUnit: 50, LeadTimeDays: 7}

	out := ApplyAssumptions(base, domain.ScenarioAssumptions{})
	require.Equal(t, base, out)
}

func TestApplyAssumptionsClampsAtZero(t *testing.T) {
	base := domain.Baseline{SupplyCapacity: 100, RevenuePerUnit: 50}

	out := ApplyAssumptions(base, domain.ScenarioAssumptions{
		SupplyConstraintPct: 150,
		PriceChangePct:      -200,
	})
	require.Zero(t, out.SupplyCapacity)
	require.Zero(t, out.RevenuePerUnit)
}
