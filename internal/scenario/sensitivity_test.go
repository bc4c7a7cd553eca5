// internal/scenario/sensitivity_test.go
package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func TestOutcomeDeterministic(t *testing.T) {
	base := testBaseline()
	assumptions := domain.ScenarioAssumptions{DemandMultiplier: 1.2}

	a := Outcome(base, assumptions, 30)
	b := Outcome(base, assumptions, 30)
	require.Equal(t, a, b)
}

func TestOutcomeSupplyConstrained(t *testing.T) {
	// Demand 120/day against capacity 110/day: supply caps sales.
	out := Outcome(testBaseline(), domain.ScenarioAssumptions{DemandMultiplier: 1.2}, 30)

	require.InDelta(t, 110*30*50, out.Revenue, 1e-6)
	require.InDelta(t, 110.0/120.0, out.ServiceLevel, 1e-9)
	require.InDelta(t, 10.0/120.0, out.StockoutRisk, 1e-9)
	require.InDelta(t, 1.0, out.Efficiency, 1e-9)
}

func TestOutcomeDemandConstrained(t *testing.T) {
	out := Outcome(testBaseline(), domain.ScenarioAssumptions{}, 30)

	require.InDelta(t, 1.0, out.ServiceLevel, 1e-9)
	require.Zero(t, out.StockoutRisk)
	require.InDelta(t, 100.0/110.0, out.Efficiency, 1e-9)
}

func TestTornadoValidation(t *testing.T) {
	_, err := Tornado(testBaseline(), domain.ScenarioAssumptions{}, 0, 20)
	require.True(t, domain.IsValidation(err))

	_, err = Tornado(testBaseline(), domain.ScenarioAssumptions{}, 30, -5)
	require.True(t, domain.IsValidation(err))
}

func TestTornadoRanksBySpread(t *testing.T) {
	entries, err := Tornado(testBaseline(), domain.ScenarioAssumptions{}, 30, 20)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Parameter] = true
	}
	require.True(t, names[ParamDemandMultiplier])
	require.True(t, names[ParamSupplyConstraint])
	require.True(t, names[ParamLeadTimeMultiplier])
	require.True(t, names[ParamPriceChange])

	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i-1].Spread, entries[i].Spread)
	}
	for _, e := range entries {
		require.GreaterOrEqual(t, e.Spread, 0.0)
	}

	// Lead time does not enter the deterministic financial outcome.
	for _, e := range entries {
		if e.Parameter == ParamLeadTimeMultiplier {
			require.InDelta(t, 0.0, e.Spread, 1e-6)
		}
	}
}

func TestTornadoZeroVariation(t *testing.T) {
	entries, err := Tornado(testBaseline(), domain.ScenarioAssumptions{DemandMultiplier: 1.1}, 30, 0)
	require.NoError(t, err)

	for _, e := range entries {
		require.InDelta(t, 0.0, e.Spread, 1e-6)
		require.InDelta(t, e.LowNetIncome, e.HighNetIncome, 1e-6)
	}
}

func TestTornadoPriceSwingMovesNetIncome(t *testing.T) {
	entries, err := Tornado(testBaseline(), domain.ScenarioAssumptions{}, 30, 20)
	require.NoError(t, err)

	for _, e := range entries {
		if e.Parameter == ParamPriceChange {
			require.Greater(t, e.HighNetIncome, e.LowNetIncome)
			require.Greater(t, e.HighRevenue, e.LowRevenue)
		}
	}
}
