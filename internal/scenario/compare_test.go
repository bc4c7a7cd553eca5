// internal/scenario/compare_test.go
package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func namedScenarios(names ...string) []domain.Scenario {
	out := make([]domain.Scenario, len(names))
	for i, n := range names {
		out[i] = domain.Scenario{ID: "id-" + n, Name: n}
	}
	return out
}

func TestRankValidation(t *testing.T) {
	_, err := Rank(namedScenarios("only"), []domain.ScenarioOutcome{{}}, domain.DefaultCompareWeights())
	require.True(t, domain.IsValidation(err))

	_, err = Rank(namedScenarios("a", "b"), []domain.ScenarioOutcome{{}}, domain.DefaultCompareWeights())
	require.True(t, domain.IsValidation(err))
}

func TestRankDominantScenarioWins(t *testing.T) {
	outcomes := []domain.ScenarioOutcome{
		{Revenue: 100, NetIncome: 20, ServiceLevel: 0.90, StockoutRisk: 0.10, Efficiency: 0.80},
		{Revenue: 200, NetIncome: 50, ServiceLevel: 0.99, StockoutRisk: 0.01, Efficiency: 0.95},
		{Revenue: 150, NetIncome: 30, ServiceLevel: 0.95, StockoutRisk: 0.05, Efficiency: 0.85},
	}

	ranked, err := Rank(namedScenarios("low", "best", "mid"), outcomes, domain.DefaultCompareWeights())
	require.NoError(t, err)

	require.Equal(t, "best", ranked[0].Name)
	require.Equal(t, "mid", ranked[1].Name)
	require.Equal(t, "low", ranked[2].Name)
	for i, r := range ranked {
		require.Equal(t, i+1, r.Rank)
	}

	// The dominant scenario normalizes to 1 on every dimension.
	var weightSum float64
	w := domain.DefaultCompareWeights()
	weightSum = w.Revenue + w.NetIncome + w.ServiceLevel + w.Risk + w.Efficiency
	require.InDelta(t, weightSum, ranked[0].CompositeScore, 1e-9)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	same := domain.ScenarioOutcome{Revenue: 100, NetIncome: 20, ServiceLevel: 0.9, Efficiency: 0.8}

	ranked, err := Rank(namedScenarios("first", "second"), []domain.ScenarioOutcome{same, same}, domain.DefaultCompareWeights())
	require.NoError(t, err)

	require.Equal(t, "first", ranked[0].Name)
	require.Equal(t, "second", ranked[1].Name)
	require.InDelta(t, ranked[0].CompositeScore, ranked[1].CompositeScore, 1e-9)
}

func TestRankRiskWeightInverts(t *testing.T) {
	// Identical except risk: the safer scenario must win under a
	// risk-only weighting.
	outcomes := []domain.ScenarioOutcome{
		{Revenue: 100, StockoutRisk: 0.5},
		{Revenue: 100, StockoutRisk: 0.0},
	}

	ranked, err := Rank(namedScenarios("risky", "safe"), outcomes, domain.CompareWeights{Risk: 1})
	require.NoError(t, err)
	require.Equal(t, "safe", ranked[0].Name)
}

func TestRankCarriesOutcome(t *testing.T) {
	outcomes := []domain.ScenarioOutcome{
		{Revenue: 100},
		{Revenue: 300},
	}

	ranked, err := Rank(namedScenarios("a", "b"), outcomes, domain.DefaultCompareWeights())
	require.NoError(t, err)

	require.Equal(t, "b", ranked[0].Name)
	require.InDelta(t, 300.0, ranked[0].Outcome.Revenue, 1e-9)
}
