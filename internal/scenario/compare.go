// internal/scenario/compare.go
package scenario

import (
	"sort"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// Rank scores scenarios against each other on a composite of min-max
// normalized outcome dimensions. Stockout risk is inverted so that lower
// risk scores higher. Ties keep input order, so a caller passing
// scenarios in creation order gets a stable, reproducible ranking.
func Rank(scenarios []domain.Scenario, outcomes []domain.ScenarioOutcome, weights domain.CompareWeights) ([]domain.RankedScenario, error) {
	if len(scenarios) < 2 {
		return nil, domain.NewValidationError("scenarios", "at least two scenarios are required")
	}
	if len(scenarios) != len(outcomes) {
		return nil, domain.NewValidationError("outcomes", "must match scenarios one to one")
	}

	revenue := normalize(pluck(outcomes, func(o domain.ScenarioOutcome) float64 { return o.Revenue }))
	netIncome := normalize(pluck(outcomes, func(o domain.ScenarioOutcome) float64 { return o.NetIncome }))
	service := normalize(pluck(outcomes, func(o domain.ScenarioOutcome) float64 { return o.ServiceLevel }))
	risk := normalize(pluck(outcomes, func(o domain.ScenarioOutcome) float64 { return o.StockoutRisk }))
	efficiency := normalize(pluck(outcomes, func(o domain.ScenarioOutcome) float64 { return o.Efficiency }))

	ranked := make([]domain.RankedScenario, len(scenarios))
	for i, sc := range scenarios {
		score := weights.Revenue*revenue[i] +
			weights.NetIncome*netIncome[i] +
			weights.ServiceLevel*service[i] +
			weights.Risk*(1-risk[i]) +
			weights.Efficiency*efficiency[i]

		ranked[i] = domain.RankedScenario{
			ScenarioID:     sc.ID,
			Name:           sc.Name,
			CompositeScore: score,
			Outcome:        outcomes[i],
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func pluck(outcomes []domain.ScenarioOutcome, f func(domain.ScenarioOutcome) float64) []float64 {
	out := make([]float64, len(outcomes))
	for i, o := range outcomes {
		out[i] = f(o)
	}
	return out
}

// normalize maps values onto [0,1] by min-max scaling. A flat dimension
// contributes equally to every scenario.
func normalize(values []float64) []float64 {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}
