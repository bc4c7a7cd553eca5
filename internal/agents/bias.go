// internal/agents/bias.go
package agents

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
)

// Average MAPE above this flags an algorithm as poorly calibrated.
const poorAccuracyMAPE = 30.0

// BiasAgent looks for systematic over/under-forecasting per algorithm
// across recently completed forecasts.
type BiasAgent struct {
	biasThreshold float64
}

func NewBiasAgent(cfg config.AgentConfig) *BiasAgent {
	return &BiasAgent{
		biasThreshold: cfg.BiasThreshold,
	}
}

type algorithmStats struct {
	biasSum float64
	mapeSum float64
	count   int
}

// Scan aggregates bias and MAPE per algorithm and raises alerts where the
// averages cross the thresholds. The recommended corrective offset is the
// negative of the measured bias.
func (a *BiasAgent) Scan(records []domain.ForecastRecord) []domain.Alert {
	perAlgorithm := make(map[domain.Algorithm]*algorithmStats)
	for _, r := range records {
		s := perAlgorithm[r.Result.Algorithm]
		if s == nil {
			s = &algorithmStats{}
			perAlgorithm[r.Result.Algorithm] = s
		}
		s.biasSum += r.Result.Accuracy.Bias
		s.mapeSum += r.Result.Accuracy.MAPE
		s.count++
	}

	// Deterministic alert order regardless of map iteration.
	algorithms := make([]domain.Algorithm, 0, len(perAlgorithm))
	for algo := range perAlgorithm {
		algorithms = append(algorithms, algo)
	}
	sort.Slice(algorithms, func(i, j int) bool { return algorithms[i] < algorithms[j] })

	var alerts []domain.Alert
	now := time.Now()

	for _, algo := range algorithms {
		s := perAlgorithm[algo]
		avgBias := s.biasSum / float64(s.count)
		avgMAPE := s.mapeSum / float64(s.count)

		if avgBias > a.biasThreshold || avgBias < -a.biasThreshold {
			direction := "over-forecasting"
			if avgBias < 0 {
				direction = "under-forecasting"
			}
			severity := domain.SeverityMedium
			if avgBias > 2*a.biasThreshold || avgBias < -2*a.biasThreshold {
				severity = domain.SeverityHigh
			}
			alerts = append(alerts, domain.Alert{
				ID:       uuid.New().String(),
				Category: domain.CategoryForecastBias,
				Severity: severity,
				Title:    fmt.Sprintf("Systematic %s by %s", direction, algo),
				Message: fmt.Sprintf("average bias %.2f across %d forecasts exceeds threshold %.2f",
					avgBias, s.count, a.biasThreshold),
				Data: map[string]interface{}{
					"algorithm":         string(algo),
					"avg_bias":          avgBias,
					"forecast_count":    s.count,
					"corrective_offset": -avgBias,
				},
				RecommendedAction: fmt.Sprintf("apply a corrective offset of %.2f to %s forecasts", -avgBias, algo),
				Timestamp:         now,
			})
		}

		if avgMAPE > poorAccuracyMAPE {
			alerts = append(alerts, domain.Alert{
				ID:       uuid.New().String(),
				Category: domain.CategoryAccuracy,
				Severity: domain.SeverityMedium,
				Title:    fmt.Sprintf("Poor accuracy from %s", algo),
				Message: fmt.Sprintf("average MAPE %.1f%% across %d forecasts exceeds %.0f%%",
					avgMAPE, s.count, poorAccuracyMAPE),
				Data: map[string]interface{}{
					"algorithm":      string(algo),
					"avg_mape":       avgMAPE,
					"forecast_count": s.count,
				},
				RecommendedAction: "review model choice for the affected products",
				Timestamp:         now,
			})
		}
	}
	return alerts
}
