// internal/forecast/selector.go
package forecast

import (
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

// Series shorter than this are scored in-sample; a holdout split would
// starve the models of training data.
const minHoldoutSeries = 12

// Selector runs the whole model library, scores candidates on holdout
// accuracy, and returns either the best single model or an inverse-MAPE
// weighted ensemble, whichever scores better.
type Selector struct {
	lib             *Library
	holdoutFraction float64
}

func NewSelector(lib *Library, holdoutFraction float64) *Selector {
	if holdoutFraction <= 0 || holdoutFraction >= 0.5 {
		holdoutFraction = 0.2
	}
	return &Selector{lib: lib, holdoutFraction: holdoutFraction}
}

type candidate struct {
	kind     domain.Algorithm
	points   []domain.ForecastPoint
	accuracy domain.AccuracyMetrics
}

// Select produces the final ForecastResult for a series.
func (s *Selector) Select(series domain.TimeSeries, horizon int, granularity domain.Granularity) (domain.ForecastResult, error) {
	if horizon <= 0 {
		return domain.ForecastResult{}, domain.NewValidationError("horizon", "must be positive")
	}

	candidates := s.evaluate(series, horizon, granularity)

	// Lowest MAPE wins; library order breaks ties.
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].accuracy.MAPE < candidates[best].accuracy.MAPE {
			best = i
		}
	}

	weights := ensembleWeights(candidates)
	ensemble := s.combine(candidates, weights)

	if ensemble.Accuracy.MAPE < candidates[best].accuracy.MAPE {
		return ensemble, nil
	}

	return domain.ForecastResult{
		Points:    candidates[best].points,
		Algorithm: candidates[best].kind,
		Accuracy:  candidates[best].accuracy,
	}, nil
}

// evaluate runs every model. With enough history the final stretch of the
// series is held out: each model trains on the head, is scored against the
// tail, and then refit on the full series for its final points. Short
// series fall back to in-sample accuracy.
func (s *Selector) evaluate(series domain.TimeSeries, horizon int, granularity domain.Granularity) []candidate {
	models := s.lib.Models()
	candidates := make([]candidate, 0, len(models))

	useHoldout := len(series) >= minHoldoutSeries
	var train domain.TimeSeries
	var holdoutActual []float64
	if useHoldout {
		h := int(float64(len(series)) * s.holdoutFraction)
		if h < 1 {
			h = 1
		}
		train = series[:len(series)-h]
		holdoutActual = series[len(series)-h:].Quantities()
	}

	for _, m := range models {
		points, acc := m.Forecast(series, horizon, granularity)

		if useHoldout {
			holdoutPoints, _ := m.Forecast(train, len(holdoutActual), granularity)
			predicted := make([]float64, len(holdoutPoints))
			for i, p := range holdoutPoints {
				predicted[i] = p.PointValue
			}
			acc = timeseries.Accuracy(holdoutActual, predicted)
		}

		candidates = append(candidates, candidate{
			kind:     m.Kind(),
			points:   points,
			accuracy: acc,
		})
	}
	return candidates
}

// ensembleWeights computes inverse-MAPE weights with a floor of 1 on each
// MAPE, normalized to sum to 1.
func ensembleWeights(candidates []candidate) map[domain.Algorithm]float64 {
	var total float64
	inv := make(map[domain.Algorithm]float64, len(candidates))
	for _, c := range candidates {
		mape := c.accuracy.MAPE
		if mape < 1 {
			mape = 1
		}
		inv[c.kind] = 1 / mape
		total += 1 / mape
	}

	weights := make(map[domain.Algorithm]float64, len(candidates))
	for kind, v := range inv {
		weights[kind] = v / total
	}
	return weights
}

// combine builds the weighted-ensemble forecast. Point values and bounds
// are per-period weighted sums; the ensemble MAPE (and the other metrics)
// are the weighted sums of the component metrics.
func (s *Selector) combine(candidates []candidate, weights map[domain.Algorithm]float64) domain.ForecastResult {
	if len(candidates) == 0 {
		return domain.ForecastResult{Algorithm: domain.AlgorithmEnsemble}
	}

	horizon := len(candidates[0].points)
	points := make([]domain.ForecastPoint, horizon)
	for i := 0; i < horizon; i++ {
		points[i].Date = candidates[0].points[i].Date
	}

	var acc domain.AccuracyMetrics
	for _, c := range candidates {
		w := weights[c.kind]
		for i := 0; i < horizon && i < len(c.points); i++ {
			points[i].PointValue += w * c.points[i].PointValue
			points[i].LowerBound += w * c.points[i].LowerBound
			points[i].UpperBound += w * c.points[i].UpperBound
		}
		acc.MAPE += w * c.accuracy.MAPE
		acc.MAE += w * c.accuracy.MAE
		acc.RMSE += w * c.accuracy.RMSE
		acc.Bias += w * c.accuracy.Bias
	}

	return domain.ForecastResult{
		Points:       points,
		Algorithm:    domain.AlgorithmEnsemble,
		Accuracy:     acc,
		ModelWeights: weights,
	}
}
