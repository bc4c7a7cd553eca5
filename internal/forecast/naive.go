// internal/forecast/naive.go
package forecast

import (
	"math"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const naiveWindow = 7

// MovingAverageModel is the naive fallback: a flat-line forecast at the
// trailing min(7, n)-period average. It is also the landing pad for every
// other model's insufficient-data precondition.
type MovingAverageModel struct{}

func (m *MovingAverageModel) Kind() domain.Algorithm { return domain.AlgorithmMovingAverage }

func (m *MovingAverageModel) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	values := series.Quantities()

	level := timeseries.MovingAverage(values, naiveWindow)

	preds := make([]float64, horizon)
	for i := range preds {
		preds[i] = level
	}

	// One-step-ahead fitted values: each point predicted by the trailing
	// window mean of its predecessors.
	var actual, fitted []float64
	for i := 1; i < len(values); i++ {
		actual = append(actual, values[i])
		fitted = append(fitted, timeseries.MovingAverage(values[:i], naiveWindow))
	}
	acc := timeseries.Accuracy(actual, fitted)

	sigma := acc.RMSE
	if len(actual) < 2 {
		// Not enough variance data for a sigma estimate; NaN selects the
		// flat ±30% band in buildPoints.
		sigma = math.NaN()
	}
	return buildPoints(preds, sigma, series, granularity), acc
}
