// internal/forecast/smoothing.go
package forecast

import (
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

// Default smoothing factors for level, trend and season.
const (
	smoothAlpha = 0.3
	smoothBeta  = 0.1
	smoothGamma = 0.1
)

// SmoothingModel is additive triple exponential smoothing (Holt-Winters
// style). The seasonal period comes from the granularity: 7 for daily, 4
// for weekly, 12 for monthly. Requires at least two full seasons.
type SmoothingModel struct{}

func (m *SmoothingModel) Kind() domain.Algorithm { return domain.AlgorithmSmoothing }

func (m *SmoothingModel) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	values := series.Quantities()
	period := granularity.SeasonLength()

	if len(values) < 2*period {
		return (&MovingAverageModel{}).Forecast(series, horizon, granularity)
	}

	// Initialize level as the first-season mean, trend as the mean
	// season-over-season change, seasonals as first-season offsets.
	level := timeseries.Mean(values[:period])
	trend := (timeseries.Mean(values[period:2*period]) - level) / float64(period)
	season := make([]float64, period)
	for i := 0; i < period; i++ {
		season[i] = values[i] - level
	}

	fitted := make([]float64, len(values))
	for i, v := range values {
		si := i % period
		fitted[i] = level + trend + season[si]

		prevLevel := level
		prevSeason := season[si]
		level = smoothAlpha*(v-prevSeason) + (1-smoothAlpha)*(level+trend)
		trend = smoothBeta*(level-prevLevel) + (1-smoothBeta)*trend
		season[si] = smoothGamma*(v-level) + (1-smoothGamma)*prevSeason
	}

	preds := make([]float64, horizon)
	for i := 1; i <= horizon; i++ {
		si := (len(values) + i - 1) % period
		preds[i-1] = level + float64(i)*trend + season[si]
	}

	acc := timeseries.Accuracy(values, fitted)
	return buildPoints(preds, acc.RMSE, series, granularity), acc
}
