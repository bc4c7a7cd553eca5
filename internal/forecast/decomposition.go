// internal/forecast/decomposition.go
package forecast

import (
	"time"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const (
	decompMinPoints  = 14
	yearlyMinPoints  = 90
	monthlyBuckets   = 12
	weekdayBuckets   = 7
)

// DecompositionModel is a Prophet-like additive decomposition: an OLS
// linear trend over the index, a weekday profile fitted on the residuals,
// and with enough history a coarse monthly-bucket yearly profile. The
// forecast is trend + weekly + yearly recombined.
type DecompositionModel struct{}

func (m *DecompositionModel) Kind() domain.Algorithm { return domain.AlgorithmDecomposition }

func (m *DecompositionModel) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	values := series.Quantities()
	if len(values) < decompMinPoints {
		return (&MovingAverageModel{}).Forecast(series, horizon, granularity)
	}

	slope, intercept := timeseries.LinearTrend(values)

	// Residual weekly profile: average residual per weekday.
	weekSum := make([]float64, weekdayBuckets)
	weekCount := make([]int, weekdayBuckets)
	// Coarse yearly profile: average residual per calendar month.
	monthSum := make([]float64, monthlyBuckets)
	monthCount := make([]int, monthlyBuckets)

	for i, p := range series {
		residual := values[i] - (slope*float64(i) + intercept)
		wd := int(p.Date.Weekday())
		weekSum[wd] += residual
		weekCount[wd]++
		mo := int(p.Date.Month()) - 1
		monthSum[mo] += residual
		monthCount[mo]++
	}

	weekly := make([]float64, weekdayBuckets)
	for i := range weekly {
		if weekCount[i] > 0 {
			weekly[i] = weekSum[i] / float64(weekCount[i])
		}
	}

	useYearly := len(values) >= yearlyMinPoints
	yearly := make([]float64, monthlyBuckets)
	if useYearly {
		for i := range yearly {
			if monthCount[i] > 0 {
				yearly[i] = monthSum[i] / float64(monthCount[i])
			}
		}
	}

	component := func(t time.Time, idx int) float64 {
		v := slope*float64(idx) + intercept + weekly[int(t.Weekday())]
		if useYearly {
			v += yearly[int(t.Month())-1]
		}
		return v
	}

	fitted := make([]float64, len(values))
	for i, p := range series {
		fitted[i] = component(p.Date, i)
	}
	acc := timeseries.Accuracy(values, fitted)

	dates := futureDates(series, horizon, granularity)
	preds := make([]float64, horizon)
	for i, d := range dates {
		preds[i] = component(d, len(values)+i)
	}

	return buildPoints(preds, acc.RMSE, series, granularity), acc
}
