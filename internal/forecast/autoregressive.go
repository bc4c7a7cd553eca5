// internal/forecast/autoregressive.go
package forecast

import (
	"math"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const (
	arMinPoints = 10
	arMaxOrder  = 3
)

// AutoregressiveModel is an ARIMA-like forecaster: difference the series
// until roughly stationary, estimate AR coefficients from normalized
// lagged autocorrelations (a simplified Yule-Walker), apply a
// moving-average correction from the residuals, then re-integrate by
// cumulative summation back to level space.
type AutoregressiveModel struct{}

func (m *AutoregressiveModel) Kind() domain.Algorithm { return domain.AlgorithmAutoregressive }

func (m *AutoregressiveModel) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	values := series.Quantities()
	if len(values) < arMinPoints {
		return (&MovingAverageModel{}).Forecast(series, horizon, granularity)
	}

	// Difference until the fitted trend is negligible relative to the
	// series level, at most twice.
	work := append([]float64(nil), values...)
	d := 0
	for d < 2 {
		slope, _ := timeseries.LinearTrend(work)
		level := math.Abs(timeseries.Mean(work))
		if level == 0 {
			level = 1
		}
		if math.Abs(slope)/level < 0.01 {
			break
		}
		work = difference(work)
		d++
	}

	coeffs := yuleWalker(work, arMaxOrder)

	// One-step-ahead fit over the differenced series, collecting residuals
	// for the MA correction.
	p := len(coeffs)
	fittedDiff := make([]float64, len(work))
	var residualSum float64
	residuals := 0
	for i := range work {
		if i < p {
			fittedDiff[i] = work[i]
			continue
		}
		var pred float64
		for j, c := range coeffs {
			pred += c * work[i-1-j]
		}
		fittedDiff[i] = pred
		residualSum += work[i] - pred
		residuals++
	}
	maCorrection := 0.0
	if residuals > 0 {
		maCorrection = residualSum / float64(residuals)
	}

	// Forecast the differenced series forward.
	extended := append([]float64(nil), work...)
	predsDiff := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		var pred float64
		for j, c := range coeffs {
			pred += c * extended[len(extended)-1-j]
		}
		pred += maCorrection
		predsDiff[i] = pred
		extended = append(extended, pred)
	}

	// Re-integrate d times by cumulative summation from the last observed
	// levels.
	preds := predsDiff
	if d > 0 {
		preds = reintegrate(values, predsDiff, d)
	}

	// Fitted values in level space for accuracy metrics.
	fitted := fittedLevels(values, fittedDiff, d)
	acc := timeseries.Accuracy(values, fitted)
	return buildPoints(preds, acc.RMSE, series, granularity), acc
}

// difference returns the lag-1 differenced series.
func difference(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// yuleWalker estimates AR coefficients as lagged autocorrelations,
// normalized so their absolute sum stays below 1 (stability).
func yuleWalker(values []float64, maxOrder int) []float64 {
	order := maxOrder
	if len(values)/3 < order {
		order = len(values) / 3
	}
	if order < 1 {
		order = 1
	}

	coeffs := make([]float64, order)
	var absSum float64
	for i := 0; i < order; i++ {
		coeffs[i] = timeseries.Autocorrelation(values, i+1)
		absSum += math.Abs(coeffs[i])
	}
	if absSum > 0.95 {
		scale := 0.95 / absSum
		for i := range coeffs {
			coeffs[i] *= scale
		}
	}
	return coeffs
}

// reintegrate undoes d rounds of differencing on the forecast path by
// cumulative summation anchored at the observed tail.
func reintegrate(values, predsDiff []float64, d int) []float64 {
	preds := append([]float64(nil), predsDiff...)
	for k := d; k > 0; k-- {
		// Anchor is the last value of the (k-1)-times differenced history.
		anchorSeries := append([]float64(nil), values...)
		for j := 0; j < k-1; j++ {
			anchorSeries = difference(anchorSeries)
		}
		anchor := anchorSeries[len(anchorSeries)-1]

		for i := range preds {
			anchor += preds[i]
			preds[i] = anchor
		}
	}
	return preds
}

// fittedLevels maps one-step-ahead fits of the differenced series back to
// level space for accuracy computation.
func fittedLevels(values, fittedDiff []float64, d int) []float64 {
	if d == 0 {
		return fittedDiff
	}

	// After d rounds of differencing the fitted series is offset by d
	// positions. Undo the differencing one step at a time:
	// d=1: level[i] = level[i-1] + diff_fit
	// d=2: level[i] = level[i-1] + (level[i-1] - level[i-2]) + diff2_fit
	fitted := make([]float64, len(values))
	offset := len(values) - len(fittedDiff)
	for i := range values {
		if i < offset || i < d {
			fitted[i] = values[i]
			continue
		}
		pred := values[i-1] + fittedDiff[i-offset]
		if d == 2 {
			pred += values[i-1] - values[i-2]
		}
		fitted[i] = pred
	}
	return fitted
}
