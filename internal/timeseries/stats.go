// internal/timeseries/stats.go
package timeseries

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// Variance returns the population variance, 0 for fewer than one point.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v, err := stats.PopulationVariance(values)
	if err != nil {
		return 0
	}
	return v
}

// Std returns the population standard deviation.
func Std(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// CoefficientOfVariation is std/mean. A zero-mean series has no meaningful
// CV; it reports +Inf so classification lands in the most volatile bucket.
func CoefficientOfVariation(values []float64) float64 {
	m := Mean(values)
	if m == 0 {
		return math.Inf(1)
	}
	return Std(values) / m
}

// LinearTrend fits value = slope*index + intercept by ordinary least
// squares over the series index. Fewer than 2 points yields a flat line at
// the series mean.
func LinearTrend(values []float64) (slope, intercept float64) {
	n := len(values)
	if n < 2 {
		return 0, Mean(values)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, Mean(values)
	}

	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept
}

// Autocorrelation returns the lag-k autocorrelation, 0 when the lag is out
// of range or the series has no variance.
func Autocorrelation(values []float64, lag int) float64 {
	n := len(values)
	if lag <= 0 || lag >= n {
		return 0
	}

	m := Mean(values)
	var denom float64
	for _, v := range values {
		d := v - m
		denom += d * d
	}
	if denom == 0 {
		return 0
	}

	var num float64
	for i := lag; i < n; i++ {
		num += (values[i] - m) * (values[i-lag] - m)
	}
	return num / denom
}

// Accuracy computes MAPE/MAE/RMSE/bias over paired actual and predicted
// values. MAPE excludes zero-actual points from the denominator and is
// clamped to [0,100]; with no valid points it reports 100 (the forecast
// told us nothing). Bias is mean(predicted - actual).
func Accuracy(actual, predicted []float64) domain.AccuracyMetrics {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return domain.AccuracyMetrics{MAPE: 100}
	}

	var absErrSum, sqErrSum, biasSum, pctErrSum float64
	pctCount := 0
	for i := 0; i < n; i++ {
		err := predicted[i] - actual[i]
		absErrSum += math.Abs(err)
		sqErrSum += err * err
		biasSum += err
		if actual[i] != 0 {
			pctErrSum += math.Abs(err/actual[i]) * 100
			pctCount++
		}
	}

	mape := 100.0
	if pctCount > 0 {
		mape = pctErrSum / float64(pctCount)
		if mape > 100 {
			mape = 100
		}
		if mape < 0 {
			mape = 0
		}
	}

	fn := float64(n)
	return domain.AccuracyMetrics{
		MAPE: mape,
		MAE:  absErrSum / fn,
		RMSE: math.Sqrt(sqErrSum / fn),
		Bias: biasSum / fn,
	}
}

// Percentile returns the p-th percentile (0-100) of the values, using
// nearest-rank interpolation from the stats package.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v, err := stats.Percentile(values, p)
	if err != nil {
		return 0
	}
	return v
}

// MovingAverage returns the mean of the trailing window (at most the whole
// series).
func MovingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window > len(values) {
		window = len(values)
	}
	return Mean(values[len(values)-window:])
}
