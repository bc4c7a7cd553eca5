// internal/timeseries/stats_test.go
package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanAndStd(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	require.InDelta(t, 5.0, Mean(values), 1e-9)
	require.InDelta(t, 2.0, Std(values), 1e-9)

	require.Equal(t, 0.0, Mean(nil))
	require.Equal(t, 0.0, Std(nil))
}

func TestCoefficientOfVariation(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	require.InDelta(t, 0.4, CoefficientOfVariation(values), 1e-9)

	// A zero-mean series reports +Inf so callers land it in the most
	// volatile bucket.
	require.True(t, math.IsInf(CoefficientOfVariation([]float64{0, 0, 0}), 1))
}

func TestLinearTrend(t *testing.T) {
	slope, intercept := LinearTrend([]float64{3, 5, 7, 9})
	require.InDelta(t, 2.0, slope, 1e-9)
	require.InDelta(t, 3.0, intercept, 1e-9)

	slope, intercept = LinearTrend([]float64{5})
	require.Equal(t, 0.0, slope)
	require.Equal(t, 5.0, intercept)
}

func TestAutocorrelation(t *testing.T) {
	// Perfectly periodic series correlates strongly at its period.
	periodic := []float64{1, 5, 1, 5, 1, 5, 1, 5, 1, 5}
	require.Greater(t, Autocorrelation(periodic, 2), 0.7)
	require.Less(t, Autocorrelation(periodic, 1), 0.0)

	require.Equal(t, 0.0, Autocorrelation(periodic, 0))
	require.Equal(t, 0.0, Autocorrelation(periodic, len(periodic)))
	require.Equal(t, 0.0, Autocorrelation([]float64{3, 3, 3}, 1))
}

func TestAccuracy(t *testing.T) {
	actual := []float64{100, 200, 0, 50}
	predicted := []float64{110, 180, 5, 50}

	acc := Accuracy(actual, predicted)

	// The zero-actual point is excluded from MAPE: (10% + 10% + 0%) / 3.
	require.InDelta(t, 20.0/3.0, acc.MAPE, 1e-9)
	require.InDelta(t, 6.25, acc.MAE, 1e-9)
	require.InDelta(t, (10.0-20.0+5.0+0.0)/4.0, acc.Bias, 1e-9)
}

func TestAccuracyClampsAndDegenerates(t *testing.T) {
	// Wildly wrong forecasts clamp at 100.
	acc := Accuracy([]float64{1, 1}, []float64{50, 50})
	require.Equal(t, 100.0, acc.MAPE)

	// All-zero actuals leave no valid percentage points.
	acc = Accuracy([]float64{0, 0}, []float64{1, 2})
	require.Equal(t, 100.0, acc.MAPE)

	acc = Accuracy(nil, nil)
	require.Equal(t, 100.0, acc.MAPE)
	require.Equal(t, 0.0, acc.MAE)
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	require.InDelta(t, 5.0, MovingAverage(values, 3), 1e-9)
	// Window larger than the series collapses to the full mean.
	require.InDelta(t, 3.5, MovingAverage(values, 100), 1e-9)
	require.Equal(t, 0.0, MovingAverage(nil, 3))
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	p95 := Percentile(values, 95)
	require.GreaterOrEqual(t, p95, 90.0)
	require.LessOrEqual(t, p95, 100.0)
	require.Equal(t, 0.0, Percentile(nil, 50))
}
