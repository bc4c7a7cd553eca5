// internal/forecast/selector_test.go
package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// weeklySeries repeats a gentle weekly pattern for the given number of
// weeks, starting at a fixed date.
func weeklySeries(weeks int) domain.TimeSeries {
	pattern := []float64{10, 12, 11, 13, 12, 14, 13}
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	ts := make(domain.TimeSeries, 0, weeks*len(pattern))
	for w := 0; w < weeks; w++ {
		for d, q := range pattern {
			ts = append(ts, domain.DemandPoint{
				Date:     start.AddDate(0, 0, w*len(pattern)+d),
				Quantity: q,
				Revenue:  q * 25,
			})
		}
	}
	return ts
}

func TestEveryModelProducesValidPoints(t *testing.T) {
	series := weeklySeries(4)
	lib := NewLibrary()

	for _, m := range lib.Models() {
		points, acc := m.Forecast(series, 7, domain.GranularityDaily)

		require.Len(t, points, 7, "model %s", m.Kind())
		for i, p := range points {
			require.GreaterOrEqual(t, p.PointValue, 0.0, "model %s point %d", m.Kind(), i)
			require.LessOrEqual(t, p.LowerBound, p.PointValue, "model %s point %d", m.Kind(), i)
			require.GreaterOrEqual(t, p.UpperBound, p.PointValue, "model %s point %d", m.Kind(), i)

			// A stable series in [10,14] should forecast nearby.
			require.Greater(t, p.PointValue, 5.0, "model %s point %d", m.Kind(), i)
			require.Less(t, p.PointValue, 20.0, "model %s point %d", m.Kind(), i)
		}
		require.GreaterOrEqual(t, acc.MAPE, 0.0)
		require.LessOrEqual(t, acc.MAPE, 100.0)
	}
}

func TestForecastDatesExtendCalendar(t *testing.T) {
	series := weeklySeries(4)
	last := series[len(series)-1].Date

	points, _ := (&MovingAverageModel{}).Forecast(series, 3, domain.GranularityDaily)

	require.Equal(t, last.AddDate(0, 0, 1), points[0].Date)
	require.Equal(t, last.AddDate(0, 0, 2), points[1].Date)
	require.Equal(t, last.AddDate(0, 0, 3), points[2].Date)
}

func TestModelsDegradeOnShortSeries(t *testing.T) {
	short := weeklySeries(4)[:3]
	lib := NewLibrary()

	for _, m := range lib.Models() {
		points, _ := m.Forecast(short, 5, domain.GranularityDaily)

		require.Len(t, points, 5, "model %s", m.Kind())
		for _, p := range points {
			require.GreaterOrEqual(t, p.PointValue, 0.0, "model %s", m.Kind())
		}
	}
}

func TestSelectorRejectsBadHorizon(t *testing.T) {
	s := NewSelector(NewLibrary(), 0.2)

	_, err := s.Select(weeklySeries(4), 0, domain.GranularityDaily)
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
}

func TestSelectorReturnsScoredResult(t *testing.T) {
	s := NewSelector(NewLibrary(), 0.2)

	result, err := s.Select(weeklySeries(4), 7, domain.GranularityDaily)
	require.NoError(t, err)
	require.Len(t, result.Points, 7)
	require.NotEmpty(t, result.Algorithm)

	if result.Algorithm == domain.AlgorithmEnsemble {
		var sum float64
		for _, w := range result.ModelWeights {
			sum += w
		}
		require.InDelta(t, 1.0, sum, 1e-6)
	}

	for _, p := range result.Points {
		require.GreaterOrEqual(t, p.PointValue, 0.0)
		require.LessOrEqual(t, p.LowerBound, p.PointValue)
		require.GreaterOrEqual(t, p.UpperBound, p.PointValue)
	}
}

func TestEnsembleWeightsFavorAccurateModels(t *testing.T) {
	candidates := []candidate{
		{kind: domain.AlgorithmSmoothing, accuracy: domain.AccuracyMetrics{MAPE: 5}},
		{kind: domain.AlgorithmDecomposition, accuracy: domain.AccuracyMetrics{MAPE: 10}},
		{kind: domain.AlgorithmMovingAverage, accuracy: domain.AccuracyMetrics{MAPE: 40}},
	}

	weights := ensembleWeights(candidates)

	var sum float64
	for _, w := range weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-6)
	require.Greater(t, weights[domain.AlgorithmSmoothing], weights[domain.AlgorithmDecomposition])
	require.Greater(t, weights[domain.AlgorithmDecomposition], weights[domain.AlgorithmMovingAverage])
}

func TestEnsembleWeightsFloorTinyMAPE(t *testing.T) {
	candidates := []candidate{
		{kind: domain.AlgorithmSmoothing, accuracy: domain.AccuracyMetrics{MAPE: 0}},
		{kind: domain.AlgorithmMovingAverage, accuracy: domain.AccuracyMetrics{MAPE: 0.5}},
	}

	weights := ensembleWeights(candidates)

	// Both MAPEs floor at 1, so the weights split evenly.
	require.InDelta(t, 0.5, weights[domain.AlgorithmSmoothing], 1e-9)
	require.InDelta(t, 0.5, weights[domain.AlgorithmMovingAverage], 1e-9)
}
