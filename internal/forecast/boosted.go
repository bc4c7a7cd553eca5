// internal/forecast/boosted.go
package forecast

import (
	"math"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const (
	boostRounds       = 10
	boostLearningRate = 0.1
	boostMinPoints    = 10
)

// stump is a single threshold split on the lag-1 feature.
type stump struct {
	threshold float64
	left      float64
	right     float64
}

func (s stump) predict(x float64) float64 {
	if x <= s.threshold {
		return s.left
	}
	return s.right
}

// BoostedModel is a boosted ensemble of threshold-split stumps on the
// lag-1 feature, fit sequentially to the residuals of a running-mean base
// prediction with shrinkage.
type BoostedModel struct{}

func (m *BoostedModel) Kind() domain.Algorithm { return domain.AlgorithmBoosted }

func (m *BoostedModel) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	values := series.Quantities()
	if len(values) < boostMinPoints {
		return (&MovingAverageModel{}).Forecast(series, horizon, granularity)
	}

	// Training pairs: (lag-1 value, current value).
	xs := values[:len(values)-1]
	ys := values[1:]

	base := timeseries.Mean(ys)
	preds := make([]float64, len(ys))
	for i := range preds {
		preds[i] = base
	}

	stumps := make([]stump, 0, boostRounds)
	for round := 0; round < boostRounds; round++ {
		residuals := make([]float64, len(ys))
		for i := range ys {
			residuals[i] = ys[i] - preds[i]
		}

		s, ok := fitStump(xs, residuals)
		if !ok {
			break
		}
		stumps = append(stumps, s)

		for i := range preds {
			preds[i] += boostLearningRate * s.predict(xs[i])
		}
	}

	predict := func(x float64) float64 {
		out := base
		for _, s := range stumps {
			out += boostLearningRate * s.predict(x)
		}
		return out
	}

	// Accuracy from the in-sample one-step fit.
	acc := timeseries.Accuracy(ys, preds)

	// Recursive multi-step forecast on the lag-1 feature.
	out := make([]float64, horizon)
	last := values[len(values)-1]
	for i := 0; i < horizon; i++ {
		next := predict(last)
		out[i] = next
		last = next
	}

	return buildPoints(out, acc.RMSE, series, granularity), acc
}

// fitStump finds the threshold split of xs minimizing squared residual
// error, with constant predictions on each side.
func fitStump(xs, residuals []float64) (stump, bool) {
	bestErr := math.Inf(1)
	var best stump
	found := false

	for _, t := range xs {
		var leftSum, rightSum float64
		var leftN, rightN int
		for i, x := range xs {
			if x <= t {
				leftSum += residuals[i]
				leftN++
			} else {
				rightSum += residuals[i]
				rightN++
			}
		}
		if leftN == 0 || rightN == 0 {
			continue
		}

		left := leftSum / float64(leftN)
		right := rightSum / float64(rightN)

		var sse float64
		for i, x := range xs {
			var p float64
			if x <= t {
				p = left
			} else {
				p = right
			}
			d := residuals[i] - p
			sse += d * d
		}

		if sse < bestErr {
			bestErr = sse
			best = stump{threshold: t, left: left, right: right}
			found = true
		}
	}
	return best, found
}
