// internal/forecast/model.go

// Package forecast implements the point-forecast model library and the
// automatic model selector. Every model degrades to a moving-average
// forecast when its minimum-data precondition is unmet, so forecasting a
// short or degenerate series never fails.
package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

const (
	// z-score for a 95% confidence band.
	zScore = 1.96
	// Per-step widening of the band with forecast horizon index.
	widenRate = 0.05
	// Band applied when there is not enough variance data for a proper
	// sigma estimate.
	defaultBandPct = 0.30
)

// Model is a single point-forecast algorithm. Implementations never return
// an error: insufficient data falls back to the moving-average forecast.
type Model interface {
	Kind() domain.Algorithm
	Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics)
}

// Accelerated is implemented by model variants backed by an optional
// numerical toolkit. Availability is probed at runtime; the pure
// implementations in this package remain the contractual baseline.
type Accelerated interface {
	Model
	Available() bool
}

// Library holds one model instance per algorithm family, resolved once at
// construction.
type Library struct {
	models map[domain.Algorithm]Model
	order  []domain.Algorithm
}

// Option customizes a Library.
type Option func(*Library)

// WithModel overrides the registered model for its algorithm family. An
// Accelerated model that reports itself unavailable is ignored and the
// pure baseline stays registered.
func WithModel(m Model) Option {
	return func(l *Library) {
		if acc, ok := m.(Accelerated); ok && !acc.Available() {
			return
		}
		l.models[m.Kind()] = m
	}
}

// NewLibrary builds the model registry with the pure implementations.
func NewLibrary(opts ...Option) *Library {
	l := &Library{
		models: map[domain.Algorithm]Model{
			domain.AlgorithmSmoothing:      &SmoothingModel{},
			domain.AlgorithmAutoregressive: &AutoregressiveModel{},
			domain.AlgorithmDecomposition:  &DecompositionModel{},
			domain.AlgorithmBoosted:        &BoostedModel{},
			domain.AlgorithmMovingAverage:  &MovingAverageModel{},
		},
		order: []domain.Algorithm{
			domain.AlgorithmSmoothing,
			domain.AlgorithmAutoregressive,
			domain.AlgorithmDecomposition,
			domain.AlgorithmBoosted,
			domain.AlgorithmMovingAverage,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Model returns the registered model for an algorithm, falling back to the
// moving average when the algorithm is unknown.
func (l *Library) Model(kind domain.Algorithm) Model {
	if m, ok := l.models[kind]; ok {
		return m
	}
	return l.models[domain.AlgorithmMovingAverage]
}

// Models returns all registered models in a stable order.
func (l *Library) Models() []Model {
	out := make([]Model, 0, len(l.order))
	for _, kind := range l.order {
		out = append(out, l.models[kind])
	}
	return out
}

// futureDates extends the series' calendar by horizon steps of the given
// granularity. An empty series starts from today.
func futureDates(series domain.TimeSeries, horizon int, granularity domain.Granularity) []time.Time {
	last := time.Now().UTC().Truncate(24 * time.Hour)
	if len(series) > 0 {
		last = series[len(series)-1].Date
	}

	step := func(t time.Time) time.Time {
		switch granularity {
		case domain.GranularityWeekly:
			return t.AddDate(0, 0, 7)
		case domain.GranularityMonthly:
			return t.AddDate(0, 1, 0)
		default:
			return t.AddDate(0, 0, 1)
		}
	}

	dates := make([]time.Time, horizon)
	cur := last
	for i := 0; i < horizon; i++ {
		cur = step(cur)
		dates[i] = cur
	}
	return dates
}

// buildPoints wraps raw predictions in confidence bands. The band is
// point ± z·sigma·(1 + widenRate·i), widening with horizon index. A
// non-positive sigma falls back to the 20%-of-mean proxy; a NaN sigma
// marks "insufficient variance data" and selects the flat ±30% default
// band. Predictions are clamped non-negative before banding so
// lower ≤ point ≤ upper always holds.
func buildPoints(preds []float64, sigma float64, series domain.TimeSeries, granularity domain.Granularity) []domain.ForecastPoint {
	dates := futureDates(series, len(preds), granularity)

	if math.IsNaN(sigma) {
		sigma = 0
	} else if sigma <= 0 {
		sigma = 0.2 * timeseries.Mean(preds)
	}

	points := make([]domain.ForecastPoint, len(preds))
	for i, p := range preds {
		if p < 0 || math.IsNaN(p) {
			p = 0
		}

		var lower, upper float64
		if sigma > 0 {
			band := zScore * sigma * (1 + widenRate*float64(i))
			lower = p - band
			upper = p + band
		} else {
			lower = p * (1 - defaultBandPct)
			upper = p * (1 + defaultBandPct)
		}
		if lower < 0 {
			lower = 0
		}
		if upper < p {
			upper = p
		}

		points[i] = domain.ForecastPoint{
			Date:       dates[i],
			PointValue: p,
			LowerBound: lower,
			UpperBound: upper,
		}
	}
	return points
}
