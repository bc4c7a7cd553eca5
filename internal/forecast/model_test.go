// internal/forecast/model_test.go
package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// acceleratedStub stands in for a model variant backed by an optional
// numerical toolkit.
type acceleratedStub struct {
	kind      domain.Algorithm
	available bool
}

func (s *acceleratedStub) Kind() domain.Algorithm { return s.kind }

func (s *acceleratedStub) Available() bool { return s.available }

func (s *acceleratedStub) Forecast(series domain.TimeSeries, horizon int, granularity domain.Granularity) ([]domain.ForecastPoint, domain.AccuracyMetrics) {
	return nil, domain.AccuracyMetrics{}
}

func TestWithModelIgnoresUnavailableAccelerated(t *testing.T) {
	lib := NewLibrary(WithModel(&acceleratedStub{kind: domain.AlgorithmSmoothing}))

	// The pure baseline stays registered.
	require.IsType(t, &SmoothingModel{}, lib.Model(domain.AlgorithmSmoothing))
}

func TestWithModelRegistersAvailableAccelerated(t *testing.T) {
	stub := &acceleratedStub{kind: domain.AlgorithmSmoothing, available: true}
	lib := NewLibrary(WithModel(stub))

	require.Same(t, stub, lib.Model(domain.AlgorithmSmoothing))
}

func TestUnknownAlgorithmFallsBackToMovingAverage(t *testing.T) {
	lib := NewLibrary()

	require.IsType(t, &MovingAverageModel{}, lib.Model(domain.Algorithm("gradient_descent")))
}
