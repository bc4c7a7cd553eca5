// internal/classify/classifier.go

// Package classify derives ABC-XYZ demand classifications and the default
// forecasting algorithm for a product.
package classify

import (
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/timeseries"
)

// CV boundaries for the XYZ axis.
const (
	xBoundary = 0.5
	yBoundary = 1.0
)

// Revenue percentile boundaries for the ABC axis (0 = highest revenue).
const (
	aBoundary = 20.0
	bBoundary = 50.0
)

// algorithmByClass maps a combined ABC-XYZ class to the default model.
// Stable, high-value demand earns the decomposition model; erratic tail
// demand stays on smoothing, which degrades the most gracefully.
var algorithmByClass = map[domain.ABCClass]map[domain.XYZClass]domain.Algorithm{
	domain.ClassA: {
		domain.ClassX: domain.AlgorithmDecomposition,
		domain.ClassY: domain.AlgorithmAutoregressive,
		domain.ClassZ: domain.AlgorithmBoosted,
	},
	domain.ClassB: {
		domain.ClassX: domain.AlgorithmAutoregressive,
		domain.ClassY: domain.AlgorithmSmoothing,
		domain.ClassZ: domain.AlgorithmSmoothing,
	},
	domain.ClassC: {
		domain.ClassX: domain.AlgorithmSmoothing,
		domain.ClassY: domain.AlgorithmSmoothing,
		domain.ClassZ: domain.AlgorithmSmoothing,
	},
}

// Classify buckets a demand series by variability (XYZ) and by the
// product's revenue percentile rank among its peer set (ABC; 0 = highest
// revenue). Fewer than 2 data points always yields the most conservative
// class and the smoothing recommendation. Pure function.
func Classify(series domain.TimeSeries, revenueRankPct float64) domain.DemandClassification {
	if len(series) < 2 {
		return domain.DemandClassification{
			ABC:                  domain.ClassC,
			XYZ:                  domain.ClassZ,
			CoefficientOfVar:     0,
			RecommendedAlgorithm: domain.AlgorithmSmoothing,
		}
	}

	cv := timeseries.CoefficientOfVariation(series.Quantities())

	xyz := domain.ClassZ
	switch {
	case cv < xBoundary:
		xyz = domain.ClassX
	case cv < yBoundary:
		xyz = domain.ClassY
	}

	abc := domain.ClassC
	switch {
	case revenueRankPct <= aBoundary:
		abc = domain.ClassA
	case revenueRankPct <= bBoundary:
		abc = domain.ClassB
	}

	return domain.DemandClassification{
		ABC:                  abc,
		XYZ:                  xyz,
		CoefficientOfVar:     cv,
		RecommendedAlgorithm: algorithmByClass[abc][xyz],
	}
}
