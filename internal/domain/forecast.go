// internal/domain/forecast.go
package domain

import "time"

// Granularity is the bucketing of a demand series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// SeasonLength returns the seasonal period implied by the granularity.
func (g Granularity) SeasonLength() int {
	switch g {
	case GranularityWeekly:
		return 4
	case GranularityMonthly:
		return 12
	default:
		return 7
	}
}

// Algorithm identifies a forecasting model family.
type Algorithm string

const (
	AlgorithmSmoothing      Algorithm = "smoothing"
	AlgorithmAutoregressive Algorithm = "autoregressive"
	AlgorithmDecomposition  Algorithm = "decomposition"
	AlgorithmBoosted        Algorithm = "boosted"
	AlgorithmMovingAverage  Algorithm = "moving_average"
	AlgorithmEnsemble       Algorithm = "ensemble"
)

// DemandPoint is a single observation of historical demand.
type DemandPoint struct {
	Date     time.Time `json:"date" db:"date"`
	Quantity float64   `json:"quantity" db:"quantity"`
	Revenue  float64   `json:"revenue" db:"revenue"`
}

// TimeSeries is an ordered sequence of demand observations. Timestamps are
// strictly increasing; gaps are the provider's problem (missing periods are
// zero-filled upstream).
type TimeSeries []DemandPoint

// Quantities extracts the quantity column.
func (ts TimeSeries) Quantities() []float64 {
	out := make([]float64, len(ts))
	for i, p := range ts {
		out[i] = p.Quantity
	}
	return out
}

// Revenues extracts the revenue column.
func (ts TimeSeries) Revenues() []float64 {
	out := make([]float64, len(ts))
	for i, p := range ts {
		out[i] = p.Revenue
	}
	return out
}

// ForecastPoint is one projected period. LowerBound <= PointValue <=
// UpperBound and PointValue >= 0 always hold.
type ForecastPoint struct {
	Date       time.Time `json:"date" db:"date"`
	PointValue float64   `json:"point_value" db:"point_value"`
	LowerBound float64   `json:"lower_bound" db:"lower_bound"`
	UpperBound float64   `json:"upper_bound" db:"upper_bound"`
}

// AccuracyMetrics are the standard point-forecast accuracy measures.
// Bias is mean(predicted - actual): positive means over-forecasting.
type AccuracyMetrics struct {
	MAPE float64 `json:"mape" db:"mape"`
	MAE  float64 `json:"mae" db:"mae"`
	RMSE float64 `json:"rmse" db:"rmse"`
	Bias float64 `json:"bias" db:"bias"`
}

// ForecastResult is the output of the model selector. Immutable once
// returned; identity and versioning belong to the host system.
type ForecastResult struct {
	Points       []ForecastPoint       `json:"points"`
	Algorithm    Algorithm             `json:"algorithm"`
	Accuracy     AccuracyMetrics       `json:"accuracy_metrics"`
	ModelWeights map[Algorithm]float64 `json:"model_weights,omitempty"`
}

// ForecastRecord is a persisted forecast with host-assigned identity.
type ForecastRecord struct {
	ID          string         `json:"id" db:"id"`
	ProductID   string         `json:"product_id" db:"product_id"`
	WarehouseID string         `json:"warehouse_id" db:"warehouse_id"`
	Granularity Granularity    `json:"granularity" db:"granularity"`
	Horizon     int            `json:"horizon" db:"horizon"`
	Result      ForecastResult `json:"result"`
	ParentID    *string        `json:"parent_id,omitempty" db:"parent_id"`
	Approved    bool           `json:"approved" db:"approved"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// ABCClass ranks a product's revenue contribution among its peers.
type ABCClass string

// XYZClass ranks a product's demand variability.
type XYZClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"

	ClassX XYZClass = "X"
	ClassY XYZClass = "Y"
	ClassZ XYZClass = "Z"
)

// DemandClassification is a derived value object, recomputed on demand and
// never persisted as authoritative state.
type DemandClassification struct {
	ABC                  ABCClass  `json:"abc_class"`
	XYZ                  XYZClass  `json:"xyz_class"`
	CoefficientOfVar     float64   `json:"coefficient_of_variation"`
	RecommendedAlgorithm Algorithm `json:"recommended_algorithm"`
}
