// internal/scenario/montecarlo.go
package scenario

import (
	"context"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

const (
	simWorkers       = 4
	histogramBuckets = 10

	// Lead-time log-normal shape; the location is solved so the
	// distribution mean lands on the baseline lead time.
	leadTimeSigma = 0.25

	// Simple carrying-cost approximation on excess units.
	holdingCostFraction = 0.02
)

// Simulator runs seeded Monte Carlo simulations of a scenario baseline.
type Simulator struct {
	demandCV   float64
	supplyCV   float64
	priceCV    float64
	iterations int
	log        zerolog.Logger
}

func NewSimulator(cfg config.ScenarioConfig) *Simulator {
	iterations := cfg.DefaultSimulations
	if iterations <= 0 {
		iterations = 1000
	}
	return &Simulator{
		demandCV:   cfg.DemandCV,
		supplyCV:   cfg.SupplyCV,
		priceCV:    cfg.PriceCV,
		iterations: iterations,
		log:        logger.With("montecarlo"),
	}
}

// iterationOutcome is one simulated draw. Slices of these are indexed by
// iteration so parallel workers never contend.
type iterationOutcome struct {
	demand       float64
	unitsSold    float64
	lostSales    float64
	revenue      float64
	cogs         float64
	grossMargin  float64
	holdingCost  float64
	lostSaleCost float64
	netProfit    float64
	serviceLevel float64
	leadTimeDays float64
	stockout     bool
}

// Run simulates the baseline over the horizon. Iterations <= 0 uses the
// configured default. Results are reproducible: each worker derives its
// generator from the run seed and its chunk index, and iterations are
// written into a preallocated slice by index, so neither worker count nor
// scheduling order changes the output.
func (s *Simulator) Run(ctx context.Context, baseline domain.Baseline, horizonDays, iterations int, seed int64) (domain.MonteCarloResult, error) {
	if horizonDays <= 0 {
		return domain.MonteCarloResult{}, domain.NewValidationError("horizon_days", "must be positive")
	}
	if iterations <= 0 {
		iterations = s.iterations
	}

	outcomes := make([]iterationOutcome, iterations)

	g, ctx := errgroup.WithContext(ctx)
	chunk := (iterations + simWorkers - 1) / simWorkers
	for w := 0; w < simWorkers; w++ {
		start := w * chunk
		if start >= iterations {
			break
		}
		end := start + chunk
		if end > iterations {
			end = iterations
		}
		rng := rand.New(rand.NewSource(seed + int64(w)))
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				outcomes[i] = s.simulateOnce(rng, baseline, horizonDays)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.MonteCarloResult{}, err
	}

	result := s.aggregate(outcomes, seed)
	s.log.Debug().
		Int("iterations", iterations).
		Int64("seed", seed).
		Float64("stockout_probability", result.StockoutProbability).
		Msg("simulation complete")
	return result, nil
}

func (s *Simulator) simulateOnce(rng *rand.Rand, b domain.Baseline, horizonDays int) iterationOutcome {
	demandRate := sampleNormal(rng, b.DailyDemand, s.demandCV)
	supplyRate := sampleNormal(rng, b.SupplyCapacity, s.supplyCV)
	price := sampleNormal(rng, b.RevenuePerUnit, s.priceCV)
	leadTime := sampleLogNormal(rng, b.LeadTimeDays, leadTimeSigma)

	horizon := float64(horizonDays)
	demand := demandRate * horizon
	supply := supplyRate * horizon

	unitsSold := math.Min(demand, supply)
	lostSales := math.Max(demand-supply, 0)
	excess := math.Max(supply-demand, 0)

	revenue := unitsSold * price
	cogs := unitsSold * b.CostPerUnit
	grossMargin := revenue - cogs

	holdingCost := excess * b.CostPerUnit * holdingCostFraction
	marginPerUnit := math.Max(price-b.CostPerUnit, 0)
	lostSaleCost := lostSales * marginPerUnit

	serviceLevel := 1.0
	if demand > 0 {
		serviceLevel = unitsSold / demand
	}

	return iterationOutcome{
		demand:       demand,
		unitsSold:    unitsSold,
		lostSales:    lostSales,
		revenue:      revenue,
		cogs:         cogs,
		grossMargin:  grossMargin,
		holdingCost:  holdingCost,
		lostSaleCost: lostSaleCost,
		netProfit:    grossMargin - holdingCost - lostSaleCost,
		serviceLevel: serviceLevel,
		leadTimeDays: leadTime,
		stockout:     lostSales > 0,
	}
}

func (s *Simulator) aggregate(outcomes []iterationOutcome, seed int64) domain.MonteCarloResult {
	n := len(outcomes)
	series := map[string][]float64{
		"demand":         make([]float64, n),
		"units_sold":     make([]float64, n),
		"lost_sales":     make([]float64, n),
		"revenue":        make([]float64, n),
		"cogs":           make([]float64, n),
		"gross_margin":   make([]float64, n),
		"holding_cost":   make([]float64, n),
		"lost_sale_cost": make([]float64, n),
		"net_profit":     make([]float64, n),
		"service_level":  make([]float64, n),
		"lead_time_days": make([]float64, n),
	}

	stockouts := 0
	for i, o := range outcomes {
		series["demand"][i] = o.demand
		series["units_sold"][i] = o.unitsSold
		series["lost_sales"][i] = o.lostSales
		series["revenue"][i] = o.revenue
		series["cogs"][i] = o.cogs
		series["gross_margin"][i] = o.grossMargin
		series["holding_cost"][i] = o.holdingCost
		series["lost_sale_cost"][i] = o.lostSaleCost
		series["net_profit"][i] = o.netProfit
		series["service_level"][i] = o.serviceLevel
		series["lead_time_days"][i] = o.leadTimeDays
		if o.stockout {
			stockouts++
		}
	}

	metrics := make(map[string]domain.MetricStats, len(series))
	for name, values := range series {
		metrics[name] = summarize(values)
	}

	return domain.MonteCarloResult{
		Iterations:          n,
		Seed:                seed,
		Metrics:             metrics,
		StockoutProbability: float64(stockouts) / float64(n),
		RevenueHistogram:    histogram(series["revenue"]),
	}
}

func summarize(values []float64) domain.MetricStats {
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviationPopulation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	pct := func(p float64) float64 {
		v, err := stats.Percentile(values, p)
		if err != nil {
			return mean
		}
		return v
	}

	return domain.MetricStats{
		Mean: mean,
		Std:  std,
		Min:  min,
		Max:  max,
		P5:   pct(5),
		P25:  pct(25),
		P50:  pct(50),
		P75:  pct(75),
		P95:  pct(95),
	}
}

// histogram buckets values into ten equal-width bins. A degenerate range
// collapses into a single full bucket.
func histogram(values []float64) []domain.HistogramBucket {
	if len(values) == 0 {
		return nil
	}
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	buckets := make([]domain.HistogramBucket, histogramBuckets)
	width := (max - min) / histogramBuckets
	if width <= 0 {
		buckets[0] = domain.HistogramBucket{Low: min, High: max, Count: len(values)}
		return buckets[:1]
	}

	for i := range buckets {
		buckets[i].Low = min + float64(i)*width
		buckets[i].High = buckets[i].Low + width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// sampleNormal draws from N(mean, cv*mean), clamped to non-negative.
func sampleNormal(rng *rand.Rand, mean, cv float64) float64 {
	v := rng.NormFloat64()*mean*cv + mean
	if v < 0 {
		return 0
	}
	return v
}

// sampleLogNormal draws a log-normal whose mean is the given value.
func sampleLogNormal(rng *rand.Rand, mean, sigma float64) float64 {
	if mean <= 0 {
		return 0
	}
	mu := math.Log(mean) - sigma*sigma/2
	return math.Exp(rng.NormFloat64()*sigma + mu)
}
