// internal/service/forecast_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/demand-planner/internal/cache"
	"github.com/andresuchdata/demand-planner/internal/classify"
	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/forecast"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type ForecastService struct {
	demand       repository.HistoricalDemandRepository
	store        repository.ForecastRepository
	cache        cache.ForecastCache
	selector     *forecast.Selector
	batchWorkers int
}

func NewForecastService(
	demand repository.HistoricalDemandRepository,
	store repository.ForecastRepository,
	cacheImpl cache.ForecastCache,
	cfg config.ForecastConfig,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	workers := cfg.BatchWorkers
	if workers <= 0 {
		workers = 8
	}
	return &ForecastService{
		demand:       demand,
		store:        store,
		cache:        cacheImpl,
		selector:     forecast.NewSelector(forecast.NewLibrary(), cfg.HoldoutFraction),
		batchWorkers: workers,
	}
}

// Generate produces a forecast for the demand selected by the filter.
// Results are cached per filter+horizon; generation is deterministic for
// a fixed history window so a cache hit is exact.
func (s *ForecastService) Generate(ctx context.Context, filter repository.DemandFilter, horizon int) (domain.ForecastResult, error) {
	if result, ok, err := s.cache.Get(ctx, filter, horizon); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	series, err := s.demand.Query(ctx, filter)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	result, err := s.selector.Select(series, horizon, filter.Granularity)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	if err := s.cache.Set(ctx, filter, horizon, result); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	return result, nil
}

// GenerateAndSave persists the forecast and returns the stored record.
func (s *ForecastService) GenerateAndSave(ctx context.Context, filter repository.DemandFilter, horizon int) (domain.ForecastRecord, error) {
	result, err := s.Generate(ctx, filter, horizon)
	if err != nil {
		return domain.ForecastRecord{}, err
	}

	record := domain.ForecastRecord{
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
		Granularity: filter.Granularity,
		Horizon:     horizon,
		Result:      result,
	}
	if _, err := s.store.Save(ctx, &record); err != nil {
		return domain.ForecastRecord{}, err
	}

	return record, nil
}

// Reforecast generates a new version of an existing forecast over the
// same query window, linked back through ParentID.
func (s *ForecastService) Reforecast(ctx context.Context, parentID string, filter repository.DemandFilter) (domain.ForecastRecord, error) {
	parent, err := s.store.Get(ctx, parentID)
	if err != nil {
		return domain.ForecastRecord{}, err
	}

	filter.ProductID = parent.ProductID
	filter.WarehouseID = parent.WarehouseID
	filter.Granularity = parent.Granularity

	result, err := s.Generate(ctx, filter, parent.Horizon)
	if err != nil {
		return domain.ForecastRecord{}, err
	}

	record := domain.ForecastRecord{
		ProductID:   parent.ProductID,
		WarehouseID: parent.WarehouseID,
		Granularity: parent.Granularity,
		Horizon:     parent.Horizon,
		Result:      result,
		ParentID:    &parent.ID,
	}
	if _, err := s.store.Save(ctx, &record); err != nil {
		return domain.ForecastRecord{}, err
	}

	return record, nil
}

// Classify derives the ABC-XYZ classification for the product selected by
// the filter, combining demand variability with its revenue rank among
// peers over the same window.
func (s *ForecastService) Classify(ctx context.Context, filter repository.DemandFilter) (domain.DemandClassification, error) {
	series, err := s.demand.Query(ctx, filter)
	if err != nil {
		return domain.DemandClassification{}, err
	}

	rankPct, err := s.demand.RevenueRankPct(ctx, filter.ProductID, filter.StartDate, filter.EndDate)
	if err != nil {
		return domain.DemandClassification{}, err
	}

	return classify.Classify(series, rankPct), nil
}

// Approve marks a stored forecast as approved for downstream planning.
func (s *ForecastService) Approve(ctx context.Context, id string, approved bool) error {
	return s.store.SetApproved(ctx, id, approved)
}

// BatchItem is one outcome of a batch run. Err is per-item: one failed
// product never aborts the rest of the batch.
type BatchItem struct {
	Filter repository.DemandFilter `json:"filter"`
	Result domain.ForecastResult   `json:"result"`
	Err    error                   `json:"-"`
}

// GenerateBatch forecasts many products concurrently with a bounded
// worker count. Item order matches the input order.
func (s *ForecastService) GenerateBatch(ctx context.Context, filters []repository.DemandFilter, horizon int) []BatchItem {
	items := make([]BatchItem, len(filters))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	start := time.Now()
	for i, filter := range filters {
		i, filter := i, filter
		g.Go(func() error {
			result, err := s.Generate(ctx, filter, horizon)
			items[i] = BatchItem{Filter: filter, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	log.Info().
		Int("total", len(items)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("forecast: batch complete")

	return items
}
