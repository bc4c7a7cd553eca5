// internal/service/forecast_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type fakeDemandRepo struct {
	series  map[string]domain.TimeSeries
	rankPct float64
	err     error
}

func (f *fakeDemandRepo) Query(ctx context.Context, filter repository.DemandFilter) (domain.TimeSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series[filter.ProductID], nil
}

func (f *fakeDemandRepo) RevenueRankPct(ctx context.Context, productID string, start, end time.Time) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rankPct, nil
}

type fakeForecastStore struct {
	records map[string]domain.ForecastRecord
	nextID  int
}

func newFakeForecastStore() *fakeForecastStore {
	return &fakeForecastStore{records: make(map[string]domain.ForecastRecord)}
}

func (f *fakeForecastStore) Save(ctx context.Context, record *domain.ForecastRecord) (string, error) {
	f.nextID++
	record.ID = fmt.Sprintf("fc-%d", f.nextID)
	record.CreatedAt = time.Now()
	f.records[record.ID] = *record
	return record.ID, nil
}

func (f *fakeForecastStore) Get(ctx context.Context, id string) (domain.ForecastRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return domain.ForecastRecord{}, domain.NewNotFoundError("forecast", id)
	}
	return r, nil
}

func (f *fakeForecastStore) ListRecent(ctx context.Context, limit int) ([]domain.ForecastRecord, error) {
	out := make([]domain.ForecastRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeForecastStore) ListApproved(ctx context.Context, since time.Time) ([]domain.ForecastRecord, error) {
	var out []domain.ForecastRecord
	for _, r := range f.records {
		if r.Approved {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeForecastStore) SetApproved(ctx context.Context, id string, approved bool) error {
	r, ok := f.records[id]
	if !ok {
		return domain.NewNotFoundError("forecast", id)
	}
	r.Approved = approved
	f.records[id] = r
	return nil
}

func demandHistory(days int, quantity float64) domain.TimeSeries {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make(domain.TimeSeries, days)
	for i := range ts {
		ts[i] = domain.DemandPoint{
			Date:     start.AddDate(0, 0, i),
			Quantity: quantity,
			Revenue:  quantity * 40,
		}
	}
	return ts
}

func newTestForecastService(demand *fakeDemandRepo, store *fakeForecastStore) *ForecastService {
	return NewForecastService(demand, store, nil, config.ForecastConfig{
		BatchWorkers:    4,
		HoldoutFraction: 0.2,
	})
}

func testFilter(productID string) repository.DemandFilter {
	return repository.DemandFilter{
		ProductID:   productID,
		WarehouseID: "WH-1",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Granularity: domain.GranularityDaily,
	}
}

func TestGenerateProducesForecast(t *testing.T) {
	demand := &fakeDemandRepo{series: map[string]domain.TimeSeries{"SKU-1": demandHistory(60, 25)}}
	svc := newTestForecastService(demand, newFakeForecastStore())

	result, err := svc.Generate(context.Background(), testFilter("SKU-1"), 14)
	require.NoError(t, err)
	require.Len(t, result.Points, 14)
	require.NotEmpty(t, result.Algorithm)
}

func TestGenerateAndSavePersistsRecord(t *testing.T) {
	demand := &fakeDemandRepo{series: map[string]domain.TimeSeries{"SKU-1": demandHistory(60, 25)}}
	store := newFakeForecastStore()
	svc := newTestForecastService(demand, store)

	record, err := svc.GenerateAndSave(context.Background(), testFilter("SKU-1"), 14)
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, "SKU-1", record.ProductID)
	require.Equal(t, 14, record.Horizon)
	require.Nil(t, record.ParentID)

	stored, err := store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	require.Len(t, stored.Result.Points, 14)
}

func TestReforecastLinksParent(t *testing.T) {
	demand := &fakeDemandRepo{series: map[string]domain.TimeSeries{"SKU-1": demandHistory(60, 25)}}
	store := newFakeForecastStore()
	svc := newTestForecastService(demand, store)

	parent, err := svc.GenerateAndSave(context.Background(), testFilter("SKU-1"), 14)
	require.NoError(t, err)

	child, err := svc.Reforecast(context.Background(), parent.ID, repository.DemandFilter{
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NotNil(t, child.ParentID)
	require.Equal(t, parent.ID, *child.ParentID)
	require.Equal(t, parent.ProductID, child.ProductID)
	require.Equal(t, parent.Horizon, child.Horizon)

	// The link is persisted, not just returned.
	stored, err := store.Get(context.Background(), child.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ParentID)
}

func TestReforecastUnknownParent(t *testing.T) {
	svc := newTestForecastService(&fakeDemandRepo{}, newFakeForecastStore())

	_, err := svc.Reforecast(context.Background(), "missing", repository.DemandFilter{})
	require.True(t, domain.IsNotFound(err))
}

func TestClassifyCombinesVariabilityAndRank(t *testing.T) {
	demand := &fakeDemandRepo{
		series:  map[string]domain.TimeSeries{"SKU-1": demandHistory(60, 25)},
		rankPct: 10,
	}
	svc := newTestForecastService(demand, newFakeForecastStore())

	c, err := svc.Classify(context.Background(), testFilter("SKU-1"))
	require.NoError(t, err)
	require.Equal(t, domain.ClassA, c.ABC)
	require.Equal(t, domain.ClassX, c.XYZ)
}

func TestApprovePassesThrough(t *testing.T) {
	demand := &fakeDemandRepo{series: map[string]domain.TimeSeries{"SKU-1": demandHistory(60, 25)}}
	store := newFakeForecastStore()
	svc := newTestForecastService(demand, store)

	record, err := svc.GenerateAndSave(context.Background(), testFilter("SKU-1"), 7)
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), record.ID, true))
	stored, err := store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	require.True(t, stored.Approved)

	require.True(t, domain.IsNotFound(svc.Approve(context.Background(), "missing", true)))
}

func TestGenerateBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	demand := &fakeDemandRepo{series: map[string]domain.TimeSeries{
		"SKU-1": demandHistory(60, 25),
		"SKU-2": demandHistory(60, 40),
	}}
	svc := newTestForecastService(demand, newFakeForecastStore())

	filters := []repository.DemandFilter{
		testFilter("SKU-1"),
		testFilter("SKU-2"),
	}
	items := svc.GenerateBatch(context.Background(), filters, 7)
	require.Len(t, items, 2)

	for i, item := range items {
		require.Equal(t, filters[i].ProductID, item.Filter.ProductID)
		require.NoError(t, item.Err)
		require.Len(t, item.Result.Points, 7)
	}
}

func TestGenerateBatchSurfacesPerItemErrors(t *testing.T) {
	boom := errors.New("query failed")
	svc := newTestForecastService(&fakeDemandRepo{err: boom}, newFakeForecastStore())

	items := svc.GenerateBatch(context.Background(), []repository.DemandFilter{testFilter("SKU-1")}, 7)
	require.Len(t, items, 1)
	require.ErrorIs(t, items[0].Err, boom)
}
