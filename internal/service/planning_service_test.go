// internal/service/planning_service_test.go
package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/optimizer"
)

type fakeVendorRepo struct {
	vendors []domain.Vendor
	err     error
}

func (f *fakeVendorRepo) ListActive(ctx context.Context) ([]domain.Vendor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vendors, nil
}

func optimizerConfig() config.OptimizerConfig {
	return config.OptimizerConfig{
		DefaultUnitCost:     1000,
		DefaultOrderingCost: 100,
		HoldingCostRate:     0.2,
	}
}

func newTestPlanningService(forecasts *fakeForecastStore, plans *fakePlanRepo, vendors *fakeVendorRepo, inventory *fakeInventoryRepo) *PlanningService {
	return NewPlanningService(forecasts, plans, vendors, inventory, optimizerConfig())
}

func storedForecast(t *testing.T, store *fakeForecastStore, productID string, dailyDemand float64, days int) domain.ForecastRecord {
	t.Helper()
	start := time.Now()
	points := make([]domain.ForecastPoint, days)
	for i := range points {
		points[i] = domain.ForecastPoint{Date: start.AddDate(0, 0, i+1), PointValue: dailyDemand}
	}
	record := domain.ForecastRecord{
		ProductID: productID,
		Horizon:   days,
		Result:    domain.ForecastResult{Points: points},
	}
	_, err := store.Save(context.Background(), &record)
	require.NoError(t, err)
	return record
}

func TestCreatePlanOptimizesAndPersists(t *testing.T) {
	forecasts := newFakeForecastStore()
	plans := &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}
	svc := newTestPlanningService(forecasts, plans, &fakeVendorRepo{}, &fakeInventoryRepo{})

	fc := storedForecast(t, forecasts, "SKU-1", 10, 7)

	record, err := svc.CreatePlan(context.Background(), fc.ID, domain.PlanConstraints{
		MaxProductionCapacity:  20,
		ProductionCostPerUnit:  1,
		ProcurementCostPerUnit: 2,
		TargetServiceLevel:     0.95,
	})
	require.NoError(t, err)
	require.Equal(t, "SKU-1", record.ProductID)
	require.Equal(t, fc.ID, record.ForecastID)
	require.Len(t, record.Plan.Schedule, 7)
	require.InDelta(t, 1.0, record.Plan.ServiceLevelAchieved, 1e-6)

	saved, err := plans.ListByProduct(context.Background(), "SKU-1", 0)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestCreatePlanUnknownForecast(t *testing.T) {
	svc := newTestPlanningService(newFakeForecastStore(), &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}, &fakeVendorRepo{}, &fakeInventoryRepo{})

	_, err := svc.CreatePlan(context.Background(), "missing", domain.PlanConstraints{})
	require.True(t, domain.IsNotFound(err))
}

func TestRecommendSourcing(t *testing.T) {
	vendors := &fakeVendorRepo{vendors: []domain.Vendor{
		{VendorID: "v-1", Name: "One", UnitCost: 10, LeadTimeDays: 10, MOQ: 100, ReliabilityScore: 0.9, QualityRating: 0.9},
		{VendorID: "v-2", Name: "Two", UnitCost: 8, LeadTimeDays: 7, MOQ: 50, ReliabilityScore: 0.95, QualityRating: 0.92},
	}}
	svc := newTestPlanningService(newFakeForecastStore(), &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}, vendors, &fakeInventoryRepo{})

	rec, err := svc.RecommendSourcing(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v-2", rec.Recommended)
}

func TestBufferStatus(t *testing.T) {
	inventory := &fakeInventoryRepo{positions: []domain.InventoryPosition{
		{ProductID: "SKU-1", WarehouseID: "WH-1", AvailableQty: 50, AvgDailyDemand: 10},
	}}
	svc := newTestPlanningService(newFakeForecastStore(), &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}, &fakeVendorRepo{}, inventory)

	profile, err := svc.BufferStatus(context.Background(), "SKU-1", "WH-1", optimizer.BufferInputs{LeadTimeDays: 10})
	require.NoError(t, err)
	require.Equal(t, domain.ZoneRed, profile.Zone)
	require.True(t, profile.ActionNeeded)

	_, err = svc.BufferStatus(context.Background(), "SKU-missing", "WH-1", optimizer.BufferInputs{})
	require.True(t, domain.IsNotFound(err))
}

func TestOrderQuantityPrefersVendorEconomics(t *testing.T) {
	inventory := &fakeInventoryRepo{positions: []domain.InventoryPosition{
		{ProductID: "SKU-1", WarehouseID: "WH-1", AvgDailyDemand: 10},
	}}
	vendors := &fakeVendorRepo{vendors: []domain.Vendor{
		{VendorID: "v-1", Name: "One", UnitCost: 25, LeadTimeDays: 7, MOQ: 50, ReliabilityScore: 0.9, QualityRating: 0.9},
	}}
	svc := newTestPlanningService(newFakeForecastStore(), &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}, vendors, inventory)

	eoq, err := svc.OrderQuantity(context.Background(), "SKU-1", "WH-1")
	require.NoError(t, err)

	want := math.Sqrt(2 * 10 * 365 * 100 / (25 * 0.2))
	require.InDelta(t, want, eoq, 1e-6)
}

func TestOrderQuantityFallsBackToDefaults(t *testing.T) {
	inventory := &fakeInventoryRepo{positions: []domain.InventoryPosition{
		{ProductID: "SKU-1", WarehouseID: "WH-1", AvgDailyDemand: 10},
	}}
	svc := newTestPlanningService(newFakeForecastStore(), &fakePlanRepo{plans: map[string][]domain.SupplyPlanRecord{}}, &fakeVendorRepo{}, inventory)

	eoq, err := svc.OrderQuantity(context.Background(), "SKU-1", "WH-1")
	require.NoError(t, err)

	want := math.Sqrt(2 * 10 * 365 * 100 / (1000 * 0.2))
	require.InDelta(t, want, eoq, 1e-6)
}
