// internal/service/planning_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/optimizer"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

type PlanningService struct {
	forecasts repository.ForecastRepository
	plans     repository.SupplyPlanRepository
	vendors   repository.VendorCatalogRepository
	inventory repository.InventoryStateRepository
	optimizer *optimizer.Optimizer
	cfg       config.OptimizerConfig
}

func NewPlanningService(
	forecasts repository.ForecastRepository,
	plans repository.SupplyPlanRepository,
	vendors repository.VendorCatalogRepository,
	inventory repository.InventoryStateRepository,
	cfg config.OptimizerConfig,
) *PlanningService {
	return &PlanningService{
		forecasts: forecasts,
		plans:     plans,
		vendors:   vendors,
		inventory: inventory,
		optimizer: optimizer.New(optimizer.NewSimplexSolver()),
		cfg:       cfg,
	}
}

// CreatePlan optimizes a supply schedule against a stored forecast and
// persists the result.
func (s *PlanningService) CreatePlan(ctx context.Context, forecastID string, constraints domain.PlanConstraints) (domain.SupplyPlanRecord, error) {
	record, err := s.forecasts.Get(ctx, forecastID)
	if err != nil {
		return domain.SupplyPlanRecord{}, err
	}

	plan, err := s.optimizer.Optimize(record.Result.Points, constraints)
	if err != nil {
		return domain.SupplyPlanRecord{}, err
	}

	planRecord := domain.SupplyPlanRecord{
		ProductID:   record.ProductID,
		ForecastID:  record.ID,
		Constraints: constraints,
		Plan:        plan,
	}
	if _, err := s.plans.Save(ctx, &planRecord); err != nil {
		return domain.SupplyPlanRecord{}, err
	}

	log.Info().
		Str("forecast_id", forecastID).
		Str("plan_id", planRecord.ID).
		Str("method", string(plan.Method)).
		Float64("total_cost", plan.TotalCost).
		Msg("planning: supply plan created")

	return planRecord, nil
}

// GetPlan loads a stored plan by id.
func (s *PlanningService) GetPlan(ctx context.Context, id string) (domain.SupplyPlanRecord, error) {
	return s.plans.Get(ctx, id)
}

// RecommendSourcing scores the active vendor catalog.
func (s *PlanningService) RecommendSourcing(ctx context.Context) (domain.SourcingRecommendation, error) {
	vendors, err := s.vendors.ListActive(ctx)
	if err != nil {
		return domain.SourcingRecommendation{}, err
	}
	return optimizer.ScoreVendors(vendors)
}

// BufferStatus sizes the DDMRP buffer for an item from its live inventory
// position.
func (s *PlanningService) BufferStatus(ctx context.Context, productID, warehouseID string, inputs optimizer.BufferInputs) (domain.BufferProfile, error) {
	pos, err := s.inventory.Get(ctx, productID, warehouseID)
	if err != nil {
		return domain.BufferProfile{}, err
	}
	return optimizer.SizeBuffers(pos, inputs), nil
}

// OrderQuantity computes the EOQ for an item. Vendor economics are used
// when a preferred vendor is available; otherwise the configured default
// unit and ordering costs stand in.
func (s *PlanningService) OrderQuantity(ctx context.Context, productID, warehouseID string) (float64, error) {
	pos, err := s.inventory.Get(ctx, productID, warehouseID)
	if err != nil {
		return 0, err
	}

	unitCost := s.cfg.DefaultUnitCost
	orderingCost := s.cfg.DefaultOrderingCost

	vendors, err := s.vendors.ListActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("planning: vendor catalog unavailable, using default EOQ economics")
	} else if len(vendors) > 0 {
		if rec, err := optimizer.ScoreVendors(vendors); err == nil {
			for _, score := range rec.Scores {
				if score.Vendor.VendorID == rec.Recommended && score.Vendor.UnitCost > 0 {
					unitCost = score.Vendor.UnitCost
					break
				}
			}
		}
	}

	annualDemand := pos.AvgDailyDemand * 365
	return optimizer.EconomicOrderQty(annualDemand, orderingCost, unitCost, s.cfg.HoldingCostRate), nil
}
