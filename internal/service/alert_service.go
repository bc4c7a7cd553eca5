// internal/service/alert_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/demand-planner/internal/agents"
	"github.com/andresuchdata/demand-planner/internal/cache"
	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
)

// Rolling window of approved forecasts the supply-gap check looks at.
const supplyGapLookback = 30 * 24 * time.Hour

type AlertService struct {
	inventory        repository.InventoryStateRepository
	forecasts        repository.ForecastRepository
	plans            repository.SupplyPlanRepository
	procurement      repository.ProcurementSystem
	center           *agents.Center
	cache            cache.AlertCache
	baseLeadTimeDays float64
}

func NewAlertService(
	inventory repository.InventoryStateRepository,
	forecasts repository.ForecastRepository,
	plans repository.SupplyPlanRepository,
	procurement repository.ProcurementSystem,
	cacheImpl cache.AlertCache,
	cfg config.AgentConfig,
) *AlertService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAlertCache()
	}
	return &AlertService{
		inventory:        inventory,
		forecasts:        forecasts,
		plans:            plans,
		procurement:      procurement,
		center:           agents.NewCenter(cfg),
		cache:            cacheImpl,
		baseLeadTimeDays: 7,
	}
}

// Scan assembles a snapshot of inventory, approved forecasts and supply
// plans and runs every agent over it. Scans are cached briefly per
// warehouse and alert cap; alerts are ephemeral so staleness is bounded
// by the TTL.
func (s *AlertService) Scan(ctx context.Context, warehouseID string, maxAlerts int) (domain.AlertScan, error) {
	if scan, ok, err := s.cache.Get(ctx, warehouseID, maxAlerts); err == nil && ok {
		return scan, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("alerts: cache get failed")
	}

	positions, err := s.inventory.ListAll(ctx, warehouseID)
	if err != nil {
		return domain.AlertScan{}, err
	}

	forecasts, err := s.forecasts.ListApproved(ctx, time.Now().Add(-supplyGapLookback))
	if err != nil {
		return domain.AlertScan{}, err
	}

	gaps, err := s.supplyGaps(ctx, forecasts)
	if err != nil {
		return domain.AlertScan{}, err
	}

	scan := s.center.Scan(agents.ScanInput{
		Positions:        positions,
		SupplyGaps:       gaps,
		Forecasts:        forecasts,
		BaseLeadTimeDays: s.baseLeadTimeDays,
	}, maxAlerts)

	if err := s.cache.Set(ctx, warehouseID, maxAlerts, scan); err != nil {
		log.Warn().Err(err).Msg("alerts: cache set failed")
	}

	return scan, nil
}

// supplyGaps compares each approved forecast's total demand against the
// most recent supply plan for the same product.
func (s *AlertService) supplyGaps(ctx context.Context, forecasts []domain.ForecastRecord) ([]agents.SupplyGapInput, error) {
	var gaps []agents.SupplyGapInput
	seen := make(map[string]bool)

	for _, f := range forecasts {
		if seen[f.ProductID] {
			continue
		}
		seen[f.ProductID] = true

		var demand float64
		for _, p := range f.Result.Points {
			demand += p.PointValue
		}
		if demand <= 0 {
			continue
		}

		plans, err := s.plans.ListByProduct(ctx, f.ProductID, 1)
		if err != nil {
			return nil, err
		}
		if len(plans) == 0 {
			gaps = append(gaps, agents.SupplyGapInput{
				ProductID:      f.ProductID,
				ForecastDemand: demand,
			})
			continue
		}

		var supply float64
		for _, entry := range plans[0].Plan.Schedule {
			supply += entry.ProductionQty + entry.ProcurementQty
		}
		gaps = append(gaps, agents.SupplyGapInput{
			ProductID:      f.ProductID,
			ForecastDemand: demand,
			PlannedSupply:  supply,
		})
	}
	return gaps, nil
}

// SuggestReorders returns reorder suggestions for below-reorder-point
// items in the warehouse.
func (s *AlertService) SuggestReorders(ctx context.Context, warehouseID string) ([]domain.ReorderSuggestion, error) {
	positions, err := s.inventory.ListBelowReorderPoint(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return s.center.Reorder().Suggest(positions, s.baseLeadTimeDays), nil
}

// CreateRequisition hands an approved suggestion to the procurement
// system. This is the engine's only outbound side effect.
func (s *AlertService) CreateRequisition(ctx context.Context, suggestion domain.ReorderSuggestion) (string, error) {
	if s.procurement == nil {
		return "", domain.NewValidationError("procurement", "no procurement system configured")
	}

	id, err := s.procurement.CreateRequisition(ctx, suggestion)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("requisition_id", id).
		Str("product_id", suggestion.ProductID).
		Float64("quantity", suggestion.SuggestedOrder).
		Msg("alerts: requisition created")

	return id, nil
}
