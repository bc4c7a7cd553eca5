// internal/service/scenario_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/demand-planner/internal/config"
	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/internal/repository"
	"github.com/andresuchdata/demand-planner/internal/scenario"
)

type ScenarioService struct {
	scenarios repository.ScenarioRepository
	demand    repository.HistoricalDemandRepository
	simulator *scenario.Simulator
}

func NewScenarioService(
	scenarios repository.ScenarioRepository,
	demand repository.HistoricalDemandRepository,
	cfg config.ScenarioConfig,
) *ScenarioService {
	return &ScenarioService{
		scenarios: scenarios,
		demand:    demand,
		simulator: scenario.NewSimulator(cfg),
	}
}

func (s *ScenarioService) Create(ctx context.Context, sc *domain.Scenario) (string, error) {
	if sc.HorizonDays <= 0 {
		return "", domain.NewValidationError("horizon_days", "must be positive")
	}
	if sc.BaseScenarioID != nil {
		// The base must resolve before we store a dangling reference.
		if _, err := s.scenarios.Get(ctx, *sc.BaseScenarioID); err != nil {
			return "", err
		}
	}
	return s.scenarios.Save(ctx, sc)
}

func (s *ScenarioService) Update(ctx context.Context, sc *domain.Scenario) error {
	if sc.HorizonDays <= 0 {
		return domain.NewValidationError("horizon_days", "must be positive")
	}
	return s.scenarios.Update(ctx, sc)
}

func (s *ScenarioService) Get(ctx context.Context, id string) (domain.Scenario, error) {
	return s.scenarios.Get(ctx, id)
}

func (s *ScenarioService) List(ctx context.Context) ([]domain.Scenario, error) {
	return s.scenarios.List(ctx)
}

// baseline derives the simulation baseline for a scenario from its
// product's recent history.
func (s *ScenarioService) baseline(ctx context.Context, sc domain.Scenario) (domain.Baseline, error) {
	end := time.Now()
	start := end.AddDate(0, -6, 0)

	series, err := s.demand.Query(ctx, repository.DemandFilter{
		ProductID:   sc.ProductID,
		StartDate:   start,
		EndDate:     end,
		Granularity: domain.GranularityDaily,
	})
	if err != nil {
		return domain.Baseline{}, err
	}

	return scenario.DeriveBaseline(series), nil
}

// Simulate runs the Monte Carlo simulation for a stored scenario.
// iterations <= 0 uses the configured default; the seed makes reruns
// reproducible.
func (s *ScenarioService) Simulate(ctx context.Context, scenarioID string, iterations int, seed int64) (domain.MonteCarloResult, error) {
	sc, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		return domain.MonteCarloResult{}, err
	}

	baseline, err := s.baseline(ctx, sc)
	if err != nil {
		return domain.MonteCarloResult{}, err
	}
	baseline = scenario.ApplyAssumptions(baseline, sc.Assumptions)

	result, err := s.simulator.Run(ctx, baseline, sc.HorizonDays, iterations, seed)
	if err != nil {
		return domain.MonteCarloResult{}, err
	}

	log.Info().
		Str("scenario_id", scenarioID).
		Int("iterations", result.Iterations).
		Int64("seed", seed).
		Msg("scenario: simulation complete")

	return result, nil
}

// ProjectPnL builds the monthly P&L projection for a stored scenario.
func (s *ScenarioService) ProjectPnL(ctx context.Context, scenarioID string) (domain.PnLProjection, error) {
	sc, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		return domain.PnLProjection{}, err
	}

	baseline, err := s.baseline(ctx, sc)
	if err != nil {
		return domain.PnLProjection{}, err
	}
	baseline = scenario.ApplyAssumptions(baseline, sc.Assumptions)

	return scenario.ProjectPnL(baseline, sc.HorizonDays, time.Now())
}

// Sensitivity runs the tornado analysis for a stored scenario.
func (s *ScenarioService) Sensitivity(ctx context.Context, scenarioID string, variationPct float64) ([]domain.SensitivityEntry, error) {
	sc, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	baseline, err := s.baseline(ctx, sc)
	if err != nil {
		return nil, err
	}

	return scenario.Tornado(baseline, sc.Assumptions, sc.HorizonDays, variationPct)
}

// Compare ranks stored scenarios on the composite score. Scenarios are
// evaluated deterministically and ordered by creation time before
// ranking, so ties resolve the same way on every run.
func (s *ScenarioService) Compare(ctx context.Context, scenarioIDs []string, weights domain.CompareWeights) ([]domain.RankedScenario, error) {
	if len(scenarioIDs) < 2 {
		return nil, domain.NewValidationError("scenario_ids", "at least two scenarios are required")
	}

	scenarios := make([]domain.Scenario, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		sc, err := s.scenarios.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}

	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].CreatedAt.Before(scenarios[j].CreatedAt)
	})

	outcomes := make([]domain.ScenarioOutcome, len(scenarios))
	for i, sc := range scenarios {
		baseline, err := s.baseline(ctx, sc)
		if err != nil {
			return nil, err
		}
		outcomes[i] = scenario.Outcome(baseline, sc.Assumptions, sc.HorizonDays)
	}

	return scenario.Rank(scenarios, outcomes, weights)
}
