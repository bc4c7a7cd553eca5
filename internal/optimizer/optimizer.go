// internal/optimizer/optimizer.go

// Package optimizer turns a forecast plus a constraint set into a
// period-by-period production/procurement schedule. The preferred path is
// a linear program; when no solver is available, the horizon is too short,
// or the solve fails, a greedy heuristic produces a best-effort schedule
// instead. Solver failure is recoverable and never fatal.
package optimizer

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/demand-planner/internal/domain"
	"github.com/andresuchdata/demand-planner/pkg/logger"
)

// Horizons shorter than this are not worth a simplex tableau.
const minLPHorizon = 3

// Utilization at or above this marks a bottleneck period.
const bottleneckUtilPct = 95.0

type Optimizer struct {
	solver Solver
	log    zerolog.Logger
}

// New builds an optimizer. A nil solver forces the heuristic path; the
// capability is checked per call, never at compile time.
func New(solver Solver) *Optimizer {
	return &Optimizer{
		solver: solver,
		log:    logger.With("optimizer"),
	}
}

// Optimize produces a supply plan for the forecast horizon.
func (o *Optimizer) Optimize(forecast []domain.ForecastPoint, constraints domain.PlanConstraints) (domain.SupplyPlan, error) {
	if err := validateConstraints(forecast, constraints); err != nil {
		return domain.SupplyPlan{}, err
	}

	demands := make([]float64, len(forecast))
	for i, p := range forecast {
		demands[i] = p.PointValue
	}

	if o.solver != nil && len(forecast) >= minLPHorizon {
		plan, err := o.optimizeLP(forecast, demands, constraints)
		if err == nil {
			return plan, nil
		}
		o.log.Warn().Err(err).Msg("LP solve failed, falling back to heuristic")
	}

	return o.optimizeHeuristic(forecast, demands, constraints), nil
}

func validateConstraints(forecast []domain.ForecastPoint, c domain.PlanConstraints) error {
	if len(forecast) == 0 {
		return domain.NewValidationError("forecast", "horizon must not be empty")
	}
	if c.MaxProductionCapacity < 0 {
		return domain.NewValidationError("max_production_capacity", "must not be negative")
	}
	if c.MaxBudget < 0 {
		return domain.NewValidationError("max_budget", "must not be negative")
	}
	if c.MinOrderQty < 0 {
		return domain.NewValidationError("min_order_qty", "must not be negative")
	}
	if c.TargetServiceLevel < 0 || c.TargetServiceLevel > 1 {
		return domain.NewValidationError("target_service_level", "must be in [0,1]")
	}
	if c.HoldingCostPerUnit < 0 || c.StockoutPenaltyPerUnit < 0 ||
		c.ProductionCostPerUnit < 0 || c.ProcurementCostPerUnit < 0 {
		return domain.NewValidationError("costs", "must not be negative")
	}
	return nil
}

// optimizeLP formulates the schedule as a linear program over prod_t and
// proc_t with capacity bounds, cumulative-inventory lower bounds and an
// optional budget cap, then post-computes holding/stockout costs from the
// resulting schedule.
func (o *Optimizer) optimizeLP(forecast []domain.ForecastPoint, demands []float64, c domain.PlanConstraints) (domain.SupplyPlan, error) {
	n := len(demands)

	// Variables: x[0..n-1] = prod_t, x[n..2n-1] = proc_t.
	obj := make([]float64, 2*n)
	for t := 0; t < n; t++ {
		obj[t] = c.ProductionCostPerUnit
		obj[n+t] = c.ProcurementCostPerUnit
	}

	var rows [][]float64
	var rhs []float64
	var ops []ConstraintOp

	// prod_t <= capacity
	for t := 0; t < n; t++ {
		row := make([]float64, 2*n)
		row[t] = 1
		rows = append(rows, row)
		rhs = append(rhs, c.MaxProductionCapacity)
		ops = append(ops, LE)
	}

	// Cumulative supply covers cumulative demand net of initial stock:
	// sum_{s<=t}(prod_s + proc_s) >= cumDemand_t - initial_stock
	cum := 0.0
	for t := 0; t < n; t++ {
		cum += demands[t]
		bound := cum - c.InitialStock
		if bound < 0 {
			bound = 0
		}
		row := make([]float64, 2*n)
		for s := 0; s <= t; s++ {
			row[s] = 1
			row[n+s] = 1
		}
		rows = append(rows, row)
		rhs = append(rhs, bound)
		ops = append(ops, GE)
	}

	// Total spend within budget.
	if c.MaxBudget > 0 {
		row := make([]float64, 2*n)
		copy(row, obj)
		rows = append(rows, row)
		rhs = append(rhs, c.MaxBudget)
		ops = append(ops, LE)
	}

	solution, _, err := o.solver.Solve(obj, rows, rhs, ops)
	if err != nil {
		return domain.SupplyPlan{}, err
	}

	prods := solution[:n]
	procs := solution[n : 2*n]
	return buildPlan(forecast, demands, prods, procs, c, domain.MethodLinearProgramming), nil
}

// optimizeHeuristic covers each period's demand plus a safety buffer,
// filling from the cheaper channel first; production is capped by capacity,
// procurement is not, so added capacity never shifts volume into a more
// expensive channel. MOQ rounds procurement up; the budget proportionally
// scales both quantities down when a period would overspend what is left.
func (o *Optimizer) optimizeHeuristic(forecast []domain.ForecastPoint, demands []float64, c domain.PlanConstraints) domain.SupplyPlan {
	n := len(demands)
	prods := make([]float64, n)
	procs := make([]float64, n)

	bufferRate := 1 - c.TargetServiceLevel
	remainingBudget := c.MaxBudget
	procureFirst := c.ProcurementCostPerUnit < c.ProductionCostPerUnit

	for t := 0; t < n; t++ {
		need := demands[t] * (1 + bufferRate)

		var prod, proc float64
		if procureFirst {
			proc = need
		} else {
			prod = need
			if prod > c.MaxProductionCapacity {
				prod = c.MaxProductionCapacity
			}
			proc = need - prod
		}
		if proc > 0 && proc < c.MinOrderQty {
			proc = c.MinOrderQty
		}

		cost := prod*c.ProductionCostPerUnit + proc*c.ProcurementCostPerUnit
		if c.MaxBudget > 0 && cost > remainingBudget {
			scale := 0.0
			if cost > 0 {
				scale = remainingBudget / cost
			}
			prod *= scale
			proc *= scale
			cost = remainingBudget
		}
		remainingBudget -= cost

		prods[t] = prod
		procs[t] = proc
	}

	return buildPlan(forecast, demands, prods, procs, c, domain.MethodHeuristic)
}

// buildPlan derives inventory, costs and utilization from a raw schedule.
// Shared by both optimization paths.
func buildPlan(forecast []domain.ForecastPoint, demands, prods, procs []float64, c domain.PlanConstraints, method domain.OptimizationMethod) domain.SupplyPlan {
	n := len(demands)
	schedule := make([]domain.SupplyScheduleEntry, n)

	inv := c.InitialStock
	prevShortfall := 0.0
	totalCost := decimal.Zero
	var totalDemand, satisfiedDemand, utilSum float64
	var bottlenecks []int

	for t := 0; t < n; t++ {
		inv += prods[t] + procs[t] - demands[t]

		ending := inv
		if ending < 0 {
			ending = 0
		}
		shortfall := -inv
		if shortfall < 0 {
			shortfall = 0
		}

		holding := ending * c.HoldingCostPerUnit
		stockout := shortfall * c.StockoutPenaltyPerUnit

		util := 0.0
		if c.MaxProductionCapacity > 0 {
			util = prods[t] / c.MaxProductionCapacity * 100
		}
		if util >= bottleneckUtilPct {
			bottlenecks = append(bottlenecks, t)
		}
		utilSum += util

		periodShortfall := shortfall - prevShortfall
		if periodShortfall < 0 {
			periodShortfall = 0
		}
		prevShortfall = shortfall

		totalDemand += demands[t]
		satisfied := demands[t] - periodShortfall
		if satisfied < 0 {
			satisfied = 0
		}
		satisfiedDemand += satisfied

		periodCost := prods[t]*c.ProductionCostPerUnit + procs[t]*c.ProcurementCostPerUnit + holding + stockout
		totalCost = totalCost.Add(decimal.NewFromFloat(periodCost))

		schedule[t] = domain.SupplyScheduleEntry{
			Date:            forecast[t].Date,
			ProductionQty:   prods[t],
			ProcurementQty:  procs[t],
			EndingInventory: ending,
			CapacityUtilPct: util,
			HoldingCost:     holding,
			StockoutCost:    stockout,
		}
	}

	serviceLevel := 1.0
	if totalDemand > 0 {
		serviceLevel = satisfiedDemand / totalDemand
	}

	return domain.SupplyPlan{
		Schedule:             schedule,
		Method:               method,
		TotalCost:            totalCost.InexactFloat64(),
		ServiceLevelAchieved: serviceLevel,
		AvgCapacityUtilPct:   utilSum / float64(n),
		BottleneckPeriods:    bottlenecks,
	}
}
