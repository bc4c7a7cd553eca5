// internal/scenario/financial.go
package scenario

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

const (
	opexRate = 0.15
	taxRate  = 0.25

	daysPerMonth = 30
)

// seasonalFactors scale baseline daily demand by calendar month, January
// first. The year-end uplift reflects the usual holiday demand pattern.
var seasonalFactors = [12]float64{
	0.90, 0.85, 0.95, 1.00, 1.05, 1.10,
	1.15, 1.10, 1.05, 1.00, 1.10, 1.25,
}

// ProjectPnL builds the month-by-month P&L for a scenario window starting
// at start, one line per (approximate) month of the horizon, plus totals
// and a waterfall breakdown. Money math runs through decimal so the
// waterfall reconciles exactly.
func ProjectPnL(baseline domain.Baseline, horizonDays int, start time.Time) (domain.PnLProjection, error) {
	if horizonDays <= 0 {
		return domain.PnLProjection{}, domain.NewValidationError("horizon_days", "must be positive")
	}

	months := (horizonDays + daysPerMonth - 1) / daysPerMonth
	lines := make([]domain.PnLLine, 0, months)

	revenuePerUnit := decimal.NewFromFloat(baseline.RevenuePerUnit)
	costPerUnit := decimal.NewFromFloat(baseline.CostPerUnit)
	opex := decimal.NewFromFloat(opexRate)
	tax := decimal.NewFromFloat(taxRate)

	var totalRevenue, totalCOGS, totalOpEx, totalTax decimal.Decimal

	remaining := horizonDays
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for m := 0; m < months; m++ {
		days := daysPerMonth
		if remaining < days {
			days = remaining
		}
		remaining -= days

		factor := seasonalFactors[int(month.Month())-1]
		units := decimal.NewFromFloat(baseline.DailyDemand * factor * float64(days))

		revenue := units.Mul(revenuePerUnit)
		cogs := units.Mul(costPerUnit)
		grossMargin := revenue.Sub(cogs)
		opexAmt := revenue.Mul(opex)
		ebitda := grossMargin.Sub(opexAmt)

		taxAmt := decimal.Zero
		if ebitda.IsPositive() {
			taxAmt = ebitda.Mul(tax)
		}
		netIncome := ebitda.Sub(taxAmt)

		lines = append(lines, domain.PnLLine{
			Month:       month,
			Revenue:     revenue.InexactFloat64(),
			COGS:        cogs.InexactFloat64(),
			GrossMargin: grossMargin.InexactFloat64(),
			OpEx:        opexAmt.InexactFloat64(),
			EBITDA:      ebitda.InexactFloat64(),
			Tax:         taxAmt.InexactFloat64(),
			NetIncome:   netIncome.InexactFloat64(),
		})

		totalRevenue = totalRevenue.Add(revenue)
		totalCOGS = totalCOGS.Add(cogs)
		totalOpEx = totalOpEx.Add(opexAmt)
		totalTax = totalTax.Add(taxAmt)

		month = month.AddDate(0, 1, 0)
	}

	grossMargin := totalRevenue.Sub(totalCOGS)
	ebitda := grossMargin.Sub(totalOpEx)
	netIncome := ebitda.Sub(totalTax)

	totals := domain.PnLLine{
		Month:       lines[0].Month,
		Revenue:     totalRevenue.InexactFloat64(),
		COGS:        totalCOGS.InexactFloat64(),
		GrossMargin: grossMargin.InexactFloat64(),
		OpEx:        totalOpEx.InexactFloat64(),
		EBITDA:      ebitda.InexactFloat64(),
		Tax:         totalTax.InexactFloat64(),
		NetIncome:   netIncome.InexactFloat64(),
	}

	waterfall := []domain.WaterfallStep{
		{Label: "Revenue", Amount: totals.Revenue},
		{Label: "COGS", Amount: -totals.COGS},
		{Label: "Gross Margin", Amount: totals.GrossMargin},
		{Label: "OpEx", Amount: -totals.OpEx},
		{Label: "EBITDA", Amount: totals.EBITDA},
		{Label: "Tax", Amount: -totals.Tax},
		{Label: "Net Income", Amount: totals.NetIncome},
	}

	return domain.PnLProjection{
		Lines:     lines,
		Waterfall: waterfall,
		Totals:    totals,
	}, nil
}
