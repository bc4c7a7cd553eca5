// internal/scenario/financial_test.go
package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func TestProjectPnLValidatesHorizon(t *testing.T) {
	_, err := ProjectPnL(testBaseline(), 0, time.Now())
	require.True(t, domain.IsValidation(err))
}

func TestProjectPnLSingleMonth(t *testing.T) {
	// April has seasonal factor 1.00, so the numbers are exact.
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	p, err := ProjectPnL(testBaseline(), 30, start)
	require.NoError(t, err)
	require.Len(t, p.Lines, 1)

	line := p.Lines[0]
	// 100 units/day * 30 days at 50 revenue / 30 cost per unit.
	require.InDelta(t, 150000.0, line.Revenue, 1e-6)
	require.InDelta(t, 90000.0, line.COGS, 1e-6)
	require.InDelta(t, 60000.0, line.GrossMargin, 1e-6)
	require.InDelta(t, 22500.0, line.OpEx, 1e-6)
	require.InDelta(t, 37500.0, line.EBITDA, 1e-6)
	require.InDelta(t, 9375.0, line.Tax, 1e-6)
	require.InDelta(t, 28125.0, line.NetIncome, 1e-6)
}

func TestProjectPnLLinesReconcile(t *testing.T) {
	p, err := ProjectPnL(testBaseline(), 90, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, p.Lines, 3)

	for _, line := range p.Lines {
		require.InDelta(t, line.Revenue-line.COGS, line.GrossMargin, 1e-6)
		require.InDelta(t, line.GrossMargin-line.OpEx, line.EBITDA, 1e-6)
		require.InDelta(t, line.EBITDA-line.Tax, line.NetIncome, 1e-6)
	}

	var revenue, net float64
	for _, line := range p.Lines {
		revenue += line.Revenue
		net += line.NetIncome
	}
	require.InDelta(t, revenue, p.Totals.Revenue, 1e-6)
	require.InDelta(t, net, p.Totals.NetIncome, 1e-6)
}

func TestProjectPnLSeasonality(t *testing.T) {
	// December (factor 1.25) outsells February (factor 0.85).
	dec, err := ProjectPnL(testBaseline(), 30, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	feb, err := ProjectPnL(testBaseline(), 30, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Greater(t, dec.Totals.Revenue, feb.Totals.Revenue)
}

func TestProjectPnLNoTaxOnLoss(t *testing.T) {
	// Cost above revenue per unit forces a negative EBITDA.
	lossy := domain.Baseline{DailyDemand: 100, RevenuePerUnit: 30, CostPerUnit: 50}

	p, err := ProjectPnL(lossy, 30, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Less(t, p.Totals.EBITDA, 0.0)
	require.Zero(t, p.Totals.Tax)
	require.InDelta(t, p.Totals.EBITDA, p.Totals.NetIncome, 1e-6)
}

func TestProjectPnLWaterfall(t *testing.T) {
	p, err := ProjectPnL(testBaseline(), 60, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, p.Waterfall, 7)

	labels := make([]string, len(p.Waterfall))
	for i, step := range p.Waterfall {
		labels[i] = step.Label
	}
	require.Equal(t, []string{"Revenue", "COGS", "Gross Margin", "OpEx", "EBITDA", "Tax", "Net Income"}, labels)

	// The waterfall reconciles: each subtotal equals the running sum of the
	// deltas before it.
	require.InDelta(t, p.Waterfall[0].Amount+p.Waterfall[1].Amount, p.Waterfall[2].Amount, 1e-6)
	require.InDelta(t, p.Waterfall[2].Amount+p.Waterfall[3].Amount, p.Waterfall[4].Amount, 1e-6)
	require.InDelta(t, p.Waterfall[4].Amount+p.Waterfall[5].Amount, p.Waterfall[6].Amount, 1e-6)
}

func TestProjectPnLPartialFinalMonth(t *testing.T) {
	// 45 days spans one full month and a half month.
	p, err := ProjectPnL(testBaseline(), 45, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, p.Lines, 2)

	// May (factor 1.05) over 15 days.
	require.InDelta(t, 100*1.05*15*50, p.Lines[1].Revenue, 1e-6)
}
