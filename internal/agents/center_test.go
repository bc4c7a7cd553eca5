// internal/agents/center_test.go
package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func centerInput() ScanInput {
	return ScanInput{
		Positions: []domain.InventoryPosition{
			// Stockout (critical) plus a reorder suggestion.
			{ProductID: "SKU-out", WarehouseID: "WH-1", AvailableQty: 0, SafetyStock: 100, ReorderPoint: 100, AvgDailyDemand: 10},
			// Overstock only.
			{ProductID: "SKU-heavy", WarehouseID: "WH-1", AvailableQty: 2000, AvgDailyDemand: 10},
		},
		SupplyGaps: []SupplyGapInput{
			{ProductID: "SKU-gap", ForecastDemand: 1000, PlannedSupply: 700},
		},
		Forecasts: []domain.ForecastRecord{
			forecastWith(domain.AlgorithmSmoothing, 12, 10),
		},
		BaseLeadTimeDays: 7,
	}
}

func TestCenterScanRanksBySeverity(t *testing.T) {
	c := NewCenter(agentConfig())

	scan := c.Scan(centerInput(), 0)
	require.NotEmpty(t, scan.Alerts)

	for i := 1; i < len(scan.Alerts); i++ {
		require.LessOrEqual(t,
			scan.Alerts[i-1].Severity.Weight(),
			scan.Alerts[i].Severity.Weight())
	}
	require.Equal(t, domain.SeverityCritical, scan.Alerts[0].Severity)
}

func TestCenterScanTagsSources(t *testing.T) {
	c := NewCenter(agentConfig())

	scan := c.Scan(centerInput(), 0)

	sources := make(map[string]bool)
	for _, a := range scan.Alerts {
		require.NotEmpty(t, a.AgentSource)
		sources[a.AgentSource] = true
	}
	require.True(t, sources[SourceException])
	require.True(t, sources[SourceReorder])
	require.True(t, sources[SourceBias])
}

func TestCenterScanBreakdownsCoverFullSet(t *testing.T) {
	c := NewCenter(agentConfig())

	scan := c.Scan(centerInput(), 2)
	require.Len(t, scan.Alerts, 2)
	require.Greater(t, scan.TotalBefore, 2)

	var bySeverity int
	for _, n := range scan.BySeverity {
		bySeverity += n
	}
	require.Equal(t, scan.TotalBefore, bySeverity)

	var byAgent int
	for _, n := range scan.ByAgent {
		byAgent += n
	}
	require.Equal(t, scan.TotalBefore, byAgent)
}

func TestCenterScanDefaultsMaxAlerts(t *testing.T) {
	cfg := agentConfig()
	cfg.MaxAlerts = 1
	c := NewCenter(cfg)

	scan := c.Scan(centerInput(), 0)
	require.Len(t, scan.Alerts, 1)
	require.Greater(t, scan.TotalBefore, 1)
}

func TestCenterScanEmptySnapshot(t *testing.T) {
	c := NewCenter(agentConfig())

	scan := c.Scan(ScanInput{}, 0)
	require.Empty(t, scan.Alerts)
	require.Zero(t, scan.TotalBefore)
	require.False(t, scan.GeneratedAt.IsZero())
}

func TestCenterExposesReorderAgent(t *testing.T) {
	c := NewCenter(agentConfig())
	require.NotNil(t, c.Reorder())
}
