// internal/agents/reorder_test.go
package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func reorderPosition(available, reorderPoint, safety float64) domain.InventoryPosition {
	return domain.InventoryPosition{
		ProductID:    "SKU-1",
		WarehouseID:  "WH-1",
		AvailableQty: available,
		ReorderPoint: reorderPoint,
		SafetyStock:  safety,
	}
}

func TestSuggestOrdersUpToTarget(t *testing.T) {
	a := NewReorderAgent(agentConfig())

	suggestions := a.Suggest([]domain.InventoryPosition{reorderPosition(80, 100, 50)}, 10)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	require.InDelta(t, 200.0, s.TargetStock, 1e-9)
	require.InDelta(t, 120.0, s.SuggestedOrder, 1e-9)
	require.Equal(t, domain.UrgencyNormal, s.Urgency)

	// 10 day base lead time padded by the 20% buffer.
	require.InDelta(t, 12.0, s.LeadTimeDays, 1e-9)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 12), s.ExpectedDelivery, time.Minute)
}

func TestSuggestUrgencyTiers(t *testing.T) {
	a := NewReorderAgent(agentConfig())

	cases := []struct {
		name      string
		available float64
		urgency   domain.Urgency
	}{
		{"out of stock", 0, domain.UrgencyEmergency},
		{"inside safety stock", 40, domain.UrgencyUrgent},
		{"below reorder point", 80, domain.UrgencyNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			suggestions := a.Suggest([]domain.InventoryPosition{reorderPosition(tc.available, 100, 50)}, 7)
			require.Len(t, suggestions, 1)
			require.Equal(t, tc.urgency, suggestions[0].Urgency)
		})
	}
}

func TestSuggestSkipsHealthyPositions(t *testing.T) {
	a := NewReorderAgent(agentConfig())

	require.Empty(t, a.Suggest([]domain.InventoryPosition{reorderPosition(150, 100, 50)}, 7))
	// No reorder point set means no suggestion.
	require.Empty(t, a.Suggest([]domain.InventoryPosition{reorderPosition(0, 0, 50)}, 7))
}

func TestAlertsMapUrgencyToSeverity(t *testing.T) {
	a := NewReorderAgent(agentConfig())

	positions := []domain.InventoryPosition{
		reorderPosition(0, 100, 50),
		reorderPosition(40, 100, 50),
		reorderPosition(80, 100, 50),
	}
	alerts := a.Alerts(a.Suggest(positions, 7))
	require.Len(t, alerts, 3)

	require.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	require.Equal(t, domain.SeverityHigh, alerts[1].Severity)
	require.Equal(t, domain.SeverityMedium, alerts[2].Severity)
	for _, alert := range alerts {
		require.Equal(t, domain.CategoryReorder, alert.Category)
		require.NotEmpty(t, alert.Data["suggested_order_qty"])
	}
}
