// internal/optimizer/buffers_test.go
package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func bufferPosition(available, onOrder float64) domain.InventoryPosition {
	return domain.InventoryPosition{
		ProductID:      "SKU-1",
		WarehouseID:    "WH-1",
		AvailableQty:   available,
		OnOrderQty:     onOrder,
		AvgDailyDemand: 10,
	}
}

func TestSizeBuffersZoneWidths(t *testing.T) {
	// Defaults: ltFactor 0.7, spike 0.5, cycle 7 days.
	p := SizeBuffers(bufferPosition(500, 0), BufferInputs{LeadTimeDays: 10, MOQ: 40})

	require.InDelta(t, 105.0, p.RedZone, 1e-9)  // 10*10*0.7*1.5
	require.InDelta(t, 100.0, p.YellowZone, 1e-9)
	require.InDelta(t, 70.0, p.GreenZone, 1e-9) // cycle demand beats MOQ 40
}

func TestSizeBuffersMOQFloorsGreenZone(t *testing.T) {
	p := SizeBuffers(bufferPosition(500, 0), BufferInputs{LeadTimeDays: 10, MOQ: 250})
	require.InDelta(t, 250.0, p.GreenZone, 1e-9)
}

func TestSizeBuffersRedZonePosition(t *testing.T) {
	p := SizeBuffers(bufferPosition(50, 0), BufferInputs{LeadTimeDays: 10})

	require.Equal(t, domain.ZoneRed, p.Zone)
	require.True(t, p.ActionNeeded)
	require.InDelta(t, 50.0/105.0*100, p.PenetrationPct, 1e-9)
	require.InDelta(t, 50.0, p.NetFlowPosition, 1e-9)
}

func TestSizeBuffersYellowZonePositions(t *testing.T) {
	// Low in yellow (penetration < 50) still needs action.
	low := SizeBuffers(bufferPosition(120, 20), BufferInputs{LeadTimeDays: 10})
	require.Equal(t, domain.ZoneYellow, low.Zone)
	require.InDelta(t, 35.0, low.PenetrationPct, 1e-9) // (140-105)/100
	require.True(t, low.ActionNeeded)

	// High in yellow does not.
	high := SizeBuffers(bufferPosition(200, 0), BufferInputs{LeadTimeDays: 10})
	require.Equal(t, domain.ZoneYellow, high.Zone)
	require.False(t, high.ActionNeeded)
}

func TestSizeBuffersGreenZonePosition(t *testing.T) {
	// On-order stock counts toward the net flow position.
	p := SizeBuffers(bufferPosition(150, 100), BufferInputs{LeadTimeDays: 10})

	require.Equal(t, domain.ZoneGreen, p.Zone)
	require.False(t, p.ActionNeeded)
	require.InDelta(t, (250.0-205.0)/70.0*100, p.PenetrationPct, 1e-9)
}

func TestEconomicOrderQty(t *testing.T) {
	// sqrt(2 * 3650 * 50 / (10 * 0.2)) = sqrt(182500)
	eoq := EconomicOrderQty(3650, 50, 10, 0.2)
	require.InDelta(t, 427.2, eoq, 0.1)

	require.Zero(t, EconomicOrderQty(0, 50, 10, 0.2))
	require.Zero(t, EconomicOrderQty(3650, 0, 10, 0.2))
	require.Zero(t, EconomicOrderQty(3650, 50, 0, 0.2))
}
