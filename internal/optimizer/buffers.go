// internal/optimizer/buffers.go
package optimizer

import (
	"math"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// BufferInputs parameterizes DDMRP buffer sizing for one item. Zero-value
// factors fall back to the defaults below.
type BufferInputs struct {
	LeadTimeDays   float64
	MOQ            float64
	OrderCycleDays float64
	LeadTimeFactor float64
	SpikeFactor    float64
}

const (
	defaultLeadTimeFactor = 0.7
	defaultSpikeFactor    = 0.5
	defaultOrderCycleDays = 7
)

// SizeBuffers sizes the Red/Yellow/Green DDMRP zones for an item and
// classifies its net flow position (on-hand + on-order) against the
// cumulative zone boundaries. Action is needed when the position sits in
// RED, or in YELLOW below the halfway mark.
func SizeBuffers(pos domain.InventoryPosition, in BufferInputs) domain.BufferProfile {
	ltFactor := in.LeadTimeFactor
	if ltFactor <= 0 {
		ltFactor = defaultLeadTimeFactor
	}
	spike := in.SpikeFactor
	if spike <= 0 {
		spike = defaultSpikeFactor
	}
	cycle := in.OrderCycleDays
	if cycle <= 0 {
		cycle = defaultOrderCycleDays
	}

	red := pos.AvgDailyDemand * in.LeadTimeDays * ltFactor * (1 + spike)
	yellow := pos.AvgDailyDemand * in.LeadTimeDays
	green := math.Max(in.MOQ, pos.AvgDailyDemand*cycle)

	nfp := pos.AvailableQty + pos.OnOrderQty

	profile := domain.BufferProfile{
		RedZone:         red,
		YellowZone:      yellow,
		GreenZone:       green,
		NetFlowPosition: nfp,
	}

	switch {
	case nfp <= red:
		profile.Zone = domain.ZoneRed
		profile.PenetrationPct = zonePct(nfp, red)
		profile.ActionNeeded = true
	case nfp <= red+yellow:
		profile.Zone = domain.ZoneYellow
		profile.PenetrationPct = zonePct(nfp-red, yellow)
		profile.ActionNeeded = profile.PenetrationPct < 50
	default:
		profile.Zone = domain.ZoneGreen
		profile.PenetrationPct = zonePct(nfp-red-yellow, green)
	}
	return profile
}

// EconomicOrderQty is the classic EOQ: the order size minimizing combined
// ordering and holding cost. holdingRate is the annual holding cost as a
// fraction of unit cost.
func EconomicOrderQty(annualDemand, orderingCost, unitCost, holdingRate float64) float64 {
	holdingPerUnit := unitCost * holdingRate
	if annualDemand <= 0 || orderingCost <= 0 || holdingPerUnit <= 0 {
		return 0
	}
	return math.Sqrt(2 * annualDemand * orderingCost / holdingPerUnit)
}

// zonePct is how far up a zone a position sits, 0 at the bottom boundary
// and 100 at the top, clamped.
func zonePct(offset, width float64) float64 {
	if width <= 0 {
		return 100
	}
	return clampScore(offset / width * 100)
}
