// internal/optimizer/sourcing.go
package optimizer

import (
	"fmt"
	"sort"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

// Fixed sub-score weights for vendor ranking.
const (
	weightCost        = 0.40
	weightLeadTime    = 0.25
	weightReliability = 0.20
	weightMOQ         = 0.15
)

// ScoreVendors normalizes cost, lead time, reliability and MOQ flexibility
// into 0-100 sub-scores, combines them with fixed weights and ranks the
// candidates descending. The top vendor is recommended; when a runner-up
// exists a split is suggested for risk diversification.
func ScoreVendors(vendors []domain.Vendor) (domain.SourcingRecommendation, error) {
	if len(vendors) == 0 {
		return domain.SourcingRecommendation{}, domain.NewValidationError("vendors", "at least one candidate is required")
	}

	minCost := vendors[0].UnitCost
	minLead := vendors[0].LeadTimeDays
	minMOQ := vendors[0].MOQ
	for _, v := range vendors[1:] {
		if v.UnitCost < minCost {
			minCost = v.UnitCost
		}
		if v.LeadTimeDays < minLead {
			minLead = v.LeadTimeDays
		}
		if v.MOQ < minMOQ {
			minMOQ = v.MOQ
		}
	}

	scores := make([]domain.VendorScore, len(vendors))
	for i, v := range vendors {
		s := domain.VendorScore{
			Vendor:           v,
			CostScore:        ratioScore(minCost, v.UnitCost),
			LeadTimeScore:    ratioScore(minLead, v.LeadTimeDays),
			ReliabilityScore: clampScore((0.7*v.ReliabilityScore + 0.3*v.QualityRating) * 100),
			MOQScore:         ratioScore(minMOQ, v.MOQ),
		}
		s.TotalScore = weightCost*s.CostScore +
			weightLeadTime*s.LeadTimeScore +
			weightReliability*s.ReliabilityScore +
			weightMOQ*s.MOQScore
		scores[i] = s
	}

	// Catalog order breaks ties, so equal-scoring vendors rank stably.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	rec := domain.SourcingRecommendation{
		Scores:      scores,
		Recommended: scores[0].Vendor.VendorID,
	}
	if len(scores) > 1 {
		rec.SplitWith = scores[1].Vendor.VendorID
		rec.SplitRationale = fmt.Sprintf(
			"split volume with %s (score %.1f vs %.1f) to reduce single-vendor supply risk",
			scores[1].Vendor.Name, scores[1].TotalScore, scores[0].TotalScore)
	}
	return rec, nil
}

// ratioScore gives the best (lowest) value 100 and scales the rest down
// proportionally. A zero best value scores everything at 100.
func ratioScore(best, actual float64) float64 {
	if actual <= 0 || best <= 0 {
		return 100
	}
	return clampScore(best / actual * 100)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
