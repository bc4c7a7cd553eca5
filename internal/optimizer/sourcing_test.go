// internal/optimizer/sourcing_test.go
package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/demand-planner/internal/domain"
)

func testVendors() []domain.Vendor {
	return []domain.Vendor{
		{
			VendorID:         "v-premium",
			Name:             "Premium Supply Co",
			UnitCost:         12.0,
			LeadTimeDays:     14,
			MOQ:              500,
			ReliabilityScore: 0.98,
			QualityRating:    0.95,
		},
		{
			VendorID:         "v-best",
			Name:             "Best Value Ltd",
			UnitCost:         8.0,
			LeadTimeDays:     7,
			MOQ:              100,
			ReliabilityScore: 0.95,
			QualityRating:    0.90,
		},
		{
			VendorID:         "v-budget",
			Name:             "Budget Parts",
			UnitCost:         9.0,
			LeadTimeDays:     21,
			MOQ:              1000,
			ReliabilityScore: 0.70,
			QualityRating:    0.60,
		},
	}
}

func TestScoreVendorsRanksDominantVendorFirst(t *testing.T) {
	// v-best dominates on cost, lead time and MOQ and nearly matches on
	// reliability, so it must rank first.
	rec, err := ScoreVendors(testVendors())
	require.NoError(t, err)

	require.Equal(t, "v-best", rec.Recommended)
	require.Equal(t, "v-best", rec.Scores[0].Vendor.VendorID)
	require.Equal(t, 1, rec.Scores[0].Rank)

	for i, s := range rec.Scores {
		require.Equal(t, i+1, s.Rank)
		for _, sub := range []float64{s.CostScore, s.LeadTimeScore, s.ReliabilityScore, s.MOQScore, s.TotalScore} {
			require.GreaterOrEqual(t, sub, 0.0)
			require.LessOrEqual(t, sub, 100.0)
		}
	}

	// The dominant vendor maxes every ratio sub-score.
	require.InDelta(t, 100.0, rec.Scores[0].CostScore, 1e-9)
	require.InDelta(t, 100.0, rec.Scores[0].LeadTimeScore, 1e-9)
	require.InDelta(t, 100.0, rec.Scores[0].MOQScore, 1e-9)
}

func TestScoreVendorsSuggestsSplit(t *testing.T) {
	rec, err := ScoreVendors(testVendors())
	require.NoError(t, err)

	require.Equal(t, rec.Scores[1].Vendor.VendorID, rec.SplitWith)
	require.Contains(t, rec.SplitRationale, rec.Scores[1].Vendor.Name)
}

func TestScoreVendorsSingleCandidate(t *testing.T) {
	rec, err := ScoreVendors(testVendors()[:1])
	require.NoError(t, err)

	require.Equal(t, "v-premium", rec.Recommended)
	require.Empty(t, rec.SplitWith)
	require.Empty(t, rec.SplitRationale)
}

func TestScoreVendorsRequiresCandidates(t *testing.T) {
	_, err := ScoreVendors(nil)
	require.True(t, domain.IsValidation(err))
}

func TestScoreVendorsStableOnTies(t *testing.T) {
	identical := domain.Vendor{
		VendorID: "v-a", Name: "A", UnitCost: 10, LeadTimeDays: 10, MOQ: 100,
		ReliabilityScore: 0.9, QualityRating: 0.9,
	}
	clone := identical
	clone.VendorID = "v-b"
	clone.Name = "B"

	rec, err := ScoreVendors([]domain.Vendor{identical, clone})
	require.NoError(t, err)

	// Catalog order breaks the tie.
	require.Equal(t, "v-a", rec.Recommended)
	require.Equal(t, "v-b", rec.SplitWith)
}
