// internal/optimizer/simplex_test.go
package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplexSolvesSmallLP(t *testing.T) {
	// minimize 2x + 3y subject to x + y >= 10, x <= 6.
	// Optimum: x = 6, y = 4, objective 24.
	s := NewSimplexSolver()

	x, obj, err := s.Solve(
		[]float64{2, 3},
		[][]float64{
			{1, 1},
			{1, 0},
		},
		[]float64{10, 6},
		[]ConstraintOp{GE, LE},
	)
	require.NoError(t, err)
	require.InDelta(t, 6.0, x[0], 1e-6)
	require.InDelta(t, 4.0, x[1], 1e-6)
	require.InDelta(t, 24.0, obj, 1e-6)
}

func TestSimplexTrivialOptimumAtOrigin(t *testing.T) {
	// With positive costs and only upper bounds, doing nothing is optimal.
	s := NewSimplexSolver()

	x, obj, err := s.Solve(
		[]float64{1, 1},
		[][]float64{{1, 1}},
		[]float64{5},
		[]ConstraintOp{LE},
	)
	require.NoError(t, err)
	require.InDelta(t, 0.0, x[0], 1e-6)
	require.InDelta(t, 0.0, x[1], 1e-6)
	require.InDelta(t, 0.0, obj, 1e-6)
}

func TestSimplexDetectsInfeasible(t *testing.T) {
	// x <= 1 and x >= 5 cannot both hold.
	s := NewSimplexSolver()

	_, _, err := s.Solve(
		[]float64{1},
		[][]float64{{1}, {1}},
		[]float64{1, 5},
		[]ConstraintOp{LE, GE},
	)
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestSimplexDetectsUnbounded(t *testing.T) {
	// minimize -x with only a lower bound on x.
	s := NewSimplexSolver()

	_, _, err := s.Solve(
		[]float64{-1},
		[][]float64{{1}},
		[]float64{1},
		[]ConstraintOp{GE},
	)
	require.ErrorIs(t, err, ErrUnbounded)
}

func TestSimplexRejectsMismatchedDimensions(t *testing.T) {
	s := NewSimplexSolver()

	_, _, err := s.Solve([]float64{1}, [][]float64{{1}}, []float64{1, 2}, []ConstraintOp{LE})
	require.Error(t, err)

	_, _, err = s.Solve([]float64{1, 2}, [][]float64{{1}}, []float64{1}, []ConstraintOp{LE})
	require.Error(t, err)
}

func TestSimplexNormalizesNegativeRHS(t *testing.T) {
	// -x <= -3 is x >= 3; minimize x lands exactly on the bound.
	s := NewSimplexSolver()

	x, obj, err := s.Solve(
		[]float64{1},
		[][]float64{{-1}},
		[]float64{-3},
		[]ConstraintOp{LE},
	)
	require.NoError(t, err)
	require.InDelta(t, 3.0, x[0], 1e-6)
	require.InDelta(t, 3.0, obj, 1e-6)
}
