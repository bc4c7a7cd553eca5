// internal/optimizer/simplex.go
package optimizer

import (
	"errors"
	"math"
)

// ConstraintOp is the direction of a linear constraint row.
type ConstraintOp int

const (
	LE ConstraintOp = iota
	GE
)

// Solver minimizes objective . x subject to A x (<=|>=) b, x >= 0. The
// returned slice holds the variable values, the float the objective value.
type Solver interface {
	Solve(objective []float64, a [][]float64, b []float64, ops []ConstraintOp) ([]float64, float64, error)
}

var (
	ErrInfeasible     = errors.New("simplex: problem is infeasible")
	ErrUnbounded      = errors.New("simplex: problem is unbounded")
	ErrIterationLimit = errors.New("simplex: iteration limit reached")
)

const simplexEps = 1e-9

// SimplexSolver is a dense Big-M tableau simplex. The problems here are
// small (a few dozen variables over a planning horizon), so a dense
// tableau with from-scratch reduced costs per iteration is plenty.
type SimplexSolver struct {
	maxIterations int
}

func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{maxIterations: 5000}
}

func (s *SimplexSolver) Solve(objective []float64, a [][]float64, b []float64, ops []ConstraintOp) ([]float64, float64, error) {
	n := len(objective)
	m := len(a)
	if m != len(b) || m != len(ops) {
		return nil, 0, errors.New("simplex: constraint dimensions do not match")
	}

	// Normalize rows to non-negative right-hand sides.
	rows := make([][]float64, m)
	rhs := make([]float64, m)
	dirs := make([]ConstraintOp, m)
	for i := range a {
		if len(a[i]) != n {
			return nil, 0, errors.New("simplex: row width does not match objective")
		}
		rows[i] = append([]float64(nil), a[i]...)
		rhs[i] = b[i]
		dirs[i] = ops[i]
		if rhs[i] < 0 {
			for j := range rows[i] {
				rows[i][j] = -rows[i][j]
			}
			rhs[i] = -rhs[i]
			if dirs[i] == LE {
				dirs[i] = GE
			} else {
				dirs[i] = LE
			}
		}
	}

	// Standard form: one slack per LE row, one surplus and one artificial
	// per GE row. Artificials carry the Big-M cost.
	numArtificial := 0
	for _, d := range dirs {
		if d == GE {
			numArtificial++
		}
	}
	total := n + m + numArtificial

	bigM := 1.0
	for _, c := range objective {
		if math.Abs(c) > bigM {
			bigM = math.Abs(c)
		}
	}
	bigM *= 1e6

	cost := make([]float64, total)
	copy(cost, objective)
	for j := n + m; j < total; j++ {
		cost[j] = bigM
	}

	tableau := make([][]float64, m)
	basis := make([]int, m)
	art := 0
	for i := 0; i < m; i++ {
		row := make([]float64, total+1)
		copy(row, rows[i])
		row[total] = rhs[i]
		if dirs[i] == LE {
			row[n+i] = 1
			basis[i] = n + i
		} else {
			row[n+i] = -1
			row[n+m+art] = 1
			basis[i] = n + m + art
			art++
		}
		tableau[i] = row
	}

	for iter := 0; iter < s.maxIterations; iter++ {
		// Reduced costs: r_j = c_j - sum_i c_basis[i] * T[i][j].
		entering := -1
		best := -simplexEps
		for j := 0; j < total; j++ {
			r := cost[j]
			for i := 0; i < m; i++ {
				r -= cost[basis[i]] * tableau[i][j]
			}
			if r < best {
				best = r
				entering = j
			}
		}
		if entering < 0 {
			return s.extract(tableau, basis, cost, n, m, total)
		}

		// Ratio test.
		leaving := -1
		minRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if tableau[i][entering] > simplexEps {
				ratio := tableau[i][total] / tableau[i][entering]
				if ratio < minRatio {
					minRatio = ratio
					leaving = i
				}
			}
		}
		if leaving < 0 {
			return nil, 0, ErrUnbounded
		}

		pivot(tableau, leaving, entering)
		basis[leaving] = entering
	}
	return nil, 0, ErrIterationLimit
}

func pivot(tableau [][]float64, row, col int) {
	p := tableau[row][col]
	for j := range tableau[row] {
		tableau[row][j] /= p
	}
	for i := range tableau {
		if i == row {
			continue
		}
		factor := tableau[i][col]
		if factor == 0 {
			continue
		}
		for j := range tableau[i] {
			tableau[i][j] -= factor * tableau[row][j]
		}
	}
}

func (s *SimplexSolver) extract(tableau [][]float64, basis []int, cost []float64, n, m, total int) ([]float64, float64, error) {
	x := make([]float64, n)
	objective := 0.0
	for i := 0; i < m; i++ {
		v := tableau[i][total]
		// An artificial variable still basic at a positive level means no
		// feasible point exists.
		if basis[i] >= n+m && v > 1e-6 {
			return nil, 0, ErrInfeasible
		}
		if basis[i] < n {
			x[basis[i]] = v
		}
		objective += cost[basis[i]] * v
	}
	for i := range x {
		if x[i] < 0 && x[i] > -simplexEps {
			x[i] = 0
		}
	}
	return x, objective, nil
}
