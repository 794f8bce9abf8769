package simplex

import (
	"fmt"
	"math"
	"slices"

	"q.log/twophase/matrix"
	"q.log/twophase/model"
)

// PhaseIResult reports whether Ax = b, x >= 0 has a solution.
type PhaseIResult struct {
	Feasible bool

	// Basis is a feasible basis over the original columns when Feasible.
	// It has one column per constraint that is not listed in Redundant.
	Basis *Basis

	// Redundant lists constraint rows that are linear combinations of the
	// other rows. They must be dropped before running Phase II from Basis.
	Redundant []int

	// Certificate is y with yᵗA >= 0 and yᵗb < 0 when not Feasible.
	Certificate []float64
}

// AddArtificialVariables returns the auxiliary Phase I model for a, b: rows
// with a negative rhs are negated, an identity block of artificial columns
// is appended and the objective is -1 on every artificial column. It also
// reports which rows were negated and the all-artificial starting basis.
func AddArtificialVariables(a, b *matrix.Matrix) (*model.Model, []bool, *Basis, error) {
	if b.Cols() != 1 || b.Rows() != a.Rows() {
		return nil, nil, nil, fmt.Errorf("rhs is %dx%d for %d constraints: %w", b.Rows(), b.Cols(), a.Rows(), matrix.ErrDimensionMismatch)
	}

	numRows, numCols := a.Dims()
	c, err := matrix.New(1, numCols)
	if err != nil {
		return nil, nil, nil, err
	}
	aux := &model.Model{C: c, A: a.Clone(), B: b.Clone()}

	flipped := make([]bool, numRows)
	for r := range numRows {
		if rhs, _ := b.At(r, 0); rhs < 0 {
			if err := aux.MultiplyConstraint(r, -1); err != nil {
				return nil, nil, nil, err
			}
			flipped[r] = true
		}
	}

	artificial := make([]int, numRows)
	for r := range numRows {
		col := make([]float64, numRows)
		col[r] = 1
		if err := aux.AddCol(col, -1, ""); err != nil {
			return nil, nil, nil, err
		}
		artificial[r] = numCols + r
	}

	basis, err := NewBasis(artificial...)
	if err != nil {
		return nil, nil, nil, err
	}
	return aux, flipped, basis, nil
}

// PhaseI searches for a feasible basis of Ax = b, x >= 0 by maximizing the
// negated sum of artificial variables. A negative optimum proves
// infeasibility; otherwise artificial columns left in the basis are pivoted
// out where possible and the rest mark redundant rows.
func PhaseI(a, b *matrix.Matrix, opts ...Option) (*PhaseIResult, error) {
	aux, flipped, basis, err := AddArtificialVariables(a, b)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	numCols := a.Cols()

	res, err := Simplex(aux, basis, opts...)
	if err != nil {
		return nil, fmt.Errorf("phase I: %w", err)
	}
	opt, ok := res.(*Optimal)
	if !ok {
		// the auxiliary objective is bounded above by zero
		return nil, fmt.Errorf("%w: auxiliary problem reported %s", ErrInvalidBasisState, res.Status())
	}

	if opt.Value < -epsilon {
		y := opt.Certificate
		for i, f := range flipped {
			if f {
				y[i] = 0 - y[i]
			}
		}
		o.logger.Info("phase I infeasible", "auxiliary objective", opt.Value)
		return &PhaseIResult{Feasible: false, Certificate: y}, nil
	}

	redundant, err := driveOutArtificials(aux, basis, numCols)
	if err != nil {
		return nil, fmt.Errorf("phase I: %w", err)
	}

	var cols []int
	for _, c := range basis.idx {
		if c < numCols {
			cols = append(cols, c)
		}
	}
	final, err := NewBasis(cols...)
	if err != nil {
		return nil, err
	}

	o.logger.Info("phase I feasible", "basis", final.String(), "redundant", len(redundant))
	return &PhaseIResult{Feasible: true, Basis: final, Redundant: redundant}, nil
}

// driveOutArtificials pivots basic artificial columns (index >= numCols) out
// of basis in favour of original columns. Each pivot happens on a row whose
// rhs is zero, so feasibility is kept. An artificial whose canonical row is
// zero on every original column cannot leave; its row is redundant.
func driveOutArtificials(aux *model.Model, basis *Basis, numCols int) ([]int, error) {
	stuck := make(map[int]bool)
	for {
		work := aux.Clone()
		if _, err := CanonicalForm(work, basis); err != nil {
			return nil, err
		}

		pivoted := false
		for i := range basis.Len() {
			col := basis.At(i)
			if col < numCols || stuck[col] {
				continue
			}

			row, _ := work.A.Row(i)
			entering := -1
			for j := range numCols {
				if !basis.Contains(j) && math.Abs(row[j]) >= epsilon {
					entering = j
					break
				}
			}
			if entering == -1 {
				stuck[col] = true
				continue
			}

			if err := basis.Replace(col, entering); err != nil {
				return nil, err
			}
			pivoted = true
			break
		}

		if !pivoted {
			break
		}
	}

	redundant := make([]int, 0, len(stuck))
	for col := range stuck {
		redundant = append(redundant, col-numCols)
	}
	slices.Sort(redundant)
	return redundant, nil
}
