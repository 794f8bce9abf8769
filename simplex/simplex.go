package simplex

import (
	"fmt"
	"math"

	"q.log/twophase/model"
)

// Simplex runs Phase II on m starting from basis, which must be feasible:
// placing A_B⁻¹b at the basis columns has to give a non-negative point.
// That precondition is not checked. m is not modified; basis is updated in
// place and holds the final basis when Simplex returns a result.
//
// Entering and leaving columns follow Bland's rule (smallest index first),
// so no basis is visited twice and the loop terminates.
func Simplex(m *model.Model, basis *Basis, opts ...Option) (Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := checkBasis(m, basis); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	work := m.Clone()
	numRows, numCols := work.NumRows(), work.NumCols()
	iter := 0
	for {
		iter++
		if _, err := CanonicalForm(work, basis); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}

		//current basic feasible solution
		x := make([]float64, numCols)
		rhs := work.B.RawData()
		for i := range numRows {
			x[basis.At(i)] = rhs[i]
		}

		if o.trace != nil {
			o.trace(Step{Iteration: iter, Basis: basis.Indices(), Objective: work.Z})
		}

		//first positive reduced cost enters (Bland's rule)
		reduced := work.C.RawData()
		entering := -1
		for j, v := range reduced {
			if v > epsilon {
				entering = j
				break
			}
		}

		//optimality condition
		if entering == -1 {
			y, err := dual(m, basis)
			if err != nil {
				return nil, fmt.Errorf("optimality certificate: %w", err)
			}
			o.logger.Debug("phase II optimal", "iterations", iter, "objective", work.Z, "basis", basis.String())
			return &Optimal{Solution: x, Certificate: y, Value: work.Z}, nil
		}

		//minimal ratio test, ties go to the smallest row
		column, _ := work.A.Col(entering)
		leaving := -1
		minimalRatio := math.Inf(1)
		for i := range numRows {
			if column[i] < epsilon {
				continue
			}
			ratio := rhs[i] / column[i]
			if ratio < minimalRatio-epsilon {
				minimalRatio = ratio
				leaving = i
			}
		}

		// problem is unbounded
		if leaving == -1 {
			ray := make([]float64, numCols)
			ray[entering] = 1
			for i := range numRows {
				if math.Abs(column[i]) < epsilon {
					continue
				}
				ray[basis.At(i)] = -column[i]
			}
			o.logger.Debug("phase II unbounded", "iterations", iter, "entering", entering, "basis", basis.String())
			return &Unbounded{Solution: x, Ray: ray}, nil
		}

		o.logger.Debug("pivot",
			"iteration", iter,
			"entering", entering,
			"leaving", basis.At(leaving),
			"ratio", minimalRatio,
			"objective", work.Z,
		)
		if err := basis.Replace(basis.At(leaving), entering); err != nil {
			return nil, err
		}
	}
}
