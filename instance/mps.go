package instance

import (
	"fmt"
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"

	"q.log/twophase/model"
)

// ReadMPS reads a free-format MPS file with GLPK and converts it to standard
// equality form.
func ReadMPS(filename string) (*Problem, error) {
	g, err := readGeneral(filename)
	if err != nil {
		return nil, err
	}

	m, rec, err := g.Standardize()
	if err != nil {
		return nil, err
	}
	return &Problem{Model: m, Recovery: rec}, nil
}

func readGeneral(filename string) (*model.General, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, filename); err != nil {
		return nil, fmt.Errorf("%w: failed to read MPS file %s: %v", ErrInvalidProblem, filename, err)
	}

	numRows, numCols := lp.NumRows(), lp.NumCols()
	g := &model.General{
		Maximize:  lp.ObjDir() == glpk.MAX,
		Objective: make([]float64, numCols),
		Constant:  lp.ObjCoef(0),
		Variables: make([]model.Variable, numCols),
	}

	// glpk indices are 1-based, index 0 of ObjCoef is the constant term
	for c := range numCols {
		g.Objective[c] = lp.ObjCoef(c + 1)
		name := lp.ColName(c + 1)
		if name == "" {
			name = fmt.Sprintf("x%d", c+1)
		}
		g.Variables[c] = model.Variable{
			Name:  name,
			Lower: bound(lp.ColLB(c + 1)),
			Upper: bound(lp.ColUB(c + 1)),
		}
	}

	for r := 1; r <= numRows; r++ {
		coef := make([]float64, numCols)
		idxs, vals := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			coef[v-1] = vals[i]
		}

		lb, ub := bound(lp.RowLB(r)), bound(lp.RowUB(r))
		switch {
		case math.IsInf(lb, -1) && math.IsInf(ub, 1):
			// free row
			continue
		case math.IsInf(lb, -1):
			g.Constraints = append(g.Constraints, model.Constraint{Coef: coef, Sense: model.LessEqual, RHS: ub})
		case math.IsInf(ub, 1):
			g.Constraints = append(g.Constraints, model.Constraint{Coef: coef, Sense: model.GreaterEqual, RHS: lb})
		case lb == ub:
			g.Constraints = append(g.Constraints, model.Constraint{Coef: coef, Sense: model.Equal, RHS: lb})
		default:
			// ranged row
			g.Constraints = append(g.Constraints,
				model.Constraint{Coef: coef, Sense: model.GreaterEqual, RHS: lb},
				model.Constraint{Coef: append([]float64(nil), coef...), Sense: model.LessEqual, RHS: ub},
			)
		}
	}

	return g, nil
}

// bound maps GLPK's ±DBL_MAX for a missing bound to an infinity.
func bound(v float64) float64 {
	switch v {
	case -math.MaxFloat64:
		return math.Inf(-1)
	case math.MaxFloat64:
		return math.Inf(1)
	}
	return v
}
