package simplex

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"q.log/twophase/matrix"
	"q.log/twophase/model"
)

// Verify checks that r is proven by its certificate for m, within tol:
//
//	optimal:    Ax = b, x >= 0, c - yᵗA <= 0, z + c·x = z + yᵗb = value
//	unbounded:  Ax = b, x >= 0, Ad = 0, d >= 0, c·d > 0
//	infeasible: yᵗA >= 0, yᵗb < 0
func Verify(m *model.Model, r Result, tol float64) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c := m.C.RawData()
	b := m.B.RawData()

	switch res := r.(type) {
	case *Optimal:
		if err := checkFeasible(m, res.Solution, tol); err != nil {
			return err
		}
		if len(res.Certificate) != m.NumRows() {
			return fmt.Errorf("%w: certificate has %d entries for %d constraints", ErrCertificate, len(res.Certificate), m.NumRows())
		}
		reduced := make([]float64, len(c))
		floats.SubTo(reduced, c, mulTrans(m.A, res.Certificate))
		for j, v := range reduced {
			if v > tol {
				return fmt.Errorf("%w: reduced cost %g of %s is positive", ErrCertificate, v, m.ColumnName(j))
			}
		}
		primal, err := m.Objective(res.Solution)
		if err != nil {
			return err
		}
		if !scalar.EqualWithinAbs(primal, res.Value, tol) {
			return fmt.Errorf("%w: objective %g differs from value %g", ErrCertificate, primal, res.Value)
		}
		dual := floats.Dot(res.Certificate, b) + m.Z
		if !scalar.EqualWithinAbs(dual, res.Value, tol) {
			return fmt.Errorf("%w: dual objective %g differs from value %g", ErrCertificate, dual, res.Value)
		}

	case *Unbounded:
		if err := checkFeasible(m, res.Solution, tol); err != nil {
			return err
		}
		if len(res.Ray) != m.NumCols() {
			return fmt.Errorf("%w: ray has %d entries for %d columns", ErrCertificate, len(res.Ray), m.NumCols())
		}
		for i, v := range mul(m.A, res.Ray) {
			if !scalar.EqualWithinAbs(v, 0, tol) {
				return fmt.Errorf("%w: row %d of A·d is %g", ErrCertificate, i, v)
			}
		}
		if len(res.Ray) > 0 && floats.Min(res.Ray) < -tol {
			return fmt.Errorf("%w: ray has a negative entry", ErrCertificate)
		}
		if gain := floats.Dot(c, res.Ray); gain <= tol {
			return fmt.Errorf("%w: c·d = %g does not increase the objective", ErrCertificate, gain)
		}

	case *Infeasible:
		if len(res.Certificate) != m.NumRows() {
			return fmt.Errorf("%w: certificate has %d entries for %d constraints", ErrCertificate, len(res.Certificate), m.NumRows())
		}
		for j, v := range mulTrans(m.A, res.Certificate) {
			if v < -tol {
				return fmt.Errorf("%w: column %d of yᵗA is %g", ErrCertificate, j, v)
			}
		}
		if yb := floats.Dot(res.Certificate, b); yb >= -tol {
			return fmt.Errorf("%w: yᵗb = %g is not negative", ErrCertificate, yb)
		}

	default:
		return fmt.Errorf("%w: unknown result %T", ErrCertificate, r)
	}
	return nil
}

func checkFeasible(m *model.Model, x []float64, tol float64) error {
	if len(x) != m.NumCols() {
		return fmt.Errorf("%w: solution has %d entries for %d columns", ErrCertificate, len(x), m.NumCols())
	}
	if len(x) > 0 && floats.Min(x) < -tol {
		return fmt.Errorf("%w: solution has a negative entry", ErrCertificate)
	}
	b := m.B.RawData()
	for i, v := range mul(m.A, x) {
		if !scalar.EqualWithinAbs(v, b[i], tol) {
			return fmt.Errorf("%w: row %d of Ax is %g, want %g", ErrCertificate, i, v, b[i])
		}
	}
	return nil
}

// mul returns a·x.
func mul(a *matrix.Matrix, x []float64) []float64 {
	out := make([]float64, a.Rows())
	if d := a.Dense(); d != nil {
		var v mat.VecDense
		v.MulVec(d, mat.NewVecDense(len(x), x))
		copy(out, v.RawVector().Data)
	}
	return out
}

// mulTrans returns aᵗ·y.
func mulTrans(a *matrix.Matrix, y []float64) []float64 {
	out := make([]float64, a.Cols())
	if d := a.Dense(); d != nil {
		var v mat.VecDense
		v.MulVec(d.T(), mat.NewVecDense(len(y), y))
		copy(out, v.RawVector().Data)
	}
	return out
}
