package simplex

import (
	"fmt"

	"q.log/twophase/matrix"
	"q.log/twophase/model"
)

const epsilon = matrix.Epsilon

func checkBasis(m *model.Model, basis *Basis) error {
	if basis == nil {
		return fmt.Errorf("%w: nil basis", ErrInvalidBasis)
	}
	if basis.Len() != m.NumRows() {
		return fmt.Errorf("%w: %d columns for %d constraints", ErrInvalidBasis, basis.Len(), m.NumRows())
	}
	for _, c := range basis.idx {
		if c >= m.NumCols() {
			return fmt.Errorf("%w: column %d of %d", ErrInvalidBasis, c, m.NumCols())
		}
	}
	return nil
}

// CanonicalForm rewrites m in place relative to basis:
//
//	A <- A_B⁻¹A, b <- A_B⁻¹b, c <- c - yᵗA, z <- z + yᵗb
//
// with y = c_Bᵗ·A_B⁻¹, which is returned as a 1×m row. Afterwards the
// reduced cost of every basic column is zero and A restricted to the basis
// is the identity, row i belonging to basis.At(i). On error m is unchanged.
func CanonicalForm(m *model.Model, basis *Basis) (*matrix.Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := checkBasis(m, basis); err != nil {
		return nil, err
	}

	ab, err := m.A.Columns(basis.idx)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.LeftInverse(ab)
	if err != nil {
		return nil, fmt.Errorf("basis %v: %w", basis, err)
	}

	cb, err := m.C.Columns(basis.idx)
	if err != nil {
		return nil, err
	}
	y, err := matrix.Mul(cb, inv)
	if err != nil {
		return nil, err
	}
	yA, err := matrix.Mul(y, m.A)
	if err != nil {
		return nil, err
	}
	c, err := matrix.Sub(m.C, yA)
	if err != nil {
		return nil, err
	}
	yb, err := matrix.Mul(y, m.B)
	if err != nil {
		return nil, err
	}
	a, err := matrix.Mul(inv, m.A)
	if err != nil {
		return nil, err
	}
	b, err := matrix.Mul(inv, m.B)
	if err != nil {
		return nil, err
	}
	shift, _ := yb.At(0, 0)

	m.C, m.A, m.B = c, a, b
	m.Z += shift
	return y, nil
}

// dual returns c_Bᵗ·A_B⁻¹ for an untouched model.
func dual(m *model.Model, basis *Basis) ([]float64, error) {
	ab, err := m.A.Columns(basis.idx)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.LeftInverse(ab)
	if err != nil {
		return nil, err
	}
	cb, err := m.C.Columns(basis.idx)
	if err != nil {
		return nil, err
	}
	y, err := matrix.Mul(cb, inv)
	if err != nil {
		return nil, err
	}
	return y.RawData(), nil
}
