package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"q.log/twophase/matrix"
	"q.log/twophase/simplex"
)

func TestCanonicalForm(t *testing.T) {
	m := productionModel(t)
	orig := m.Clone()
	basis := mustBasis(t, 0, 1, 4)

	y, err := simplex.CanonicalForm(m, basis)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1, 0}, y.RawData(), tol)

	// basic columns form the identity and have zero reduced cost
	for i, col := range basis.Indices() {
		c, err := m.C.At(0, col)
		require.NoError(t, err)
		assert.InDelta(t, 0, c, tol)

		column, err := m.A.Col(col)
		require.NoError(t, err)
		want := make([]float64, 3)
		want[i] = 1
		assert.InDeltaSlice(t, want, column, tol)
	}
	assert.InDeltaSlice(t, []float64{0, 0, -2, -1, 0}, m.C.RawData(), tol)
	assert.InDeltaSlice(t, []float64{2, 2, 1}, m.B.RawData(), tol)
	assert.InDelta(t, 10, m.Z, tol)

	// every x with Ax = b keeps its objective value
	for _, x := range [][]float64{
		{1, 1, 2, 1, 2},
		{2, 2, 0, 0, 1},
		{0, 0, 4, 2, 3},
		{0.5, 3, 0.5, 1.5, 0},
	} {
		before := floats.Dot(orig.C.RawData(), x) + orig.Z
		after := floats.Dot(m.C.RawData(), x) + m.Z
		assert.InDelta(t, before, after, tol, "x=%v", x)

		for r := range m.NumRows() {
			row, _ := m.A.Row(r)
			rhs, _ := m.B.At(r, 0)
			assert.InDelta(t, rhs, floats.Dot(row, x), tol)
		}
	}
}

func TestCanonicalFormErrorsLeaveModelUntouched(t *testing.T) {
	m := mustModel(t, []float64{1, 1, 0}, 2, [][]float64{{1, 2, 1}, {2, 4, 0}}, []float64{2, 4})
	orig := m.Clone()

	_, err := simplex.CanonicalForm(m, mustBasis(t, 0, 1))
	assert.ErrorIs(t, err, matrix.ErrSingular)
	assert.True(t, matrix.Equal(orig.A, m.A))
	assert.True(t, matrix.Equal(orig.B, m.B))
	assert.True(t, matrix.Equal(orig.C, m.C))
	assert.Equal(t, orig.Z, m.Z)

	_, err = simplex.CanonicalForm(m, mustBasis(t, 0))
	assert.ErrorIs(t, err, simplex.ErrInvalidBasis)

	bad := m.Clone()
	bad.C, _ = matrix.New(2, 3)
	_, err = simplex.CanonicalForm(bad, mustBasis(t, 0, 2))
	assert.ErrorIs(t, err, matrix.ErrNotRowVector)

	bad = m.Clone()
	bad.C = matrix.RowVector([]float64{1, 1})
	_, err = simplex.CanonicalForm(bad, mustBasis(t, 0, 2))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestBasis(t *testing.T) {
	b := mustBasis(t, 4, 0, 2)
	assert.Equal(t, []int{0, 2, 4}, b.Indices())
	assert.True(t, b.Contains(2))
	assert.False(t, b.Contains(3))

	require.NoError(t, b.Replace(0, 5))
	assert.Equal(t, []int{2, 4, 5}, b.Indices())
	require.NoError(t, b.Replace(5, 3))
	assert.Equal(t, []int{2, 3, 4}, b.Indices())

	assert.ErrorIs(t, b.Replace(9, 1), simplex.ErrInvalidBasisState)
	assert.ErrorIs(t, b.Replace(2, 4), simplex.ErrInvalidBasisState)
	assert.Equal(t, []int{2, 3, 4}, b.Indices())

	_, err := simplex.NewBasis(1, 1)
	assert.ErrorIs(t, err, simplex.ErrInvalidBasis)
	_, err = simplex.NewBasis(-1)
	assert.ErrorIs(t, err, simplex.ErrInvalidBasis)

	c := b.Clone()
	require.NoError(t, c.Replace(2, 0))
	assert.Equal(t, []int{2, 3, 4}, b.Indices())
}
