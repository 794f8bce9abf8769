package model

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"q.log/twophase/matrix"
)

var ErrInvalidModel = errors.New("model: invalid model")

// Model is a linear program in standard equality form:
//
//	maximize   C·x + Z
//	subject to A·x = B, x >= 0
type Model struct {
	//C objective function coefficients, 1×n
	C *matrix.Matrix

	//Z objective constant
	Z float64

	//A constraints matrix, m×n
	A *matrix.Matrix

	//B constraints rhs, m×1
	B *matrix.Matrix

	//Names optional column labels, len n when set
	Names []string
}

func NewModel(numRows, numCols int) (*Model, error) {
	c, err := matrix.New(1, numCols)
	if err != nil {
		return nil, err
	}
	a, err := matrix.New(numRows, numCols)
	if err != nil {
		return nil, err
	}
	b, err := matrix.New(numRows, 1)
	if err != nil {
		return nil, err
	}

	return &Model{C: c, A: a, B: b}, nil
}

// FromSlices builds a model from plain slices; a holds one slice per constraint row.
func FromSlices(c []float64, z float64, a [][]float64, b []float64) (*Model, error) {
	aMat, err := matrix.NewFromRows(a)
	if err != nil {
		return nil, err
	}
	if len(a) == 0 {
		aMat, _ = matrix.New(0, len(c))
	}

	m := &Model{
		C: matrix.RowVector(c),
		Z: z,
		A: aMat,
		B: matrix.ColVector(b),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) NumRows() int {
	return m.A.Rows()
}

func (m *Model) NumCols() int {
	return m.A.Cols()
}

// Validate checks the SEF shape invariants: C is 1×n, A is m×n and B is m×1.
func (m *Model) Validate() error {
	if m.C == nil || m.A == nil || m.B == nil {
		return fmt.Errorf("%w: missing objective, constraints or rhs", ErrInvalidModel)
	}
	if m.C.Rows() != 1 {
		return fmt.Errorf("objective is %dx%d: %w", m.C.Rows(), m.C.Cols(), matrix.ErrNotRowVector)
	}
	if m.C.Cols() != m.A.Cols() {
		return fmt.Errorf("objective has %d columns, constraints %d: %w", m.C.Cols(), m.A.Cols(), matrix.ErrDimensionMismatch)
	}
	if m.B.Cols() != 1 || m.B.Rows() != m.A.Rows() {
		return fmt.Errorf("rhs is %dx%d for %d constraints: %w", m.B.Rows(), m.B.Cols(), m.A.Rows(), matrix.ErrDimensionMismatch)
	}
	if m.Names != nil && len(m.Names) != m.A.Cols() {
		return fmt.Errorf("%w: %d names for %d columns", ErrInvalidModel, len(m.Names), m.A.Cols())
	}
	return nil
}

func (m *Model) Clone() *Model {
	return &Model{
		C:     m.C.Clone(),
		Z:     m.Z,
		A:     m.A.Clone(),
		B:     m.B.Clone(),
		Names: slices.Clone(m.Names),
	}
}

// Objective evaluates C·x + Z.
func (m *Model) Objective(x []float64) (float64, error) {
	if len(x) != m.NumCols() {
		return 0, fmt.Errorf("objective of %d values over %d columns: %w", len(x), m.NumCols(), matrix.ErrDimensionMismatch)
	}
	return floats.Dot(m.C.RawData(), x) + m.Z, nil
}

// ColumnName returns the label of column j, or x<j+1> when the model is unnamed.
func (m *Model) ColumnName(j int) string {
	if j < len(m.Names) && m.Names[j] != "" {
		return m.Names[j]
	}
	return fmt.Sprintf("x%d", j+1)
}

// AddCol appends a column with constraint coefficients col and objective coefficient coef.
func (m *Model) AddCol(col []float64, coef float64, name string) error {
	if len(col) != m.NumRows() {
		return fmt.Errorf("mismatch number of rows, i.e. wrong len of col: %w", matrix.ErrDimensionMismatch)
	}

	rows, cols := m.A.Dims()
	a, _ := matrix.New(rows, cols+1)
	for r := range rows {
		row, _ := m.A.Row(r)
		for c, v := range row {
			_ = a.Set(r, c, v)
		}
		_ = a.Set(r, cols, col[r])
	}
	m.A = a
	m.C = matrix.RowVector(append(m.C.RawData(), coef))

	if m.Names != nil || name != "" {
		for len(m.Names) < cols {
			m.Names = append(m.Names, m.ColumnName(len(m.Names)))
		}
		m.Names = append(m.Names, name)
	}
	return nil
}

// AddRow appends the constraint row·x = rhs.
func (m *Model) AddRow(row []float64, rhs float64) error {
	if len(row) != m.NumCols() {
		return fmt.Errorf("mismatch number of columns, i.e. wrong len of row: %w", matrix.ErrDimensionMismatch)
	}

	rows, cols := m.A.Dims()
	a, _ := matrix.NewFromData(rows+1, cols, append(m.A.RawData(), row...))
	m.A = a
	m.B = matrix.ColVector(append(m.B.RawData(), rhs))
	return nil
}

// RemoveRows returns a copy of m without the listed constraint rows.
func (m *Model) RemoveRows(rows ...int) (*Model, error) {
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r < 0 || r >= m.NumRows() {
			return nil, fmt.Errorf("row %d does not exist: %w", r, matrix.ErrIndexOutOfRange)
		}
		drop[r] = true
	}

	var keptA []float64
	var keptB []float64
	for r := range m.NumRows() {
		if drop[r] {
			continue
		}
		row, _ := m.A.Row(r)
		keptA = append(keptA, row...)
		rhs, _ := m.B.At(r, 0)
		keptB = append(keptB, rhs)
	}

	out := m.Clone()
	a, err := matrix.NewFromData(m.NumRows()-len(drop), m.NumCols(), keptA)
	if err != nil {
		return nil, err
	}
	out.A = a
	out.B = matrix.ColVector(keptB)
	return out, nil
}

// MultiplyConstraint scales constraint row and its rhs by mul.
func (m *Model) MultiplyConstraint(row int, mul float64) error {
	if err := m.A.ScaleRow(row, mul); err != nil {
		return fmt.Errorf("row does not exist: %w", err)
	}
	return m.B.ScaleRow(row, mul)
}
