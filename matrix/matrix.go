package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Epsilon is the numeric tolerance shared by the inverse and the simplex engine.
const Epsilon = 1e-9

// Matrix is a dense rows×cols matrix stored row-major.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New returns a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidSize)
	}

	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// NewFromData wraps a copy of data, which must hold rows*cols values in row-major order.
func NewFromData(rows, cols int, data []float64) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewFromData(%d,%d): got %d values: %w", rows, cols, len(data), ErrDimensionMismatch)
	}
	copy(m.data, data)

	return m, nil
}

// NewFromRows builds a matrix from equally sized rows.
func NewFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0)
	}

	cols := len(rows[0])
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("NewFromRows: row %d has %d values, want %d: %w", r, len(row), cols, ErrDimensionMismatch)
		}
		copy(m.data[r*cols:], row)
	}

	return m, nil
}

// RowVector returns the 1×n matrix holding v.
func RowVector(v []float64) *Matrix {
	m := &Matrix{rows: 1, cols: len(v), data: make([]float64, len(v))}
	copy(m.data, v)
	return m
}

// ColVector returns the n×1 matrix holding v.
func ColVector(v []float64) *Matrix {
	m := &Matrix{rows: len(v), cols: 1, data: make([]float64, len(v))}
	copy(m.data, v)
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = 1
	}

	return m, nil
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return m.cols
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

func (m *Matrix) checkIndex(row, col int) error {
	if row < 0 || row >= m.rows {
		return fmt.Errorf("row %d of %d: %w", row, m.rows, ErrIndexOutOfRange)
	}
	if col < 0 || col >= m.cols {
		return fmt.Errorf("column %d of %d: %w", col, m.cols, ErrIndexOutOfRange)
	}
	return nil
}

func (m *Matrix) checkRow(row int) error {
	if row < 0 || row >= m.rows {
		return fmt.Errorf("row %d of %d: %w", row, m.rows, ErrIndexOutOfRange)
	}
	return nil
}

// At returns the entry at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	if err := m.checkIndex(row, col); err != nil {
		return 0, err
	}
	return m.data[row*m.cols+col], nil
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v float64) error {
	if err := m.checkIndex(row, col); err != nil {
		return err
	}
	m.data[row*m.cols+col] = v
	return nil
}

// at and set skip bounds checks; callers inside the module guarantee the indices.
func (m *Matrix) at(row, col int) float64 {
	return m.data[row*m.cols+col]
}

func (m *Matrix) set(row, col int, v float64) {
	m.data[row*m.cols+col] = v
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) ([]float64, error) {
	if err := m.checkRow(r); err != nil {
		return nil, err
	}
	out := make([]float64, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])
	return out, nil
}

// Col returns a copy of column c.
func (m *Matrix) Col(c int) ([]float64, error) {
	if c < 0 || c >= m.cols {
		return nil, fmt.Errorf("column %d of %d: %w", c, m.cols, ErrIndexOutOfRange)
	}
	out := make([]float64, m.rows)
	for r := range m.rows {
		out[r] = m.at(r, c)
	}
	return out, nil
}

// RawData returns a copy of the row-major backing values.
func (m *Matrix) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Columns returns the rows×len(idx) matrix made of the listed columns, in order.
func (m *Matrix) Columns(idx []int) (*Matrix, error) {
	out := &Matrix{rows: m.rows, cols: len(idx), data: make([]float64, m.rows*len(idx))}
	for j, c := range idx {
		if c < 0 || c >= m.cols {
			return nil, fmt.Errorf("Columns: column %d of %d: %w", c, m.cols, ErrIndexOutOfRange)
		}
		for r := range m.rows {
			out.set(r, j, m.at(r, c))
		}
	}
	return out, nil
}

func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

func (m *Matrix) Transpose() *Matrix {
	if len(m.data) == 0 {
		return &Matrix{rows: m.cols, cols: m.rows}
	}
	return FromDense(m.Dense().T())
}

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("Add: %dx%d + %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	if len(a.data) == 0 {
		return a.Clone(), nil
	}
	var d mat.Dense
	d.Add(a.Dense(), b.Dense())
	return FromDense(&d), nil
}

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("Sub: %dx%d - %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	if len(a.data) == 0 {
		return a.Clone(), nil
	}
	var d mat.Dense
	d.Sub(a.Dense(), b.Dense())
	return FromDense(&d), nil
}

// Mul returns the product a·b. An empty inner dimension gives the zero
// matrix of the outer shape.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("Mul: %dx%d * %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	if a.rows == 0 || a.cols == 0 || b.cols == 0 {
		return &Matrix{rows: a.rows, cols: b.cols, data: make([]float64, a.rows*b.cols)}, nil
	}
	var d mat.Dense
	d.Mul(a.Dense(), b.Dense())
	return FromDense(&d), nil
}

// SwapRows exchanges rows r1 and r2.
func (m *Matrix) SwapRows(r1, r2 int) error {
	if err := m.checkRow(r1); err != nil {
		return err
	}
	if err := m.checkRow(r2); err != nil {
		return err
	}
	if r1 == r2 {
		return nil
	}
	a := m.data[r1*m.cols : (r1+1)*m.cols]
	b := m.data[r2*m.cols : (r2+1)*m.cols]
	for c := range a {
		a[c], b[c] = b[c], a[c]
	}
	return nil
}

// AddRows performs row[target] += factor*row[source].
func (m *Matrix) AddRows(target, source int, factor float64) error {
	if err := m.checkRow(target); err != nil {
		return err
	}
	if err := m.checkRow(source); err != nil {
		return err
	}
	if factor == 0 {
		return nil
	}
	t := m.data[target*m.cols : (target+1)*m.cols]
	s := m.data[source*m.cols : (source+1)*m.cols]
	for c := range t {
		t[c] += factor * s[c]
	}
	return nil
}

// ScaleRow multiplies every entry of row by factor.
func (m *Matrix) ScaleRow(row int, factor float64) error {
	if err := m.checkRow(row); err != nil {
		return err
	}
	r := m.data[row*m.cols : (row+1)*m.cols]
	for c := range r {
		r[c] *= factor
	}
	return nil
}

// Equal reports whether a and b have the same shape and identical entries.
func Equal(a, b *Matrix) bool {
	return EqualApprox(a, b, 0)
}

// EqualApprox reports whether a and b have the same shape and entries within tol.
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > tol {
			return false
		}
	}
	return true
}
