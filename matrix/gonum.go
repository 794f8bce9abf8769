package matrix

import "gonum.org/v1/gonum/mat"

// Dense returns a gonum copy of m. Matrices with a zero dimension have no
// gonum representation and yield nil.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.cols, m.RawData())
}

// FromDense copies any gonum matrix into a Matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	out := &Matrix{rows: r, cols: c, data: make([]float64, r*c)}
	for i := range r {
		for j := range c {
			out.set(i, j, d.At(i, j))
		}
	}
	return out
}
