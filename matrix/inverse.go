package matrix

import (
	"fmt"
	"math"
)

// LeftInverse returns the inverse of the square matrix m using Gauss-Jordan
// elimination. A row swap happens only when the diagonal pivot is below
// Epsilon, taking the first lower row with a usable entry. m is not modified.
func LeftInverse(m *Matrix) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("LeftInverse: %dx%d: %w", m.rows, m.cols, ErrNotSquare)
	}

	n := m.rows
	work := m.Clone()
	result, _ := Identity(n)

	for x := range n {
		if math.Abs(work.at(x, x)) < Epsilon {
			pivot := -1
			for y := x + 1; y < n; y++ {
				if math.Abs(work.at(y, x)) >= Epsilon {
					pivot = y
					break
				}
			}
			if pivot == -1 {
				return nil, fmt.Errorf("LeftInverse: no pivot in column %d: %w", x, ErrSingular)
			}
			_ = work.SwapRows(x, pivot)
			_ = result.SwapRows(x, pivot)
		}

		scale := 1 / work.at(x, x)
		_ = work.ScaleRow(x, scale)
		_ = result.ScaleRow(x, scale)

		for y := range n {
			if y == x {
				continue
			}
			factor := -work.at(y, x)
			_ = work.AddRows(y, x, factor)
			_ = result.AddRows(y, x, factor)
		}
	}

	return result, nil
}
