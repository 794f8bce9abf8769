package matrix

import "fmt"

// The builders below return the elementary matrices whose left product
// performs the matching row operation. SwapRows, AddRows and ScaleRow do the
// same work directly; these are the reference definition.

func checkElementary(size int, rows ...int) error {
	if size <= 0 {
		return fmt.Errorf("elementary matrix of size %d: %w", size, ErrInvalidSize)
	}
	for _, r := range rows {
		if r < 0 || r >= size {
			return fmt.Errorf("elementary matrix row %d of %d: %w", r, size, ErrIndexOutOfRange)
		}
	}
	return nil
}

// RowSwapMatrix returns the identity of the given size with rows r1 and r2 exchanged.
func RowSwapMatrix(r1, r2, size int) (*Matrix, error) {
	if err := checkElementary(size, r1, r2); err != nil {
		return nil, err
	}
	e, _ := Identity(size)
	e.set(r1, r1, 0)
	e.set(r2, r2, 0)
	e.set(r1, r2, 1)
	e.set(r2, r1, 1)
	return e, nil
}

// RowAddMatrix returns the identity with factor at (target, source), so that
// E·M adds factor times row source to row target.
func RowAddMatrix(target, source, size int, factor float64) (*Matrix, error) {
	if err := checkElementary(size, target, source); err != nil {
		return nil, err
	}
	e, _ := Identity(size)
	e.set(target, source, e.at(target, source)+factor)
	return e, nil
}

// RowScaleMatrix returns the identity with factor on the diagonal at row.
func RowScaleMatrix(row, size int, factor float64) (*Matrix, error) {
	if err := checkElementary(size, row); err != nil {
		return nil, err
	}
	e, _ := Identity(size)
	e.set(row, row, factor)
	return e, nil
}
