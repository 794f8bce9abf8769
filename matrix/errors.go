package matrix

import "errors"

var (
	// ErrInvalidSize is returned when a requested shape has a negative dimension.
	ErrInvalidSize = errors.New("matrix: invalid size")

	// ErrIndexOutOfRange is returned by accessors when a row or column is outside the matrix.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrNotRowVector is returned when a 1×n matrix is required.
	ErrNotRowVector = errors.New("matrix: not a row vector")

	// ErrSingular is returned by LeftInverse when no usable pivot exists.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrParse is returned by the text reader on missing or malformed entries.
	ErrParse = errors.New("matrix: parse error")
)
