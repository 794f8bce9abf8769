// Package matrix provides the dense matrix used by the simplex engine.
//
// Matrix is a row-major rectangular container of float64 values. Every
// exported accessor is bounds checked and reports failures through the
// sentinel errors in errors.go, so callers match them with errors.Is.
//
// Elementary row operations (SwapRows, AddRows, ScaleRow) mutate a single
// row in O(cols). The elementary matrices built by RowSwapMatrix,
// RowAddMatrix and RowScaleMatrix define the same operations as left
// multiplications and are kept as a reference.
//
// LeftInverse inverts a square matrix by Gauss-Jordan elimination with the
// fixed tolerance Epsilon.
package matrix
