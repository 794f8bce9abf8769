package simplex

import "errors"

var (
	// ErrInvalidBasis is returned when a caller supplied basis does not fit the constraints.
	ErrInvalidBasis = errors.New("simplex: invalid basis")

	// ErrInvalidBasisState marks a broken internal invariant, such as removing
	// an index that is not in the basis. It indicates a defect, not bad input.
	ErrInvalidBasisState = errors.New("simplex: invalid basis state")

	// ErrCertificate is returned by Verify when a certificate does not prove its result.
	ErrCertificate = errors.New("simplex: certificate check failed")
)
