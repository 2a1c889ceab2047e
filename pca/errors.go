package pca

import "errors"

var (
	// ErrInvalidInput indicates an empty sample buffer or invalid
	// decomposition parameters.
	ErrInvalidInput = errors.New("pca: invalid input")

	// ErrDecomposition indicates that the singular value decomposition
	// failed to converge or the input was degenerate.
	ErrDecomposition = errors.New("pca: decomposition failed")
)
