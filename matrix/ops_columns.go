// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column kernels the ranking pipeline is built on: per-column
//     sums (loss mass) and per-column scaling (stochastic normalisation).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output slice/Dense; O(r*c) time.

package matrix

import "fmt"

// matrixErrorf wraps an underlying error with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("matrix.%s: %w", tag, err)
}

// ColumnSums returns out[j] = Σ_i X[i,j].
// Time: O(r*c). Space: O(c). Deterministic i→j loops, so repeated calls on the
// same data produce bit-identical sums.
//
// Errors:
//   - ErrNilMatrix when X is nil.
func ColumnSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ColumnSums", err)
	}
	r, c := X.Rows(), X.Cols()
	out := make([]float64, c)

	// Dense fast-path.
	if d, ok := X.(*Dense); ok {
		var i, j, base int
		for i = 0; i < r; i++ {
			base = i * c // row base offset
			for j = 0; j < c; j++ {
				out[j] += d.data[base+j]
			}
		}
		return out, nil
	}

	// Generic fallback.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, matrixErrorf("ColumnSums", err)
			}
			out[j] += v
		}
	}

	return out, nil
}

// ScaleColumns computes out[i,j] = X[i,j] * scale[j] into a new Dense.
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// Errors:
//   - ErrNilMatrix when X is nil.
//   - ErrDimensionMismatch when len(scale) != X.Cols().
//   - ErrNaNInf when a product is not finite (policy of the output Dense).
//
// Notes:
//   - Use 1/mass as the factor to normalise a column, and 0 to leave a
//     degenerate (all-zero) column untouched.
func ScaleColumns(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ScaleColumns", err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, c); err != nil {
		return nil, matrixErrorf("ScaleColumns", err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("ScaleColumns", err)
	}

	// Dense fast-path.
	if d, ok := X.(*Dense); ok {
		var i, j, base int
		var v float64
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				v = d.data[base+j] * scale[j]
				if isNonFinite(v) {
					return nil, matrixErrorf("ScaleColumns", denseErrorf(ctxSet, i, j, ErrNaNInf))
				}
				out.data[base+j] = v
			}
		}
		return out, nil
	}

	// Generic fallback goes through Set so the policy is enforced there.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("ScaleColumns", e)
			}
			if e = out.Set(i, j, v*scale[j]); e != nil {
				return nil, matrixErrorf("ScaleColumns", e)
			}
		}
	}

	return out, nil
}
