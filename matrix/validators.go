// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep the ranking stages minimal by delegating nil/shape/finite checks here.
//  - Wrap sentinels with the validator tag so call sites see where a check failed.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Skew-symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → Values).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	// A typed nil *Dense hidden in the interface is still nil for our purposes.
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors to avoid subtle bugs in column-wise routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite ensures every entry of m is finite.
//
// Errors: ErrNilMatrix, or ErrNaNInf wrapped with the first offending coordinates.
// Complexity: O(r*c), early exit on the first violation.
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	// Dense fast-path.
	if d, ok := m.(*Dense); ok {
		var bad error
		d.Do(func(i, j int, v float64) bool {
			if isNonFinite(v) {
				bad = validatorErrorf("ValidateFinite", denseErrorf(ctxAt, i, j, ErrNaNInf))
				return false
			}
			return true
		})
		return bad
	}

	r, c := m.Rows(), m.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if isNonFinite(v) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateSkewSymmetric checks the signed-adjacency invariant:
// a[i,j] == -a[j,i] for every pair and a[i,i] == 0, both within eps.
//
// Inputs: square matrix; opts may carry WithEpsilon.
// Errors: ErrNilMatrix/ErrDimensionMismatch on structural issues,
// ErrAsymmetry (wrapped with the first offending pair) on violation.
// Complexity: O(n²) where n = Rows(A). Space: O(1).
func ValidateSkewSymmetric(m Matrix, opts ...Option) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	eps := gatherOptions(opts...).eps

	n := m.Rows()
	var (
		i, j     int     // loop counters
		aij, aji float64 // mirrored pair
	)
	for i = 0; i < n; i++ { // fixed row loop
		aij, _ = m.At(i, i) // At is O(1); errors are not expected after shape validation
		if math.Abs(aij) > eps {
			return validatorErrorf("ValidateSkewSymmetric", fmt.Errorf("diagonal (%d,%d)=%g: %w", i, i, aij, ErrAsymmetry))
		}
		for j = i + 1; j < n; j++ { // scan only upper triangle
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij+aji) > eps {
				return validatorErrorf("ValidateSkewSymmetric",
					fmt.Errorf("(%d,%d)=%g vs (%d,%d)=%g: %w", i, j, aij, j, i, aji, ErrAsymmetry))
			}
		}
	}

	return nil
}
