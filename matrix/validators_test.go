// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	identity := func(n int) matrix.Matrix {
		m, err := matrix.NewDense(n, n)
		require.NoError(t, err)
		return m
	}
	var typedNil *matrix.Dense

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"typed nil", typedNil, matrix.ErrNilMatrix},
		{"1x1", identity(1), nil},
		{"3x3", identity(3), nil},
		{"2x3", func() matrix.Matrix { m, _ := matrix.NewDense(2, 3); return m }(), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateFinite rejects NaN/Inf that slipped in under a relaxed policy.
func TestValidateFinite(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseWith(2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(m)) // all zeros are finite

	require.NoError(t, m.Set(1, 0, math.Inf(-1)))              // allowed by relaxed policy
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf) // but not by the validator
	require.ErrorIs(t, matrix.ValidateFinite(nil), matrix.ErrNilMatrix)
}

// TestValidateSkewSymmetric covers the mirrored-margin invariant.
func TestValidateSkewSymmetric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]float64
		opts []matrix.Option
		want error
	}{
		{"empty schedule", [][]float64{{0, 0}, {0, 0}}, nil, nil},
		{"mirrored margins", [][]float64{{0, 10, -7}, {-10, 0, 3}, {7, -3, 0}}, nil, nil},
		{"broken mirror", [][]float64{{0, 10}, {-9, 0}}, nil, matrix.ErrAsymmetry},
		{"non-zero diagonal", [][]float64{{1, 0}, {0, 0}}, nil, matrix.ErrAsymmetry},
		{"within eps", [][]float64{{0, 10}, {-9.95, 0}}, []matrix.Option{matrix.WithEpsilon(0.1)}, nil},
		{"non-square", [][]float64{{0, 1, 2}, {-1, 0, 3}}, nil, matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDenseFromRows(tc.rows)
			require.NoError(t, err)

			err = matrix.ValidateSkewSymmetric(m, tc.opts...)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestWithEpsilonPanics documents that nonsensical option values are programmer errors.
func TestWithEpsilonPanics(t *testing.T) {
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.NotPanics(t, func() { matrix.WithEpsilon(0) })
}
