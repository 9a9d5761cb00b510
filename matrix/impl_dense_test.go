package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/stretchr/testify/require"
)

// signed returns the 3-team spread matrix used across these tests:
// team 0 beat team 1 by 7, team 2 beat team 0 by 3.
func signed(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 7, -3},
		{-7, 0, 0},
		{3, 0, 0},
	})
	require.NoError(t, err)
	return m
}

func TestNewDense_Dimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := matrix.NewDense(dims[0], dims[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions, "dims %v", dims)
	}

	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, [2]int{3, 4}, [2]int{r, c})
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
}

func TestDense_Bounds(t *testing.T) {
	m := signed(t)
	for _, ij := range [][2]int{{-1, 0}, {0, 3}, {3, 0}, {0, -1}} {
		_, err := m.At(ij[0], ij[1])
		require.ErrorIs(t, err, matrix.ErrOutOfRange)
		require.ErrorIs(t, m.Set(ij[0], ij[1], 1), matrix.ErrOutOfRange)
	}

	require.NoError(t, m.Set(1, 2, 10))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 10.0, v)
}

func TestDense_SetRejectsNonFinite(t *testing.T) {
	m := signed(t)
	require.ErrorIs(t, m.Set(0, 1, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 1, math.Inf(-1)), matrix.ErrNaNInf)

	relaxed, err := matrix.NewDenseWith(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, relaxed.Set(0, 0, math.Inf(1)))

	// Options apply in order: the last policy wins.
	strict, err := matrix.NewDenseWith(1, 1, matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, strict.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestDense_CloneIsDeep(t *testing.T) {
	m := signed(t)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 1, 99))

	orig, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, orig)
	got, err := cp.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 99.0, got)
}

func TestDense_String(t *testing.T) {
	require.Equal(t, "[0, 7, -3]\n[-7, 0, 0]\n[3, 0, 0]\n", signed(t).String())
}

func TestNewDenseFromRows(t *testing.T) {
	v, err := signed(t).At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"Ragged", [][]float64{{1, 2}, {3}}, matrix.ErrBadShape},
		{"Empty", nil, matrix.ErrInvalidDimensions},
		{"NaN", [][]float64{{math.NaN()}}, matrix.ErrNaNInf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.NewDenseFromRows(tc.rows)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err = matrix.NewDenseFromRows([][]float64{{math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
}

func TestDense_ApplyAndDo(t *testing.T) {
	m := signed(t)

	// Discard wins, keep losses.
	err := m.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return 0
		}
		return v
	})
	require.NoError(t, err)
	require.Equal(t, "[0, 0, -3]\n[-7, 0, 0]\n[0, 0, 0]\n", m.String())

	var losses int
	m.Do(func(_, _ int, v float64) bool {
		if v < 0 {
			losses++
		}
		return true
	})
	require.Equal(t, 2, losses)

	visited := 0
	m.Do(func(_, _ int, _ float64) bool {
		visited++
		return visited < 2
	})
	require.Equal(t, 2, visited)

	err = m.Apply(func(_, _ int, _ float64) float64 { return math.NaN() })
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
