// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Exchange a square matrix as plain text: one row per line, cells separated by
//     commas, no header. This is the on-disk format of a season's signed
//     adjacency matrix.
//
// Round-trip guarantee:
//   - WriteCSV formats with strconv 'g' and precision -1 (shortest representation
//     that parses back to the same float64), so ReadCSV(WriteCSV(m)) == m bit-for-bit.

package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const csvComma = ','

// ReadCSV parses N lines of N comma-separated reals into an N×N Dense.
// Implementation:
//   - Stage 1: read every record (blank lines are skipped by encoding/csv).
//   - Stage 2: require a rectangular, square table (ErrBadShape otherwise).
//   - Stage 3: parse cells (surrounding spaces are trimmed) and store through Set
//     so the numeric policy from opts applies.
//
// Errors:
//   - ErrInvalidDimensions for empty input.
//   - ErrBadShape for ragged or non-square tables.
//   - a parse error naming row and column for unparseable cells.
//   - ErrNaNInf for non-finite cells under the default policy.
//
// Complexity:
//   - Time O(N²), Space O(N²).
func ReadCSV(r io.Reader, opts ...Option) (*Dense, error) {
	cr := csv.NewReader(r)
	cr.Comma = csvComma
	cr.FieldsPerRecord = -1 // ragged rows are reported as ErrBadShape below
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matrix.ReadCSV: %w", err)
	}
	n := len(records)
	if n == 0 {
		return nil, matrixErrorf("ReadCSV", ErrInvalidDimensions)
	}

	m, err := NewDenseWith(n, n, opts...)
	if err != nil {
		return nil, matrixErrorf("ReadCSV", err)
	}

	var (
		i, j int
		v    float64
	)
	for i = range records {
		if len(records[i]) != n {
			return nil, matrixErrorf("ReadCSV", fmt.Errorf("row %d has %d cells, want %d: %w", i, len(records[i]), n, ErrBadShape))
		}
		for j = range records[i] {
			v, err = strconv.ParseFloat(strings.TrimSpace(records[i][j]), 64)
			if err != nil {
				var numErr *strconv.NumError
				if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
					return nil, matrixErrorf("ReadCSV", denseErrorf(ctxSet, i, j, ErrNaNInf))
				}
				return nil, matrixErrorf("ReadCSV", fmt.Errorf("cell (%d,%d) %q: %w", i, j, records[i][j], err))
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, matrixErrorf("ReadCSV", err)
			}
		}
	}

	return m, nil
}

// WriteCSV serializes m as comma-separated rows, one row per line, no header.
// Errors:
//   - ErrNilMatrix when m is nil; any write error from w.
//
// Complexity:
//   - Time O(r*c), Space O(c) per row.
func WriteCSV(w io.Writer, m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf("WriteCSV", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = csvComma

	r, c := m.Rows(), m.Cols()
	row := make([]string, c) // reused across rows
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return matrixErrorf("WriteCSV", err)
			}
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return matrixErrorf("WriteCSV", err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return matrixErrorf("WriteCSV", err)
	}

	return nil
}
