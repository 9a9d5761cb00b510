// Package matrix offers the dense numeric storage used by the ranking pipeline.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe At/Set accessors that return
//     sentinel errors instead of panicking.
//   - Column helpers (ColumnSums, ScaleColumns) used to turn loss matrices into
//     column-stochastic transition matrices.
//   - Validators (ValidateSquare, ValidateFinite, ValidateSkewSymmetric) that keep
//     shape and numeric checks in one place.
//   - A plain-text codec (ReadCSV, WriteCSV) for exchanging a signed adjacency
//     matrix as comma-separated rows without a header.
//
// Matrices here are small (one row per team, 100–150 rows for a season), so
// O(N²) memory and O(N²) scans are the norm.
package matrix
