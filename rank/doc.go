// Package rank computes a loss-graph PageRank over a fixed set of teams.
//
// Overview:
//
//   - Every loss becomes an edge from the loser to the winner; its weight comes
//     from a weight.Transform applied to the margin (or 1 when margin of victory
//     is disabled).
//   - BuildTransition turns the signed adjacency matrix into a column-stochastic
//     transition matrix M, where M(i, j) is the share of j's loss mass that
//     flows to i. Teams without recorded losses are sinks: their column is zero.
//   - Solve runs the damped power iteration. With probability p the walker
//     follows a loss edge, with probability 1−p it teleports uniformly, and from
//     a sink it always teleports:
//
//     r[i] = p·Σ_j M(i,j)·r0[j] + p·Σ_{sink j} r0[j]/N + (1−p)·Σ_j r0[j]/N
//
//     It stops once Σ|r − r0| ≤ tolerance and returns r scaled to sum to 1.
//   - Engine ties the two together for a Config, pairs the vector with team
//     names in matrix order, and can produce one ranking per Config for
//     side-by-side comparison.
//
// The caller's matrix is never modified: every computation works on a clone.
//
// Complexity:
//
//   - BuildTransition: O(N²) time and space.
//   - Solve:           O(N²) per iteration; the iteration count is governed by
//     the damping factor (the error contracts by roughly p per step).
//
// Errors (sentinel):
//
//   - ErrInvalidInput     – nil or non-square matrix, non-finite entries,
//     team list not matching the matrix, invalid margins.
//   - ErrInvalidParameter – transform parameters leaving the curve undefined.
//   - ErrNonConvergence   – the iteration cap was reached above tolerance.
package rank
