// Package games turns a season of game results into a signed adjacency matrix.
//
// A Client pulls one season of results from a games feed (by default the
// collegefootballdata.com API). Teams derives the roster from those results,
// and BuildMatrix writes each game's point spread into a square matrix:
// row home, column away holds home points minus away points, and the mirrored
// cell holds its negation. Records naming a team outside the roster, or
// lacking a score, are skipped and counted in Stats rather than failing the
// build.
//
// The roster file written by WriteTeams lists one team per line in matrix row
// order; ReadTeams reads it back.
package games
