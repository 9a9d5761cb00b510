// SPDX-License-Identifier: MIT
package games

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lossrank/matrix"
)

// ErrEmptyRoster is returned when a matrix is requested for zero teams.
var ErrEmptyRoster = errors.New("games: empty roster")

// ErrDuplicateTeam is returned when a roster names the same team twice.
var ErrDuplicateTeam = errors.New("games: duplicate team")

// Game is one result as published by the feed. Scores are pointers because
// scheduled or cancelled games come through with null points.
type Game struct {
	ID         int64    `json:"id,omitempty"`
	Season     int      `json:"season,omitempty"`
	Week       int      `json:"week,omitempty"`
	HomeTeam   string   `json:"home_team"`
	AwayTeam   string   `json:"away_team"`
	HomePoints *float64 `json:"home_points"`
	AwayPoints *float64 `json:"away_points"`
}

// Spread returns home points minus away points. ok is false when either
// score is missing.
func (g Game) Spread() (spread float64, ok bool) {
	if g.HomePoints == nil || g.AwayPoints == nil {
		return 0, false
	}
	return *g.HomePoints - *g.AwayPoints, true
}

// Stats counts how BuildMatrix treated each record.
type Stats struct {
	Games        int // records seen
	Used         int // records written into the matrix
	UnknownTeam  int // home or away team not on the roster
	MissingScore int // null home or away points
	SelfPlay     int // home and away are the same team
	Replaced     int // a later game overwrote an earlier pairing
}

// Skipped is the number of records that did not reach the matrix.
func (s Stats) Skipped() int {
	return s.UnknownTeam + s.MissingScore + s.SelfPlay
}

// Teams returns the sorted, de-duplicated home teams of games.
// Teams that only ever played away are left out, which keeps lower-division
// visitors off an FBS roster.
func Teams(games []Game) []string {
	seen := make(map[string]struct{}, len(games)/4)
	for _, g := range games {
		name := strings.TrimSpace(g.HomeTeam)
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// BuildMatrix returns the len(teams)×len(teams) spread matrix for games.
//
// For each usable game, M(h, a) = spread and M(a, h) = −spread, where h and a
// are the roster positions of the home and away team. When the same pair
// meets twice the later record wins and Stats.Replaced is incremented.
// Only an empty or duplicated roster is an error.
func BuildMatrix(teams []string, games []Game) (*matrix.Dense, Stats, error) {
	var st Stats
	if len(teams) == 0 {
		return nil, st, ErrEmptyRoster
	}
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		if j, dup := index[t]; dup {
			return nil, st, errors.Wrapf(ErrDuplicateTeam, "%q at rows %d and %d", t, j, i)
		}
		index[t] = i
	}

	m, err := matrix.NewDense(len(teams), len(teams))
	if err != nil {
		return nil, st, errors.Wrap(err, "games: allocate matrix")
	}

	met := make(map[[2]int]struct{}, len(games))
	for _, g := range games {
		st.Games++
		h, okH := index[strings.TrimSpace(g.HomeTeam)]
		a, okA := index[strings.TrimSpace(g.AwayTeam)]
		if !okH || !okA {
			st.UnknownTeam++
			continue
		}
		if h == a {
			st.SelfPlay++
			continue
		}
		spread, ok := g.Spread()
		if !ok {
			st.MissingScore++
			continue
		}

		pair := [2]int{min(h, a), max(h, a)}
		if _, again := met[pair]; again {
			st.Replaced++
		}
		met[pair] = struct{}{}
		if err = m.Set(h, a, spread); err != nil {
			return nil, st, errors.Wrapf(err, "games: %s vs %s", g.HomeTeam, g.AwayTeam)
		}
		if err = m.Set(a, h, -spread); err != nil {
			return nil, st, errors.Wrapf(err, "games: %s vs %s", g.AwayTeam, g.HomeTeam)
		}
		st.Used++
	}

	return m, st, nil
}
