// Package leaderboard orders ranking scores and renders them as tables or JSON.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/lossrank/rank"
)

// ErrUnknownFormat is returned by ParseFormat and Write for an unsupported format.
var ErrUnknownFormat = errors.New("leaderboard: unknown format")

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Entry is one line of a leaderboard.
type Entry struct {
	Place int     `json:"place"`
	Team  string  `json:"team"`
	Score float64 `json:"score"`
}

// Build sorts scores by value, highest first, breaking ties by team name, and
// numbers the result 1..N. The input is not modified.
func Build(scores []rank.Score) []Entry {
	sorted := make([]rank.Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Team < sorted[j].Team
	})

	out := make([]Entry, len(sorted))
	for i, s := range sorted {
		out[i] = Entry{Place: i + 1, Team: s.Team, Score: s.Value}
	}
	return out
}

// Top returns at most n entries; n <= 0 returns all of them.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// Write renders entries in the given format.
func Write(w io.Writer, entries []Entry, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "#\tTEAM\tSCORE\t")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%.6f\t\n", e.Place, e.Team, e.Score)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// comparisonRow is the JSON shape of one team across several rankings.
type comparisonRow struct {
	Team   string             `json:"team"`
	Places map[string]int     `json:"places"`
	Scores map[string]float64 `json:"scores"`
}

// WriteComparison renders several rankings of the same teams side by side,
// one column per ranking, rows ordered by the first ranking's places.
// Every ranking must cover the same teams under a distinct label.
func WriteComparison(w io.Writer, rankings []rank.Ranking, f Format) error {
	if len(rankings) == 0 {
		return nil
	}

	boards := make([]map[string]Entry, len(rankings))
	labels := make(map[string]int, len(rankings))
	for i, rk := range rankings {
		if j, dup := labels[rk.Label]; dup {
			return fmt.Errorf("leaderboard: rankings %d and %d share label %q", j, i, rk.Label)
		}
		labels[rk.Label] = i
		boards[i] = make(map[string]Entry, len(rk.Scores))
		for _, e := range Build(rk.Scores) {
			boards[i][e.Team] = e
		}
		if len(boards[i]) != len(boards[0]) {
			return fmt.Errorf("leaderboard: ranking %q has %d teams, %q has %d",
				rk.Label, len(boards[i]), rankings[0].Label, len(boards[0]))
		}
	}
	order := Build(rankings[0].Scores)
	for _, e := range order {
		for i, b := range boards {
			if _, ok := b[e.Team]; !ok {
				return fmt.Errorf("leaderboard: team %q missing from ranking %q", e.Team, rankings[i].Label)
			}
		}
	}

	switch f {
	case FormatJSON:
		rows := make([]comparisonRow, len(order))
		for r, e := range order {
			row := comparisonRow{
				Team:   e.Team,
				Places: make(map[string]int, len(rankings)),
				Scores: make(map[string]float64, len(rankings)),
			}
			for i, rk := range rankings {
				row.Places[rk.Label] = boards[i][e.Team].Place
				row.Scores[rk.Label] = boards[i][e.Team].Score
			}
			rows[r] = row
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "TEAM\t")
		for _, rk := range rankings {
			fmt.Fprintf(tw, "%s\t", rk.Label)
		}
		fmt.Fprintln(tw)
		for _, e := range order {
			fmt.Fprintf(tw, "%s\t", e.Team)
			for _, b := range boards {
				fmt.Fprintf(tw, "%d (%.4f)\t", b[e.Team].Place, b[e.Team].Score)
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
