package games

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ReadTeams reads a roster: one team per line, blank lines ignored.
// Duplicate names are rejected because they would make matrix rows ambiguous.
func ReadTeams(r io.Reader) ([]string, error) {
	var (
		teams []string
		seen  = make(map[string]int)
		line  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		if first, dup := seen[name]; dup {
			return nil, errors.Wrapf(ErrDuplicateTeam, "%q on lines %d and %d", name, first, line)
		}
		seen[name] = line
		teams = append(teams, name)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "games: read roster")
	}
	if len(teams) == 0 {
		return nil, ErrEmptyRoster
	}

	return teams, nil
}

// WriteTeams writes teams one per line in the given order.
func WriteTeams(w io.Writer, teams []string) error {
	bw := bufio.NewWriter(w)
	for _, t := range teams {
		if strings.ContainsAny(t, "\r\n") {
			return errors.Errorf("games: team name %q spans lines", t)
		}
		if _, err := bw.WriteString(t + "\n"); err != nil {
			return errors.Wrap(err, "games: write roster")
		}
	}
	return errors.Wrap(bw.Flush(), "games: write roster")
}
