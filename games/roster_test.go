package games_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lossrank/games"
)

func TestRosterRoundTrip(t *testing.T) {
	teams := []string{"Air Force", "Alabama", "Texas A&M"}

	var buf bytes.Buffer
	require.NoError(t, games.WriteTeams(&buf, teams))
	require.Equal(t, "Air Force\nAlabama\nTexas A&M\n", buf.String())

	got, err := games.ReadTeams(&buf)
	require.NoError(t, err)
	require.Equal(t, teams, got)
}

func TestReadTeams(t *testing.T) {
	got, err := games.ReadTeams(strings.NewReader("\n  Army \n\nNavy\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Army", "Navy"}, got)

	_, err = games.ReadTeams(strings.NewReader("Army\nNavy\nArmy\n"))
	require.ErrorIs(t, err, games.ErrDuplicateTeam)
	require.ErrorContains(t, err, "lines 1 and 3")

	_, err = games.ReadTeams(strings.NewReader("\n\n"))
	require.ErrorIs(t, err, games.ErrEmptyRoster)
}

func TestWriteTeams_RejectsMultiline(t *testing.T) {
	require.Error(t, games.WriteTeams(&bytes.Buffer{}, []string{"A\nB"}))
}
