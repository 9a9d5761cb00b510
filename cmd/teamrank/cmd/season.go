package cmd

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lossrank/games"
	"github.com/katalvlaran/lossrank/matrix"
)

// Default file names, matching what fetch writes.
const (
	defaultMatrixFile = "matrix.txt"
	defaultTeamsFile  = "teams.txt"
)

// loadSeason reads the roster and matrix files and checks they agree.
func loadSeason(matrixPath, teamsPath string) ([]string, *matrix.Dense, error) {
	tf, err := os.Open(teamsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open teams: %w", err)
	}
	defer tf.Close()
	teams, err := games.ReadTeams(tf)
	if err != nil {
		return nil, nil, fmt.Errorf("read teams %s: %w", teamsPath, err)
	}

	mf, err := os.Open(matrixPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open matrix: %w", err)
	}
	defer mf.Close()
	adj, err := matrix.ReadCSV(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("read matrix %s: %w", matrixPath, err)
	}

	if adj.Rows() != len(teams) {
		return nil, nil, fmt.Errorf("%s has %d rows but %s lists %d teams",
			matrixPath, adj.Rows(), teamsPath, len(teams))
	}

	return teams, adj, nil
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
