// Package main is the teamrank CLI.
//
// Usage:
//
//	teamrank fetch --year 2019 --out matrix.txt --teams teams.txt
//	teamrank rank --matrix matrix.txt --teams teams.txt --transform capped
//	teamrank compare --matrix matrix.txt --teams teams.txt
//	teamrank history
package main

import (
	"os"

	"github.com/katalvlaran/lossrank/cmd/teamrank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
