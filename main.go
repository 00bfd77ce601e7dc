// Package main is the entry point for the vsstats CLI tool, which replays
// recorded versus matches and computes per-player statistics.
package main

import "github.com/pable/go-versus-stats/cmd"

func main() {
	cmd.Execute()
}
