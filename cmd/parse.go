package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-versus-stats/internal/report"
)

var parsePlayer string

var parseCmd = &cobra.Command{
	Use:   "parse <replay>...",
	Short: "Replay one or more matches and print per-player statistics",
	Long: `Simulates every round of each replay and prints per-player tables.
When several replays are given, statistics are folded across all of them.
Rounds in which a player desynced are left out of that player's totals.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parsePlayer, "player", "", "focus player id")
}

func runParse(cmd *cobra.Command, args []string) error {
	all, err := analyze(args)
	if err != nil {
		return err
	}
	for _, a := range all {
		fmt.Fprintf(os.Stdout, "%s", a.path)
		report.PrintMatchSummary(os.Stdout, a.result)
	}

	players, order := merged(all)
	rows := report.Players(order, players)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "No player has a complete round.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "--- Overview ---\n\n")
	report.PrintOverviewTable(os.Stdout, rows, parsePlayer)
	fmt.Fprintf(os.Stdout, "\n--- Opener / Midgame ---\n\n")
	report.PrintPhaseTable(os.Stdout, rows, parsePlayer)
	fmt.Fprintf(os.Stdout, "\n--- Clears ---\n\n")
	report.PrintClearTable(os.Stdout, rows, parsePlayer)
	fmt.Fprintf(os.Stdout, "\n--- Garbage ---\n\n")
	report.PrintGarbageTable(os.Stdout, rows, parsePlayer)
	fmt.Fprintf(os.Stdout, "\n--- Surge ---\n\n")
	report.PrintSurgeTable(os.Stdout, rows, parsePlayer)
	fmt.Fprintf(os.Stdout, "\n--- Deaths / Kills ---\n\n")
	report.PrintDeathTable(os.Stdout, rows, parsePlayer)
	return nil
}
