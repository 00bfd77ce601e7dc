package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-versus-stats/internal/report"
)

var summaryPlayer string

// summaryCmd is the cobra command for the compact headline comparison.
var summaryCmd = &cobra.Command{
	Use:   "summary <replay>...",
	Short: "Compact comparison of headline rates",
	Long: `Folds every replay and prints one row per player with speed, attack,
surge rate, deaths, kills and garbage received.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryPlayer, "player", "", "focus player id")
}

func runSummary(cmd *cobra.Command, args []string) error {
	all, err := analyze(args)
	if err != nil {
		return err
	}
	rounds := 0
	for _, a := range all {
		rounds += len(a.result.Rounds)
	}
	players, order := merged(all)

	fmt.Fprintf(os.Stdout, "\n=== Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Replays  : %d\n", len(all))
	fmt.Fprintf(os.Stdout, "  Rounds   : %d\n", rounds)
	fmt.Fprintf(os.Stdout, "  Players  : %d\n\n", len(order))

	report.PrintSummaryTable(os.Stdout, report.Players(order, players), summaryPlayer)
	return nil
}
