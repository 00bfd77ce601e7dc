package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/report"
)

var (
	roundsPlayer   string
	roundsDesynced bool
	roundsDead     bool
)

// roundsCmd is the cobra command for the per-round breakdown of one replay.
var roundsCmd = &cobra.Command{
	Use:   "rounds <replay>",
	Short: "Per-round breakdown of one replay",
	Long: `Lists every player in every round with survival, death cause, desync
flag and unreconciled garbage counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRounds,
}

func init() {
	roundsCmd.Flags().StringVar(&roundsPlayer, "player", "", "only show rounds of this player id")
	roundsCmd.Flags().BoolVar(&roundsDesynced, "desynced", false, "only show desynced player-rounds")
	roundsCmd.Flags().BoolVar(&roundsDead, "dead", false, "only show player-rounds that ended in a death")
}

// filterRounds applies --player, --desynced and --dead, dropping rounds left
// empty.
func filterRounds(rounds [][]model.PlayerRoundResult, player string, desynced, dead bool) [][]model.PlayerRoundResult {
	var out [][]model.PlayerRoundResult
	for _, round := range rounds {
		var keep []model.PlayerRoundResult
		for _, pr := range round {
			if player != "" && pr.PlayerID != player {
				continue
			}
			if desynced && !pr.Desynced {
				continue
			}
			if dead && pr.Alive {
				continue
			}
			keep = append(keep, pr)
		}
		if len(keep) > 0 {
			out = append(out, keep)
		}
	}
	return out
}

func runRounds(cmd *cobra.Command, args []string) error {
	all, err := analyze(args)
	if err != nil {
		return err
	}
	res := all[0].result
	if roundsPlayer != "" {
		_, names := all[0].replay.Players()
		if _, ok := names[roundsPlayer]; !ok {
			return fmt.Errorf("player %s not found in %s", roundsPlayer, all[0].path)
		}
	}
	report.PrintMatchSummary(os.Stdout, res)

	rounds := filterRounds(res.Rounds, roundsPlayer, roundsDesynced, roundsDead)
	if len(rounds) == 0 {
		fmt.Fprintln(os.Stdout, "No rounds match the filters.")
		return nil
	}
	report.PrintRoundsTable(os.Stdout, rounds, roundsPlayer)
	return nil
}
