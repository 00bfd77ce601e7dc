package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-versus-stats/internal/aggregator"
	"github.com/pable/go-versus-stats/internal/model"
)

var (
	exportOut  string
	exportRaw  bool
	exportFlat bool
)

// exportPlayer is one player's block in the export file.
type exportPlayer struct {
	ID         string                `json:"id"`
	Username   string                `json:"username"`
	Stats      *model.GameStats      `json:"stats,omitempty"`
	Leaves     map[string]float64    `json:"leaves,omitempty"`
	Cumulative model.CumulativeStats `json:"cumulative"`
}

// exportFile is the top-level export schema.
type exportFile struct {
	Replays []exportReplay `json:"replays"`
	Players []exportPlayer `json:"players"`
}

type exportReplay struct {
	Path     string `json:"path"`
	Hash     string `json:"hash"`
	Rounds   int    `json:"rounds"`
	Desynced int    `json:"desyncedPlayerRounds"`
}

var exportCmd = &cobra.Command{
	Use:   "export <replay>...",
	Short: "Export per-player statistics as JSON",
	Long: `Replays every match and writes the derived cumulative statistics of each
player as JSON. With --raw the summed stat tree is included as well; with
--flat it is included as a flat map of dotted leaf paths.

Example:
  vsstats export --raw --out stats.json match1.ttrm match2.ttrm.gz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportRaw, "raw", false, "include the raw summed stat tree")
	exportCmd.Flags().BoolVar(&exportFlat, "flat", false, "include the raw stat tree as flat leaf paths")
}

func runExport(cmd *cobra.Command, args []string) error {
	all, err := analyze(args)
	if err != nil {
		return err
	}

	var out exportFile
	for _, a := range all {
		desynced := 0
		for _, round := range a.result.Rounds {
			for _, pr := range round {
				if pr.Desynced {
					desynced++
				}
			}
		}
		out.Replays = append(out.Replays, exportReplay{
			Path:     a.path,
			Hash:     a.result.Hash,
			Rounds:   len(a.result.Rounds),
			Desynced: desynced,
		})
	}

	players, order := merged(all)
	derived := aggregator.DeriveAll(players)
	for _, id := range order {
		p := players[id]
		if err := p.Stats.Validate(); err != nil {
			return fmt.Errorf("player %s: %w", id, err)
		}
		ep := exportPlayer{
			ID:         id,
			Username:   p.Username,
			Cumulative: derived[id].Stats,
		}
		if exportRaw {
			ep.Stats = &p.Stats
		}
		if exportFlat {
			ep.Leaves = p.Stats.Leaves()
		}
		out.Players = append(out.Players, ep)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d player(s) to %s\n", len(out.Players), exportOut)
	}
	return nil
}
