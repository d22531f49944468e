// internal/commands/table.go
package arenaboard

import (
	"fmt"

	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/render"
	"github.com/spf13/cobra"
)

var tableSecondary bool

// tableOutput is the JSON shape of 'table'.
type tableOutput struct {
	Primary   leaderboard.Table  `json:"primary"`
	Secondary *leaderboard.Table `json:"secondary,omitempty"`
}

// tableCmd implements 'table', which prints one competition's leaderboard.
var tableCmd = &cobra.Command{
	Use:   "table [competition]",
	Short: "Print a competition leaderboard",
	Long:  `The 'table' command prints the ranked leaderboard of a competition. Without an argument it prints the competition the viewer would open first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		competition := d.DefaultCompetition(cfg.DefaultCompetition)
		if len(args) == 1 {
			competition = args[0]
		}
		primary, err := leaderboard.BuildCompetitionTable(d, competition)
		if err != nil {
			return err
		}

		var secondary *leaderboard.Table
		if tableSecondary {
			if d.IsAggregate(competition) {
				return fmt.Errorf("competition %q: token and cost stats are not available in the aggregate view", competition)
			}
			s, err := leaderboard.BuildSecondaryTable(d, competition)
			if err != nil {
				return err
			}
			secondary = &s
		}

		out := cmd.OutOrStdout()
		if cfg.JSONMode {
			return writeJSON(out, tableOutput{Primary: primary, Secondary: secondary})
		}

		opts := render.Options{NoColor: cfg.NoColor, Note: cfg.Note(competition)}
		fmt.Fprintln(out, render.CompetitionTable(primary, opts))
		if secondary != nil {
			fmt.Fprintln(out)
			fmt.Fprintln(out, render.SecondaryTable(*secondary, opts))
		}
		return nil
	},
}

func init() {
	tableCmd.Flags().BoolVarP(&tableSecondary, "secondary", "s", false, "also print token and cost stats")
	rootCmd.AddCommand(tableCmd)
}
