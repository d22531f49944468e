// internal/commands/show.go
package arenaboard

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showCmd groups the 'show' subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display configuration and competition details.`,
}

// showConfigCmd implements 'show config', which displays the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			APIBaseURL: viper.GetString("apiBaseURL"),
			Debug:      viper.GetBool("debug"),
			JSONMode:   viper.GetBool("jsonMode"),
			NoColor:    viper.GetBool("noColor"),
			LogFile:    viper.GetString("logFile"),
		}
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg, fallback)
		if cfg != nil && cfg.Debug {
			pp.ColoringEnabled = !cfg.NoColor
			pp.Fprintln(cmd.OutOrStdout(), *cfg)
		}
	},
}

// competitionDetail is the JSON shape of 'show competition'.
type competitionDetail struct {
	ID      string                      `json:"id"`
	Info    leaderboard.CompetitionInfo `json:"info"`
	Models  []string                    `json:"models"`
	Flagged []string                    `json:"flagged,omitempty"`
	Note    string                      `json:"note,omitempty"`
}

// showCompetitionCmd implements 'show competition <id>'.
var showCompetitionCmd = &cobra.Command{
	Use:   "competition <id>",
	Short: "Show competition metadata",
	Long:  `The 'competition' subcommand prints the metadata the arena API reports for one competition: problem names, difficulty ratings, medal thresholds and contamination flags.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		id := args[0]
		if err := requireCompetition(d, id); err != nil {
			return err
		}

		detail := competitionDetail{
			ID:      id,
			Info:    d.Info[id],
			Flagged: d.Dates.FlaggedModels(id),
			Note:    cfg.Note(id),
		}
		for _, m := range leaderboard.Transpose(d.Results[id]) {
			detail.Models = append(detail.Models, m.Model)
		}

		out := cmd.OutOrStdout()
		switch {
		case cfg.JSONMode:
			return writeJSON(out, detail)
		case cfg.Debug:
			pp.ColoringEnabled = !cfg.NoColor
			_, err := pp.Fprintln(out, detail)
			return err
		}

		info := detail.Info
		fmt.Fprintf(out, "Competition: %s (%s)\n", info.DisplayName(id), id)
		fmt.Fprintf(out, "  Index:            %d\n", info.Index)
		fmt.Fprintf(out, "  Problems:         %d\n", info.NumProblems)
		fmt.Fprintf(out, "  Judged:           %v\n", info.Judge)
		if len(info.MedalThresholds) >= 3 {
			fmt.Fprintf(out, "  Medal thresholds: gold %g, silver %g, bronze %g\n", info.MedalThresholds[0], info.MedalThresholds[1], info.MedalThresholds[2])
		}
		fmt.Fprintf(out, "  Models:           %s\n", strings.Join(detail.Models, ", "))
		if len(detail.Flagged) > 0 {
			fmt.Fprintf(out, "  Flagged:          %s\n", warningResult(strings.Join(detail.Flagged, ", ")))
		}
		if detail.Note != "" {
			fmt.Fprintf(out, "  Note:             %s\n", detail.Note)
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	showCmd.AddCommand(showCompetitionCmd)
	rootCmd.AddCommand(showCmd)
}
