// internal/commands/export.go
package arenaboard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/report"
	"github.com/mwiater/arenaboard/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportHTML string
	exportJSON string
)

// exportCmd implements 'export', which writes every competition's tables to disk.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all leaderboards as HTML and/or JSON",
	Long:  `The 'export' command renders every competition's leaderboard, plus token and cost stats where available, into a standalone HTML page (--html) and/or a JSON document (--json).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportHTML == "" && exportJSON == "" {
			return errors.New("nothing to export: set --html and/or --json")
		}
		d, cfg, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		rep, err := buildReport(d, cfg.Note)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportHTML != "" {
			html, err := report.Generate(rep)
			if err != nil {
				return err
			}
			if err := util.WriteFile(exportHTML, []byte(html)); err != nil {
				return fmt.Errorf("write %s: %w", exportHTML, err)
			}
			fmt.Fprintln(out, successfulResult("Wrote HTML report to "+exportHTML))
		}
		if exportJSON != "" {
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if err := util.WriteFile(exportJSON, data); err != nil {
				return fmt.Errorf("write %s: %w", exportJSON, err)
			}
			fmt.Fprintln(out, successfulResult("Wrote JSON report to "+exportJSON))
		}
		return nil
	},
}

// buildReport assembles one section per competition in display order.
func buildReport(d leaderboard.Dataset, note func(string) string) (report.Report, error) {
	rep := report.Report{Title: "arenaboard: Leaderboard Export"}
	for _, id := range d.Competitions() {
		primary, err := leaderboard.BuildCompetitionTable(d, id)
		if err != nil {
			return report.Report{}, err
		}
		section := report.Section{Primary: primary, Note: note(id)}
		if _, ok := d.Secondary[id]; ok && !d.IsAggregate(id) {
			secondary, err := leaderboard.BuildSecondaryTable(d, id)
			if err != nil {
				return report.Report{}, err
			}
			section.Secondary = &secondary
		}
		rep.Sections = append(rep.Sections, section)
	}
	return rep, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportHTML, "html", "", "write an HTML report to this path")
	exportCmd.Flags().StringVar(&exportJSON, "json", "", "write a JSON report to this path")
	rootCmd.AddCommand(exportCmd)
}
