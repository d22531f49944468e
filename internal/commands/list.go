// internal/commands/list.go
package arenaboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mwiater/arenaboard/internal/util"
	"github.com/spf13/cobra"
)

// listCmd groups the 'list' subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list competitions and commands.`,
}

// competitionSummary is one line of 'list competitions'.
type competitionSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Index     int      `json:"index"`
	Problems  int      `json:"problems"`
	Models    int      `json:"models"`
	Judged    bool     `json:"judged"`
	Aggregate bool     `json:"aggregate"`
	Flagged   []string `json:"flagged,omitempty"`
}

// listCompetitionsCmd implements 'list competitions'.
var listCompetitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "List competitions in display order",
	Long:  `The 'competitions' subcommand lists every competition served by the arena API in the order the viewer shows them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		var summaries []competitionSummary
		for _, id := range d.Competitions() {
			info := d.Info[id]
			models := 0
			if rows := d.Results[id]; len(rows) > 0 {
				models = len(rows[0].Models)
			}
			summaries = append(summaries, competitionSummary{
				ID:        id,
				Name:      info.DisplayName(id),
				Index:     info.Index,
				Problems:  info.NumProblems,
				Models:    models,
				Judged:    info.Judge,
				Aggregate: d.IsAggregate(id),
				Flagged:   d.Dates.FlaggedModels(id),
			})
		}

		if cfg.JSONMode {
			return writeJSON(cmd.OutOrStdout(), summaries)
		}
		printCompetitions(cmd.OutOrStdout(), summaries)
		return nil
	},
}

func printCompetitions(out io.Writer, summaries []competitionSummary) {
	idWidth, nameWidth := len("ID"), len("Name")
	for _, s := range summaries {
		idWidth = max(idWidth, runewidth.StringWidth(s.ID))
		nameWidth = max(nameWidth, runewidth.StringWidth(s.Name))
	}

	fmt.Fprintf(out, "%s  %s  %8s  %6s  %s\n", util.PadRight("ID", idWidth), util.PadRight("Name", nameWidth), "Problems", "Models", "Notes")
	for _, s := range summaries {
		var notes []string
		if s.Aggregate {
			notes = append(notes, "aggregate")
		}
		if s.Judged {
			notes = append(notes, "judged")
		}
		if len(s.Flagged) > 0 {
			notes = append(notes, warningResult(strconv.Itoa(len(s.Flagged))+" flagged"))
		}
		fmt.Fprintf(out, "%s  %s  %8d  %6d  %s\n",
			util.PadRight(s.ID, idWidth), util.PadRight(s.Name, nameWidth), s.Problems, s.Models, strings.Join(notes, ", "))
	}
}

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	Path        string
	Description string
}

// listCommandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var listCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		var filtered []commandInfo
		for _, data := range collectCommandData(rootCmd, "", "") {
			if strings.Contains(data.Path, "completion") || strings.Contains(data.Path, "help") {
				continue
			}
			filtered = append(filtered, data)
		}
		printCommands(cmd.OutOrStdout(), filtered)
	},
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	all := []commandInfo{{Path: indent + fullPath, Description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}

// printCommands prints the command tree in a two-column layout.
func printCommands(out io.Writer, commands []commandInfo) {
	width := 0
	for _, data := range commands {
		width = max(width, runewidth.StringWidth(data.Path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, data := range commands {
		fmt.Fprintf(out, "  %s  %s\n", util.PadRight(data.Path, width), data.Description)
	}
}

func init() {
	listCmd.AddCommand(listCompetitionsCmd)
	listCmd.AddCommand(listCommandsCmd)
	rootCmd.AddCommand(listCmd)
}
