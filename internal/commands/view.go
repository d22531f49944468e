// internal/commands/view.go
package arenaboard

import (
	"github.com/mwiater/arenaboard/internal/tui"
	"github.com/spf13/cobra"
)

// viewCmd implements 'view', the interactive leaderboard viewer.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive leaderboard viewer",
	Long:  `The 'view' command opens a full-screen viewer with one tab per competition. Move the cursor with the arrow keys and press enter on a cell to read the model's solutions for that problem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.StartGUI(cmd.Context(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
