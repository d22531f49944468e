// internal/commands/trace.go
package arenaboard

import (
	"fmt"
	"strconv"

	"github.com/mwiater/arenaboard/internal/trace"
	"github.com/spf13/cobra"
)

var (
	traceRun       int
	traceCriterion int
)

// traceCmd implements 'trace', which prints one model's outputs for a task.
var traceCmd = &cobra.Command{
	Use:   "trace <competition> <model> <task>",
	Short: "Print a model's solutions for one problem",
	Long:  `The 'trace' command prints the problem statement, the correct answer and a model's recorded runs for a 1-based task number. Use --run to pick the run and --criterion to pick the grading criterion of judged competitions.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		competition, model := args[0], args[1]
		task, err := strconv.Atoi(args[2])
		if err != nil || task < 1 {
			return fmt.Errorf("task must be a positive integer, got %q", args[2])
		}
		if traceRun < 1 {
			return fmt.Errorf("--run must be at least 1, got %d", traceRun)
		}

		d, cfg, err := loadDataset(cmd)
		if err != nil {
			return err
		}
		if err := requireCompetition(d, competition); err != nil {
			return err
		}
		if d.IsAggregate(competition) {
			return fmt.Errorf("competition %q: traces are not available in the aggregate view", competition)
		}

		rec, err := newClient(*cfg).Trace(cmd.Context(), competition, model, task)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failedResult(trace.ErrorText))
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.JSONMode {
			return writeJSON(out, rec)
		}
		if traceRun > len(rec.Outputs) && len(rec.Outputs) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), warningResult(fmt.Sprintf("only %d runs recorded; showing run %d", len(rec.Outputs), len(rec.Outputs))))
		}
		heading := trace.Heading(d.Info[competition], model, task)
		fmt.Fprintln(out, trace.Render(heading, rec, trace.Options{
			Run:       traceRun - 1,
			Criterion: traceCriterion,
			Width:     100,
		}))
		return nil
	},
}

func init() {
	traceCmd.Flags().IntVarP(&traceRun, "run", "r", 1, "1-based run to show")
	traceCmd.Flags().IntVar(&traceCriterion, "criterion", 0, "0-based grading criterion to show")
	rootCmd.AddCommand(traceCmd)
}
