// internal/commands/common.go
package arenaboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/arena"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/trace"
	"github.com/spf13/cobra"
)

var (
	successfulResult = color.New(color.FgGreen).SprintFunc()
	failedResult     = color.New(color.FgRed).SprintFunc()
	warningResult    = color.New(color.FgYellow).SprintFunc()
)

// arenaAPI is the part of the arena client the commands use.
type arenaAPI interface {
	Load(ctx context.Context) (leaderboard.Dataset, error)
	Trace(ctx context.Context, competition, model string, task int) (trace.Record, error)
}

var newClient = func(cfg appconfig.Config) arenaAPI {
	return arena.NewClient(cfg, nil)
}

// loadDataset fetches the startup dataset with the merged configuration.
func loadDataset(cmd *cobra.Command) (leaderboard.Dataset, *appconfig.Config, error) {
	cfg := GetConfig()
	if cfg == nil {
		return leaderboard.Dataset{}, nil, errors.New("configuration is not loaded")
	}
	d, err := newClient(*cfg).Load(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), failedResult("Failed to load leaderboard from "+cfg.BaseURL()))
		return leaderboard.Dataset{}, cfg, err
	}
	return d, cfg, nil
}

// requireCompetition checks that competition exists in d.
func requireCompetition(d leaderboard.Dataset, competition string) error {
	if _, ok := d.Results[competition]; !ok {
		return fmt.Errorf("competition %q: %w", competition, leaderboard.ErrUnknownCompetition)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
