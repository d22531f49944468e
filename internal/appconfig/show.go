package appconfig

import (
	"fmt"
	"io"
	"sort"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintf(out, "  API Base URL:        %s\n", cfg.BaseURL())
	fmt.Fprintf(out, "  Request Timeout:     %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Debug:               %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:           %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  No Color:            %v\n", cfg.NoColor)
	fmt.Fprintf(out, "  Log File:            %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Overall Competition: %s\n", cfg.OverallID())
	if cfg.DefaultCompetition != "" {
		fmt.Fprintf(out, "  Default Competition: %s\n", cfg.DefaultCompetition)
	}
	fmt.Fprintf(out, "  Endpoints:           %s %s %s %s\n", cfg.ResultsPath(), cfg.SecondaryPath(), cfg.DatesPath(), cfg.TracesPath())

	if len(cfg.CompetitionNotes) > 0 {
		ids := make([]string, 0, len(cfg.CompetitionNotes))
		for id := range cfg.CompetitionNotes {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintln(out, "  Competition Notes:")
		for _, id := range ids {
			fmt.Fprintf(out, "    %s: %s\n", id, cfg.CompetitionNotes[id])
		}
	}
}
