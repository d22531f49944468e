// internal/commands/root_test.go
package arenaboard

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/arenaboard/internal/arenaserver"
	"github.com/mwiater/arenaboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const answersCSV = "id,answer\np1,42\np2,7\n"

const runsCSV = `problem_idx,problem,model_name,idx_answer,answer,input_tokens,output_tokens,cost,input_cost_per_tokens,output_cost_per_tokens,parsed_answer,correct
p1,Six times seven?,gpt 5,0,42,1000,2000,0.1,1,2,42,true
p2,Seven?,gpt 5,0,7,1000,2000,0.1,1,2,7,true
p1,Six times seven?,org/model,0,41,1000,2000,0.1,1,2,41,false
p2,Seven?,org/model,0,7,1000,2000,0.1,1,2,7,true
`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	answers, err := arenaserver.ReadAnswers(strings.NewReader(answersCSV))
	if err != nil {
		t.Fatalf("read answers: %v", err)
	}
	runs, err := arenaserver.ReadRuns(strings.NewReader(runsCSV))
	if err != nil {
		t.Fatalf("read runs: %v", err)
	}
	sources := []arenaserver.Source{
		{Competition: arenaserver.Competition{Key: "alpha", NiceName: "Alpha", Index: 1, MedalThresholds: []float64{75, 50, 25}, Contaminated: []string{"org/model"}}, Answers: answers, Runs: runs},
		{Competition: arenaserver.Competition{Key: "beta", NiceName: "Beta", Index: 2, MedalThresholds: []float64{75, 50, 25}, DefaultOpen: true}, Answers: answers, Runs: runs},
	}
	srv := httptest.NewServer(arenaserver.NewHandler(arenaserver.Build("overall", []float64{75, 50, 25}, sources)))
	t.Cleanup(srv.Close)
	return srv
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// resetFlags restores every flag in the command tree to its default so that
// runs in the same process do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with a fresh config file and returns its output.
func run(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--config", writeTempConfig(t, config)}, args...)...)
}

// execute runs the root command with reset flags, a temp log file and no color.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	viper.Reset()
	for _, name := range append(append([]string{"timeout"}, boolFlags...), stringFlags...) {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	t.Cleanup(func() { _ = logging.Close() })

	logPath := filepath.Join(t.TempDir(), "arenaboard.log")
	full := append([]string{"--logFile", logPath, "--noColor"}, args...)

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(full)
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	out, err := run(t, "{}", "nonexistent")
	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}
	expected := "unknown command \"nonexistent\" for \"arenaboard\""
	if !strings.Contains(out, expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, out)
	}
}

func TestPersistentPreRunEMergesFileAndFlags(t *testing.T) {
	config := `{"apiBaseURL": "http://arena.example:9000", "timeout": 5, "jsonMode": true,
		"competitionNotes": {"alpha": "Practice round."}, "endpoints": {"traces": "v2/traces"}}`
	if _, err := run(t, config, "--debug", "show", "config"); err != nil {
		t.Fatalf("show config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected config to be loaded")
	}
	if cfg.BaseURL() != "http://arena.example:9000" || cfg.TimeoutSeconds != 5 {
		t.Errorf("expected file values, got %+v", cfg)
	}
	if !cfg.Debug || !cfg.JSONMode || !cfg.NoColor {
		t.Errorf("expected flags and file flags to merge, got %+v", cfg)
	}
	if cfg.Note("alpha") != "Practice round." {
		t.Errorf("expected competition note, got %q", cfg.Note("alpha"))
	}
	if cfg.TracesPath() != "/v2/traces" {
		t.Errorf("expected endpoint override, got %q", cfg.TracesPath())
	}
	if cfg.OverallID() != "overall" {
		t.Errorf("expected default overall id, got %q", cfg.OverallID())
	}
}

func TestPersistentPreRunEFlagBeatsFile(t *testing.T) {
	if _, err := run(t, `{"apiBaseURL": "http://file.example"}`, "--apiBaseURL", "http://flag.example", "show", "config"); err != nil {
		t.Fatalf("show config: %v", err)
	}
	if got := GetConfig().BaseURL(); got != "http://flag.example" {
		t.Errorf("expected flag to win, got %q", got)
	}
}

func TestPersistentPreRunERejectsInvalidConfig(t *testing.T) {
	_, err := run(t, `{"apiBaseURL": "not a url"}`, "show", "config")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	out, err := run(t, `{"competitionNotes": {"beta": "Second set."}}`, "show", "config")
	if err != nil {
		t.Fatalf("show config: %v", err)
	}
	for _, want := range []string{"Config file:", "API Base URL:", "http://localhost:8000", "beta: Second set."} {
		if !strings.Contains(out, want) {
			t.Errorf("show config output missing %q:\n%s", want, out)
		}
	}
}

func TestShowConfigFallsBackToLegacyFile(t *testing.T) {
	dir := t.TempDir()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	if err := os.WriteFile("config.json", []byte(`{"competitionNotes": {"beta": "Legacy note."}}`), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	out, err := execute(t, "show", "config")
	if err != nil {
		t.Fatalf("show config: %v", err)
	}
	for _, want := range []string{"Config file: config.json", "beta: Legacy note."} {
		if !strings.Contains(out, want) {
			t.Errorf("show config output missing %q:\n%s", want, out)
		}
	}
}

func TestShowConfigWithoutFile(t *testing.T) {
	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "show", "config")
	if err != nil {
		t.Fatalf("show config: %v", err)
	}
	if !strings.Contains(out, "No config file loaded") {
		t.Errorf("expected defaults notice:\n%s", out)
	}
}

func TestListCommands(t *testing.T) {
	out, err := run(t, "{}", "list", "commands")
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	for _, want := range []string{"arenaboard table", "arenaboard list competitions", "arenaboard show competition", "arenaboard export"} {
		if !strings.Contains(out, want) {
			t.Errorf("list commands missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Errorf("completion commands should be hidden")
	}
}
