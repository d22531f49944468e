// servers/arena/main_test.go
package main

import (
	"path/filepath"
	"testing"

	"github.com/mwiater/arenaboard/internal/arenaserver"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("ARENA_CONFIG", "")
	if got, want := configPath(), filepath.Join("servers", "arena", "arena.yml"); got != want {
		t.Fatalf("configPath() = %q, want %q", got, want)
	}
	t.Setenv("ARENA_CONFIG", "/tmp/custom.yml")
	if got := configPath(); got != "/tmp/custom.yml" {
		t.Fatalf("configPath() = %q, want override", got)
	}
}

func TestBundledConfigLoads(t *testing.T) {
	cfg, err := arenaserver.LoadConfig("arena.yml")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	for _, c := range cfg.Competitions {
		src, err := arenaserver.LoadSource(c)
		if err != nil {
			t.Fatalf("LoadSource(%s) error: %v", c.Key, err)
		}
		if len(src.Answers) == 0 || len(src.Runs) == 0 {
			t.Fatalf("competition %s has no data", c.Key)
		}
	}
}
