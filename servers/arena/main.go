// servers/arena/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/mwiater/arenaboard/internal/arenaserver"
)

func main() {
	cfg, err := arenaserver.LoadConfig(configPath())
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}

	var sources []arenaserver.Source
	for _, c := range cfg.Competitions {
		src, err := arenaserver.LoadSource(c)
		if err != nil {
			log.Fatalf("competition %s: %v", c.Key, err)
		}
		log.Printf("competition %s: %d problems, %d runs", c.Key, len(src.Answers), len(src.Runs))
		sources = append(sources, src)
	}
	payloads := arenaserver.Build(cfg.Overall, cfg.OverallThresholds, sources)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           arenaserver.NewHandler(payloads),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("arena config: host=%s port=%d competitions=%d traces=%d", cfg.Host, cfg.Port, len(cfg.Competitions), len(payloads.Traces))
	log.Printf("listening on %s (GOOS=%s)", srv.Addr, runtime.GOOS)
	log.Fatal(srv.ListenAndServe())
}

// configPath returns ARENA_CONFIG or the default config location.
func configPath() string {
	if path := os.Getenv("ARENA_CONFIG"); path != "" {
		return path
	}
	return filepath.Join("servers", "arena", "arena.yml")
}
