// internal/arenaserver/config.go
// Package arenaserver builds arena API payloads from run records and serves
// them over HTTP.
package arenaserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Config is the fixture server configuration.
type Config struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Overall string `yaml:"overall"`
	// OverallThresholds are the medal cutoffs of the synthesized aggregate view.
	OverallThresholds []float64     `yaml:"overall_medal_thresholds"`
	Competitions      []Competition `yaml:"competitions"`
}

// Competition describes one served competition and where its inputs live.
type Competition struct {
	Key             string    `yaml:"key"`
	NiceName        string    `yaml:"nice_name"`
	Index           int       `yaml:"index"`
	Type            string    `yaml:"type"`
	Answers         string    `yaml:"answers"`
	Runs            string    `yaml:"runs"`
	MedalThresholds []float64 `yaml:"medal_thresholds"`
	Judge           bool      `yaml:"judge"`
	DefaultOpen     bool      `yaml:"default_open"`
	// Contaminated lists models published after the competition date.
	Contaminated []string `yaml:"contaminated"`
}

// LoadConfig reads a YAML config. Relative input paths resolve against the
// config file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Competitions) == 0 {
		return Config{}, errors.New("config must contain at least one competition")
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port <= 0 {
		cfg.Port = 8000
	}
	if strings.TrimSpace(cfg.Overall) == "" {
		cfg.Overall = "overall"
	}
	if len(cfg.OverallThresholds) == 0 {
		cfg.OverallThresholds = []float64{75, 50, 25}
	}

	dir := filepath.Dir(path)
	seen := make(map[string]bool)
	for i := range cfg.Competitions {
		c := &cfg.Competitions[i]
		if c.Key == "" {
			return Config{}, fmt.Errorf("competition %d: key is required", i)
		}
		if seen[c.Key] || c.Key == cfg.Overall {
			return Config{}, fmt.Errorf("competition %q: duplicate key", c.Key)
		}
		seen[c.Key] = true
		if c.Answers == "" || c.Runs == "" {
			return Config{}, fmt.Errorf("competition %q: answers and runs are required", c.Key)
		}
		if !filepath.IsAbs(c.Answers) {
			c.Answers = filepath.Join(dir, c.Answers)
		}
		if !filepath.IsAbs(c.Runs) {
			c.Runs = filepath.Join(dir, c.Runs)
		}
		if c.Type == "" {
			c.Type = "FinalAnswer"
		}
		if len(c.MedalThresholds) == 0 {
			c.MedalThresholds = []float64{75, 50, 25}
		}
	}
	return cfg, nil
}
