// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// DefaultAPIBaseURL is the arena API used when none is configured.
	DefaultAPIBaseURL = "http://localhost:8000"
	// DefaultOverallCompetition is the id of the aggregate view.
	DefaultOverallCompetition = "overall"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 30 * time.Second
	defaultLogFile        = "arenaboard.log"
)

// Config represents the top-level application configuration.
type Config struct {
	APIBaseURL         string            `json:"apiBaseURL" mapstructure:"apiBaseURL"`
	TimeoutSeconds     int               `json:"timeout,omitempty" mapstructure:"timeout"`
	Debug              bool              `json:"debug" mapstructure:"debug"`
	JSONMode           bool              `json:"jsonMode" mapstructure:"jsonMode"`
	NoColor            bool              `json:"noColor" mapstructure:"noColor"`
	LogFile            string            `json:"logFile,omitempty" mapstructure:"logFile"`
	OverallCompetition string            `json:"overallCompetition,omitempty" mapstructure:"overallCompetition"`
	DefaultCompetition string            `json:"defaultCompetition,omitempty" mapstructure:"defaultCompetition"`
	CompetitionNotes   map[string]string `json:"competitionNotes,omitempty" mapstructure:"competitionNotes"`
	Endpoints          Endpoints         `json:"endpoints" mapstructure:"endpoints"`
	ConfigPath         string            `json:"-" mapstructure:"-"`
}

// Endpoints overrides the request paths of the arena API.
type Endpoints struct {
	Results          string `json:"results,omitempty" mapstructure:"results"`
	Secondary        string `json:"secondary,omitempty" mapstructure:"secondary"`
	CompetitionDates string `json:"competitionDates,omitempty" mapstructure:"competitionDates"`
	Traces           string `json:"traces,omitempty" mapstructure:"traces"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// BaseURL returns the API base URL without a trailing slash.
func (c Config) BaseURL() string {
	base := strings.TrimSpace(c.APIBaseURL)
	if base == "" {
		base = DefaultAPIBaseURL
	}
	return strings.TrimRight(base, "/")
}

// OverallID returns the id of the aggregate competition.
func (c Config) OverallID() string {
	if id := strings.TrimSpace(c.OverallCompetition); id != "" {
		return id
	}
	return DefaultOverallCompetition
}

// Note returns the configured note for a competition, if any.
func (c Config) Note(competition string) string {
	if note, ok := c.CompetitionNotes[competition]; ok {
		return note
	}
	// viper lowercases map keys read from config files.
	return c.CompetitionNotes[strings.ToLower(competition)]
}

// ResultsPath returns the path of the results endpoint.
func (c Config) ResultsPath() string { return pathOr(c.Endpoints.Results, "/results") }

// SecondaryPath returns the path of the secondary stats endpoint.
func (c Config) SecondaryPath() string { return pathOr(c.Endpoints.Secondary, "/secondary") }

// DatesPath returns the path of the competition dates endpoint.
func (c Config) DatesPath() string { return pathOr(c.Endpoints.CompetitionDates, "/competition_dates") }

// TracesPath returns the path prefix of the traces endpoint.
func (c Config) TracesPath() string { return pathOr(c.Endpoints.Traces, "/traces") }

func pathOr(path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return fallback
	}
	return "/" + strings.Trim(path, "/")
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = defaultLogFile
	}
	if strings.TrimSpace(c.OverallCompetition) == "" {
		c.OverallCompetition = DefaultOverallCompetition
	}
}

// schema describes a valid merged configuration.
var schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"apiBaseURL":         map[string]any{"type": "string", "pattern": "^https?://[^\\s]+$"},
		"timeout":            map[string]any{"type": "integer", "minimum": 1},
		"logFile":            map[string]any{"type": "string"},
		"overallCompetition": map[string]any{"type": "string", "minLength": 1},
		"defaultCompetition": map[string]any{"type": "string"},
		"competitionNotes": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
		"endpoints": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":    "string",
				"pattern": "^/?[A-Za-z0-9_\\-/]*$",
			},
		},
	},
	"required": []string{"apiBaseURL"},
}

// Validate checks the configuration against its JSON schema.
func (c Config) Validate() error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(details, "; "))
}

// ResolvePath returns the config file to read for path. An empty path or
// the default path falls back to the legacy location when the default file
// does not exist. The error wraps os.ErrNotExist when no file was found.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if path != DefaultConfigPath {
		return "", fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	if _, legacyErr := os.Stat(legacyConfigPath); legacyErr == nil {
		return legacyConfigPath, nil
	} else if !errors.Is(legacyErr, os.ErrNotExist) {
		return "", fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
	}
	return "", fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
}
