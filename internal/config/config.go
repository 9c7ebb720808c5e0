package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

// DirName is the name of both the global (~/.concierge) and repo-local
// (.concierge) configuration directories.
const DirName = ".concierge"

// Config holds application configuration.
type Config struct {
	// AirlineName is announced in the flight desk greeting.
	AirlineName string `json:"airline_name,omitempty" env:"CONCIERGE_AIRLINE_NAME"`

	// ExitPhrases end a flight desk session (after confirmation).
	// Matched against the whole normalized line.
	ExitPhrases []string `json:"exit_phrases,omitempty" env:"CONCIERGE_EXIT_PHRASES" envSeparator:","`

	// ConfirmCaseSensitive requires the exit confirmation to be typed exactly
	// "yes" or "y". By default "YES" and " y " are accepted too.
	ConfirmCaseSensitive bool `json:"confirm_case_sensitive,omitempty" env:"CONCIERGE_CONFIRM_CASE_SENSITIVE"`

	// Seed pins every random source (phrasing choice, generated sales).
	// 0 means seed from the runtime.
	Seed uint64 `json:"seed,omitempty" env:"CONCIERGE_SEED"`

	// HistoryDays is the length of the generated sales history.
	HistoryDays int `json:"history_days,omitempty" env:"CONCIERGE_HISTORY_DAYS"`

	// ForecastDays is the forecast horizon.
	ForecastDays int `json:"forecast_days,omitempty" env:"CONCIERGE_FORECAST_DAYS"`

	// TopProducts is how many drinks the top list and product forecasts show.
	TopProducts int `json:"top_products,omitempty" env:"CONCIERGE_TOP_PRODUCTS"`

	WebBind string `json:"web_bind,omitempty" env:"CONCIERGE_WEB_BIND"`
	WebPort int    `json:"web_port,omitempty" env:"CONCIERGE_WEB_PORT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" env:"CONCIERGE_LOG_LEVEL"`

	// LogFormat is "console" or "json".
	LogFormat string `json:"log_format,omitempty" env:"CONCIERGE_LOG_FORMAT"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" env:"CONCIERGE_DISABLED_TOOLS" envSeparator:","`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AirlineName:  "Astro Airlines",
		ExitPhrases:  []string{"quit", "pause", "exit", "goodbye", "bye", "later"},
		HistoryDays:  30,
		ForecastDays: 7,
		TopProducts:  3,
		WebBind:      "127.0.0.1",
		WebPort:      8501,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// Addr is the dashboard listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.WebBind, c.WebPort)
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both the global directory and the
// nearest repo-local .concierge directory above startDir.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .concierge/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyEnv overlays CONCIERGE_* environment variables onto cfg.
// Unset variables leave cfg untouched; list variables are comma separated
// and merge with the file lists.
func ApplyEnv(cfg *Config) (*Config, error) {
	overlay := &Config{}
	if err := env.Parse(overlay); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return Merge(cfg, overlay), nil
}

// loadFileRaw returns a zero-valued config (not defaults) if the file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		AirlineName:  pick(overlay.AirlineName, base.AirlineName),
		WebBind:      pick(overlay.WebBind, base.WebBind),
		LogLevel:     pick(overlay.LogLevel, base.LogLevel),
		LogFormat:    pick(overlay.LogFormat, base.LogFormat),
		Seed:         pick(overlay.Seed, base.Seed),
		HistoryDays:  pick(overlay.HistoryDays, base.HistoryDays),
		ForecastDays: pick(overlay.ForecastDays, base.ForecastDays),
		TopProducts:  pick(overlay.TopProducts, base.TopProducts),
		WebPort:      pick(overlay.WebPort, base.WebPort),

		// Booleans: overlay wins if true, else base
		ConfirmCaseSensitive: base.ConfirmCaseSensitive || overlay.ConfirmCaseSensitive,

		ExitPhrases:   mergeStringSlice(base.ExitPhrases, overlay.ExitPhrases),
		DisabledTools: mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
	}
}

// pick returns overlay unless it is the zero value.
func pick[T comparable](overlay, base T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string(nil), a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
