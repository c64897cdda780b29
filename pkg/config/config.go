// Package config handles loading and saving nv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/nv/config.yaml
//   - State:   ~/.local/state/nv/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceEnvVar overrides the configured snapshot source path.
const SourceEnvVar = "NV_SOURCE"

// SourceConfig selects where snapshots come from.
type SourceConfig struct {
	Path string `yaml:"path,omitempty"` // File, directory or SQLite database; empty = sample data
	Type string `yaml:"type,omitempty"` // sample, json, yaml, sqlite, dir; empty = detect from path
}

// SampleConfig controls the demo data generator.
type SampleConfig struct {
	Seed               int64   `yaml:"seed,omitempty"` // 0 = time-based
	MinGroups          int     `yaml:"min_groups,omitempty"`
	MaxGroups          int     `yaml:"max_groups,omitempty"` // exclusive
	MinContents        int     `yaml:"min_contents,omitempty"`
	MaxContents        int     `yaml:"max_contents,omitempty"` // exclusive
	NgProbability      float64 `yaml:"ng_probability"`
	WarningProbability float64 `yaml:"warning_probability"`
	NodeDProbability   float64 `yaml:"node_d_probability"`
	NodeEProbability   float64 `yaml:"node_e_probability"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	SplitRatio            float64 `yaml:"split_ratio,omitempty"` // Tree panel share of the width (0.2-0.8)
	StartAlertOnly        bool    `yaml:"start_alert_only,omitempty"`
	KeepAlertModeOnReload bool    `yaml:"keep_alert_mode_on_reload,omitempty"`
}

// Config is the top-level configuration for nv.
type Config struct {
	Source SourceConfig `yaml:"source,omitempty"`
	Sample SampleConfig `yaml:"sample,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultSampleConfig returns the stock demo data settings.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		MinGroups:          10,
		MaxGroups:          50,
		MinContents:        20,
		MaxContents:        50,
		NgProbability:      0.0005,
		WarningProbability: 0.0005,
		NodeDProbability:   0.4,
		NodeEProbability:   0.2,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Sample: DefaultSampleConfig(),
		UI: UIConfig{
			SplitRatio: 0.35,
		},
	}
}

// ConfigDir returns the XDG config directory for nv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "nv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nv")
}

// StateDir returns the XDG state directory for nv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "nv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "nv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Source.Path = expandHome(cfg.Source.Path)
	cfg.Sample = cfg.Sample.withDefaults()
	cfg.UI.SplitRatio = clampSplit(cfg.UI.SplitRatio)

	return cfg, nil
}

// ApplyEnv applies environment overrides on top of the file config.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(SourceEnvVar)); v != "" {
		c.Source.Path = expandHome(v)
		c.Source.Type = ""
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// withDefaults fills missing size bounds, repairs inverted ranges and
// clamps probabilities. A probability of 0 is kept: it disables that branch.
func (s SampleConfig) withDefaults() SampleConfig {
	d := DefaultSampleConfig()
	if s.MinGroups <= 0 {
		s.MinGroups = d.MinGroups
	}
	if s.MaxGroups <= s.MinGroups {
		s.MaxGroups = s.MinGroups + 1
		if d.MaxGroups > s.MinGroups {
			s.MaxGroups = d.MaxGroups
		}
	}
	if s.MinContents <= 0 {
		s.MinContents = d.MinContents
	}
	if s.MaxContents <= s.MinContents {
		s.MaxContents = s.MinContents + 1
		if d.MaxContents > s.MinContents {
			s.MaxContents = d.MaxContents
		}
	}
	s.NgProbability = clampProbability(s.NgProbability)
	s.WarningProbability = clampProbability(s.WarningProbability)
	s.NodeDProbability = clampProbability(s.NodeDProbability)
	s.NodeEProbability = clampProbability(s.NodeEProbability)
	return s
}

func clampProbability(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

func clampSplit(r float64) float64 {
	switch {
	case r == 0:
		return DefaultConfig().UI.SplitRatio
	case r < 0.2:
		return 0.2
	case r > 0.8:
		return 0.8
	default:
		return r
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
