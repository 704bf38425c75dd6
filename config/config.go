// Package config loads the patternlint.yaml project configuration.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultFileName is looked up in the scan root when no path is given.
const DefaultFileName = "patternlint.yaml"

type Config struct {
	Logger   Logger   `yaml:"logger"`
	Rules    Rules    `yaml:"rules"`
	Scan     Scan     `yaml:"scan"`
	Baseline Baseline `yaml:"baseline"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      bool   `yaml:"json_format"`
	IncludeLocation bool   `yaml:"include_location"`
	DisableTime     bool   `yaml:"disable_time"`
}

type Rules struct {
	// Disabled lists rule codes excluded from checking, e.g. EFP320.
	Disabled []string `yaml:"disabled"`
}

type Scan struct {
	Include        []string `yaml:"include"`
	Exclude        []string `yaml:"exclude"`
	MaxDepth       int      `yaml:"max_depth"`
	MaxFiles       int      `yaml:"max_files"`
	MaxFileBytes   int64    `yaml:"max_file_bytes"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
}

type Baseline struct {
	// DSN is a SQLite path or a libsql/Turso URL.
	DSN string `yaml:"dsn"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logger: Logger{
			Level:       "INFO",
			DisableTime: true,
		},
		Scan: Scan{
			Exclude: []string{"**/.git/**", "**/__pycache__/**", "**/.venv/**"},
		},
		Baseline: Baseline{
			DSN: ".patternlint/baseline.db",
		},
	}
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data any) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// Load reads configuration from path. An empty path falls back to
// DefaultFileName in the working directory; a missing default file is not
// an error and yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	cfg := Default()
	if err := LoadYAML(path, cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// RuleDisabled reports whether a rule code is excluded by configuration.
func (c *Config) RuleDisabled(code string) bool {
	for _, d := range c.Rules.Disabled {
		if d == code {
			return true
		}
	}
	return false
}
