// Package config loads textscan configuration from a YAML file.
// Keyword dictionaries can be given inline, referenced as files (one
// keyword per line), or pulled from the bbolt store at scan time.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for textscan.
type Config struct {
	// LogLevel is a zerolog level name: trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// StorePath points at the bbolt dictionary database. Empty disables
	// store-backed dictionaries.
	StorePath string `yaml:"store_path"`

	// Dictionaries are the keyword sets to scan for.
	Dictionaries []DictionaryConfig `yaml:"dictionaries"`

	Scan ScanConfig `yaml:"scan"`
}

// DictionaryConfig declares one keyword dictionary. Exactly one of
// Keywords or File should be set.
type DictionaryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	File     string   `yaml:"file"`
}

// ScanConfig controls scanning behavior.
type ScanConfig struct {
	// MaxMatches caps the number of reported matches per scanned input.
	// 0 means unlimited. The cap stops the scan early rather than
	// truncating a full result list.
	MaxMatches int `yaml:"max_matches"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Load reads configuration from path, applying defaults for unset
// fields. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks dictionary declarations. Empty keyword strings are
// rejected here so they never reach the automaton.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Dictionaries))
	for i, d := range c.Dictionaries {
		if d.Name == "" {
			return fmt.Errorf("dictionary %d: name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("dictionary %q declared twice", d.Name)
		}
		seen[d.Name] = true
		if len(d.Keywords) == 0 && d.File == "" {
			return fmt.Errorf("dictionary %q: keywords or file is required", d.Name)
		}
		if len(d.Keywords) > 0 && d.File != "" {
			return fmt.Errorf("dictionary %q: keywords and file are mutually exclusive", d.Name)
		}
		for _, kw := range d.Keywords {
			if kw == "" {
				return fmt.Errorf("dictionary %q: empty keyword", d.Name)
			}
		}
	}
	if c.Scan.MaxMatches < 0 {
		return fmt.Errorf("scan.max_matches must be >= 0")
	}
	return nil
}

// ReadKeywordFile parses a keyword file: one keyword per line, blank
// lines and '#' comment lines skipped, surrounding whitespace trimmed.
func ReadKeywordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyword file: %w", err)
	}
	defer f.Close()

	var keywords []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keywords = append(keywords, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read keyword file %s: %w", path, err)
	}
	return keywords, nil
}
