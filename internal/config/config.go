// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for zinegrab with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. Overriding the site
// section lets the same binary grab a different publication, or point at a
// local test server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .zinegrab.yaml (current directory)
//   - .zinegrab.yml (current directory)
//   - ~/.zinegrab/config.yaml
//   - ~/.zinegrab/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".zinegrab.yaml",
			".zinegrab.yml",
			filepath.Join(os.Getenv("HOME"), ".zinegrab", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".zinegrab", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// Site settings
	if indexURL := os.Getenv("ZINEGRAB_INDEX_URL"); indexURL != "" {
		cfg.Site.IndexURL = indexURL
	}
	if template := os.Getenv("ZINEGRAB_ISSUE_URL_TEMPLATE"); template != "" {
		cfg.Site.IssueURLTemplate = template
	}
	if pattern := os.Getenv("ZINEGRAB_LATEST_PATTERN"); pattern != "" {
		cfg.Site.LatestPattern = pattern
	}

	// Defaults
	if validate := os.Getenv("ZINEGRAB_VALIDATE_BOUNDS"); validate != "" {
		cfg.Defaults.ValidateBounds = parseBool(validate)
	}
	if parallel := os.Getenv("ZINEGRAB_PARALLEL"); parallel != "" {
		if n, err := parsePositiveInt(parallel); err == nil {
			cfg.Defaults.Parallel = n
		}
	}

	// HTTP settings
	if timeout := os.Getenv("ZINEGRAB_TIMEOUT"); timeout != "" {
		if n, err := parsePositiveInt(timeout); err == nil {
			cfg.HTTP.TimeoutSeconds = n
		}
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks if the configuration contains valid values. It ensures the
// site section is complete enough to locate and download issues, and that
// the execution settings make sense. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Site.IndexURL == "" {
		return fmt.Errorf("site index URL cannot be empty")
	}
	if c.Site.IssueURLTemplate == "" {
		return fmt.Errorf("issue URL template cannot be empty")
	}
	if !strings.Contains(c.Site.IssueURLTemplate, "%") {
		return fmt.Errorf("issue URL template must reference the issue number, got: %s", c.Site.IssueURLTemplate)
	}
	re, err := regexp.Compile(c.Site.LatestPattern)
	if err != nil {
		return fmt.Errorf("invalid latest issue pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("latest issue pattern must contain a capture group, got: %s", c.Site.LatestPattern)
	}
	if c.Defaults.Parallel < 1 {
		return fmt.Errorf("parallel download count must be at least 1, got: %d", c.Defaults.Parallel)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got: %d", c.HTTP.TimeoutSeconds)
	}
	return nil
}
