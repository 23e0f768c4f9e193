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

// Package config types define the configuration structures used throughout
// zinegrab. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for zinegrab. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Defaults DefaultsConfig `yaml:"defaults"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// SiteConfig describes the magazine site: where the issue index lives, how
// the latest issue number is recognized on it, and how a per-issue download
// URL is derived. Pointing these at a different site (or a test server) is
// all it takes to grab a different publication.
type SiteConfig struct {
	// IndexURL is the page listing all published issues.
	IndexURL string `yaml:"index_url"`

	// IssueURLTemplate is a fmt template applied to an issue number. The
	// number may be referenced more than once using indexed verbs such as
	// %[1]d.
	IssueURLTemplate string `yaml:"issue_url_template"`

	// LatestPattern is a regular expression with a single capture group of
	// digits, matched against the index page to find issue numbers. The
	// highest captured number is the latest issue.
	LatestPattern string `yaml:"latest_pattern"`

	// UserAgent is sent with every request to the site.
	UserAgent string `yaml:"user_agent"`
}

// DefaultsConfig contains default settings that apply to all fetch runs
// unless overridden by command-line flags.
type DefaultsConfig struct {
	// Dir is the destination directory for downloaded issues.
	Dir string `yaml:"dir"`

	// ValidateBounds controls whether purely numeric range expressions are
	// checked against the latest published issue. When true, a fetch always
	// performs latest-issue discovery and rejects out-of-range requests up
	// front. When false, numeric expressions skip the network round-trip
	// and only keyword expressions ("last", "all") trigger discovery.
	ValidateBounds bool `yaml:"validate_bounds"`

	// Parallel is the number of concurrent downloads. 1 means sequential.
	Parallel int `yaml:"parallel"`
}

// HTTPConfig controls the HTTP client shared by discovery and downloads.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultConfig returns a Config with sensible defaults. These defaults
// target the DigitalWhisper magazine but can be overridden for any site
// that exposes an issue index and a deterministic per-issue URL.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			IndexURL:         "https://www.digitalwhisper.co.il/issues",
			IssueURLTemplate: "https://www.digitalwhisper.co.il/files/Zines/0x%02[1]X/DigitalWhisper%[1]d.pdf",
			LatestPattern:    `issue([0-9]+)`,
			UserAgent:        "zinegrab",
		},
		Defaults: DefaultsConfig{
			Dir:            ".",
			ValidateBounds: true,
			Parallel:       1,
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 60,
		},
	}
}
