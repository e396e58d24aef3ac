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

// Package config provides configuration management for readme-rel with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	relerrors "github.com/sirseerhq/readme-rel/internal/errors"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .readme-rel.yaml (current directory)
//   - .readme-rel.yml (current directory)
//   - ~/.readme-rel/config.yaml
//
// Environment variables are applied after loading the config file. Returns
// an error if the specified config file cannot be loaded, but succeeds with
// defaults if no config file is found in the standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Defaults.Output = expandPath(cfg.Defaults.Output)
	cfg.Readme.Path = expandPath(cfg.Readme.Path)

	return cfg, nil
}

func defaultPaths() []string {
	return []string{
		".readme-rel.yaml",
		".readme-rel.yml",
		filepath.Join(os.Getenv("HOME"), ".readme-rel", "config.yaml"),
	}
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
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if owner := os.Getenv("README_REL_OWNER"); owner != "" {
		cfg.GitHub.Owner = owner
	}
	if count := os.Getenv("README_REL_COUNT"); count != "" {
		if n, err := parsePositiveInt(count); err == nil {
			cfg.Defaults.Count = n
		}
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
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

// Token reads the GitHub token from the configured environment variable.
// A missing or blank value returns an error wrapping ErrMissingToken.
func (c *Config) Token() (string, error) {
	name := c.GitHub.TokenEnv
	if name == "" {
		name = DefaultConfig().GitHub.TokenEnv
	}
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", fmt.Errorf("%s is not set: %w", name, relerrors.ErrMissingToken)
	}
	return token, nil
}

// Validate checks if the configuration contains valid values. This should
// be called after all overrides are applied to catch invalid settings early.
func (c *Config) Validate() error {
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.GitHub.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %s", c.GitHub.ConnectTimeout)
	}
	if c.GitHub.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got: %s", c.GitHub.ReadTimeout)
	}
	if c.Defaults.Count <= 0 {
		return fmt.Errorf("count must be positive, got: %d", c.Defaults.Count)
	}
	switch strings.ToLower(c.Defaults.Format) {
	case "markdown", "md", "json", "ndjson":
	default:
		return fmt.Errorf("unknown output format %q", c.Defaults.Format)
	}
	if c.Readme.Path != "" && (c.Readme.StartMarker == "" || c.Readme.EndMarker == "") {
		return fmt.Errorf("readme markers cannot be empty")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
