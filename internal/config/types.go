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
// readme-rel. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for readme-rel.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Readme   ReadmeConfig   `yaml:"readme"`
	Log      LogConfig      `yaml:"log"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint, the environment variable holding the token and the HTTP
// timeouts. A custom endpoint allows GitHub Enterprise deployments.
type GitHubConfig struct {
	GraphQLEndpoint string        `yaml:"graphql_endpoint"`
	TokenEnv        string        `yaml:"token_env"`
	Owner           string        `yaml:"owner"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
}

// DefaultsConfig contains the settings applied to every run unless
// overridden on the command line.
type DefaultsConfig struct {
	Count  int    `yaml:"count"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ReadmeConfig controls splicing the rendered list into a README file.
// An empty Path means the list is written to the output instead.
type ReadmeConfig struct {
	Path        string `yaml:"path"`
	StartMarker string `yaml:"start_marker"`
	EndMarker   string `yaml:"end_marker"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with defaults suitable for public
// GitHub.com usage.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "PUBLIC_PAT",
			ConnectTimeout:  5 * time.Second,
			ReadTimeout:     15 * time.Second,
		},
		Defaults: DefaultsConfig{
			Count:  5,
			Format: "markdown",
		},
		Readme: ReadmeConfig{
			StartMarker: "<!-- readme-rel start -->",
			EndMarker:   "<!-- readme-rel end -->",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
