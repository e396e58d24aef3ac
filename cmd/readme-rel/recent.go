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

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/readme-rel/internal/config"
	"github.com/sirseerhq/readme-rel/internal/github"
	"github.com/sirseerhq/readme-rel/internal/metadata"
	"github.com/sirseerhq/readme-rel/internal/output"
	"github.com/sirseerhq/readme-rel/internal/releases"
	"github.com/sirseerhq/readme-rel/pkg/version"
)

// recentTimeout bounds a whole run across all pages.
const recentTimeout = 2 * time.Minute

type recentOptions struct {
	count        int
	format       string
	outputFile   string
	readme       string
	startMarker  string
	endMarker    string
	metadataFile string
}

func newRecentCommand(global *globalOptions) *cobra.Command {
	opts := &recentOptions{}

	cmd := &cobra.Command{
		Use:   "recent [owner]",
		Short: "Render the most recently released repositories of a user",
		Long: heredoc.Doc(`
			Search the public repositories of a GitHub user, skip archived
			repositories and repositories without releases, and render the
			most recently released ones as a Markdown list.

			Authentication is required via a GitHub token read from the
			PUBLIC_PAT environment variable (configurable with github.token_env).

			The owner may be given as an argument, with README_REL_OWNER or
			with github.owner in the configuration file.
		`),
		Example: heredoc.Doc(`
			# Print the five most recent releases
			$ readme-rel recent sco1

			# Update the section between the markers of a README
			$ readme-rel recent sco1 -n 10 --readme README.md

			# Emit NDJSON records
			$ readme-rel recent sco1 --format json --output releases.ndjson
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(global.configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd.Flags(), cfg, global, opts)

			owner := cfg.GitHub.Owner
			if len(args) == 1 {
				owner = args[0]
			}
			if owner == "" {
				return fmt.Errorf("owner is required: pass it as an argument, set README_REL_OWNER or github.owner")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), recentTimeout)
			defer cancel()

			return runRecent(ctx, cfg, owner, opts.metadataFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", releases.DefaultCount, "Number of repositories to list")
	cmd.Flags().StringVar(&opts.format, "format", "markdown", "Output format (markdown, json)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.readme, "readme", "", "Rewrite the marked section of this README instead of printing")
	cmd.Flags().StringVar(&opts.startMarker, "start-marker", output.DefaultStartMarker, "Line marking the start of the generated section")
	cmd.Flags().StringVar(&opts.endMarker, "end-marker", output.DefaultEndMarker, "Line marking the end of the generated section")
	cmd.Flags().StringVar(&opts.metadataFile, "metadata", "", "Write fetch statistics as JSON to this file")

	return cmd
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
// Flags left at their defaults do not mask file or environment values.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config, global *globalOptions, opts *recentOptions) {
	if flags.Changed("count") {
		cfg.Defaults.Count = opts.count
	}
	if flags.Changed("format") {
		cfg.Defaults.Format = opts.format
	}
	if flags.Changed("output") {
		cfg.Defaults.Output = opts.outputFile
	}
	if flags.Changed("readme") {
		cfg.Readme.Path = opts.readme
	}
	if flags.Changed("start-marker") {
		cfg.Readme.StartMarker = opts.startMarker
	}
	if flags.Changed("end-marker") {
		cfg.Readme.EndMarker = opts.endMarker
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = global.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = global.logFormat
	}
}

// runRecent executes one search with a fully resolved configuration. The
// token is resolved before any client exists, so a missing credential
// never reaches the network.
func runRecent(ctx context.Context, cfg *config.Config, owner, metadataFile string, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	token, err := cfg.Token()
	if err != nil {
		return err
	}

	client, err := github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint, github.ClientOptions{
		ConnectTimeout: cfg.GitHub.ConnectTimeout,
		ReadTimeout:    cfg.GitHub.ReadTimeout,
	})
	if err != nil {
		return err
	}

	finder := releases.NewFinder(client, owner, releases.WithLogger(logger))

	repos, err := finder.Recent(ctx, cfg.Defaults.Count)
	if err != nil {
		return err
	}

	if err := writeRepositories(cfg, repos, stdout); err != nil {
		return err
	}

	meta := finder.Tracker().GenerateMetadata(version.Version, metadata.FetchParams{
		Owner:    owner,
		Count:    cfg.Defaults.Count,
		PageSize: github.SearchPageSize,
	}, len(repos))

	if metadataFile != "" {
		if err := metadata.SaveMetadata(meta, metadataFile); err != nil {
			return err
		}
	}

	logger.Info("search complete",
		slog.String("owner", owner),
		slog.Int("pages", meta.Results.PagesFetched),
		slog.Int("seen", meta.Results.RepositoriesSeen),
		slog.Int("qualified", meta.Results.Qualified),
		slog.Int("returned", meta.Results.Returned),
		slog.String("duration", meta.Results.Duration),
	)

	return nil
}

// writeRepositories sends the result to the README, the output file or
// stdout, in that order of preference.
func writeRepositories(cfg *config.Config, repos []releases.Repository, stdout io.Writer) error {
	if cfg.Readme.Path != "" {
		return output.SpliceReadme(cfg.Readme.Path, releases.Render(repos), cfg.Readme.StartMarker, cfg.Readme.EndMarker)
	}

	format, err := output.ParseFormat(cfg.Defaults.Format)
	if err != nil {
		return err
	}

	var writer output.OutputWriter
	if cfg.Defaults.Output == "" {
		writer, err = output.NewStreamWriter(stdout, format)
	} else {
		writer, err = output.NewFileWriter(cfg.Defaults.Output, format)
	}
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	for _, repo := range repos {
		if err := writer.Write(repo); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write repository: %w", err)
		}
	}

	return writer.Close()
}
