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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/readme-rel/internal/giterror"
	"github.com/sirseerhq/readme-rel/pkg/version"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "readme-rel",
		Short: "List a GitHub user's most recently released repositories",
		Long: `readme-rel searches a GitHub user's public repositories, keeps the ones
with at least one published release, and renders the most recently released
as a Markdown list for a profile README.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(newRecentCommand(opts))

	return rootCmd
}

// mapErrorToExitCode maps errors to exit codes using the error inspector,
// so raw client errors are classified without being rewritten.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	inspector := giterror.NewErrorChainInspector(giterror.NewInspector())

	if inspector.IsAuthError(err) || inspector.IsRateLimitError(err) {
		return 2 // Authentication/authorization errors
	}

	if inspector.IsNetworkError(err) {
		return 3 // Network errors
	}

	return 1 // General error
}
