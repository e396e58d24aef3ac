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

// Package main implements the readme-rel command-line interface.
// This tool lists the most recently released public repositories of a
// GitHub user as a Markdown bullet list, ready to drop into a profile
// README.
//
// The CLI supports:
//   - Printing the list to stdout or a file
//   - NDJSON output with --format json
//   - Rewriting the section of a README between two marker comments
//   - Writing fetch statistics with --metadata
//
// Usage:
//
//	readme-rel recent <owner> [flags]
//
// Example:
//
//	export PUBLIC_PAT=your_token
//	readme-rel recent sco1 --count 5 --readme README.md
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication error (missing or rejected token, rate limit)
//   - 3: Network error
package main
