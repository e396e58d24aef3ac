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

// Package github provides a client for GitHub's GraphQL repository search.
// It hides the typed GraphQL query behind a small interface so that the
// release aggregation can be tested without a network.
//
// The package includes:
//   - A Client interface for searching an owner's public repositories
//   - A GraphQL implementation using the shurcooL/graphql library
//   - SearchRequest, which carries the pagination cursor for one page
//   - Mock client for testing
//
// Basic usage:
//
//	client, err := github.NewGraphQLClient(token, "https://api.github.com/graphql", github.ClientOptions{})
//	if err != nil {
//	    // Handle missing token
//	}
//	page, err := client.SearchRepositories(ctx, github.NewSearchRequest("sco1", nil))
//	if err != nil {
//	    // Handle error
//	}
//	for _, repo := range page.Repositories {
//	    // Process repository
//	}
package github
