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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

// ReleaseNode is the raw release record returned by the search query.
// PublishedAt is kept as the RFC 3339 text GitHub sends; parsing it is the
// caller's concern.
type ReleaseNode struct {
	TagName     string `json:"tagName"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
}

// ReleaseSummary holds the total release count and the most recent release,
// if any. Releases holds at most one node because the query asks for first: 1.
type ReleaseSummary struct {
	TotalCount int           `json:"totalCount"`
	Releases   []ReleaseNode `json:"nodes"`
}

// RepositoryNode is the raw repository record returned by the search query.
type RepositoryNode struct {
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	IsArchived bool           `json:"isArchived"`
	Releases   ReleaseSummary `json:"releases"`
}

// RepositoryPage represents a page of repositories from a search query.
// It includes the repositories for the current page and pagination
// information to support fetching subsequent pages.
type RepositoryPage struct {
	Repositories []RepositoryNode
	HasNextPage  bool
	EndCursor    string
}

// Default values for search operations
const (
	// SearchPageSize is the fixed page size of the repository search.
	SearchPageSize = 50
)
