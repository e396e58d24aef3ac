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

package testutil

import (
	"fmt"
	"time"
)

// RepositoryBuilder provides a fluent API for creating search result nodes
type RepositoryBuilder struct {
	name         string
	owner        string
	archived     bool
	releaseCount int
	tag          string
	publishedAt  time.Time
	hasRelease   bool
}

// NewRepositoryBuilder creates a repository node owned by "sco1" with no
// releases.
func NewRepositoryBuilder(name string) *RepositoryBuilder {
	return &RepositoryBuilder{
		name:  name,
		owner: "sco1",
	}
}

// WithOwner sets the owner used in the repository and release URLs
func (b *RepositoryBuilder) WithOwner(owner string) *RepositoryBuilder {
	b.owner = owner
	return b
}

// Archived marks the repository as archived
func (b *RepositoryBuilder) Archived() *RepositoryBuilder {
	b.archived = true
	return b
}

// WithRelease sets the newest release. The total count becomes 1 unless
// WithReleaseCount raised it.
func (b *RepositoryBuilder) WithRelease(tag string, published time.Time) *RepositoryBuilder {
	b.tag = tag
	b.publishedAt = published
	b.hasRelease = true
	if b.releaseCount == 0 {
		b.releaseCount = 1
	}
	return b
}

// WithReleaseCount sets the reported total release count
func (b *RepositoryBuilder) WithReleaseCount(count int) *RepositoryBuilder {
	b.releaseCount = count
	return b
}

// URL returns the repository URL the node will carry
func (b *RepositoryBuilder) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s", b.owner, b.name)
}

// Build creates the GraphQL node for the repository
func (b *RepositoryBuilder) Build() map[string]interface{} {
	nodes := []map[string]interface{}{}
	if b.hasRelease {
		nodes = append(nodes, map[string]interface{}{
			"tagName":     b.tag,
			"publishedAt": b.publishedAt.UTC().Format(time.RFC3339),
			"url":         fmt.Sprintf("%s/releases/tag/%s", b.URL(), b.tag),
		})
	}

	return map[string]interface{}{
		"name":       b.name,
		"url":        b.URL(),
		"isArchived": b.archived,
		"releases": map[string]interface{}{
			"totalCount": b.releaseCount,
			"nodes":      nodes,
		},
	}
}

// SearchResponseBuilder builds repository search GraphQL responses
type SearchResponseBuilder struct {
	repos       []map[string]interface{}
	hasNextPage bool
	endCursor   string
	errors      []map[string]interface{}
}

// NewSearchResponseBuilder creates a new response builder
func NewSearchResponseBuilder() *SearchResponseBuilder {
	return &SearchResponseBuilder{
		repos: []map[string]interface{}{},
	}
}

// WithRepositories adds repository nodes to the response
func (b *SearchResponseBuilder) WithRepositories(repos ...*RepositoryBuilder) *SearchResponseBuilder {
	for _, r := range repos {
		b.repos = append(b.repos, r.Build())
	}
	return b
}

// WithPagination sets pagination info
func (b *SearchResponseBuilder) WithPagination(hasNext bool, cursor string) *SearchResponseBuilder {
	b.hasNextPage = hasNext
	b.endCursor = cursor
	return b
}

// WithError adds an error to the response
func (b *SearchResponseBuilder) WithError(message string) *SearchResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"message": message,
	})
	return b
}

// Build creates the GraphQL response
func (b *SearchResponseBuilder) Build() map[string]interface{} {
	if len(b.errors) > 0 {
		return map[string]interface{}{
			"errors": b.errors,
		}
	}

	var cursor *string
	if b.endCursor != "" {
		cursor = &b.endCursor
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"search": map[string]interface{}{
				"nodes": b.repos,
				"pageInfo": map[string]interface{}{
					"hasNextPage": b.hasNextPage,
					"endCursor":   cursor,
				},
			},
		},
	}
}
