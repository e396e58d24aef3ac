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

package releases

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirseerhq/readme-rel/internal/github"
)

// ErrNoRelease is returned when a Repository is built from a node that
// carries no release.
var ErrNoRelease = errors.New("repository has no release")

// Release is a tagged, published version of a repository.
type Release struct {
	TagName   string    `json:"tag_name"`
	Published time.Time `json:"published"`
	URL       string    `json:"url"`
}

// Repository is a repository together with its most recent release.
// A Repository always has a release; use NewRepository to build one.
type Repository struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	ReleaseCount int     `json:"release_count"`
	LastRelease  Release `json:"last_release"`
}

// NewRelease builds a Release from a raw release node. publishedAt must be
// an RFC 3339 timestamp.
func NewRelease(node github.ReleaseNode) (Release, error) {
	published, err := time.Parse(time.RFC3339, node.PublishedAt)
	if err != nil {
		return Release{}, fmt.Errorf("release %s: invalid publishedAt %q: %w", node.TagName, node.PublishedAt, err)
	}

	return Release{
		TagName:   node.TagName,
		Published: published,
		URL:       node.URL,
	}, nil
}

// NewRepository builds a Repository from a raw repository node, using the
// first release node as the last release.
func NewRepository(node github.RepositoryNode) (Repository, error) {
	if len(node.Releases.Releases) == 0 {
		return Repository{}, fmt.Errorf("%s: %w", node.Name, ErrNoRelease)
	}

	last, err := NewRelease(node.Releases.Releases[0])
	if err != nil {
		return Repository{}, fmt.Errorf("%s: %w", node.Name, err)
	}

	return Repository{
		Name:         node.Name,
		URL:          node.URL,
		ReleaseCount: node.Releases.TotalCount,
		LastRelease:  last,
	}, nil
}

// TreeURL is the source tree link of the last release.
func (r Repository) TreeURL() string {
	return fmt.Sprintf("%s/tree/%s", r.URL, r.LastRelease.TagName)
}
