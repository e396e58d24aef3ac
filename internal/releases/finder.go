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

// Package releases finds an owner's most recently released repositories and
// renders them as a Markdown list.
//
// A Finder walks every page of the owner's public repository search, drops
// archived repositories and repositories without a release, then orders the
// rest by the publish time of their last release, newest first:
//
//	finder := releases.NewFinder(client, "sco1", releases.WithLogger(logger))
//	repos, err := finder.Recent(ctx, releases.DefaultCount)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(releases.Render(repos))
package releases

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/sirseerhq/readme-rel/internal/github"
	"github.com/sirseerhq/readme-rel/internal/metadata"
)

// DefaultCount is the number of repositories returned when no count is given.
const DefaultCount = 5

// Finder aggregates qualifying repositories across all search pages.
type Finder struct {
	client  github.Client
	owner   string
	logger  *slog.Logger
	tracker *metadata.Tracker
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger used for per-page debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// WithTracker records search statistics into tracker.
func WithTracker(tracker *metadata.Tracker) Option {
	return func(f *Finder) {
		f.tracker = tracker
	}
}

// NewFinder creates a Finder searching owner's public repositories.
func NewFinder(client github.Client, owner string, opts ...Option) *Finder {
	f := &Finder{
		client:  client,
		owner:   owner,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracker: metadata.New(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tracker returns the statistics tracker of the Finder.
func (f *Finder) Tracker() *metadata.Tracker {
	return f.tracker
}

// Recent returns up to n of the owner's repositories with the most recent
// last release, newest first. Repositories sharing a publish time keep the
// order in which the search returned them.
//
// All pages are fetched before sorting. An error on any page aborts the
// search and is returned as-is; no partial result is returned.
func (f *Finder) Recent(ctx context.Context, n int) ([]Repository, error) {
	all, err := f.collect(ctx)
	if err != nil {
		return nil, err
	}

	sortByLastRelease(all)

	if n < 0 {
		n = 0
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// collect follows the search cursor until the server reports no further page.
func (f *Finder) collect(ctx context.Context) ([]Repository, error) {
	var (
		repositories []Repository
		cursor       *string
		hasMore      = true
		pageNum      = 0
	)

	for hasMore {
		pageNum++
		req := github.NewSearchRequest(f.owner, cursor)
		f.logger.Debug("fetching search page", "page", pageNum, "request", req.String())

		f.tracker.IncrementAPICall()
		page, err := f.client.SearchRepositories(ctx, req)
		if err != nil {
			f.logger.Debug("search page failed", "page", pageNum, "error", err)
			return nil, err
		}
		f.tracker.RecordPage()

		for _, node := range page.Repositories {
			if node.IsArchived {
				f.tracker.RecordArchived()
				continue
			}
			if len(node.Releases.Releases) == 0 {
				f.tracker.RecordUnreleased()
				continue
			}

			repo, err := NewRepository(node)
			if err != nil {
				return nil, err
			}
			f.tracker.RecordQualified(repo.LastRelease.Published)
			repositories = append(repositories, repo)
		}

		f.logger.Debug("fetched search page",
			"page", pageNum,
			"nodes", len(page.Repositories),
			"has_next_page", page.HasNextPage)

		next := page.EndCursor
		cursor = &next
		hasMore = page.HasNextPage
	}

	return repositories, nil
}

// sortByLastRelease orders repositories by last release publish time,
// newest first, keeping discovery order for equal times.
func sortByLastRelease(repos []Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].LastRelease.Published.After(repos[j].LastRelease.Published)
	})
}
