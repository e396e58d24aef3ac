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

// Package metadata provides functionality for tracking and persisting
// statistics about a release search. It records the number of pages and API
// calls, how many repositories were dropped by each filter, and the span of
// release dates that qualified.
//
// Metadata can be written as indented JSON to a file or any io.Writer.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// QueryVersion identifies the shape of the repository search query
	QueryVersion = "graphql-search-releases-v1"
)

// Tracker collects statistics during a search operation and generates metadata.
// Create a new tracker at the start of each search and call its methods to
// record activity. A Tracker is not safe for concurrent use.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	pages        int
	repoStats    RepoStats
}

// RepoStats holds the filter outcome counts and the release date span.
type RepoStats struct {
	Seen       int       // Repositories returned by the search
	Archived   int       // Dropped because archived
	Unreleased int       // Dropped because no release exists
	Qualified  int       // Kept
	Oldest     time.Time // Earliest last-release publish time among qualified
	Newest     time.Time // Latest last-release publish time among qualified
}

// New creates a new metadata tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records that an API call was made, successful or not.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// RecordPage records a successfully fetched page.
func (t *Tracker) RecordPage() {
	t.pages++
}

// RecordArchived records a repository dropped because it is archived.
func (t *Tracker) RecordArchived() {
	t.repoStats.Seen++
	t.repoStats.Archived++
}

// RecordUnreleased records a repository dropped because it has no release.
func (t *Tracker) RecordUnreleased() {
	t.repoStats.Seen++
	t.repoStats.Unreleased++
}

// RecordQualified records a kept repository and widens the release date span.
func (t *Tracker) RecordQualified(published time.Time) {
	t.repoStats.Seen++
	t.repoStats.Qualified++

	if t.repoStats.Oldest.IsZero() || published.Before(t.repoStats.Oldest) {
		t.repoStats.Oldest = published
	}
	if published.After(t.repoStats.Newest) {
		t.repoStats.Newest = published
	}
}

// Stats returns a copy of the repository statistics collected so far.
func (t *Tracker) Stats() RepoStats {
	return t.repoStats
}

// GenerateMetadata creates a FetchMetadata instance capturing the complete
// search statistics. returned is the number of repositories left after
// truncation.
func (t *Tracker) GenerateMetadata(toolVersion string, params FetchParams, returned int) *FetchMetadata {
	completedAt := time.Now()
	duration := completedAt.Sub(t.startTime)

	return &FetchMetadata{
		ToolVersion:  toolVersion,
		QueryVersion: QueryVersion,
		FetchID:      fmt.Sprintf("search-%d", t.startTime.Unix()),
		Parameters:   params,
		Results: FetchResults{
			PagesFetched:      t.pages,
			APICallCount:      t.apiCallCount,
			RepositoriesSeen:  t.repoStats.Seen,
			ArchivedSkipped:   t.repoStats.Archived,
			UnreleasedSkipped: t.repoStats.Unreleased,
			Qualified:         t.repoStats.Qualified,
			Returned:          returned,
			OldestRelease:     t.repoStats.Oldest,
			NewestRelease:     t.repoStats.Newest,
			Duration:          duration.String(),
			StartedAt:         t.startTime,
			CompletedAt:       completedAt,
		},
	}
}

// SaveMetadata writes a FetchMetadata record as JSON to path. The file is
// written to a temporary sibling and renamed into place.
func SaveMetadata(metadata *FetchMetadata, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadMetadata reads a metadata record previously written by SaveMetadata.
func LoadMetadata(path string) (*FetchMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var metadata FetchMetadata
	if err := json.NewDecoder(file).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &metadata, nil
}

// WriteMetadataToWriter serializes metadata to JSON and writes it to the
// provided io.Writer. The output is formatted with indentation for readability.
func WriteMetadataToWriter(metadata *FetchMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
