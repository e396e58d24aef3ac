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

// Package metadata types define the structures used for recording statistics
// about a release search: what was asked for and what the pagination loop saw.
package metadata

import (
	"time"
)

// FetchMetadata represents the complete metadata record for a single search
// operation. It records the parameters, the per-category filter counts and
// timing so that a run can be inspected after the fact.
type FetchMetadata struct {
	ToolVersion  string       `json:"tool_version"`
	QueryVersion string       `json:"query_version"`
	FetchID      string       `json:"fetch_id"`
	Parameters   FetchParams  `json:"parameters"`
	Results      FetchResults `json:"results"`
}

// FetchParams captures the input parameters used for a search operation.
type FetchParams struct {
	Owner    string `json:"owner"`
	Count    int    `json:"count"`
	PageSize int    `json:"page_size"`
}

// FetchResults contains statistics about a completed search. Every repository
// seen lands in exactly one of ArchivedSkipped, UnreleasedSkipped or Qualified.
type FetchResults struct {
	PagesFetched      int       `json:"pages_fetched"`
	APICallCount      int       `json:"api_calls_made"`
	RepositoriesSeen  int       `json:"repositories_seen"`
	ArchivedSkipped   int       `json:"archived_skipped"`
	UnreleasedSkipped int       `json:"unreleased_skipped"`
	Qualified         int       `json:"qualified"`
	Returned          int       `json:"returned"`
	OldestRelease     time.Time `json:"oldest_release_date"`
	NewestRelease     time.Time `json:"newest_release_date"`
	Duration          string    `json:"fetch_duration"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}
