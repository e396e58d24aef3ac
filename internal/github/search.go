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

package github

import (
	"fmt"
	"strings"

	"github.com/shurcooL/graphql"
)

// SearchRequest describes a single page of the public repository search.
// It is the query document sent to GitHub minus the fixed selection set,
// which lives in the typed query struct of GraphQLClient.
type SearchRequest struct {
	// SearchQuery is the GitHub search string, e.g. "owner:sco1 is:public sort:updated".
	SearchQuery string

	// First is the page size. Always SearchPageSize for requests built by
	// NewSearchRequest.
	First int

	// After is the pagination cursor. nil requests the first page.
	After *string
}

// NewSearchRequest builds the search request for owner's public repositories,
// most recently updated first, starting after the given cursor.
func NewSearchRequest(owner string, after *string) SearchRequest {
	return SearchRequest{
		SearchQuery: buildSearchQuery(owner),
		First:       SearchPageSize,
		After:       after,
	}
}

// buildSearchQuery constructs a GitHub search query for an owner's public repositories.
func buildSearchQuery(owner string) string {
	parts := []string{
		fmt.Sprintf("owner:%s", owner),
		"is:public",
		"sort:updated",
	}
	return strings.Join(parts, " ")
}

// Variables returns the GraphQL variables for the request. A missing cursor
// is sent as a typed nil so that it encodes as the literal null; a present
// cursor encodes as a quoted string.
func (r SearchRequest) Variables() map[string]interface{} {
	var after *graphql.String
	if r.After != nil {
		after = graphql.NewString(graphql.String(*r.After))
	}

	return map[string]interface{}{
		"query": graphql.String(r.SearchQuery),
		"first": graphql.Int(int32(r.First)), // #nosec G115 - First is the fixed page size
		"after": after,
	}
}

// String renders the request arguments the way they appear in the search
// field of the query document. Used for debug logging.
func (r SearchRequest) String() string {
	after := "null"
	if r.After != nil {
		after = fmt.Sprintf("%q", *r.After)
	}
	return fmt.Sprintf("search(first: %d, type: REPOSITORY, query: %q, after: %s)", r.First, r.SearchQuery, after)
}
