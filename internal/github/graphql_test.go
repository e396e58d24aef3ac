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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	relerrors "github.com/sirseerhq/readme-rel/internal/errors"
)

type graphQLRequest struct {
	Query     string                     `json:"query"`
	Variables map[string]json.RawMessage `json:"variables"`
}

func TestNewGraphQLClient(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantError error
	}{
		{
			name:  "valid client",
			token: "test-token",
		},
		{
			name:      "empty token",
			token:     "",
			wantError: relerrors.ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewGraphQLClient(tt.token, "https://api.github.com/graphql", ClientOptions{})
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("expected %v, got %v", tt.wantError, err)
				}
				if client != nil {
					t.Error("expected nil client")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Verify it implements the Client interface
			var _ Client = client
		})
	}
}

func TestGraphQLClient_SearchRepositories(t *testing.T) {
	tests := []struct {
		name          string
		after         *string
		response      interface{}
		responseCode  int
		wantError     bool
		wantAfter     string
		wantRepos     int
		wantHasNext   bool
		wantEndCursor string
	}{
		{
			name:  "first page with pagination",
			after: nil,
			response: searchResponse(true, "Y3Vyc29yOjUw",
				repositoryNode("xbmini-py", false, 5, releaseNode("v0.5.0", "2025-01-06T20:44:16Z")),
				repositoryNode("no-releases", false, 0),
			),
			responseCode:  http.StatusOK,
			wantAfter:     `null`,
			wantRepos:     2,
			wantHasNext:   true,
			wantEndCursor: "Y3Vyc29yOjUw",
		},
		{
			name:          "later page sends quoted cursor",
			after:         stringPtr("Y3Vyc29yOjUw"),
			response:      searchResponse(false, "", repositoryNode("zwom", true, 2, releaseNode("v0.3.0", "2022-11-07T23:57:27Z"))),
			responseCode:  http.StatusOK,
			wantAfter:     `"Y3Vyc29yOjUw"`,
			wantRepos:     1,
			wantHasNext:   false,
			wantEndCursor: "",
		},
		{
			name: "graphql error is returned",
			response: map[string]interface{}{
				"errors": []interface{}{
					map[string]interface{}{"message": "Could not resolve to a User with the login of 'ghost'."},
				},
			},
			responseCode: http.StatusOK,
			wantAfter:    `null`,
			wantError:    true,
		},
		{
			name:         "authentication error",
			response:     map[string]interface{}{"message": "Bad credentials"},
			responseCode: http.StatusUnauthorized,
			wantAfter:    `null`,
			wantError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/graphql" {
					t.Errorf("expected path /graphql, got %s", r.URL.Path)
				}
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
					t.Errorf("expected Bearer test-token, got %s", auth)
				}
				if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "readme-rel/") {
					t.Errorf("unexpected User-Agent %q", ua)
				}

				var req graphQLRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if got := string(req.Variables["after"]); got != tt.wantAfter {
					t.Errorf("after = %s, want %s", got, tt.wantAfter)
				}
				if !strings.Contains(req.Query, "search(first: $first, type: REPOSITORY, query: $query, after: $after)") {
					t.Errorf("unexpected query document: %s", req.Query)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.responseCode)
				_ = json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client, err := NewGraphQLClient("test-token", server.URL+"/graphql", ClientOptions{})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			req := NewSearchRequest("sco1", tt.after)
			page, err := client.SearchRepositories(context.Background(), req)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.Repositories) != tt.wantRepos {
				t.Errorf("expected %d repositories, got %d", tt.wantRepos, len(page.Repositories))
			}
			if page.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", page.HasNextPage, tt.wantHasNext)
			}
			if page.EndCursor != tt.wantEndCursor {
				t.Errorf("EndCursor = %q, want %q", page.EndCursor, tt.wantEndCursor)
			}
		})
	}
}

func TestGraphQLClient_SearchRepositories_Decoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse(false, "",
			repositoryNode("xbmini-py", false, 5, releaseNode("v0.5.0", "2025-01-06T20:44:16Z")),
			repositoryNode("empty", true, 0),
		))
	}))
	defer server.Close()

	client, err := NewGraphQLClient("test-token", server.URL+"/graphql", ClientOptions{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	page, err := client.SearchRepositories(context.Background(), NewSearchRequest("sco1", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := RepositoryNode{
		Name:       "xbmini-py",
		URL:        "https://github.com/sco1/xbmini-py",
		IsArchived: false,
		Releases: ReleaseSummary{
			TotalCount: 5,
			Releases: []ReleaseNode{{
				TagName:     "v0.5.0",
				PublishedAt: "2025-01-06T20:44:16Z",
				URL:         "https://github.com/sco1/xbmini-py/releases/tag/v0.5.0",
			}},
		},
	}

	got := page.Repositories[0]
	if got.Name != want.Name || got.URL != want.URL || got.IsArchived != want.IsArchived {
		t.Errorf("repository = %+v, want %+v", got, want)
	}
	if got.Releases.TotalCount != want.Releases.TotalCount {
		t.Errorf("TotalCount = %d, want %d", got.Releases.TotalCount, want.Releases.TotalCount)
	}
	if len(got.Releases.Releases) != 1 || got.Releases.Releases[0] != want.Releases.Releases[0] {
		t.Errorf("releases = %+v, want %+v", got.Releases.Releases, want.Releases.Releases)
	}

	empty := page.Repositories[1]
	if !empty.IsArchived {
		t.Error("expected second repository to be archived")
	}
	if len(empty.Releases.Releases) != 0 {
		t.Errorf("expected no release nodes, got %d", len(empty.Releases.Releases))
	}
}

func TestLimitedReader(t *testing.T) {
	lr := &limitedReader{
		ReadCloser: readCloser{strings.NewReader(strings.Repeat("x", 32))},
		limit:      16,
	}

	buf := make([]byte, 64)
	n, err := lr.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error on first read: %v", err)
	}
	if n != 16 {
		t.Errorf("expected 16 bytes, got %d", n)
	}

	if _, err := lr.Read(buf); err == nil {
		t.Error("expected limit error on second read")
	}
}

type readCloser struct {
	*strings.Reader
}

func (readCloser) Close() error { return nil }

func searchResponse(hasNext bool, cursor string, nodes ...map[string]interface{}) map[string]interface{} {
	var endCursor interface{}
	if cursor != "" {
		endCursor = cursor
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"search": map[string]interface{}{
				"pageInfo": map[string]interface{}{
					"hasNextPage": hasNext,
					"endCursor":   endCursor,
				},
				"nodes": nodes,
			},
		},
	}
}

func repositoryNode(name string, archived bool, total int, releases ...map[string]interface{}) map[string]interface{} {
	if releases == nil {
		releases = []map[string]interface{}{}
	}
	url := "https://github.com/sco1/" + name
	for _, r := range releases {
		r["url"] = url + "/releases/tag/" + r["tagName"].(string)
	}
	return map[string]interface{}{
		"name":       name,
		"url":        url,
		"isArchived": archived,
		"releases": map[string]interface{}{
			"totalCount": total,
			"nodes":      releases,
		},
	}
}

func releaseNode(tag, published string) map[string]interface{} {
	return map[string]interface{}{
		"tagName":     tag,
		"publishedAt": published,
	}
}
