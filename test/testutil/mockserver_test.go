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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestRepositoryBuilder(t *testing.T) {
	published := time.Date(2023, 5, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	node := NewRepositoryBuilder("xbmini-py").WithRelease("v0.4.0", published).WithReleaseCount(7).Build()

	if node["name"] != "xbmini-py" {
		t.Errorf("name = %v", node["name"])
	}
	if node["url"] != "https://github.com/sco1/xbmini-py" {
		t.Errorf("url = %v", node["url"])
	}
	if node["isArchived"] != false {
		t.Errorf("isArchived = %v", node["isArchived"])
	}

	releases := node["releases"].(map[string]interface{})
	if releases["totalCount"] != 7 {
		t.Errorf("totalCount = %v, want 7", releases["totalCount"])
	}
	nodes := releases["nodes"].([]map[string]interface{})
	if len(nodes) != 1 {
		t.Fatalf("expected 1 release node, got %d", len(nodes))
	}
	if nodes[0]["publishedAt"] != "2023-05-01T17:00:00Z" {
		t.Errorf("publishedAt = %v, want UTC RFC3339", nodes[0]["publishedAt"])
	}
	if nodes[0]["url"] != "https://github.com/sco1/xbmini-py/releases/tag/v0.4.0" {
		t.Errorf("release url = %v", nodes[0]["url"])
	}
}

func TestRepositoryBuilder_NoRelease(t *testing.T) {
	node := NewRepositoryBuilder("dotfiles").WithOwner("octocat").Archived().Build()

	if node["url"] != "https://github.com/octocat/dotfiles" {
		t.Errorf("url = %v", node["url"])
	}
	if node["isArchived"] != true {
		t.Errorf("isArchived = %v", node["isArchived"])
	}
	releases := node["releases"].(map[string]interface{})
	if releases["totalCount"] != 0 {
		t.Errorf("totalCount = %v, want 0", releases["totalCount"])
	}
	if nodes := releases["nodes"].([]map[string]interface{}); len(nodes) != 0 {
		t.Errorf("expected no release nodes, got %d", len(nodes))
	}
}

func TestSearchResponseBuilder(t *testing.T) {
	resp := NewSearchResponseBuilder().
		WithRepositories(NewRepositoryBuilder("a"), NewRepositoryBuilder("b")).
		WithPagination(true, "cursor-1").
		Build()

	search := resp["data"].(map[string]interface{})["search"].(map[string]interface{})
	if n := len(search["nodes"].([]map[string]interface{})); n != 2 {
		t.Errorf("expected 2 nodes, got %d", n)
	}
	pageInfo := search["pageInfo"].(map[string]interface{})
	if pageInfo["hasNextPage"] != true {
		t.Error("hasNextPage should be true")
	}
	if cursor := pageInfo["endCursor"].(*string); *cursor != "cursor-1" {
		t.Errorf("endCursor = %s", *cursor)
	}

	last := NewSearchResponseBuilder().Build()
	pageInfo = last["data"].(map[string]interface{})["search"].(map[string]interface{})["pageInfo"].(map[string]interface{})
	if pageInfo["endCursor"].(*string) != nil {
		t.Error("endCursor should be nil on the last page")
	}

	errResp := NewSearchResponseBuilder().WithError("boom").Build()
	if _, ok := errResp["data"]; ok {
		t.Error("error response should not carry data")
	}
	if errs := errResp["errors"].([]map[string]interface{}); errs[0]["message"] != "boom" {
		t.Errorf("error message = %v", errs[0]["message"])
	}
}

func TestSearchServer(t *testing.T) {
	first := NewSearchResponseBuilder().WithRepositories(NewRepositoryBuilder("a")).WithPagination(true, "c1").Build()
	second := NewSearchResponseBuilder().WithRepositories(NewRepositoryBuilder("b")).Build()
	server := NewSearchServer(t, first, second)

	post := func(after interface{}) map[string]interface{} {
		body, _ := json.Marshal(map[string]interface{}{
			"query":     "query{search{nodes}}",
			"variables": map[string]interface{}{"after": after},
		})
		resp, err := http.Post(server.Endpoint(), "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		var out map[string]interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		return out
	}

	if _, ok := post(nil)["data"]; !ok {
		t.Error("first response should carry data")
	}
	if _, ok := post("c1")["data"]; !ok {
		t.Error("second response should carry data")
	}
	if _, ok := post("c2")["errors"]; !ok {
		t.Error("extra request should get a GraphQL error")
	}

	if server.RequestCount() != 3 {
		t.Errorf("RequestCount() = %d, want 3", server.RequestCount())
	}
	requests := server.Requests()
	if len(requests) != 3 {
		t.Fatalf("expected 3 recorded requests, got %d", len(requests))
	}
	if requests[0].Variables["after"] != nil {
		t.Errorf("first after = %v, want nil", requests[0].Variables["after"])
	}
	if requests[1].Variables["after"] != "c1" {
		t.Errorf("second after = %v, want c1", requests[1].Variables["after"])
	}
}

func TestMockServer_BodyStaysReadable(t *testing.T) {
	var seen string
	server := NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		AssertGraphQLRequest(t, r)
		data, _ := io.ReadAll(r.Body)
		seen = string(data)
		w.WriteHeader(http.StatusOK)
	})

	body := `{"query":"q","variables":{}}`
	resp, err := http.Post(server.Endpoint(), "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if seen != body {
		t.Errorf("handler saw %q, want %q", seen, body)
	}
	if got := server.Requests()[0].Query; got != "q" {
		t.Errorf("recorded query = %q", got)
	}
}

func TestErrorServer(t *testing.T) {
	server := NewErrorServer(t, http.StatusUnauthorized)

	resp, err := http.Post(server.Endpoint(), "application/json", bytes.NewBufferString("{}"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if server.RequestCount() != 1 {
		t.Errorf("RequestCount() = %d, want 1", server.RequestCount())
	}
}
