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

// Package testutil provides common test helpers for readme-rel
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// GraphQLRequest is a decoded GraphQL request body
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// MockServer provides common mock server configurations for testing
type MockServer struct {
	*httptest.Server
	requestCount int32

	mu       sync.Mutex
	requests []GraphQLRequest
}

// RequestCount returns how many requests reached the server
func (m *MockServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// Requests returns the decoded GraphQL requests in arrival order
func (m *MockServer) Requests() []GraphQLRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GraphQLRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Endpoint returns the GraphQL endpoint URL of the server
func (m *MockServer) Endpoint() string {
	return m.URL + "/graphql"
}

func (m *MockServer) record(r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var req GraphQLRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return
	}
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
}

// NewMockServer creates a mock server that records each request before
// passing it to handler. The request body stays readable for handler.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.record(r)
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// NewSearchServer creates a mock server that serves the given search
// responses in order, one per request. Requests beyond the last response
// get a GraphQL error.
func NewSearchServer(t *testing.T, responses ...map[string]interface{}) *MockServer {
	t.Helper()
	var served int32

	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		idx := int(atomic.AddInt32(&served, 1)) - 1

		response := NewSearchResponseBuilder().WithError("unexpected extra page request").Build()
		if idx < len(responses) {
			response = responses[idx]
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// AssertGraphQLRequest validates a GraphQL request structure
func AssertGraphQLRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if r.URL.Path != "/graphql" {
		t.Errorf("Unexpected path: %s", r.URL.Path)
	}
	if r.Method != "POST" {
		t.Errorf("Expected POST method, got: %s", r.Method)
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got: %s", ct)
	}
}
