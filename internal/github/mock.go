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
	"fmt"

	relerrors "github.com/sirseerhq/readme-rel/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
// It serves Pages in order, one per call.
type MockClient struct {
	// Pages to return, in call order
	Pages []RepositoryPage

	// Error to return
	Error error

	// FailOnCall makes the Nth call (1-based) return Error. Zero fails every call
	// when Error is set.
	FailOnCall int

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount int
	Requests  []SearchRequest
}

// NewMockClient creates a new mock client serving the given pages.
func NewMockClient(pages ...RepositoryPage) *MockClient {
	return &MockClient{
		Pages: pages,
	}
}

// SearchRepositories implements the Client interface
func (m *MockClient) SearchRepositories(ctx context.Context, req SearchRequest) (*RepositoryPage, error) {
	m.CallCount++
	m.Requests = append(m.Requests, req)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", relerrors.ErrInvalidToken)
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", relerrors.ErrNetworkFailure)
	}

	if m.Error != nil && (m.FailOnCall == 0 || m.FailOnCall == m.CallCount) {
		return nil, m.Error
	}

	if m.CallCount > len(m.Pages) {
		return nil, fmt.Errorf("mock client: unexpected call %d, only %d pages configured", m.CallCount, len(m.Pages))
	}

	page := m.Pages[m.CallCount-1]
	return &page, nil
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPages sets the pages to return
func WithPages(pages ...RepositoryPage) MockClientOption {
	return func(m *MockClient) {
		m.Pages = pages
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithErrorOnCall makes only the nth call return err
func WithErrorOnCall(n int, err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
		m.FailOnCall = n
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
