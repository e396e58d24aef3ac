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
	"io"
	"net"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"

	relerrors "github.com/sirseerhq/readme-rel/internal/errors"
	"github.com/sirseerhq/readme-rel/pkg/version"
)

// Default transport timeouts. The read timeout bounds the wait for response
// headers after the request is written.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 15 * time.Second

	maxResponseSize = 10 * 1024 * 1024 // 10MB
)

// ClientOptions configures the HTTP behaviour of a GraphQLClient.
// Zero values fall back to the defaults above.
type ClientOptions struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// GraphQLClient implements the GitHub Client interface using GraphQL API.
type GraphQLClient struct {
	client *graphql.Client
}

// searchQuery is the fixed repository search document. For each repository it
// selects name, URL, archive flag, total release count and the newest release.
type searchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage graphql.Boolean
			EndCursor   graphql.String
		}
		Nodes []struct {
			Repository struct {
				Name       graphql.String
				URL        graphql.String
				IsArchived graphql.Boolean
				Releases   struct {
					TotalCount graphql.Int
					Nodes      []struct {
						TagName     graphql.String
						PublishedAt graphql.String
						URL         graphql.String
					}
				} `graphql:"releases(orderBy: {field: CREATED_AT, direction: DESC}, first: 1)"`
			} `graphql:"... on Repository"`
		}
	} `graphql:"search(first: $first, type: REPOSITORY, query: $query, after: $after)"`
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided token and endpoint.
// The client is configured with:
//   - Bearer authentication via an oauth2 static token source
//   - Fixed connect and read timeouts
//   - User-Agent header and a response size limit
//
// An empty token is rejected with ErrMissingToken so that no request can be
// issued without a credential.
func NewGraphQLClient(token, endpoint string, opts ClientOptions) (*GraphQLClient, error) {
	if token == "" {
		return nil, relerrors.ErrMissingToken
	}

	return &GraphQLClient{
		client: graphql.NewClient(endpoint, newHTTPClient(token, opts)),
	}, nil
}

// newHTTPClient assembles the transport chain:
// headerTransport -> oauth2.Transport -> http.Transport.
func newHTTPClient(token string, opts ClientOptions) *http.Client {
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: &headerTransport{
			base: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
				Base:   base,
			},
		},
	}
}

// SearchRepositories executes one page of the repository search.
// Errors from the GraphQL client are returned unchanged.
func (c *GraphQLClient) SearchRepositories(ctx context.Context, req SearchRequest) (*RepositoryPage, error) {
	var query searchQuery
	if err := c.client.Query(ctx, &query, req.Variables()); err != nil {
		return nil, err
	}

	page := &RepositoryPage{
		HasNextPage:  bool(query.Search.PageInfo.HasNextPage),
		EndCursor:    string(query.Search.PageInfo.EndCursor),
		Repositories: make([]RepositoryNode, 0, len(query.Search.Nodes)),
	}

	for _, node := range query.Search.Nodes {
		repo := node.Repository
		rn := RepositoryNode{
			Name:       string(repo.Name),
			URL:        string(repo.URL),
			IsArchived: bool(repo.IsArchived),
			Releases: ReleaseSummary{
				TotalCount: int(repo.Releases.TotalCount),
				Releases:   make([]ReleaseNode, 0, len(repo.Releases.Nodes)),
			},
		}
		for _, rel := range repo.Releases.Nodes {
			rn.Releases.Releases = append(rn.Releases.Releases, ReleaseNode{
				TagName:     string(rel.TagName),
				PublishedAt: string(rel.PublishedAt),
				URL:         string(rel.URL),
			})
		}
		page.Repositories = append(page.Repositories, rn)
	}

	return page, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// headerTransport adds the User-Agent header and the response size limit.
// Authentication is handled by the oauth2 transport underneath.
type headerTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", fmt.Sprintf("readme-rel/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseSize,
		}
	}

	return resp, nil
}
