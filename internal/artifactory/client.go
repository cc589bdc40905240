// Package artifactory talks to the Artifactory AQL search endpoint.
package artifactory

import (
	"context"
	"fmt"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/harness/ar-stats/internal/http"
	"github.com/harness/ar-stats/internal/http/auth/basic"
	"github.com/harness/ar-stats/util/common/errors"

	"github.com/rs/zerolog/log"
)

const searchPath = "/api/search/aql"

// Options configures a Client
type Options struct {
	URL      string
	Username string
	Password string
	// Insecure skips TLS certificate verification.
	Insecure bool
	// Timeout bounds a single request. Zero means no limit.
	Timeout time.Duration
}

// Client runs AQL queries against one Artifactory instance
type Client struct {
	client    *http.Client
	transport *nethttp.Client
	url       string
}

// NewClient constructs an Artifactory client using basic auth
func NewClient(opts Options) *Client {
	transport := &nethttp.Client{
		Transport: http.GetHTTPTransport(http.WithInsecure(opts.Insecure)),
		Timeout:   opts.Timeout,
	}
	return &Client{
		client:    http.NewClient(transport, basic.NewAuthorizer(opts.Username, opts.Password)),
		transport: transport,
		url:       strings.TrimSuffix(opts.URL, "/"),
	}
}

// Insecure reports whether certificate verification is disabled
func (c *Client) Insecure() bool {
	return http.IsInsecure(c.transport)
}

// SearchURL is the endpoint queries are posted to
func (c *Client) SearchURL() string {
	return c.url + searchPath
}

// Search posts query and returns the decoded response body.
// Transport failures and non-2xx responses are returned as errors.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	log.Debug().Str("url", c.SearchURL()).Bool("insecure", c.Insecure()).Msg("Executing AQL query")

	var resp SearchResponse
	if err := c.client.PostText(ctx, c.SearchURL(), query, &resp); err != nil {
		return nil, fmt.Errorf("execute aql query: %w", err)
	}

	log.Debug().Int("results", len(resp.Results)).Msg("AQL query succeeded")
	return &resp, nil
}

// StatusCode extracts the HTTP status from a Search error, or 0 for
// transport failures
func StatusCode(err error) int {
	var respErr *http.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}
