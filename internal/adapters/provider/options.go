package provider

import (
	"net/http"

	"github.com/okian/rexbot/pkg/logger"
)

// ClientOption applies a configuration option to the HTTPClient.
type ClientOption func(*HTTPClient)

// WithToken sets the bearer token for provider requests.
func WithToken(token string) ClientOption {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// WithFetchLimit bounds the number of concurrent roster fetches.
func WithFetchLimit(limit int) ClientOption {
	return func(c *HTTPClient) {
		if limit > 0 {
			c.fetchLimit = limit
		}
	}
}

// WithHTTPClient sets a custom http.Client (e.g. for tests).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}
