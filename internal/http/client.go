// Package http provides the HTTP client shared by every fetch path.
// It carries a common cookie jar and user agent string.
package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// UserAgent mimics a desktop browser. Some mirrors refuse the default
// Go agent string.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client is the classic http client with a cookie jar and a given user agent string.
type Client struct {
	*http.Client
	userAgent string
	Jar       *cookiejar.Jar
}

// SetCookieJar is a configuration function to provide a cookie jar to the client.
func SetCookieJar(cj *cookiejar.Jar) func(c *Client) {
	return func(c *Client) {
		c.Jar = cj
		c.Client.Jar = cj
	}
}

// SetUserAgent is a configuration function to give a user agent string to the client.
func SetUserAgent(ua string) func(c *Client) {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// SetTimeout bounds every request made by the client. Zero keeps
// requests unbounded.
func SetTimeout(d time.Duration) func(c *Client) {
	return func(c *Client) {
		c.Client.Timeout = d
	}
}

// NewClient creates an HTTP client and configures it with a set of config functions.
func NewClient(conf ...func(c *Client)) *Client {
	c := &Client{
		Client:    &http.Client{},
		userAgent: UserAgent,
	}

	for _, f := range conf {
		f(c)
	}
	return c
}

// UserAgentString returns the agent string requests are sent with.
func (c *Client) UserAgentString() string {
	return c.userAgent
}

// Get issues a GET request and returns the raw response. The caller
// owns the body and is responsible for checking the status code.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}
