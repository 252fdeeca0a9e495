// Package gdrive downloads public Google Drive files, including the
// confirm-token exchange Drive requires for files too large to scan.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	httplocal "github.com/BF667/bfrvc/internal/http"
)

const (
	defaultBaseURL = "https://drive.google.com/uc"

	// Interstitial pages are tiny; anything larger is not one.
	maxPageBytes = 2 << 20
)

// ErrConfirmToken means the interstitial page held no usable token, so
// the file cannot be fetched without authorization.
var ErrConfirmToken = errors.New("could not obtain a google drive confirm token")

var confirmPattern = regexp.MustCompile(`confirm=([0-9A-Za-z_-]+)`)

// Client downloads Google Drive files by ID.
type Client struct {
	http    *httplocal.Client
	baseURL string
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different download endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// New creates a drive client. A nil http client gets a private one
// with its own cookie jar, which the token exchange depends on.
func New(client *httplocal.Client, opts ...Option) *Client {
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = httplocal.NewClient(httplocal.SetCookieJar(jar))
	}

	c := &Client{
		http:    client,
		baseURL: defaultBaseURL,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Download fetches the file with the given ID into dir and returns the
// saved path.
func (c *Client) Download(ctx context.Context, id, dir string, chunkSize int, progress httplocal.Progresser) (string, error) {
	u := fmt.Sprintf("%s?export=download&id=%s", c.baseURL, url.QueryEscape(id))

	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &httplocal.DownloadError{URL: u, StatusCode: resp.StatusCode}
	}

	if !isHTML(resp) {
		return httplocal.SaveResponse(resp, dir, chunkSize, progress)
	}

	// Large files get an interstitial page instead of the payload.
	confirmURL, err := c.confirmURL(resp, id)
	if err != nil {
		return "", err
	}

	confirmed, err := c.http.Get(ctx, confirmURL)
	if err != nil {
		return "", err
	}
	defer confirmed.Body.Close()

	if confirmed.StatusCode != http.StatusOK {
		return "", &httplocal.DownloadError{URL: confirmURL, StatusCode: confirmed.StatusCode}
	}
	if isHTML(confirmed) {
		return "", fmt.Errorf("%w: confirm request returned another page for id %s", ErrConfirmToken, id)
	}

	return httplocal.SaveResponse(confirmed, dir, chunkSize, progress)
}

// confirmURL derives the follow-up request from an interstitial
// response: the download form when present, otherwise a warning cookie
// or an embedded confirm token.
func (c *Client) confirmURL(resp *http.Response, id string) (string, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read interstitial page: %w", err)
	}

	if u, ok := formURL(resp, string(body)); ok {
		return u, nil
	}

	token := ""
	for _, cookie := range resp.Cookies() {
		if strings.HasPrefix(cookie.Name, "download_warning") {
			token = cookie.Value
			break
		}
	}
	if token == "" {
		if m := confirmPattern.FindStringSubmatch(string(body)); m != nil {
			token = m[1]
		}
	}
	if token == "" {
		return "", fmt.Errorf("%w for id %s", ErrConfirmToken, id)
	}

	q := url.Values{}
	q.Set("export", "download")
	q.Set("id", id)
	q.Set("confirm", token)
	return c.baseURL + "?" + q.Encode(), nil
}

// formURL rebuilds the request encoded in the interstitial download
// form, carrying over every hidden field.
func formURL(resp *http.Response, body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	form := doc.Find("form").First()
	action, ok := form.Attr("action")
	if !ok || action == "" {
		return "", false
	}

	q := url.Values{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		value, _ := input.Attr("value")
		if name != "" {
			q.Set(name, value)
		}
	})
	if q.Get("confirm") == "" {
		return "", false
	}

	ref, err := url.Parse(action)
	if err != nil {
		return "", false
	}
	resolved := resp.Request.URL.ResolveReference(ref)
	resolved.RawQuery = q.Encode()

	return resolved.String(), true
}

func isHTML(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "text/html")
}
