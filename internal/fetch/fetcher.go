// Package fetch resolves model source URLs and stages the referenced
// archives locally.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/BF667/bfrvc/internal/config"
	"github.com/BF667/bfrvc/internal/gdrive"
	"github.com/BF667/bfrvc/internal/htmlscan"
	httplocal "github.com/BF667/bfrvc/internal/http"
	"github.com/BF667/bfrvc/internal/xfs"
)

const listingHost = "https://huggingface.co"

// Fetcher downloads a source URL into the staging directory using the
// strategy its classification selects.
type Fetcher struct {
	cfg    *config.Config
	client *httplocal.Client
	scans  *htmlscan.Factory
	drive  *gdrive.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the HTTP client.
func WithClient(client *httplocal.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithScanFactory overrides the listing-page collector factory.
func WithScanFactory(scans *htmlscan.Factory) Option {
	return func(f *Fetcher) {
		f.scans = scans
	}
}

// WithDriveClient overrides the Google Drive client.
func WithDriveClient(drive *gdrive.Client) Option {
	return func(f *Fetcher) {
		f.drive = drive
	}
}

// New creates a Fetcher for the given configuration. All fetch paths
// share one cookie jar and user agent.
func New(cfg *config.Config, opts ...Option) *Fetcher {
	f := &Fetcher{cfg: cfg}
	for _, fn := range opts {
		fn(f)
	}

	if f.client == nil {
		jar, _ := cookiejar.New(nil)
		conf := []func(*httplocal.Client){
			httplocal.SetCookieJar(jar),
			httplocal.SetTimeout(cfg.Timeout()),
		}
		if cfg.UserAgent != "" {
			conf = append(conf, httplocal.SetUserAgent(cfg.UserAgent))
		}
		f.client = httplocal.NewClient(conf...)
	}
	if f.scans == nil {
		f.scans = htmlscan.NewFactory(
			htmlscan.SetCookieJar(f.client.Jar),
			htmlscan.SetUserAgent(f.client.UserAgentString()),
		)
	}
	if f.drive == nil {
		f.drive = gdrive.New(f.client)
	}

	return f
}

// Fetch downloads the archive referenced by rawURL into destDir and
// returns the saved file path. After a successful save, staged file
// names are scrubbed of path separators.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string, progress httplocal.Progresser) (string, error) {
	strategy := Classify(rawURL)
	slog.Info("Fetching model archive", "url", rawURL, "strategy", strategy.String())

	var (
		path string
		err  error
	)
	switch strategy {
	case StrategyGoogleDrive:
		path, err = f.fetchDrive(ctx, rawURL, destDir, progress)
	case StrategyDirectFile:
		path, err = f.download(ctx, resolveBlobURL(rawURL), destDir, progress)
	case StrategyListing:
		path, err = f.fetchListing(ctx, rawURL, destDir, progress)
	default:
		path, err = f.download(ctx, rawURL, destDir, progress)
	}
	if err != nil {
		return "", err
	}

	if err := xfs.SanitizeNames(destDir); err != nil {
		return "", fmt.Errorf("failed to sanitize staged file names: %w", err)
	}

	return path, nil
}

func (f *Fetcher) fetchDrive(ctx context.Context, rawURL, destDir string, progress httplocal.Progresser) (string, error) {
	id, err := DriveFileID(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: missing google drive file id in %s", err, rawURL)
	}

	return f.drive.Download(ctx, id, destDir, f.cfg.ChunkSize, progress)
}

func (f *Fetcher) fetchListing(ctx context.Context, rawURL, destDir string, progress httplocal.Progresser) (string, error) {
	link, err := f.scans.FirstZipLink(rawURL)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", fmt.Errorf("%w: %s", ErrNoArchive, rawURL)
	}

	link = resolveBlobURL(link)
	if !strings.HasPrefix(link, "http") {
		link = listingHost + link
	}
	slog.Info("Listing link selected", "link", link)

	return f.download(ctx, link, destDir, progress)
}

// download is the shared tail of every non-drive strategy: streaming
// GET, status check, save.
func (f *Fetcher) download(ctx context.Context, rawURL, destDir string, progress httplocal.Progresser) (string, error) {
	resp, err := f.client.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &httplocal.DownloadError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	path, err := httplocal.SaveResponse(resp, destDir, f.cfg.ChunkSize, progress)
	if err != nil {
		return "", err
	}

	slog.Info("Archive saved", "path", path)
	return path, nil
}

// resolveBlobURL rewrites the first blob path segment to its
// direct-download resolve form. Other occurrences are left alone.
func resolveBlobURL(rawURL string) string {
	return strings.Replace(rawURL, "/blob/", "/resolve/", 1)
}
