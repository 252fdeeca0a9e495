package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BF667/bfrvc/internal/config"
	"github.com/BF667/bfrvc/internal/gdrive"
	httplocal "github.com/BF667/bfrvc/internal/http"
)

func testFetcher(opts ...Option) *Fetcher {
	return New(&config.Config{ChunkSize: 1024}, opts...)
}

func TestFetch_DirectFileRewritesBlob(t *testing.T) {
	payload := []byte("weights")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repo/resolve/main/model.zip" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="model.zip"`)
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	path, err := testFetcher().Fetch(context.Background(), server.URL+"/repo/blob/main/model.zip", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "model.zip"), path)
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, saved)
}

func TestFetch_GenericFailureWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	dir := t.TempDir()
	_, err := testFetcher().Fetch(context.Background(), server.URL+"/model.zip", dir, nil)

	var dlErr *httplocal.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, http.StatusGone, dlErr.StatusCode)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging directory must stay empty on failed downloads")
}

func TestFetch_ListingEndToEnd(t *testing.T) {
	payload := []byte("listed weights")

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/x/tree/main", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body>
			<a href="%s/x/blob/main/readme.md">readme</a>
			<a href="%s/x/blob/main/model.zip">model</a>
		</body></html>`, server.URL, server.URL)
	})
	mux.HandleFunc("/x/resolve/main/model.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="model.zip"`)
		w.Write(payload)
	})

	dir := t.TempDir()
	path, err := testFetcher().Fetch(context.Background(), server.URL+"/x/tree/main", dir, nil)
	require.NoError(t, err)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, saved)
}

func TestFetch_ListingWithoutArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><a href="/x/blob/main/model.pth">weights</a></body></html>`))
	}))
	defer server.Close()

	_, err := testFetcher().Fetch(context.Background(), server.URL+"/x/tree/main", t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNoArchive)
}

func TestFetch_GoogleDrive(t *testing.T) {
	payload := []byte("drive bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1A2b3C", r.URL.Query().Get("id"))
		w.Header().Set("Content-Disposition", `attachment; filename="drive.zip"`)
		w.Write(payload)
	}))
	defer server.Close()

	drive := gdrive.New(nil, gdrive.WithBaseURL(server.URL+"/uc"))
	fetcher := testFetcher(WithDriveClient(drive))

	dir := t.TempDir()
	path, err := fetcher.Fetch(context.Background(), "https://drive.google.com/file/d/1A2b3C/view", dir, nil)
	require.NoError(t, err)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, saved)
}

func TestFetch_GoogleDriveInvalidURL(t *testing.T) {
	_, err := testFetcher().Fetch(context.Background(), "https://drive.google.com/drive/folders/", t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestFetch_ContentDispositionPathFlattened(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="my/model.zip"`)
		w.Write([]byte("x"))
	}))
	defer server.Close()

	dir := t.TempDir()
	path, err := testFetcher().Fetch(context.Background(), server.URL+"/dl", dir, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "my_model.zip"), path)
}
