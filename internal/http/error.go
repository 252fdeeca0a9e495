package http

import "fmt"

// DownloadError reports a non-success status while fetching a file.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed with status code %d: %s", e.StatusCode, e.URL)
}
