package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFilename is used when the response carries no usable
// Content-Disposition header.
const DefaultFilename = "downloaded_file"

var filenamePattern = regexp.MustCompile(`filename="([^"]+)"`)

// Progresser receives byte counts while a download streams to disk.
type Progresser interface {
	Init(size int64)
	Update(count int64, size int64)
}

// NopProgresser discards progress updates.
type NopProgresser struct{}

func (NopProgresser) Init(size int64)                {}
func (NopProgresser) Update(count int64, size int64) {}

// SanitizeFilename flattens path separators to underscores so a
// server-provided name cannot escape the destination directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, `\`, "_")
}

// FilenameFromHeader extracts the target file name from a
// Content-Disposition header value. The value is URL-unescaped before
// matching; an absent or unparseable header yields DefaultFilename.
func FilenameFromHeader(header string) string {
	if unescaped, err := url.PathUnescape(header); err == nil {
		header = unescaped
	}

	m := filenamePattern.FindStringSubmatch(header)
	if m == nil {
		return DefaultFilename
	}

	return SanitizeFilename(m[1])
}

// SaveResponse streams the response body into dir in chunkSize windows,
// reporting cumulative progress after each chunk. It returns the path
// of the written file. The body is not closed.
func SaveResponse(resp *http.Response, dir string, chunkSize int, progress Progresser) (string, error) {
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	if progress == nil {
		progress = NopProgresser{}
	}

	name := FilenameFromHeader(resp.Header.Get("Content-Disposition"))
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	progress.Init(total)

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return "", fmt.Errorf("failed to write %s: %w", path, werr)
			}
			written += int64(n)
			progress.Update(written, total)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read response body: %w", err)
		}
	}

	return path, nil
}
