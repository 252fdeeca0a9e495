package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BF667/bfrvc/internal/envvar"
	"github.com/BF667/bfrvc/internal/xfs"
)

// Config holds the runtime configuration for the fetcher.
type Config struct {
	// BasePath is the root of the working tree. Staged archives land in
	// <base>/logs/zips and extracted models in <base>/logs/<model>.
	BasePath string `json:"base_path,omitempty" yaml:"base_path,omitempty"`

	// UserAgent overrides the HTTP user agent string. Empty means the
	// built-in browser-like default.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`

	// ChunkSize is the window, in bytes, for streaming downloads to disk.
	ChunkSize int `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty"`

	// TimeoutSeconds bounds every HTTP request. Zero means no limit.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// LogsPath returns the directory extracted models are placed under.
func (c *Config) LogsPath() string {
	return filepath.Join(c.BasePath, "logs")
}

// ZipsPath returns the staging directory downloaded archives land in.
func (c *Config) ZipsPath() string {
	return filepath.Join(c.LogsPath(), "zips")
}

// ModelPath returns the target directory for a named model.
func (c *Config) ModelPath(name string) string {
	return filepath.Join(c.LogsPath(), name)
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ApplyEnv applies BFRVC_* environment overrides on top of the loaded
// values. Precedence: environment, then config file, then defaults.
func (c *Config) ApplyEnv() {
	if p := os.Getenv(envvar.BfrvcBasePath); p != "" {
		c.BasePath = xfs.ExpandTilde(p)
	}
	if ua := os.Getenv(envvar.BfrvcUserAgent); ua != "" {
		c.UserAgent = ua
	}
}
