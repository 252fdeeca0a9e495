package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultChunkSize is the streaming window for downloads, in bytes.
const DefaultChunkSize = 1024

// DefaultBasePath returns the default base directory for staged
// archives and extracted models.
func DefaultBasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bfrvc")
	}

	return filepath.Join(home, ".bfrvc")
}

// DefaultConfigPath returns the default path for the bfrvc config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "bfrvc", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "bfrvc")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "bfrvc")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "bfrvc")
		}
		return filepath.Join(home, ".config", "bfrvc")
	}
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	return &Config{
		BasePath:  DefaultBasePath(),
		ChunkSize: DefaultChunkSize,
	}
}
