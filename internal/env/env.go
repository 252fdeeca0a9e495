package env

import (
	"os"
	"strings"

	"github.com/BF667/bfrvc/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"

	// Production enables structured JSON logging.
	Production Environment = "production"
)

// FromEnv resolves the environment from BFRVC_ENV. Empty or unknown
// values fall back to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.BfrvcEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
