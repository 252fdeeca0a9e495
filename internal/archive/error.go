package archive

import "errors"

// Error definitions for the archive package.
var (
	// ErrExtract marks a failed archive extraction or cleanup.
	ErrExtract = errors.New("failed to extract archive")
)
