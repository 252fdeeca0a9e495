package fetch

import "errors"

// Error definitions for the fetch package.
var (
	// ErrInvalidSource marks a source URL no strategy can work with,
	// such as a drive link without a file ID.
	ErrInvalidSource = errors.New("invalid source url")

	// ErrNoArchive marks a listing page without any zip link.
	ErrNoArchive = errors.New("no zip archive found in listing")
)
