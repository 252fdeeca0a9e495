package fetch

import "strings"

// Strategy selects how a source URL is fetched.
type Strategy int

const (
	// StrategyGeneric streams any direct URL.
	StrategyGeneric Strategy = iota

	// StrategyGoogleDrive goes through the drive confirm-token flow.
	StrategyGoogleDrive

	// StrategyDirectFile rewrites hosted-repository blob links to their
	// direct-download form.
	StrategyDirectFile

	// StrategyListing scans a repository file-tree page for an archive link.
	StrategyListing
)

func (s Strategy) String() string {
	switch s {
	case StrategyGoogleDrive:
		return "google_drive"
	case StrategyDirectFile:
		return "direct_file"
	case StrategyListing:
		return "listing"
	default:
		return "generic"
	}
}

// Classify inspects a source URL and picks the fetch strategy. Rules
// are checked in order; the first match wins.
func Classify(rawURL string) Strategy {
	switch {
	case strings.Contains(rawURL, "drive.google.com"):
		return StrategyGoogleDrive
	case strings.Contains(rawURL, "/blob/") || strings.Contains(rawURL, "/resolve/"):
		return StrategyDirectFile
	case strings.Contains(rawURL, "/tree/main"):
		return StrategyListing
	default:
		return StrategyGeneric
	}
}

// DriveFileID extracts the file identifier from a Google Drive URL.
// Both the path form (file/d/<id>/...) and the query form (id=<id>)
// are recognized.
func DriveFileID(rawURL string) (string, error) {
	if _, after, ok := strings.Cut(rawURL, "file/d/"); ok {
		if id, _, _ := strings.Cut(after, "/"); id != "" {
			return id, nil
		}
	}
	if _, after, ok := strings.Cut(rawURL, "id="); ok {
		if id, _, _ := strings.Cut(after, "&"); id != "" {
			return id, nil
		}
	}

	return "", ErrInvalidSource
}
