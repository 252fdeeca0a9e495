package model

import "errors"

// Error definitions for the model package.
var (
	// ErrNoZipFound means the staging directory holds no archive to install.
	ErrNoZipFound = errors.New("zip file was not found")
)
