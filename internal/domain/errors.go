package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTrackNotFound indicates the requested track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrServerOffline indicates the Soundry API is unreachable
	ErrServerOffline = errors.New("soundry api is unreachable")

	// ErrAuthFailed indicates the access token is missing or invalid
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrAlreadyArchived indicates the destination file already exists
	ErrAlreadyArchived = errors.New("track already archived")
)
