package domain

import (
	"context"
	"io"
)

// LibrarySource is the remote API surface the archiver consumes.
// Implementations map transport failures to ErrServerOffline and
// rejected credentials to ErrAuthFailed.
type LibrarySource interface {
	// ValidateToken checks the configured credential against the API.
	// An invalid credential is a fatal startup condition, never retried.
	ValidateToken(ctx context.Context) error

	// FetchTracks returns one page of the user's library.
	// Returns (tracks, totalSize, error) for pagination support.
	FetchTracks(ctx context.Context, offset, limit int) ([]Track, int, error)

	// DownloadURL builds the download location for a track variant.
	// Pure string construction, no network call.
	DownloadURL(trackID, format string) string

	// OpenDownload opens the byte stream behind a download URL.
	// The caller owns the returned reader and must close it.
	OpenDownload(ctx context.Context, url string) (io.ReadCloser, error)
}

// ProgressStore persists ProgressState between runs
type ProgressStore interface {
	// Load returns the persisted state, or fresh defaults when the
	// record is missing or unreadable.
	Load() ProgressState

	// Save persists the full record. Callers treat failures as
	// non-fatal; the in-memory state stays authoritative.
	Save(state ProgressState) error

	// Reset produces and persists a fresh default state.
	Reset() ProgressState
}

// ArchiveIndex records successfully archived tracks for later listing
type ArchiveIndex interface {
	// Record stores one archive entry keyed by track id.
	Record(entry ArchiveEntry) error
}
