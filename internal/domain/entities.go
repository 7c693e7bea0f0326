package domain

import (
	"fmt"
	"time"
)

// Track represents one generated track in the user's remote library
type Track struct {
	ID        string        // Soundry track identifier
	Title     string        // Display title
	Prompt    string        // Generation prompt (may be empty)
	Formats   []string      // Available download formats, e.g. "mp3", "wav"
	Duration  time.Duration // Track length
	CreatedAt int64         // Unix timestamp when the track was generated
}

// HasFormat reports whether the track offers the given download format
func (t Track) HasFormat(format string) bool {
	for _, f := range t.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// PickFormat returns the preferred format when the track offers it,
// otherwise the first available variant. Empty when the track has none.
func (t Track) PickFormat(preferred string) string {
	if t.HasFormat(preferred) {
		return preferred
	}
	if len(t.Formats) > 0 {
		return t.Formats[0]
	}
	return ""
}

// FormattedDuration returns the duration in a human-readable format
func (t Track) FormattedDuration() string {
	mins := int(t.Duration.Minutes())
	secs := int(t.Duration.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// ArchiveEntry is one archived track recorded in the local catalog
type ArchiveEntry struct {
	TrackID    string    `json:"track_id"`
	Title      string    `json:"title"`
	Format     string    `json:"format"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ArchivedAt time.Time `json:"archived_at"`
}

// FormattedSize returns the file size in a human-readable format
func (e ArchiveEntry) FormattedSize() string {
	const mb = 1024 * 1024
	if e.Size <= 0 {
		return ""
	}
	if e.Size >= mb {
		return fmt.Sprintf("%.1f MB", float64(e.Size)/float64(mb))
	}
	return fmt.Sprintf("%d KB", e.Size/1024)
}
