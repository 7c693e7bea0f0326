package soundry

import (
	"time"

	"github.com/soundry/reel/internal/domain"
)

// MapTracks converts API track DTOs to domain tracks
func MapTracks(items []TrackDTO) []domain.Track {
	tracks := make([]domain.Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, MapTrack(item))
	}
	return tracks
}

// MapTrack converts a single API track DTO to a domain track
func MapTrack(item TrackDTO) domain.Track {
	return domain.Track{
		ID:        item.ID,
		Title:     item.Title,
		Prompt:    item.Prompt,
		Formats:   item.Formats,
		Duration:  time.Duration(item.DurationMS) * time.Millisecond,
		CreatedAt: item.CreatedAt,
	}
}
