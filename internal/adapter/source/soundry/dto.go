package soundry

// API response DTOs for the Soundry API

// TrackDTO is one generated track as returned by the tracks endpoint
type TrackDTO struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Prompt     string   `json:"prompt"`
	Formats    []string `json:"formats"`
	DurationMS int64    `json:"duration_ms"`
	CreatedAt  int64    `json:"created_at"`
}

// TracksResponse is the paginated tracks listing
type TracksResponse struct {
	Tracks []TrackDTO `json:"tracks"`
	Total  int        `json:"total"`
	Offset int        `json:"offset"`
	Limit  int        `json:"limit"`
}

// MeResponse is the authenticated-user endpoint payload
type MeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
