package domain

import "time"

// ProgressState is the single persisted record that makes runs resumable.
// LastOffset always names the first unfetched page: it is only advanced
// once every track in a page has been resolved as downloaded, skipped,
// or recorded in FailedIDs.
type ProgressState struct {
	LastOffset      int       `json:"lastOffset"`
	DownloadedCount int       `json:"downloadedCount"`
	SkippedCount    int       `json:"skippedCount"`
	FailedIDs       []string  `json:"failedIds"`
	LastRunAt       time.Time `json:"lastRunAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewProgressState returns a fresh zero-progress record
func NewProgressState() ProgressState {
	return ProgressState{
		FailedIDs: []string{},
		CreatedAt: time.Now().UTC(),
	}
}

// RecordFailure appends id to FailedIDs unless it is already present
func (p *ProgressState) RecordFailure(id string) {
	for _, existing := range p.FailedIDs {
		if existing == id {
			return
		}
	}
	p.FailedIDs = append(p.FailedIDs, id)
}

// ClearFailure removes id from FailedIDs if present
func (p *ProgressState) ClearFailure(id string) {
	for i, existing := range p.FailedIDs {
		if existing == id {
			p.FailedIDs = append(p.FailedIDs[:i], p.FailedIDs[i+1:]...)
			return
		}
	}
}

// Normalize coerces an untrusted persisted record back into a valid one:
// negative counters and offsets become zero, the failure list is
// deduplicated, and a nil list becomes empty so JSON round-trips cleanly.
func (p *ProgressState) Normalize() {
	if p.LastOffset < 0 {
		p.LastOffset = 0
	}
	if p.DownloadedCount < 0 {
		p.DownloadedCount = 0
	}
	if p.SkippedCount < 0 {
		p.SkippedCount = 0
	}
	if p.FailedIDs == nil {
		p.FailedIDs = []string{}
		return
	}
	seen := make(map[string]bool, len(p.FailedIDs))
	deduped := p.FailedIDs[:0]
	for _, id := range p.FailedIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	p.FailedIDs = deduped
}
