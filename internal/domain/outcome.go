package domain

// OutcomeKind classifies the result of resolving one track
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns a human-readable representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "downloaded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of processing one track. It drives the
// run counters and the failure list; errors never propagate past it
// for per-track work.
type Outcome struct {
	Kind   OutcomeKind
	Path   string // Destination path (Success, Skipped)
	Reason string // Why the track was skipped (Skipped only)
	Err    error  // Last error after retries were exhausted (Failed only)
}

// Success builds an Outcome for a completed download
func Success(path string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Path: path}
}

// Skipped builds an Outcome for a track that needed no work
func Skipped(path, reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Path: path, Reason: reason}
}

// Failed builds an Outcome for a track that exhausted its retries
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// RunSummary reports the totals of one archiver run. FailedIDs carries
// every track id still marked failed when the run ended, so the user
// knows exactly what a rerun will retry.
type RunSummary struct {
	Downloaded int
	Skipped    int
	Failed     int
	FailedIDs  []string
}

// Total returns the number of tracks resolved across the run
func (s RunSummary) Total() int {
	return s.Downloaded + s.Skipped + s.Failed
}
