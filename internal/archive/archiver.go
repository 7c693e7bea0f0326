// Package archive drives the resumable download loop: page fetches,
// per-track resolution, progress checkpoints, and the end-of-run
// summary.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soundry/reel/internal/domain"
	"github.com/soundry/reel/internal/fetch"
	"github.com/soundry/reel/internal/sanitize"
	"github.com/soundry/reel/internal/vault"
)

const (
	// DefaultPageSize is how many tracks one page fetch requests.
	DefaultPageSize = 20

	// checkpointEvery bounds the work lost to an interruption: state
	// is persisted after every Nth resolved track within a page, on
	// top of the save at every page boundary.
	checkpointEvery = 10
)

// Reporter receives run progress for user-facing output. Implementations
// must not block; the run loop calls them inline.
type Reporter interface {
	// PageStart is called once per fetched page before any track in it
	// is resolved. total is the collection size reported by the server.
	PageStart(offset, count, total int)

	// TrackResolved is called after each track's outcome is decided.
	TrackResolved(track domain.Track, outcome domain.Outcome)
}

// nopReporter is the default when no Reporter is wired
type nopReporter struct{}

func (nopReporter) PageStart(offset, count, total int)                    {}
func (nopReporter) TrackResolved(track domain.Track, out domain.Outcome) {}

// Options tunes one archiver run
type Options struct {
	PageSize int    // Tracks per page fetch
	Format   string // Preferred download format, e.g. "mp3"
}

// Archiver walks the remote library page by page and materializes every
// track into the vault, checkpointing progress so an interrupted run
// resumes where it left off.
type Archiver struct {
	source   domain.LibrarySource
	store    domain.ProgressStore
	vault    *vault.Vault
	index    domain.ArchiveIndex // May be nil; listing is a convenience
	retryer  *fetch.Retryer
	reporter Reporter
	logger   *slog.Logger
	opts     Options
}

// New assembles an archiver. A nil index disables catalog recording and
// a nil reporter silences progress output.
func New(source domain.LibrarySource, store domain.ProgressStore, v *vault.Vault, index domain.ArchiveIndex, retryer *fetch.Retryer, reporter Reporter, logger *slog.Logger, opts Options) *Archiver {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{
		source:   source,
		store:    store,
		vault:    v,
		index:    index,
		retryer:  retryer,
		reporter: reporter,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes the pagination loop until the collection is exhausted or
// ctx is cancelled. The returned summary is valid in both cases; the
// error is non-nil only for cancellation.
//
// Progress state is only reset to defaults when the collection was
// fully walked and this run recorded zero failures. Failed ids from
// earlier runs never block the reset: after it, the next pass restarts
// at offset zero and retries them naturally, since a failed track never
// produced a file for the existence check to skip.
func (a *Archiver) Run(ctx context.Context) (domain.RunSummary, error) {
	state := a.store.Load()
	state.LastRunAt = time.Now().UTC()

	a.logger.Info("run starting",
		"offset", state.LastOffset,
		"page_size", a.opts.PageSize,
		"pending_failures", len(state.FailedIDs),
	)

	var (
		exhausted   bool
		runFailures int
		runErr      error
	)

	for {
		var (
			tracks []domain.Track
			total  int
		)
		err := a.retryer.DoPage(ctx, func(ctx context.Context) error {
			var fetchErr error
			tracks, total, fetchErr = a.source.FetchTracks(ctx, state.LastOffset, a.opts.PageSize)
			return fetchErr
		})
		if err != nil {
			// Only cancellation escapes the page retry loop.
			runErr = err
			break
		}

		if len(tracks) == 0 {
			exhausted = true
			break
		}

		a.reporter.PageStart(state.LastOffset, len(tracks), total)
		a.logger.Info("page fetched", "offset", state.LastOffset, "count", len(tracks), "total", total)

		interrupted := false
		resolved := 0
		for _, track := range tracks {
			if ctx.Err() != nil {
				interrupted = true
				break
			}

			outcome := a.resolve(ctx, track)
			if outcome.Kind == domain.OutcomeFailed && ctx.Err() != nil {
				// A cancelled download is not a track failure; the next
				// run resumes it from scratch.
				interrupted = true
				break
			}

			switch outcome.Kind {
			case domain.OutcomeSuccess:
				state.DownloadedCount++
				state.ClearFailure(track.ID)
			case domain.OutcomeSkipped:
				state.SkippedCount++
				state.ClearFailure(track.ID)
			case domain.OutcomeFailed:
				state.RecordFailure(track.ID)
				runFailures++
			}
			resolved++
			a.reporter.TrackResolved(track, outcome)

			if resolved%checkpointEvery == 0 {
				a.checkpoint(state)
			}
		}

		if interrupted {
			// The page is not fully resolved, so the offset stays put;
			// the next run refetches it and skips what already landed.
			a.checkpoint(state)
			runErr = ctx.Err()
			break
		}

		state.LastOffset += len(tracks)
		a.checkpoint(state)
	}

	summary := domain.RunSummary{
		Downloaded: state.DownloadedCount,
		Skipped:    state.SkippedCount,
		Failed:     len(state.FailedIDs),
		FailedIDs:  append([]string(nil), state.FailedIDs...),
	}

	if exhausted && runFailures == 0 {
		a.logger.Info("collection exhausted with no failures, resetting progress state")
		a.store.Reset()
	} else {
		a.checkpoint(state)
	}

	a.logger.Info("run finished",
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"exhausted", exhausted,
	)
	return summary, runErr
}

// resolve decides one track's outcome. Per-track errors never escape:
// an exhausted retry budget becomes a Failed outcome for the caller to
// record.
func (a *Archiver) resolve(ctx context.Context, track domain.Track) domain.Outcome {
	name := sanitize.FileName(track.Title)
	if name == "" {
		name = track.ID
	}

	format := track.PickFormat(a.opts.Format)
	if format == "" {
		return domain.Failed(fmt.Errorf("track %s has no download formats", track.ID))
	}

	dest := a.vault.DestPath(name + "." + format)
	if a.vault.Exists(dest) {
		return domain.Skipped(dest, "already archived")
	}

	url := a.source.DownloadURL(track.ID, format)

	var size int64
	err := a.retryer.Do(ctx, func(ctx context.Context) error {
		stream, err := a.source.OpenDownload(ctx, url)
		if err != nil {
			return err
		}
		defer stream.Close()

		n, err := a.vault.Write(dest, stream)
		if errors.Is(err, domain.ErrAlreadyArchived) {
			return nil
		}
		size = n
		return err
	})
	if err != nil {
		a.logger.Warn("track failed", "track_id", track.ID, "title", track.Title, "error", err)
		return domain.Failed(fmt.Errorf("download %s: %w", track.ID, err))
	}

	a.record(track, dest, format, size)
	return domain.Success(dest)
}

// record adds a successful download to the catalog. Index failures are
// logged only; the file is already safely in place.
func (a *Archiver) record(track domain.Track, dest, format string, size int64) {
	if a.index == nil {
		return
	}
	if size == 0 {
		if info, err := os.Stat(dest); err == nil {
			size = info.Size()
		}
	}
	entry := domain.ArchiveEntry{
		TrackID:    track.ID,
		Title:      track.Title,
		Format:     format,
		Path:       dest,
		Size:       size,
		ArchivedAt: time.Now().UTC(),
	}
	if err := a.index.Record(entry); err != nil {
		a.logger.Warn("failed to record catalog entry", "track_id", track.ID, "error", err)
	}
}

// checkpoint persists the current state. Save failures are already
// logged by the store and never interrupt the run; the in-memory state
// stays authoritative.
func (a *Archiver) checkpoint(state domain.ProgressState) {
	if err := a.store.Save(state); err != nil {
		a.logger.Debug("checkpoint not persisted", "error", err)
	}
}
