// Package fetch wraps single network operations with the retry policies
// the archiver relies on: bounded attempts with backoff for per-track
// work, and an unbounded fixed-delay loop for page fetches.
package fetch

import (
	"context"
	"log/slog"
	"time"
)

// Options tunes the two retry scopes
type Options struct {
	MaxRetries int           // additional attempts after the first, per track operation
	PageDelay  time.Duration // fixed wait between page fetch attempts
	BaseDelay  time.Duration // first backoff step for track retries
}

// DefaultOptions returns the standard retry policy
func DefaultOptions() Options {
	return Options{
		MaxRetries: 2,
		PageDelay:  5 * time.Second,
		BaseDelay:  500 * time.Millisecond,
	}
}

// Retryer executes operations under the policies in Options. A track
// failure is ordinary (the caller records it and moves on), while a
// page fetch failure is assumed transient and retried until the user
// cancels the run.
type Retryer struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Retryer. Zero or negative option fields fall back to
// their defaults.
func New(opts Options, logger *slog.Logger) *Retryer {
	def := DefaultOptions()
	if opts.MaxRetries < 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.PageDelay <= 0 {
		opts.PageDelay = def.PageDelay
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = def.BaseDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retryer{opts: opts, logger: logger}
}

// Do runs op with bounded retry: one attempt plus up to MaxRetries
// more, with exponential backoff between attempts (500ms, 1s, 2s, ...).
// Every failure is logged. After exhaustion the last error is returned
// for the caller to record; nothing is raised past this boundary.
func (r *Retryer) Do(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if attempt > 0 {
			delay := r.opts.BaseDelay * time.Duration(1<<(attempt-1))
			r.logger.Debug("retrying operation", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := op(ctx); err != nil {
			lastErr = err
			r.logger.Warn("operation failed",
				"attempt", attempt+1,
				"max_attempts", r.opts.MaxRetries+1,
				"error", err,
			)
			continue
		}
		return nil
	}
	return lastErr
}

// DoPage runs op until it succeeds, waiting PageDelay between failed
// attempts. Failures never count against a budget; the only way out
// besides success is context cancellation, which is honored during the
// inter-attempt delay.
func (r *Retryer) DoPage(ctx context.Context, op func(context.Context) error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warn("page fetch failed, will retry",
			"attempt", attempt,
			"retry_in", r.opts.PageDelay,
			"error", err,
		)

		select {
		case <-time.After(r.opts.PageDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
