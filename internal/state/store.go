// Package state persists the archiver's progress record between runs.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soundry/reel/internal/domain"
)

// Store reads and writes the single ProgressState file. Losing the last
// checkpoint only costs re-skipping recently completed tracks, so the
// file is written in place with no staging protocol.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the given file path
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file location
func (s *Store) Path() string { return s.path }

// Load returns the persisted state, or fresh defaults when the file is
// missing, unreadable, or corrupt. Corruption is logged, never fatal.
func (s *Store) Load() domain.ProgressState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, starting fresh", "path", s.path, "error", err)
		}
		return domain.NewProgressState()
	}

	var st domain.ProgressState
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("state file corrupt, starting fresh", "path", s.path, "error", err)
		return domain.NewProgressState()
	}

	st.Normalize()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	return st
}

// Save persists the full record. A failure is logged and returned but
// never aborts a run; the in-memory state stays authoritative.
func (s *Store) Save(st domain.ProgressState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode state", "error", err)
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error("failed to write state file", "path", s.path, "error", err)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Reset produces and persists a fresh default state
func (s *Store) Reset() domain.ProgressState {
	st := domain.NewProgressState()
	if err := s.Save(st); err != nil {
		s.logger.Warn("failed to persist reset state", "path", s.path, "error", err)
	}
	return st
}
