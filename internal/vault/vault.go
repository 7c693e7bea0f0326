// Package vault owns the archive output directory and the staging
// protocol that keeps destination files whole: a track file is either
// absent or complete under its final name, never truncated.
package vault

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soundry/reel/internal/domain"
)

// StagingSuffix marks in-flight downloads. A file wearing it is never a
// valid archive member and is swept at startup.
const StagingSuffix = ".part"

// Vault writes download streams into the output directory
type Vault struct {
	dir    string
	logger *slog.Logger
}

// New ensures the output directory exists and returns a Vault over it
func New(dir string, logger *slog.Logger) (*Vault, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Vault{dir: dir, logger: logger}, nil
}

// Dir returns the output directory path
func (v *Vault) Dir() string { return v.dir }

// DestPath joins a file name into the output directory
func (v *Vault) DestPath(name string) string {
	return filepath.Join(v.dir, name)
}

// Exists reports whether a completed file is already present at path
func (v *Vault) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Write streams r to path via its staging name and renames it into
// place once the stream is fully copied. On any error the staging file
// is deleted and the destination is left untouched. Returns
// domain.ErrAlreadyArchived when the destination already exists.
func (v *Vault) Write(path string, r io.Reader) (int64, error) {
	if v.Exists(path) {
		return 0, domain.ErrAlreadyArchived
	}

	staging := path + StagingSuffix
	f, err := os.Create(staging)
	if err != nil {
		return 0, fmt.Errorf("failed to create staging file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		v.discardStaging(staging)
		return 0, fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		v.discardStaging(staging)
		return 0, fmt.Errorf("failed to close staging file: %w", err)
	}
	if err := os.Rename(staging, path); err != nil {
		v.discardStaging(staging)
		return 0, fmt.Errorf("failed to finalize %s: %w", filepath.Base(path), err)
	}

	return n, nil
}

// discardStaging removes a staging file after a failed write. Deletion
// failure is logged, not escalated.
func (v *Vault) discardStaging(staging string) {
	if err := os.Remove(staging); err != nil && !os.IsNotExist(err) {
		v.logger.Warn("failed to remove staging file", "path", staging, "error", err)
	}
}

// CleanStaging deletes every staging file in the output directory and
// returns how many were removed. Crashed runs leave staging files
// behind; there is no byte-range resume, so they are never reusable.
func (v *Vault) CleanStaging() (int, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to scan output directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), StagingSuffix) {
			continue
		}
		stale := filepath.Join(v.dir, entry.Name())
		if err := os.Remove(stale); err != nil {
			v.logger.Warn("failed to remove stale staging file", "path", stale, "error", err)
			continue
		}
		v.logger.Info("removed stale staging file", "path", stale)
		removed++
	}
	return removed, nil
}
