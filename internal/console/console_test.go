package console

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soundry/reel/internal/domain"
)

func newPlainConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf), &buf
}

func TestTrackResolvedLines(t *testing.T) {
	c, buf := newPlainConsole()
	c.PageStart(0, 3, 3)

	c.TrackResolved(domain.Track{Title: "Dawn Chorus"}, domain.Success("/a/Dawn Chorus.mp3"))
	c.TrackResolved(domain.Track{Title: "Night Drive"}, domain.Skipped("/a/Night Drive.mp3", "already archived"))
	c.TrackResolved(domain.Track{Title: "Static"}, domain.Failed(errors.New("connection reset")))

	out := buf.String()
	assert.Contains(t, out, "Page at offset 0: 3 tracks (3 total)")
	assert.Contains(t, out, "[1/3] ✓ Dawn Chorus → Dawn Chorus.mp3")
	assert.Contains(t, out, "[2/3] • Night Drive (already archived)")
	assert.Contains(t, out, "[3/3] ✗ Static: connection reset")
}

func TestSummaryListsFailedIDs(t *testing.T) {
	c, buf := newPlainConsole()

	c.Summary(domain.RunSummary{
		Downloaded: 18,
		Skipped:    1,
		Failed:     2,
		FailedIDs:  []string{"trk_3", "trk_9"},
	})

	out := buf.String()
	assert.Contains(t, out, "Downloaded  18")
	assert.Contains(t, out, "Skipped     1")
	assert.Contains(t, out, "Failed      2")
	assert.Contains(t, out, "Total       21")
	assert.Contains(t, out, "a rerun will retry these")
	assert.Contains(t, out, "trk_3")
	assert.Contains(t, out, "trk_9")
}

func TestSummaryWithoutFailures(t *testing.T) {
	c, buf := newPlainConsole()

	c.Summary(domain.RunSummary{Downloaded: 5})

	assert.NotContains(t, buf.String(), "rerun")
}

func catalogFixture() []domain.ArchiveEntry {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return []domain.ArchiveEntry{
		{TrackID: "trk_1", Title: "Dawn Chorus", Format: "mp3", ArchivedAt: at},
		{TrackID: "trk_2", Title: "Night Drive", Format: "mp3", ArchivedAt: at},
		{TrackID: "trk_3", Title: "Neon Dawn", Format: "wav", ArchivedAt: at},
	}
}

func TestListEntries(t *testing.T) {
	c, buf := newPlainConsole()

	c.ListEntries(catalogFixture(), "")

	out := buf.String()
	assert.Contains(t, out, "Dawn Chorus")
	assert.Contains(t, out, "Night Drive")
	assert.Contains(t, out, "3 tracks archived.")
}

func TestListEntriesFiltered(t *testing.T) {
	c, buf := newPlainConsole()

	c.ListEntries(catalogFixture(), "dawn")

	out := buf.String()
	assert.Contains(t, out, "Dawn Chorus")
	assert.Contains(t, out, "Neon Dawn")
	assert.NotContains(t, out, "Night Drive")
}

func TestListEntriesEmpty(t *testing.T) {
	c, buf := newPlainConsole()

	c.ListEntries(nil, "")

	assert.Contains(t, buf.String(), "No archived tracks.")
}

func TestSearchEntries(t *testing.T) {
	c, buf := newPlainConsole()

	c.SearchEntries(catalogFixture(), "nght drv")

	out := buf.String()
	assert.Contains(t, out, "Night Drive")
	assert.NotContains(t, out, "Dawn Chorus")
}

func TestSearchEntriesNoMatch(t *testing.T) {
	c, buf := newPlainConsole()

	c.SearchEntries(catalogFixture(), "zzzz")

	assert.Contains(t, buf.String(), `No archived tracks match "zzzz".`)
}
