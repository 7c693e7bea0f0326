// Package console renders run progress, summaries, and catalog listings
// to the terminal. Styled output is used only on a TTY; piped output
// stays plain.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/soundry/reel/internal/domain"
)

const barWidth = 30

// Console implements archive.Reporter and the catalog listing views
type Console struct {
	out    io.Writer
	styled bool
	bar    progress.Model

	done  int // Tracks resolved so far across the collection
	total int // Collection size reported by the server
}

// New builds a console over out. Styling and the progress bar are
// enabled only when out is a terminal.
func New(out io.Writer) *Console {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}

	bar := progress.New(
		progress.WithGradient(string(DimGray), string(SoundryTeal)),
		progress.WithWidth(barWidth),
	)

	return &Console{out: out, styled: styled, bar: bar}
}

// PageStart announces one fetched page before its tracks resolve
func (c *Console) PageStart(offset, count, total int) {
	c.done = offset
	c.total = total

	line := fmt.Sprintf("Page at offset %d: %d tracks (%d total)", offset, count, total)
	if c.styled {
		line = TitleStyle.Render(line)
	}
	fmt.Fprintln(c.out, line)
}

// TrackResolved prints one outcome line, with a progress bar on TTYs
func (c *Console) TrackResolved(track domain.Track, outcome domain.Outcome) {
	c.done++

	var line string
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		line = fmt.Sprintf("%s %s → %s", c.mark(SuccessChar, SuccessStyle), track.Title, filepath.Base(outcome.Path))
	case domain.OutcomeSkipped:
		line = fmt.Sprintf("%s %s (%s)", c.mark(SkipChar, SkipStyle), track.Title, outcome.Reason)
	case domain.OutcomeFailed:
		line = fmt.Sprintf("%s %s: %v", c.mark(FailChar, ErrorStyle), track.Title, outcome.Err)
	}

	counter := fmt.Sprintf("[%d/%d]", c.done, c.total)
	if c.styled {
		counter = DimStyle.Render(counter)
	}
	fmt.Fprintf(c.out, "  %s %s\n", counter, line)

	if c.styled && c.total > 0 {
		fmt.Fprintf(c.out, "  %s\r", c.bar.ViewAs(float64(c.done)/float64(c.total)))
	}
}

// Summary prints the end-of-run totals. It is printed on every exit
// path, including cancellation and runs that end with failures.
func (c *Console) Summary(s domain.RunSummary) {
	lines := []string{
		fmt.Sprintf("Downloaded  %d", s.Downloaded),
		fmt.Sprintf("Skipped     %d", s.Skipped),
		fmt.Sprintf("Failed      %d", s.Failed),
		fmt.Sprintf("Total       %d", s.Total()),
	}

	fmt.Fprintln(c.out)
	if c.styled {
		fmt.Fprintln(c.out, SummaryBox.Render(strings.Join(lines, "\n")))
	} else {
		for _, l := range lines {
			fmt.Fprintln(c.out, l)
		}
	}

	if len(s.FailedIDs) > 0 {
		header := "Failed tracks (a rerun will retry these):"
		if c.styled {
			header = ErrorStyle.Render(header)
		}
		fmt.Fprintln(c.out, header)
		for _, id := range s.FailedIDs {
			fmt.Fprintf(c.out, "  %s\n", id)
		}
	}
}

// mark styles an outcome marker on TTYs, or returns it raw
func (c *Console) mark(char string, style lipgloss.Style) string {
	if c.styled {
		return style.Render(char)
	}
	return char
}
