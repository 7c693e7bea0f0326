package console

import (
	"fmt"
	"sort"
	"strings"

	rank "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/soundry/reel/internal/domain"
)

// ListEntries prints catalog entries, optionally narrowed by a
// case-folded rank filter on titles.
func (c *Console) ListEntries(entries []domain.ArchiveEntry, filter string) {
	if filter != "" {
		titles := make([]string, len(entries))
		for i, e := range entries {
			titles[i] = e.Title
		}

		matches := rank.RankFindFold(filter, titles)
		sort.Sort(matches)

		narrowed := make([]domain.ArchiveEntry, 0, len(matches))
		for _, m := range matches {
			narrowed = append(narrowed, entries[m.OriginalIndex])
		}
		entries = narrowed
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No archived tracks.")
		return
	}

	for _, e := range entries {
		c.printEntry(e, e.Title)
	}
	fmt.Fprintf(c.out, "\n%d tracks archived.\n", len(entries))
}

// SearchEntries fuzzy-matches query against catalog titles, best match
// first, with matched characters highlighted on TTYs.
func (c *Console) SearchEntries(entries []domain.ArchiveEntry, query string) {
	lowerTitles := make([]string, len(entries))
	for i, e := range entries {
		lowerTitles[i] = strings.ToLower(e.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)
	if len(matches) == 0 {
		fmt.Fprintf(c.out, "No archived tracks match %q.\n", query)
		return
	}

	for _, m := range matches {
		e := entries[m.Index]
		c.printEntry(e, c.highlight(e.Title, m.MatchedIndexes))
	}
}

// printEntry renders one catalog row; title may carry highlighting
func (c *Console) printEntry(e domain.ArchiveEntry, title string) {
	meta := strings.TrimSpace(fmt.Sprintf("%s %s", e.Format, e.FormattedSize()))
	when := e.ArchivedAt.Format("2006-01-02 15:04")
	detail := fmt.Sprintf("%s · %s · %s", meta, when, e.TrackID)
	if c.styled {
		detail = DimStyle.Render(detail)
	}
	fmt.Fprintf(c.out, "  %s  %s\n", title, detail)
}

// highlight styles the matched byte positions of title. Offsets come
// from matching the lowercased title; where lowercasing changed byte
// widths the affected runes simply render unstyled.
func (c *Console) highlight(title string, indexes []int) string {
	if !c.styled || len(indexes) == 0 {
		return title
	}

	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if matched[i] {
			b.WriteString(MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
