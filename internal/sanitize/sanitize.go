// Package sanitize turns arbitrary track titles into names that are
// safe to join into a destination path.
package sanitize

import "strings"

// maxNameLen caps sanitized names well below common filesystem limits,
// leaving room for a format extension and the staging suffix.
const maxNameLen = 150

// reserved covers path separators plus characters that are invalid in
// filenames on at least one supported platform.
const reserved = `/\:*?"<>|`

// FileName strips path traversal and invalid characters from a display
// name. The result may be empty when the input contains nothing usable;
// callers fall back to the track id in that case.
func FileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			// Control characters are dropped outright
		case strings.ContainsRune(reserved, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")

	// Leading dots hide files and enable "." / ".." traversal once
	// separators are gone; trailing dots and spaces break on Windows.
	cleaned = strings.Trim(cleaned, ". ")

	if runes := []rune(cleaned); len(runes) > maxNameLen {
		cleaned = strings.TrimRight(string(runes[:maxNameLen]), ". ")
	}

	return cleaned
}
