package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain title unchanged",
			input: "Midnight Drive",
			want:  "Midnight Drive",
		},
		{
			name:  "path separators replaced",
			input: "side/a\\side b",
			want:  "side_a_side b",
		},
		{
			name:  "traversal prefix stripped",
			input: "../../etc/passwd",
			want:  "_.._etc_passwd",
		},
		{
			name:  "reserved characters replaced",
			input: `what? "time" is <it>`,
			want:  "what_ _time_ is _it_",
		},
		{
			name:  "control characters dropped",
			input: "take\x00\x1fone",
			want:  "takeone",
		},
		{
			name:  "whitespace collapsed",
			input: "  too \t many\n spaces  ",
			want:  "too many spaces",
		},
		{
			name:  "trailing dots trimmed",
			input: "untitled...",
			want:  "untitled",
		},
		{
			name:  "hidden file prefix trimmed",
			input: ".bashrc",
			want:  "bashrc",
		},
		{
			name:  "nothing usable",
			input: " ... ",
			want:  "",
		},
		{
			name:  "unicode preserved",
			input: "café après-midi",
			want:  "café après-midi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.input))
		})
	}
}

func TestFileNameLengthCap(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := FileName(long)
	assert.Len(t, got, 150)

	// Truncation must not leave a trailing dot behind.
	dotted := strings.Repeat("b", 149) + ". tail"
	got = FileName(dotted)
	assert.False(t, strings.HasSuffix(got, "."), "got %q", got)
	assert.LessOrEqual(t, len([]rune(got)), 150)
}
