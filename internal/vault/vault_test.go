package vault

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundry/reel/internal/domain"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New(filepath.Join(t.TempDir(), "library"), nil)
	require.NoError(t, err)
	return v
}

func TestNewCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "library")

	_, err := New(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteCreatesFinalFile(t *testing.T) {
	v := newTestVault(t)
	dest := v.DestPath("Midnight Drive.mp3")

	n, err := v.Write(dest, strings.NewReader("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("audio-bytes")), n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))

	_, err = os.Stat(dest + StagingSuffix)
	assert.True(t, os.IsNotExist(err), "staging file must not survive a successful write")
}

func TestWriteFailureLeavesNoFiles(t *testing.T) {
	v := newTestVault(t)
	dest := v.DestPath("broken.mp3")

	boom := errors.New("stream cut")
	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))

	_, err := v.Write(dest, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err), "destination must not appear after a failed write")
	_, err = os.Stat(dest + StagingSuffix)
	assert.True(t, os.IsNotExist(err), "staging file must be cleaned up after a failed write")
}

func TestWriteSkipsExistingDestination(t *testing.T) {
	v := newTestVault(t)
	dest := v.DestPath("existing.mp3")
	require.NoError(t, os.WriteFile(dest, []byte("original"), 0644))

	consumed := false
	r := readerFunc(func(p []byte) (int, error) {
		consumed = true
		return 0, io.EOF
	})

	_, err := v.Write(dest, r)
	assert.ErrorIs(t, err, domain.ErrAlreadyArchived)
	assert.False(t, consumed, "existing destination must short-circuit before the stream is read")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestExists(t *testing.T) {
	v := newTestVault(t)

	assert.False(t, v.Exists(v.DestPath("nope.mp3")))

	dest := v.DestPath("yes.mp3")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0644))
	assert.True(t, v.Exists(dest))

	sub := v.DestPath("subdir")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.False(t, v.Exists(sub), "directories are not archived tracks")
}

func TestCleanStagingRemovesOnlyStagingFiles(t *testing.T) {
	v := newTestVault(t)

	require.NoError(t, os.WriteFile(v.DestPath("done.mp3"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(v.DestPath("half.mp3"+StagingSuffix), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(v.DestPath("other.wav"+StagingSuffix), []byte("c"), 0644))
	require.NoError(t, os.Mkdir(v.DestPath("nested"), 0755))

	removed, err := v.CleanStaging()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.True(t, v.Exists(v.DestPath("done.mp3")))
	assert.False(t, v.Exists(v.DestPath("half.mp3"+StagingSuffix)))
	assert.False(t, v.Exists(v.DestPath("other.wav"+StagingSuffix)))

	info, err := os.Stat(v.DestPath("nested"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanStagingEmptyDir(t *testing.T) {
	v := newTestVault(t)

	removed, err := v.CleanStaging()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

// readerFunc adapts a function to io.Reader
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
