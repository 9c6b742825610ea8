package utils

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "notes", FileNameWithoutExt("notes.pdf"))
	assert.Equal(t, "archive.tar", FileNameWithoutExt("archive.tar.gz"))
	assert.Equal(t, "plain", FileNameWithoutExt("plain"))
	assert.Equal(t, "notes", FileNameWithoutExt("/tmp/uploads/notes.pdf"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "my_notes_v2.pdf", SanitizeFileName("my notes/v2.pdf"))
	assert.Equal(t, "safe-name_1.pdf", SanitizeFileName("safe-name_1.pdf"))
	assert.Equal(t, "___.pdf", SanitizeFileName("日本語.pdf"))
}

func TestSaveFileWithTimestamp(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveFileWithTimestamp([]byte("%PDF-1.4"), "my notes.pdf", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.Contains(t, path, "my_notes_")
}

func TestSaveFileWithTimestampCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"

	path, err := SaveFileWithTimestamp([]byte("data"), "doc.pdf", dir)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
