package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("Техника приседа"), 0o644))

	text, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Техника приседа", text)
}

func TestExtractTxtMissingFile(t *testing.T) {
	_, err := NewTextExtractor().Extract(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestExtractUnknownExtension(t *testing.T) {
	text, err := NewTextExtractor().Extract("photo.jpg")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractBrokenPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("не pdf"), 0o644))

	_, err := NewTextExtractor().Extract(path)
	assert.Error(t, err)
}
