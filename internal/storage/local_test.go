package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveAndOpen(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	path, err := s.Save(context.Background(), "programs", 7, "program.pdf", strings.NewReader("содержимое"))
	require.NoError(t, err)
	assert.Contains(t, path, "programs")
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	f, err := s.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "содержимое", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	first, err := s.Save(context.Background(), "knowledge", 1, "file.txt", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save(context.Background(), "knowledge", 1, "file.txt", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpenRejectsPathOutsideBase(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = s.Open("/etc/passwd")
	assert.Error(t, err)

	_, err = s.Open(s.baseDir + "/../outside.txt")
	assert.Error(t, err)
}
