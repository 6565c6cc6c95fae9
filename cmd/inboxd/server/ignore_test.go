package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreNames(t *testing.T) {
	filter, err := NewIgnoreFilter("", nil)
	require.NoError(t, err)

	tests := []struct {
		path   string
		ignore bool
	}{
		{"/inbox/report.pdf", false},
		{"/inbox/photo.JPG", false},
		{"/inbox/.DS_Store", true},
		{"/inbox/Thumbs.db", true},
		{"/inbox/desktop.ini", true},
		{"/inbox/.localized", true},
		{"/inbox/Icon\r", true},
		{"/inbox/.hidden-file", true},
		{"/inbox/~$contract.docx", true},
		{"/inbox/._resource-fork", true},
		{"/inbox/download.tmp", true},
		{"/inbox/.report.pdf.swp", true},
		{"/inbox/video.mp4.crdownload", true},
		{"/inbox/iso.part", true},
		{"/inbox/iso.partial", true},
		{"/inbox/Subidos/report.pdf", true},
		{"/inbox/subidos/report.pdf", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.ignore, filter.ShouldIgnore(test.path), test.path)
	}
}

func TestShouldIgnoreDirectories(t *testing.T) {
	filter, err := NewIgnoreFilter("", nil)
	require.NoError(t, err)

	dir := t.TempDir()
	sub := filepath.Join(dir, "some-folder")
	require.NoError(t, os.Mkdir(sub, 0755))

	file := filepath.Join(dir, "file.pdf")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0644))

	assert.True(t, filter.ShouldIgnore(sub))
	assert.False(t, filter.ShouldIgnore(file))
}

func TestIgnoreExpression(t *testing.T) {
	filter, err := NewIgnoreFilter("ext == '.iso' || size > 1000", nil)
	require.NoError(t, err)

	dir := t.TempDir()

	small := filepath.Join(dir, "small.pdf")
	require.NoError(t, os.WriteFile(small, []byte("data"), 0644))

	big := filepath.Join(dir, "big.pdf")
	require.NoError(t, os.WriteFile(big, make([]byte, 2048), 0644))

	iso := filepath.Join(dir, "image.ISO")
	require.NoError(t, os.WriteFile(iso, []byte("data"), 0644))

	assert.False(t, filter.ShouldIgnore(small))
	assert.True(t, filter.ShouldIgnore(big))
	assert.True(t, filter.ShouldIgnore(iso))
}

func TestIgnoreExpressionInvalid(t *testing.T) {
	_, err := NewIgnoreFilter("ext ==", nil)
	require.Error(t, err)
}

func TestIgnoreExpressionNonBoolean(t *testing.T) {
	// a non-boolean result means "don't ignore"
	filter, err := NewIgnoreFilter("size + 1", nil)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "file.pdf")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0644))

	assert.False(t, filter.ShouldIgnore(file))
}
