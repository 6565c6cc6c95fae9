package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inboxd.toml"), []byte(content), 0644))
	return dir
}

func TestAppConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server_url = "https://inbox.example.com"
`)

	config, err := NewAppConfigFromTomlFile(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean("var/inbox"), config.InboxPath)
	assert.Equal(t, filepath.Clean("var/data"), config.DataPath)
	assert.Equal(t, "https://inbox.example.com", config.ServerURL)
	assert.True(t, config.DeleteAfterUpload)
	assert.Equal(t, DefaultMaxFileSize, config.MaxFileSize)
	assert.Equal(t, "", config.IgnoreExpr)
	assert.Equal(t, ":8686", config.API.Listen)
}

func TestAppConfigFull(t *testing.T) {
	dir := writeConfig(t, `
inbox_path = "/srv/inbox"
data_path = "/srv/data"
server_url = "https://inbox.example.com/"
delete_after_upload = false
max_file_size = "50MB"
ignore_expr = "size > 1000000"

[api]
listen = ":9999"
`)

	config, err := NewAppConfigFromTomlFile(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/inbox", config.InboxPath)
	assert.Equal(t, "/srv/data", config.DataPath)
	assert.Equal(t, "https://inbox.example.com", config.ServerURL)
	assert.False(t, config.DeleteAfterUpload)
	assert.Equal(t, 50*datasize.MB, config.MaxFileSize)
	assert.Equal(t, "size > 1000000", config.IgnoreExpr)
	assert.Equal(t, ":9999", config.API.Listen)
}

func TestAppConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing server_url", ``},
		{"unknown setting", `server_url = "https://x.example.com"` + "\n" + `wat = true`},
		{"invalid server_url", `server_url = "not a url"`},
		{"same paths", `
server_url = "https://x.example.com"
inbox_path = "/srv/files"
data_path = "/srv/files"
`},
		{"bad max_file_size", `
server_url = "https://x.example.com"
max_file_size = "lots"
`},
		{"zero max_file_size", `
server_url = "https://x.example.com"
max_file_size = "0"
`},
		{"bad listen", `
server_url = "https://x.example.com"

[api]
listen = "nope"
`},
	}

	for _, test := range tests {
		dir := writeConfig(t, test.content)
		_, err := NewAppConfigFromTomlFile(dir)
		require.Error(t, err, test.name)
	}
}

func TestAppConfigMissingFile(t *testing.T) {
	_, err := NewAppConfigFromTomlFile(t.TempDir())
	require.Error(t, err)
}
