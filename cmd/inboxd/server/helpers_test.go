package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLog() *Log {
	return NewLog(false, false, NewLogHistory(100))
}

// testCredStore returns a store holding a valid fake session
func testCredStore(t *testing.T) *CredentialStore {
	store, err := NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	store.creds = Credentials{
		Token:  "test-token",
		UserID: "usr123",
		Email:  "user@example.com",
	}
	return store
}
