package server

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyDatabase(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "api-keys.db")
	rnd := rand.New(rand.NewSource(42))

	db, err := NewAPIKeyDatabase(filename, testLog(), rnd)
	require.NoError(t, err)

	// a first key is generated on creation
	keys := db.List()
	require.Len(t, keys, 1)
	assert.Equal(t, "default", keys[0].Comment)
	assert.Len(t, keys[0].Key, 64)

	valid, key := db.IsValidKey(keys[0].Key)
	assert.True(t, valid)
	assert.Equal(t, keys[0], key)

	valid, _ = db.IsValidKey("not-a-key")
	assert.False(t, valid)

	valid, _ = db.IsValidKey("")
	assert.False(t, valid)

	// the key survives a reload
	db2, err := NewAPIKeyDatabase(filename, testLog(), rnd)
	require.NoError(t, err)

	valid, _ = db2.IsValidKey(keys[0].Key)
	assert.True(t, valid)
	require.Len(t, db2.List(), 1)
}

func TestRandString(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	s1 := RandString(64, rnd)
	s2 := RandString(64, rnd)

	assert.Len(t, s1, 64)
	assert.NotEqual(t, s1, s2)
}
