package server

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/inmoflow/inbox/common"
)

// APIKey describes a key for the local status API
type APIKey struct {
	Comment string
	Key     string
}

// APIKeyDatabase describes a persistent API Key database
type APIKeyDatabase struct {
	filename string
	keys     []*APIKey
	rand     *rand.Rand
	mutex    sync.Mutex
}

// tomlAPIKeys is the structure of the keys file
type tomlAPIKeys struct {
	Keys []*APIKey `toml:"key"`
}

// NewAPIKeyDatabase creates a new API key database, generating a first
// key if the file does not exist yet
func NewAPIKeyDatabase(filename string, log *Log, rnd *rand.Rand) (*APIKeyDatabase, error) {
	db := &APIKeyDatabase{
		filename: filename,
		rand:     rnd,
	}

	if _, err := os.Stat(filename); err == nil {
		if err = db.load(); err != nil {
			return nil, err
		}
		log.Tracef(common.MessageTopicGlobal, "found %d API key(s)", len(db.keys))
	} else {
		log.Infof(common.MessageTopicGlobal, "creating API keys file '%s'", filename)
		db.genKey("default")
	}

	// save the file to check if it's writable
	if err := db.save(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *APIKeyDatabase) load() error {
	var content tomlAPIKeys

	meta, err := toml.DecodeFile(db.filename, &content)
	if err != nil {
		return err
	}

	for _, param := range meta.Undecoded() {
		return fmt.Errorf("unknown setting '%s' in API keys file", param)
	}

	db.keys = content.Keys
	return nil
}

// you should lock the mutex before calling save()
func (db *APIKeyDatabase) save() error {
	f, err := os.OpenFile(db.filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(&tomlAPIKeys{Keys: db.keys})
}

// genKey appends a new random key to the database
func (db *APIKeyDatabase) genKey(comment string) *APIKey {
	key := &APIKey{
		Comment: comment,
		Key:     RandString(64, db.rand),
	}
	db.keys = append(db.keys, key)
	return key
}

// IsValidKey returns true (and the key) if the string is a valid key
func (db *APIKeyDatabase) IsValidKey(key string) (bool, *APIKey) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if key == "" {
		return false, nil
	}

	for _, candidate := range db.keys {
		if candidate.Key == key {
			return true, candidate
		}
	}
	return false, nil
}

// List returns all keys
func (db *APIKeyDatabase) List() []*APIKey {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	return db.keys
}

// RandString generate a random string of A-Za-z0-9 runes
func RandString(n int, rand *rand.Rand) string {
	var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}
