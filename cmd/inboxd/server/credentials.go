package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Credentials holds the upstream server session
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// CredentialStore is a Credentials database holder (a single JSON file
// in the data directory)
type CredentialStore struct {
	filename string
	creds    Credentials
	mutex    sync.Mutex
}

// pbAuthResponse is the auth response of the upstream server
type pbAuthResponse struct {
	Token  string `json:"token"`
	Record struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"record"`
}

// NewCredentialStore allocates a new CredentialStore
func NewCredentialStore(filename string) (*CredentialStore, error) {
	store := &CredentialStore{
		filename: filename,
	}

	// if the file exists, load it
	if _, err := os.Stat(filename); err == nil {
		err = store.load()
		if err != nil {
			return nil, err
		}
	}

	return store, nil
}

func (store *CredentialStore) load() error {
	f, err := os.Open(store.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(&store.creds)
}

// you should lock the mutex before calling save()
func (store *CredentialStore) save() error {
	f, err := os.OpenFile(store.filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	return enc.Encode(&store.creds)
}

// Token returns the stored auth token ("" if none)
func (store *CredentialStore) Token() string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.creds.Token
}

// UserID returns the stored user ID ("" if none)
func (store *CredentialStore) UserID() string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.creds.UserID
}

// Email returns the stored user email ("" if none)
func (store *CredentialStore) Email() string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.creds.Email
}

// IsAuthenticated returns true if we have a stored session
func (store *CredentialStore) IsAuthenticated() bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.creds.Token != "" && store.creds.UserID != ""
}

// Login authenticates against the upstream server with email/password
// and persists the session
func (store *CredentialStore) Login(serverURL string, email string, password string) error {
	body, err := json.Marshal(map[string]string{
		"identity": email,
		"password": password,
	})
	if err != nil {
		return err
	}

	url := strings.TrimRight(serverURL, "/") + "/api/collections/users/auth-with-password"

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("connection error: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("authentication failed (%s): %s", resp.Status, string(respBody))
	}

	return store.storeAuthResponse(resp.Body)
}

// Refresh renews the stored token against the upstream server. A failed
// refresh keeps the current session untouched, the token may still be
// usable.
func (store *CredentialStore) Refresh(serverURL string) error {
	token := store.Token()
	if token == "" {
		return fmt.Errorf("no stored session")
	}

	url := strings.TrimRight(serverURL, "/") + "/api/collections/users/auth-refresh"

	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("token refresh failed (%s)", resp.Status)
	}

	return store.storeAuthResponse(resp.Body)
}

func (store *CredentialStore) storeAuthResponse(body io.Reader) error {
	var auth pbAuthResponse
	dec := json.NewDecoder(body)
	if err := dec.Decode(&auth); err != nil {
		return fmt.Errorf("unable to parse auth response: %s", err)
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.creds = Credentials{
		Token:  auth.Token,
		UserID: auth.Record.ID,
		Email:  auth.Record.Email,
	}
	return store.save()
}

// Clear removes the stored session (logout)
func (store *CredentialStore) Clear() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.creds = Credentials{}

	if _, err := os.Stat(store.filename); err == nil {
		return os.Remove(store.filename)
	}
	return nil
}
