// Copyright (c) 2026 Agrio India. All rights reserved.

package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// # Token Namespaces

// Token namespaces keep the farmer and staff sessions apart when both live on
// the same machine.
const (
	NamespaceUser  = "user"
	NamespaceAdmin = "admin"
)

// # In-Memory Store

// MemoryTokenStore holds the token pair in process memory only.
//
// Safe for concurrent use. The zero value is ready to use.
type MemoryTokenStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// AccessToken returns the current access token, or "" when logged out.
func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// RefreshToken returns the current refresh token, or "" when logged out.
func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

// SetTokens replaces the stored pair.
func (s *MemoryTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken
	s.refreshToken = refreshToken

	return nil
}

// Clear drops both tokens.
func (s *MemoryTokenStore) Clear() error {
	return s.SetTokens("", "")
}

// # File-Backed Store

// FileTokenStore persists the token pair as a JSON file so a session survives
// process restarts.
type FileTokenStore struct {
	mu   sync.Mutex
	path string

	loaded       bool
	accessToken  string
	refreshToken string
}

type tokenFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

/*
NewFileTokenStore creates a store persisting under directory.

Parameters:
  - directory: Directory holding the token file. Created when missing.
  - namespace: File name discriminator, one of [NamespaceUser] or [NamespaceAdmin].

Returns:
  - *FileTokenStore: The ready store. Reads are lazy, so a missing file is
    simply an empty session.
*/
func NewFileTokenStore(directory, namespace string) *FileTokenStore {
	return &FileTokenStore{
		path: filepath.Join(directory, fmt.Sprintf("tokens_%s.json", namespace)),
	}
}

func (s *FileTokenStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var stored tokenFile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return
	}

	s.accessToken = stored.AccessToken
	s.refreshToken = stored.RefreshToken
}

// AccessToken returns the persisted access token, or "" when logged out.
func (s *FileTokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()

	return s.accessToken
}

// RefreshToken returns the persisted refresh token, or "" when logged out.
func (s *FileTokenStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()

	return s.refreshToken
}

// SetTokens replaces and persists the pair.
func (s *FileTokenStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.accessToken = accessToken
	s.refreshToken = refreshToken

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("file_token_store_mkdir_failed: %w", err)
	}

	encoded, err := json.Marshal(tokenFile{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("file_token_store_encode_failed: %w", err)
	}

	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("file_token_store_write_failed: %w", err)
	}

	return nil
}

// Clear drops both tokens and removes the backing file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.accessToken = ""
	s.refreshToken = ""

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file_token_store_remove_failed: %w", err)
	}

	return nil
}
