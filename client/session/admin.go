// Copyright (c) 2026 Agrio India. All rights reserved.

package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/agrioindia/platform/client"
)

// # Staff Session

// AdminStore holds a staff session. Staff sessions carry no refresh token;
// when the access token lapses the operator signs in again.
type AdminStore struct {
	mu      sync.Mutex
	storage Storage

	account     *client.AdminAccount
	accessToken string
}

type persistedAdminState struct {
	Account     *client.AdminAccount `json:"admin,omitempty"`
	AccessToken string               `json:"access_token,omitempty"`
}

// NewAdminStore creates an [AdminStore] hydrated from storage.
func NewAdminStore(storage Storage) *AdminStore {
	store := &AdminStore{storage: storage}
	store.restore()

	return store
}

func (s *AdminStore) restore() {
	raw, err := s.storage.Load()
	if err != nil || len(raw) == 0 {
		return
	}

	var stored persistedAdminState
	if err := json.Unmarshal(raw, &stored); err != nil {
		return
	}
	if stored.AccessToken == "" || stored.Account == nil {
		return
	}

	s.account = stored.Account
	s.accessToken = stored.AccessToken
}

func (s *AdminStore) persist() error {
	encoded, err := json.Marshal(persistedAdminState{
		Account:     s.account,
		AccessToken: s.accessToken,
	})
	if err != nil {
		return fmt.Errorf("admin_session_encode_failed: %w", err)
	}

	return s.storage.Save(encoded)
}

// Login installs a staff session.
func (s *AdminStore) Login(staff client.StaffSession) error {
	if staff.Admin == nil {
		return fmt.Errorf("admin_session_login_missing_account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = staff.Admin
	s.accessToken = staff.AccessToken

	return s.persist()
}

// Account returns the signed-in staff account, or nil when logged out.
func (s *AdminStore) Account() *client.AdminAccount {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return nil
	}
	accountCopy := *s.account

	return &accountCopy
}

// IsAuthenticated reports whether a staff session is held.
func (s *AdminStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accessToken != "" && s.account != nil
}

// AccessToken returns the staff access token, or "" when logged out.
func (s *AdminStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accessToken
}

// RefreshToken always returns "": staff sessions are not refreshable.
func (s *AdminStore) RefreshToken() string {
	return ""
}

// SetTokens installs an access token. The refresh token is ignored.
func (s *AdminStore) SetTokens(accessToken, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken

	return s.persist()
}

// Clear drops the staff session.
func (s *AdminStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account = nil
	s.accessToken = ""

	return s.storage.Clear()
}
