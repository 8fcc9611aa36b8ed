// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package session owns the farmer's client-side session state.

The store holds one snapshot guarded by a mutex: callers mutate it only
through methods, and every snapshot handed out is a copy. The invariant is
that an authenticated snapshot always carries a user; tokens without a user
or a user without tokens never escape the store.

Persistence is partial. Identity and the language choice survive restarts;
transient flags never reach the storage backend.
*/
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agrioindia/platform/client"
)

// # Constants

const (
	// DefaultLanguage applies until the user picks one.
	DefaultLanguage = "en"
)

// # Storage Backend

// Storage persists a serialized session snapshot.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// FileStorage keeps the snapshot in a JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a storage writing to directory/name.json.
func NewFileStorage(directory, name string) *FileStorage {
	return &FileStorage{path: filepath.Join(directory, name+".json")}
}

// Load reads the persisted snapshot. A missing file is ErrNotFound-free: it
// returns (nil, nil) so a fresh machine starts logged out.
func (s *FileStorage) Load() ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_storage_read_failed: %w", err)
	}

	return raw, nil
}

// Save writes the snapshot.
func (s *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session_storage_mkdir_failed: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session_storage_write_failed: %w", err)
	}

	return nil
}

// Clear removes the persisted snapshot.
func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session_storage_remove_failed: %w", err)
	}

	return nil
}

// MemoryStorage keeps the snapshot in process memory. Useful in tests.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	snapshot := make([]byte, len(s.data))
	copy(snapshot, s.data)

	return snapshot, nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)

	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil

	return nil
}

// # Session Snapshot

// Snapshot is one consistent view of the session.
type Snapshot struct {
	User         *client.User
	AccessToken  string
	RefreshToken string
	Language     string
	IsNewUser    bool
}

// IsAuthenticated reports whether the snapshot carries a live session.
func (s Snapshot) IsAuthenticated() bool {
	return s.AccessToken != "" && s.User != nil
}

// persistedState is the subset of the session that survives restarts.
//
// IsNewUser is deliberately absent: the first-visit flag steers one
// onboarding pass and must not resurrect after a restart.
type persistedState struct {
	User         *client.User `json:"user,omitempty"`
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	Language     string       `json:"language"`
}

// # Store

// Store is the farmer session store.
type Store struct {
	mu      sync.Mutex
	api     *client.Client
	storage Storage
	state   Snapshot

	// Cached server data and UI flags. All of this is transient: it is
	// never persisted and an authenticated restart begins with it empty.
	stats        *client.RewardStats
	rewards      []client.Reward
	bestSellers  []client.Product
	distributors []client.Distributor
	isLoading    bool
	sidebarOpen  bool
}

/*
New creates a [Store] hydrated from storage.

The store and the API client depend on each other: the client reads tokens
from the store, the store calls the client on logout. Construct the store
first, hand it to [client.WithTokenStore], then [Store.Bind] the client.

Parameters:
  - api: The API client used for server-side logout. May be nil when binding
    later.
  - storage: The persistence backend. Load errors degrade to a logged-out
    session rather than failing construction.

Returns:
  - *Store: The ready store.
*/
func New(api *client.Client, storage Storage) *Store {
	store := &Store{
		api:     api,
		storage: storage,
		state:   Snapshot{Language: DefaultLanguage},
	}
	store.restore()

	return store
}

// Bind attaches the API client used for server-side logout.
func (s *Store) Bind(api *client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.api = api
}

// restore hydrates the persisted fields. Transient fields keep their zero
// values regardless of what an older build may have written.
func (s *Store) restore() {
	raw, err := s.storage.Load()
	if err != nil || len(raw) == 0 {
		return
	}

	var stored persistedState
	if err := json.Unmarshal(raw, &stored); err != nil {
		return
	}

	// Tokens without a user would break the authenticated invariant, so an
	// inconsistent snapshot falls back to logged out.
	if stored.AccessToken != "" && stored.User == nil {
		stored.AccessToken = ""
		stored.RefreshToken = ""
	}

	s.state.User = stored.User
	s.state.AccessToken = stored.AccessToken
	s.state.RefreshToken = stored.RefreshToken
	if stored.Language != "" {
		s.state.Language = stored.Language
	}
}

// persist writes the persisted subset of the current state.
func (s *Store) persist() error {
	encoded, err := json.Marshal(persistedState{
		User:         s.state.User,
		AccessToken:  s.state.AccessToken,
		RefreshToken: s.state.RefreshToken,
		Language:     s.state.Language,
	})
	if err != nil {
		return fmt.Errorf("session_encode_failed: %w", err)
	}

	return s.storage.Save(encoded)
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	if s.state.User != nil {
		userCopy := *s.state.User
		snapshot.User = &userCopy
	}

	return snapshot
}

// IsAuthenticated reports whether a live session is held.
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// AccessToken returns the current access token, or "" when logged out.
//
// Together with RefreshToken, SetTokens and Clear this satisfies
// [client.TokenStore], so the store can be attached to the API client
// directly.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.AccessToken
}

// RefreshToken returns the current refresh token, or "" when logged out.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.RefreshToken
}

// SetTokens replaces the token pair, keeping the current user. Used by the
// refresh path where the user identity is already established.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AccessToken = accessToken
	s.state.RefreshToken = refreshToken

	return s.persist()
}

// Clear drops the session locally without calling the server.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	language := s.state.Language
	s.state = Snapshot{Language: language}

	// Personal caches go with the session. Catalog caches could stay, but
	// wiping everything keeps logout a single obvious reset.
	s.stats = nil
	s.rewards = nil
	s.bestSellers = nil
	s.distributors = nil

	return s.persist()
}

/*
Login installs a verified session.

Parameters:
  - login: The payload returned by OTP verification. Must carry a user;
    a userless payload is rejected to preserve the authenticated invariant.

Returns:
  - error: Validation or persistence failure.
*/
func (s *Store) Login(login client.LoginSession) error {
	if login.User == nil {
		return fmt.Errorf("session_login_missing_user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = login.User
	s.state.AccessToken = login.AccessToken
	s.state.RefreshToken = login.RefreshToken
	s.state.IsNewUser = login.IsNewUser
	if login.User.Language != "" {
		s.state.Language = login.User.Language
	}

	return s.persist()
}

// SetUser replaces the cached user, for profile updates. A nil user is
// ignored to keep the authenticated invariant intact.
func (s *Store) SetUser(user *client.User) error {
	if user == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = user
	if user.Language != "" {
		s.state.Language = user.Language
	}

	return s.persist()
}

// Language returns the current display language.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Language
}

// SetLanguage records the display language choice. The choice persists even
// while logged out.
func (s *Store) SetLanguage(language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Language = language

	return s.persist()
}

/*
Logout ends the session on both sides.

The server call is best-effort: whatever it returns, the local state is
cleared, so calling Logout twice (or while offline) still leaves the store
logged out.

Parameters:
  - ctx: Bounds the server call.

Returns:
  - error: Local persistence failure only. Server refusal is not an error.
*/
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.state.RefreshToken
	api := s.api
	s.mu.Unlock()

	// The server call runs outside the lock: the store doubles as the API
	// client's token source, and the client reads the access token during
	// the request.
	if refreshToken != "" && api != nil {
		// Ignore the outcome: a dead network or an already revoked token
		// must not keep the user logged in locally.
		_ = api.Logout(ctx, refreshToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearLocked()
}

// # Cached Data

// SetLoading flips the global busy flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isLoading = loading
}

// IsLoading reports the global busy flag.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isLoading
}

// SetSidebarOpen records the navigation drawer state.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sidebarOpen = open
}

// SidebarOpen reports the navigation drawer state.
func (s *Store) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sidebarOpen
}

// SetStats caches the farmer's reward stats.
func (s *Store) SetStats(stats *client.RewardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = stats
}

// Stats returns the cached reward stats, or nil when not fetched yet.
func (s *Store) Stats() *client.RewardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stats == nil {
		return nil
	}
	statsCopy := *s.stats

	return &statsCopy
}

// SetRewards caches the reward ledger page.
func (s *Store) SetRewards(rewards []client.Reward) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rewards = append([]client.Reward(nil), rewards...)
}

// Rewards returns the cached reward ledger.
func (s *Store) Rewards() []client.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]client.Reward(nil), s.rewards...)
}

// SetBestSellers caches the best-seller shelf.
func (s *Store) SetBestSellers(products []client.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bestSellers = append([]client.Product(nil), products...)
}

// BestSellers returns the cached best-seller shelf.
func (s *Store) BestSellers() []client.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]client.Product(nil), s.bestSellers...)
}

// SetDistributors caches the latest distributor search results.
func (s *Store) SetDistributors(distributors []client.Distributor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.distributors = append([]client.Distributor(nil), distributors...)
}

// Distributors returns the cached distributor search results.
func (s *Store) Distributors() []client.Distributor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]client.Distributor(nil), s.distributors...)
}
