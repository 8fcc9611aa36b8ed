// Copyright (c) 2026 Agrio India. All rights reserved.

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/client"
	"github.com/agrioindia/platform/client/session"
)

func farmer(id, name, language string) *client.User {
	return &client.User{
		ID:       id,
		Mobile:   "9876543210",
		FullName: name,
		Language: language,
		Role:     "farmer",
		IsActive: true,
	}
}

/*
TestStore_LoginInvariant verifies that an authenticated store always carries
a user: a login payload without one is rejected outright.
*/
func TestStore_LoginInvariant(t *testing.T) {
	store := session.New(nil, &session.MemoryStorage{})

	// 1. A userless payload never authenticates
	err := store.Login(client.LoginSession{AccessToken: "a", RefreshToken: "r"})
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())

	// 2. A complete payload does
	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         farmer("u1", "Ravi Kumar", "en"),
	}))

	snapshot := store.Snapshot()
	assert.True(t, snapshot.IsAuthenticated())
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "Ravi Kumar", snapshot.User.FullName)
	assert.Equal(t, "access-1", store.AccessToken())
	assert.Equal(t, "refresh-1", store.RefreshToken())
}

/*
TestStore_PersistenceRoundTrip verifies which fields survive a restart:
identity, tokens and the language choice persist, while the first-visit flag
resets.
*/
func TestStore_PersistenceRoundTrip(t *testing.T) {
	storage := &session.MemoryStorage{}

	// 1. Log in as a brand-new Hindi-speaking user
	first := session.New(nil, storage)
	require.NoError(t, first.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		IsNewUser:    true,
		User:         farmer("u1", "Ravi Kumar", "hi"),
	}))
	assert.True(t, first.Snapshot().IsNewUser)
	assert.Equal(t, "hi", first.Language())

	// 2. Restart: a second store over the same storage
	second := session.New(nil, storage)
	snapshot := second.Snapshot()

	// 3. Identity and language survived
	assert.True(t, snapshot.IsAuthenticated())
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u1", snapshot.User.ID)
	assert.Equal(t, "hi", second.Language())
	assert.Equal(t, "refresh-1", second.RefreshToken())

	// 4. The first-visit flag did not
	assert.False(t, snapshot.IsNewUser)
}

/*
TestStore_LanguageSurvivesLogout verifies that the language choice outlives
the session itself.
*/
func TestStore_LanguageSurvivesLogout(t *testing.T) {
	storage := &session.MemoryStorage{}
	store := session.New(nil, storage)

	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         farmer("u1", "Ravi Kumar", "hi"),
	}))

	require.NoError(t, store.Logout(context.Background()))

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "hi", store.Language())

	// Even across a restart.
	reloaded := session.New(nil, storage)
	assert.False(t, reloaded.IsAuthenticated())
	assert.Equal(t, "hi", reloaded.Language())
}

/*
TestStore_LogoutIdempotentAndBestEffort verifies that logout clears local
state exactly once on the server but tolerates repetition and a dead
network.
*/
func TestStore_LogoutIdempotentAndBestEffort(t *testing.T) {
	var (
		mu          sync.Mutex
		logoutCalls int
	)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		logoutCalls++
		mu.Unlock()

		assert.Equal(t, "/api/v1/auth/logout", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	storage := &session.MemoryStorage{}
	store := session.New(nil, storage)
	api := client.New(server.URL, client.WithTokenStore(store))
	store.Bind(api)

	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         farmer("u1", "Ravi Kumar", "en"),
	}))

	// 1. First logout revokes on the server and clears locally
	require.NoError(t, store.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 1, logoutCalls)

	// 2. Repeating is a no-op: no token left, so no server call either
	require.NoError(t, store.Logout(context.Background()))
	assert.Equal(t, 1, logoutCalls)

	// 3. A dead server still logs out locally
	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		User:         farmer("u1", "Ravi Kumar", "en"),
	}))
	server.Close()

	require.NoError(t, store.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated())
}

/*
TestStore_RejectsInconsistentSnapshot verifies that a persisted snapshot
carrying tokens but no user hydrates as logged out.
*/
func TestStore_RejectsInconsistentSnapshot(t *testing.T) {
	storage := &session.MemoryStorage{}
	corrupt, err := json.Marshal(map[string]any{
		"access_token":  "orphan-access",
		"refresh_token": "orphan-refresh",
		"language":      "hi",
	})
	require.NoError(t, err)
	require.NoError(t, storage.Save(corrupt))

	store := session.New(nil, storage)

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.AccessToken())
	// The language choice is still honored.
	assert.Equal(t, "hi", store.Language())
}

/*
TestStore_SnapshotIsACopy verifies that mutating a returned snapshot cannot
reach the store's own state.
*/
func TestStore_SnapshotIsACopy(t *testing.T) {
	store := session.New(nil, &session.MemoryStorage{})
	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         farmer("u1", "Ravi Kumar", "en"),
	}))

	snapshot := store.Snapshot()
	snapshot.User.FullName = "Mallory"

	assert.Equal(t, "Ravi Kumar", store.Snapshot().User.FullName)
}

/*
TestAdminStore_RoundTrip verifies staff session persistence and clearing.
*/
func TestAdminStore_RoundTrip(t *testing.T) {
	storage := &session.MemoryStorage{}

	store := session.NewAdminStore(storage)
	assert.False(t, store.IsAuthenticated())

	require.NoError(t, store.Login(client.StaffSession{
		AccessToken: "staff-access",
		Admin:       &client.AdminAccount{ID: "a1", Email: "ops@agrioindia.in", Role: "admin"},
	}))
	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, store.RefreshToken())

	reloaded := session.NewAdminStore(storage)
	assert.True(t, reloaded.IsAuthenticated())
	require.NotNil(t, reloaded.Account())
	assert.Equal(t, "ops@agrioindia.in", reloaded.Account().Email)

	require.NoError(t, reloaded.Clear())
	assert.False(t, reloaded.IsAuthenticated())
	assert.False(t, session.NewAdminStore(storage).IsAuthenticated())
}

/*
TestStore_TransientCaches verifies that cached server data never persists
and is wiped by logout along with the session.
*/
func TestStore_TransientCaches(t *testing.T) {
	storage := &session.MemoryStorage{}
	store := session.New(nil, storage)

	require.NoError(t, store.Login(client.LoginSession{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         farmer("u1", "Ravi Kumar", "en"),
	}))

	store.SetStats(&client.RewardStats{TotalPoints: 80, TotalScans: 2})
	store.SetRewards([]client.Reward{{ID: "r1", Points: 50}})
	store.SetBestSellers([]client.Product{{ID: "p1", Slug: "npk-gold"}})
	store.SetLoading(true)
	store.SetSidebarOpen(true)

	// 1. Caches are served back by value
	require.NotNil(t, store.Stats())
	assert.Equal(t, 80, store.Stats().TotalPoints)
	assert.Len(t, store.Rewards(), 1)
	assert.True(t, store.IsLoading())
	assert.True(t, store.SidebarOpen())

	// 2. A restart drops them even though the session survives
	reloaded := session.New(nil, storage)
	assert.True(t, reloaded.IsAuthenticated())
	assert.Nil(t, reloaded.Stats())
	assert.Empty(t, reloaded.Rewards())
	assert.False(t, reloaded.IsLoading())
	assert.False(t, reloaded.SidebarOpen())

	// 3. Logout wipes the personal caches with the session
	require.NoError(t, store.Logout(context.Background()))
	assert.Nil(t, store.Stats())
	assert.Empty(t, store.Rewards())
	assert.Empty(t, store.BestSellers())
}
