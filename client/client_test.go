// Copyright (c) 2026 Agrio India. All rights reserved.

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/client"
)

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, payload any) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	require.NoError(t, json.NewEncoder(writer).Encode(payload))
}

/*
TestClient_SuccessEnvelope verifies that a successful response is unwrapped
into its typed payload.
*/
func TestClient_SuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/crops", request.URL.Path)

		writeJSON(t, writer, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "c1", "slug": "wheat", "name": "Wheat", "name_hi": "गेहूं", "sort_order": 1},
			},
		})
	}))
	defer server.Close()

	api := client.New(server.URL)

	// 1. Call the endpoint
	result := api.Crops(context.Background())

	// 2. The payload comes back typed
	require.True(t, result.OK)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "wheat", result.Data[0].Slug)
	assert.Equal(t, "गेहूं", result.Data[0].NameHi)
	assert.Nil(t, result.Err)
}

/*
TestClient_ErrorEnvelope verifies that a server refusal is folded into a
typed APIError carrying the status, code and message.
*/
func TestClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error": map[string]any{
				"message": "The OTP you entered is incorrect.",
				"code":    "OTP_INVALID",
			},
		})
	}))
	defer server.Close()

	api := client.New(server.URL)

	result := api.VerifyOTP(context.Background(), "9876543210", "9999")

	require.False(t, result.OK)
	require.NotNil(t, result.Err)
	assert.Equal(t, http.StatusUnauthorized, result.Err.Status)
	assert.Equal(t, "OTP_INVALID", result.Err.Code)
	assert.Equal(t, "The OTP you entered is incorrect.", result.Err.Message)
	assert.False(t, result.Err.IsNetwork())
}

/*
TestClient_NetworkFailure verifies that an unreachable server yields a
failure with status 0, distinguishable from any HTTP refusal.
*/
func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // Deliberately dead.

	api := client.New(server.URL)

	result := api.Crops(context.Background())

	require.False(t, result.OK)
	require.NotNil(t, result.Err)
	assert.Equal(t, 0, result.Err.Status)
	assert.Equal(t, client.CodeNetwork, result.Err.Code)
	assert.True(t, result.Err.IsNetwork())
}

/*
TestClient_MalformedBody verifies that a non-JSON body becomes a BAD_PAYLOAD
failure instead of a panic or a silent success.
*/
func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		_, _ = writer.Write([]byte("<html>upstream error</html>"))
	}))
	defer server.Close()

	api := client.New(server.URL)

	result := api.Crops(context.Background())

	require.False(t, result.OK)
	assert.Equal(t, client.CodeBadPayload, result.Err.Code)
	assert.Equal(t, http.StatusBadGateway, result.Err.Status)
}

/*
TestClient_BearerAttachment verifies that the access token from the attached
store rides along as a Bearer header, and that no header is sent when the
store is empty.
*/
func TestClient_BearerAttachment(t *testing.T) {
	var lastAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		lastAuthorization = request.Header.Get("Authorization")
		writeJSON(t, writer, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer server.Close()

	tokens := &client.MemoryTokenStore{}
	api := client.New(server.URL, client.WithTokenStore(tokens))

	// 1. Logged out: no Authorization header at all
	api.Profile(context.Background())
	assert.Empty(t, lastAuthorization)

	// 2. Logged in: the token rides along
	require.NoError(t, tokens.SetTokens("token-123", "refresh-456"))
	api.Profile(context.Background())
	assert.Equal(t, "Bearer token-123", lastAuthorization)

	// 3. Cleared: the header disappears again
	require.NoError(t, tokens.Clear())
	api.Profile(context.Background())
	assert.Empty(t, lastAuthorization)
}

/*
TestClient_PaginatedListing verifies that a paginated response decodes into
both the item slice and the meta block.
*/
func TestClient_PaginatedListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		assert.Equal(t, "10", request.URL.Query().Get("limit"))

		writeJSON(t, writer, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "p1", "slug": "npk-gold", "name": "NPK Gold", "price": 450.0},
			},
			"meta": map[string]any{"page": 2, "limit": 10, "total": 11, "total_pages": 2},
		})
	}))
	defer server.Close()

	api := client.New(server.URL)

	result := api.Products(context.Background(), client.ProductFilter{Page: 2, Limit: 10})

	require.True(t, result.OK)
	require.Len(t, result.Data.Items, 1)
	assert.Equal(t, "npk-gold", result.Data.Items[0].Slug)
	assert.Equal(t, 2, result.Data.Meta.Page)
	assert.Equal(t, 11, result.Data.Meta.Total)
	assert.Equal(t, 2, result.Data.Meta.TotalPages)
}

/*
TestClient_NoContent verifies that a 204 response is a success with a zero
payload rather than a decode failure.
*/
func TestClient_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	api := client.New(server.URL)

	result := api.Logout(context.Background(), "some-refresh-token")

	assert.True(t, result.OK)
	assert.Nil(t, result.Err)
}

/*
TestFileTokenStore_RoundTrip verifies that the pair survives a process
restart, simulated by constructing a second store over the same directory.
*/
func TestFileTokenStore_RoundTrip(t *testing.T) {
	directory := t.TempDir()

	first := client.NewFileTokenStore(directory, client.NamespaceUser)
	require.NoError(t, first.SetTokens("access-1", "refresh-1"))

	// A fresh store over the same directory sees the same pair.
	second := client.NewFileTokenStore(directory, client.NamespaceUser)
	assert.Equal(t, "access-1", second.AccessToken())
	assert.Equal(t, "refresh-1", second.RefreshToken())

	// The admin namespace is a different file entirely.
	admin := client.NewFileTokenStore(directory, client.NamespaceAdmin)
	assert.Empty(t, admin.AccessToken())

	// Clearing removes the file; a third store starts logged out.
	require.NoError(t, second.Clear())
	third := client.NewFileTokenStore(directory, client.NamespaceUser)
	assert.Empty(t, third.AccessToken())
}
