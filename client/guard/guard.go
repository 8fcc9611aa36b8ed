// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package guard gates protected screens on a live session.

A guard answers one question: may this navigation proceed? It checks the
local session first, then confirms the token against the server. Any verdict
short of an authenticated yes clears the local session, so a stale token can
never keep granting access.
*/
package guard

import (
	"context"

	"github.com/agrioindia/platform/client"
	"github.com/agrioindia/platform/client/session"
)

// # Constants

const (
	// AuthRoute is where rejected farmer navigations are redirected.
	AuthRoute = "/auth"

	// AdminLoginRoute is where rejected staff navigations are redirected.
	AdminLoginRoute = "/admin/login"
)

// # Decision

// Decision is the guard's verdict on one navigation.
type Decision struct {
	// Allow grants the navigation.
	Allow bool

	// RedirectTo is the route to send the user to instead. Empty when
	// Allow is true.
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(route string) Decision {
	return Decision{RedirectTo: route}
}

// # Farmer Guard

// Guard protects farmer-only screens.
type Guard struct {
	api      *client.Client
	sessions *session.Store
}

// New creates a farmer [Guard].
func New(api *client.Client, sessions *session.Store) *Guard {
	return &Guard{api: api, sessions: sessions}
}

/*
Check decides one navigation to a protected screen.

Without a local session there is nothing to verify and no request is made.
With one, the token is confirmed against the server; a rejection clears the
local session before redirecting. A network failure is treated as a
rejection: an unverifiable session must not unlock farmer data.

Parameters:
  - ctx: Bounds the verification call.

Returns:
  - Decision: Allow, or redirect to [AuthRoute].
*/
func (g *Guard) Check(ctx context.Context) Decision {
	if !g.sessions.IsAuthenticated() {
		return redirect(AuthRoute)
	}

	result := g.api.Profile(ctx)
	if !result.OK {
		_ = g.sessions.Clear()
		return redirect(AuthRoute)
	}

	// Keep the cached identity fresh while we have it.
	_ = g.sessions.SetUser(&result.Data)

	return allow()
}

// # Staff Guard

// AdminGuard protects the staff dashboard.
type AdminGuard struct {
	api      *client.Client
	sessions *session.AdminStore
}

// NewAdmin creates an [AdminGuard].
func NewAdmin(api *client.Client, sessions *session.AdminStore) *AdminGuard {
	return &AdminGuard{api: api, sessions: sessions}
}

// Check decides one navigation to the staff dashboard. The token is
// confirmed by probing a staff-only endpoint; any refusal clears the local
// staff session.
func (g *AdminGuard) Check(ctx context.Context) Decision {
	if !g.sessions.IsAuthenticated() {
		return redirect(AdminLoginRoute)
	}

	if result := g.api.AdminStats(ctx); !result.OK {
		_ = g.sessions.Clear()
		return redirect(AdminLoginRoute)
	}

	return allow()
}
