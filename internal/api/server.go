// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package api assembles the chi router, the middleware chain, and every
domain handler into one runnable [http.Server].

Architecture:

  - Topmost Presentation layer boundary and HTTP composition root.
  - Domain packages expose chi sub-routers; this package mounts them.
  - net/http server primitives stay inside here and cmd/api.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agrioindia/platform/internal/admin"
	"github.com/agrioindia/platform/internal/catalog/crop"
	"github.com/agrioindia/platform/internal/catalog/product"
	"github.com/agrioindia/platform/internal/contact"
	"github.com/agrioindia/platform/internal/distributor"
	"github.com/agrioindia/platform/internal/platform/config"
	"github.com/agrioindia/platform/internal/platform/constants"
	"github.com/agrioindia/platform/internal/platform/middleware"
	"github.com/agrioindia/platform/internal/rewards"
	"github.com/agrioindia/platform/internal/users/auth"
)

// # Server Definitions

// Server pairs the configured chi router with its [http.Server].
// Built exactly once, in cmd/api, with everything injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers carries one field per domain handler set.
//
// # Usage
//
// A new domain adds a field here and a Mount call below; nothing else
// in this file changes.
type Handlers struct {
	// Liveness answers /health whenever the process is up.
	Liveness http.HandlerFunc

	// Readiness answers /ready once Postgres and Redis respond.
	Readiness http.HandlerFunc

	// Auth handles the farmer OTP flow, profile, and crop preferences.
	Auth *auth.Handler

	// Product handles the agrochemical catalog and categories.
	Product *product.Handler

	// Crop handles the crop directory behind preference selection.
	Crop *crop.Handler

	// Distributor handles the dealer locator.
	Distributor *distributor.Handler

	// Rewards handles QR coupon scans and the loyalty ledger.
	Rewards *rewards.Handler

	// Contact handles the enquiry form.
	Contact *contact.Handler

	// Admin handles the back office.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer builds the router, applies the global middleware chain, and
// mounts every route group.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Order matters: tracing and logging wrap everything that follows.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Probes stay outside /api/v1 and need no authentication.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Every domain mounts under the versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/products", h.Product.Routes())
		api.Mount("/categories", h.Product.CategoryRoutes())
		api.Mount("/crops", h.Crop.Routes())
		api.Mount("/distributors", h.Distributor.Routes())
		api.Mount("/rewards", h.Rewards.Routes())
		api.Mount("/contact", h.Contact.Routes())
		api.Mount("/admin", h.Admin.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts accepting traffic and blocks until the server
// closes or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
