// Copyright (c) 2026 Agrio India. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrioindia/platform/internal/platform/middleware"
	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/platform/validate"
	"github.com/agrioindia/platform/pkg/pagination"
)

// Handler implements back-office HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with back-office routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.Post("/login", handler.login)

	// Staff-only endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/stats", handler.stats)
		r.Get("/users", handler.users)
	})

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates a staff account.

POST /api/v1/admin/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: StaffSession: Access token and account
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldAdmin:       session.Account,
	})
}

/*
Stats returns the dashboard summary.

GET /api/v1/admin/stats

Response:
  - 200: PlatformStats
  - 403: FORBIDDEN: Caller lacks a staff role
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
Users returns one page of farmer accounts.

GET /api/v1/admin/users?page=&limit=

Response:
  - 200: Paginated []User
  - 403: FORBIDDEN: Caller lacks a staff role
*/
func (handler *Handler) users(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.service.Users(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}
