// Copyright (c) 2026 Agrio India. All rights reserved.

package rewards

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrioindia/platform/internal/platform/middleware"
	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/validate"
	"github.com/agrioindia/platform/pkg/pagination"
)

// Handler implements loyalty program HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with loyalty routes.
//
// Every endpoint requires an authenticated farmer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/scan", handler.scan)
	router.Get("/", handler.history)
	router.Get("/stats", handler.stats)

	return router
}

// # Request Payloads

type scanRequest struct {
	Code string `json:"code"`
}

/*
Scan redeems a coupon code for the authenticated farmer.

POST /api/v1/rewards/scan

Request:
  - Body: scanRequest (Code)

Response:
  - 201: Reward: The credited ledger entry
  - 404: NOT_FOUND: Unknown coupon code
  - 409: CONFLICT: Coupon already redeemed
*/
func (handler *Handler) scan(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input scanRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code).
		MinLen(FieldCode, input.Code, 8).
		MaxLen(FieldCode, input.Code, 64)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reward, err := handler.service.Scan(request.Context(), userID, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reward)
}

/*
History returns one page of the farmer's ledger.

GET /api/v1/rewards?page=&limit=

Response:
  - 200: Paginated []Reward
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.service.History(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Stats aggregates the farmer's ledger.

GET /api/v1/rewards/stats

Response:
  - 200: Stats
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
