// Copyright (c) 2026 Agrio India. All rights reserved.

package distributor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/validate"
	"github.com/agrioindia/platform/pkg/convert"
)

// Handler implements dealer locator HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with locator routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.locate)

	return router
}

/*
Locate finds dealers either by PIN code or by coordinates.

GET /api/v1/distributors?pincode=110001
GET /api/v1/distributors?lat=28.6&lng=77.2&radius_km=50

Description: The pincode parameter wins when both search styles are supplied.

Response:
  - 200: []Distributor
  - 400: VALIDATION_ERROR: Neither search style usable
*/
func (handler *Handler) locate(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	if pinCode := queryParams.Get("pincode"); pinCode != "" {
		validator := &validate.Validator{}
		validator.Pincode("pincode", pinCode)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		dealers, err := handler.service.LocateByPinCode(request.Context(), pinCode)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, dealers)
		return
	}

	if queryParams.Get("lat") == "" || queryParams.Get("lng") == "" {
		respond.Error(writer, request, validate.RequiredError("pincode", "Provide either a pincode or lat and lng"))
		return
	}

	dealers, err := handler.service.LocateNearby(
		request.Context(),
		convert.ToFloat64(queryParams.Get("lat")),
		convert.ToFloat64(queryParams.Get("lng")),
		convert.ToFloat64(queryParams.Get("radius_km")),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dealers)
}
