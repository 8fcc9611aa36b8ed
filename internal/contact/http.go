// Copyright (c) 2026 Agrio India. All rights reserved.

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/internal/platform/validate"
)

// Handler implements the contact form HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with contact routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)

	return router
}

type submitRequest struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

/*
Submit stores a contact form enquiry.

POST /api/v1/contact

Request:
  - Body: submitRequest (Name, Mobile, Email, Subject, Message)

Response:
  - 201: Message: The stored enquiry
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 100).
		Required("mobile", input.Mobile).
		Mobile("mobile", input.Mobile).
		Required("message", input.Message).
		MinLen("message", input.Message, 10).
		MaxLen("message", input.Message, 2000)

	if input.Email != "" {
		validator.Email("email", input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Submit(request.Context(), &Message{
		Name:    input.Name,
		Mobile:  input.Mobile,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}
