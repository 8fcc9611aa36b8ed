// Copyright (c) 2026 Agrio India. All rights reserved.

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/pkg/pagination"
)

// BestSellerShelfSize caps the home-page best-seller shelf.
const BestSellerShelfSize = 8

// Handler implements catalog-related HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with product-specific routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/best-sellers", handler.bestSellers)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

// CategoryRoutes returns a [chi.Router] for the category listing.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.categories)

	return router
}

/*
List returns one page of the catalog.

GET /api/v1/products?category=&search=&page=&limit=

Response:
  - 200: Paginated []Product
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.service.List(request.Context(), Filter{
		CategorySlug: request.URL.Query().Get("category"),
		Search:       request.URL.Query().Get("search"),
		Pagination:   params,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
BestSellers returns the home-page best-seller shelf.

GET /api/v1/products/best-sellers

Response:
  - 200: []Product
*/
func (handler *Handler) bestSellers(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.BestSellers(request.Context(), BestSellerShelfSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
GetBySlug returns a single product for its detail page.

GET /api/v1/products/{slug}

Response:
  - 200: Product
  - 404: NOT_FOUND
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
Categories returns every category ordered for display.

GET /api/v1/categories

Response:
  - 200: []Category
*/
func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}
