package crop

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/agrioindia/platform/internal/platform/request"
	"github.com/agrioindia/platform/internal/platform/respond"
	"github.com/agrioindia/platform/pkg/query"
	"github.com/agrioindia/platform/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	crops, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Optional ?season=kharif,rabi filter.
	if seasons := query.StringSlice(request.URL.Query().Get("season")); len(seasons) > 0 {
		crops = slice.Filter(crops, func(item *Crop) bool {
			return slices.Contains(seasons, item.Season)
		})
	}

	respond.OK(writer, crops)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}
