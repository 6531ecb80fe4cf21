package mirror

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/totmarc/pictufy-mirror/internal/catalog"
	requestutil "github.com/totmarc/pictufy-mirror/internal/platform/request"
	"github.com/totmarc/pictufy-mirror/internal/platform/respond"
	"github.com/totmarc/pictufy-mirror/pkg/pagination"
)

// Handler exposes the mirror over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a mirror HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes builds the mirror route group.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/entries", h.listEntries)
	router.Post("/entries", h.importArtwork)
	return router
}

// listEntries serves one page of published mirror entries.
func (h *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request, pagination.DefaultPerPage)
	offset := (params.Page - 1) * params.PerPage

	entries, err := h.service.Entries(request.Context(), params.PerPage, offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": entries})
}

// importArtwork mirrors one normalized artwork as a local entry.
func (h *Handler) importArtwork(writer http.ResponseWriter, request *http.Request) {
	var artwork catalog.Artwork
	if err := requestutil.DecodeJSON(request, &artwork); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := h.service.Import(request.Context(), artwork)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Data: entry})
}
