package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
	requestutil "github.com/totmarc/pictufy-mirror/internal/platform/request"
	"github.com/totmarc/pictufy-mirror/internal/platform/respond"
	"github.com/totmarc/pictufy-mirror/internal/platform/sec"
	"github.com/totmarc/pictufy-mirror/pkg/convert"
)

// Handler exposes the catalog read model over HTTP.
type Handler struct {
	service *Service
	nonces  *sec.NonceService
	logger  *slog.Logger
}

// NewHandler creates a catalog HTTP handler.
func NewHandler(service *Service, nonces *sec.NonceService, logger *slog.Logger) *Handler {
	return &Handler{service: service, nonces: nonces, logger: logger}
}

// Routes builds the catalog route group.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/collections", h.listCollections)
	router.Get("/artists", h.listArtists)
	router.Get("/categories", h.listCategories)
	router.Get("/nonce", h.issueNonce)
	router.Post("/artworks", h.queryArtworks)
	return router
}

// listCollections serves the flattened collections listing.
// "refresh=1" bypasses the cache read while still refreshing the snapshot.
func (h *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	args := ListingArgs{
		Category: queryParams.Get("category"),
		Order:    queryParams.Get("order"),
	}
	force := convert.ToBool(queryParams.Get("refresh"))

	items, err := h.service.CollectionsData(request.Context(), args, force)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": items})
}

// listArtists serves one page of the artists listing, or the full roster
// when "all=1" is set.
func (h *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	params := pictufy.ArtistParams{
		Order:   queryParams.Get("order"),
		Page:    convert.ToInt(queryParams.Get("page")),
		PerPage: convert.ToInt(queryParams.Get("per_page")),
	}
	all := convert.ToBool(queryParams.Get("all"))

	artists, hasMore, err := h.service.Artists(request.Context(), params, all)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": artists, "has_more": hasMore})
}

// listCategories serves the category listing.
func (h *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := h.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"items": categories})
}

// issueNonce hands out a short-lived token for the artworks query endpoint.
func (h *Handler) issueNonce(writer http.ResponseWriter, request *http.Request) {
	nonce, err := h.nonces.Issue(constants.NonceActionArtworks)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, map[string]any{"nonce": nonce})
}

// artworksQueryPayload is the wire shape of an artworks grid query.
type artworksQueryPayload struct {
	Nonce   string         `json:"nonce"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Order   string         `json:"order"`
	Filters map[string]any `json:"filters"`
}

// artworksQueryResult is the data member of a successful artworks response.
type artworksQueryResult struct {
	Items   []Artwork `json:"items"`
	HasMore bool      `json:"has_more"`
}

// queryArtworks serves the artworks grid query.
//
// The request must carry a valid nonce for the artworks action; page and
// per_page are clamped server-side regardless of what the client sent, and
// the response reports has_more by the full-page rule.
func (h *Handler) queryArtworks(writer http.ResponseWriter, request *http.Request) {
	var payload artworksQueryPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.AjaxError(writer, request, err)
		return
	}

	if err := h.nonces.Verify(payload.Nonce, constants.NonceActionArtworks); err != nil {
		respond.AjaxError(writer, request, apperr.Unauthorized("Invalid or expired nonce"))
		return
	}

	items, hasMore, err := h.service.Artworks(request.Context(), ArtworkQuery{
		Page:    payload.Page,
		PerPage: payload.PerPage,
		Order:   payload.Order,
		Filters: payload.Filters,
	})
	if err != nil {
		respond.AjaxError(writer, request, err)
		return
	}

	respond.AjaxOK(writer, artworksQueryResult{Items: items, HasMore: hasMore})
}
