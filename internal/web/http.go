package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/totmarc/pictufy-mirror/internal/catalog"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
	requestutil "github.com/totmarc/pictufy-mirror/internal/platform/request"
	"github.com/totmarc/pictufy-mirror/internal/platform/sec"
	"github.com/totmarc/pictufy-mirror/pkg/convert"
)

// Artworks per grid page on the HTML detail views.
const (
	collectionPerPage = 12
	artistPerPage     = constants.ArtistArtworksPerPage
)

// Handler serves the public HTML pages.
type Handler struct {
	service  *catalog.Service
	nonces   *sec.NonceService
	renderer *Renderer
	logger   *slog.Logger
}

// NewHandler creates a web page handler.
func NewHandler(service *catalog.Service, nonces *sec.NonceService, renderer *Renderer, logger *slog.Logger) *Handler {
	return &Handler{service: service, nonces: nonces, renderer: renderer, logger: logger}
}

// RegisterRoutes mounts the pretty page routes on a router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/collection/{slug}", h.collectionPage)
	router.Get("/collection/{slug}/page/{page}", h.collectionPage)
	router.Get("/artist/{slug}", h.artistPage)
	router.Get("/artist/{slug}/page/{page}", h.artistPage)
}

// collectionPageData feeds the collection template.
type collectionPageData struct {
	Render     *RenderContext
	Collection *catalog.Collection
	Artworks   []catalog.Artwork
	Page       int
	PrevURL    string
	NextURL    string
	Nonce      string
}

// collectionPage renders one paged collection detail view.
func (h *Handler) collectionPage(writer http.ResponseWriter, request *http.Request) {
	pageSlug := requestutil.Param(request, "slug")
	page := pageNumber(request)

	collection, err := h.service.FindCollectionBySlug(request.Context(), pageSlug, catalog.ListingArgs{})
	if err != nil {
		h.fail(writer, err)
		return
	}

	// The upstream accepts the slug, the id, or the canonical URL as the
	// collection identifier; prefer them in that order.
	identifier := collection.Slug
	if identifier == "" {
		identifier = collection.ID
	}
	if identifier == "" {
		identifier = collection.ExternalURL
	}

	artworks, hasMore, err := h.service.Artworks(request.Context(), catalog.ArtworkQuery{
		Page:    page,
		PerPage: collectionPerPage,
		Filters: map[string]any{"collection_id": identifier},
	})
	if err != nil {
		h.fail(writer, err)
		return
	}

	data := collectionPageData{
		Render:     NewRenderContext(),
		Collection: collection,
		Artworks:   artworks,
		Page:       page,
		Nonce:      h.issueNonce(),
	}
	if page > 1 {
		data.PrevURL = catalog.CollectionDetailURL(collection.Slug, page-1)
	}
	if hasMore {
		data.NextURL = catalog.CollectionDetailURL(collection.Slug, page+1)
	}

	h.render(writer, "collection", data)
}

// artistPageData feeds the artist template.
type artistPageData struct {
	Render   *RenderContext
	Artist   *catalog.Artist
	Artworks []catalog.Artwork
	Page     int
	PrevURL  string
	NextURL  string
	Nonce    string
}

// artistPage renders one paged artist detail view.
func (h *Handler) artistPage(writer http.ResponseWriter, request *http.Request) {
	pageSlug := requestutil.Param(request, "slug")
	page := pageNumber(request)

	artist, err := h.service.FindArtistBySlug(request.Context(), pageSlug)
	if err != nil {
		h.fail(writer, err)
		return
	}

	artworks, hasMore, err := h.service.ArtistArtworks(request.Context(), artist.ID, page, artistPerPage)
	if err != nil {
		h.fail(writer, err)
		return
	}

	data := artistPageData{
		Render:   NewRenderContext(),
		Artist:   artist,
		Artworks: artworks,
		Page:     page,
		Nonce:    h.issueNonce(),
	}
	if page > 1 {
		data.PrevURL = catalog.ArtistDetailURL(artist.Slug, page-1)
	}
	if hasMore {
		data.NextURL = catalog.ArtistDetailURL(artist.Slug, page+1)
	}

	h.render(writer, "artist", data)
}

// pageNumber parses the page path segment, flooring at the first page.
func pageNumber(request *http.Request) int {
	page := convert.ToIntD(requestutil.Param(request, "page"), 1)
	if page < 1 {
		page = 1
	}
	return page
}

// issueNonce hands out the grid token embedded in each page. A signing
// failure degrades to an empty token rather than failing the page.
func (h *Handler) issueNonce() string {
	nonce, err := h.nonces.Issue(constants.NonceActionArtworks)
	if err != nil {
		h.logger.Error("page nonce issue failed", slog.Any("error", err))
		return ""
	}
	return nonce
}

// render executes a page template, degrading to a plain 500 on failure.
func (h *Handler) render(writer http.ResponseWriter, name string, data any) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(writer, name, data); err != nil {
		h.logger.Error("page render failed", slog.String("template", name), slog.Any("error", err))
		http.Error(writer, "Something went wrong rendering this page.", http.StatusInternalServerError)
	}
}

// fail writes a plain-text page failure with the error's message and status.
// Unresolvable slugs surface as a 404 here.
func (h *Handler) fail(writer http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong."

	if appError := apperr.As(err); appError != nil {
		status = appError.HTTPStatus
		message = appError.Message
	}

	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(message))
}
