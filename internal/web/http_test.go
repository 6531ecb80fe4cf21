package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/catalog"
	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/sec"
)

// pageStubAPI satisfies catalog.API with canned collection responses.
type pageStubAPI struct {
	collections    *pictufy.Response
	collectionsErr error
}

func (s *pageStubAPI) GetCollections(context.Context, string, string) (*pictufy.Response, error) {
	if s.collectionsErr != nil {
		return nil, s.collectionsErr
	}
	if s.collections != nil {
		return s.collections, nil
	}
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetArtists(context.Context, pictufy.ArtistParams) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetAllArtists(context.Context, pictufy.ArtistParams) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetArtist(context.Context, int) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetArtistArtworks(context.Context, int, int, int) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetCategories(context.Context) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

func (s *pageStubAPI) GetArtworks(context.Context, pictufy.ArtworkParams) (*pictufy.Response, error) {
	return &pictufy.Response{}, nil
}

// noopCache is a catalog.Cache that never hits.
type noopCache struct{}

func (noopCache) GetListing(context.Context, string) (*catalog.CachedListing, bool) {
	return nil, false
}

func (noopCache) SetListing(context.Context, string, *catalog.CachedListing) {}

func (noopCache) DeleteArtwork(context.Context, string) {}

func newPageRouter(t *testing.T, api catalog.API) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	service := catalog.NewService(api, noopCache{}, logger)

	nonces, err := sec.NewNonceService("test-secret", "pages-test", time.Minute)
	require.NoError(t, err)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(service, nonces, renderer, logger).RegisterRoutes(router)
	return router
}

/* TestCollectionPage_UnresolvedSlug verifies an unknown collection slug
answers 404 with a plain-text body. */
func TestCollectionPage_UnresolvedSlug(t *testing.T) {
	router := newPageRouter(t, &pageStubAPI{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/collection/no-such-collection", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "Collection not found", recorder.Body.String())
}

/* TestCollectionPage_UpstreamFailure verifies an upstream error surfaces
with its status and message instead of a generic 500. */
func TestCollectionPage_UpstreamFailure(t *testing.T) {
	api := &pageStubAPI{collectionsErr: apperr.Upstream("Invalid JSON response from API", nil)}
	router := newPageRouter(t, api)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/collection/neon-dreams", nil))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Equal(t, "Invalid JSON response from API", recorder.Body.String())
}
