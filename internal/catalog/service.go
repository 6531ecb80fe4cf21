// Package catalog is the read model over the remote art catalog: it
// normalizes the upstream's loose wire records into flat display shapes,
// caches collection listings under a short TTL, and resolves pretty slugs
// back to collections and artists.
package catalog

import (
	"context"
	"log/slog"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
	"github.com/totmarc/pictufy-mirror/internal/platform/validate"
	"github.com/totmarc/pictufy-mirror/pkg/pagination"
)

// artistScanOrders are the listing orders an ambiguous artist slug is
// checked against, one page each, in this sequence.
var artistScanOrders = []string{"trending", "artwork_count", "alpha"}

// API is the slice of the upstream client the catalog service consumes.
type API interface {
	GetCollections(ctx context.Context, category, order string) (*pictufy.Response, error)
	GetArtists(ctx context.Context, p pictufy.ArtistParams) (*pictufy.Response, error)
	GetAllArtists(ctx context.Context, p pictufy.ArtistParams) (*pictufy.Response, error)
	GetArtist(ctx context.Context, artistID int) (*pictufy.Response, error)
	GetArtistArtworks(ctx context.Context, artistID, page, perPage int) (*pictufy.Response, error)
	GetCategories(ctx context.Context) (*pictufy.Response, error)
	GetArtworks(ctx context.Context, p pictufy.ArtworkParams) (*pictufy.Response, error)
}

// Service is the catalog read model: cached listings, slug resolution, and
// normalized artwork pages over the upstream client.
type Service struct {
	api    API
	cache  Cache
	logger *slog.Logger
}

// NewService creates a catalog service.
func NewService(api API, cache Cache, logger *slog.Logger) *Service {
	return &Service{api: api, cache: cache, logger: logger}
}

// CollectionsData returns the flattened, normalized collections listing.
//
// The listing is served from cache when a snapshot for the same arguments
// exists; force bypasses the read but a successful refetch still replaces
// the snapshot. Upstream failures are returned as-is and never cached.
func (s *Service) CollectionsData(ctx context.Context, args ListingArgs, force bool) ([]Collection, error) {
	key := ListingKey(args)

	if !force {
		if cached, ok := s.cache.GetListing(ctx, key); ok {
			return cached.Items, nil
		}
	}

	response, err := s.api.GetCollections(ctx, args.Category, args.Order)
	if err != nil {
		return nil, err
	}

	items := FlattenCollections(pictufy.DecodeCollectionGroups(response.Items))
	s.cache.SetListing(ctx, key, &CachedListing{Items: items})

	return items, nil
}

// FindCollectionBySlug resolves a collection by its derived slug.
//
// Upstream failures surface verbatim; a listing that simply lacks the slug
// is a not-found.
func (s *Service) FindCollectionBySlug(ctx context.Context, collectionSlug string, args ListingArgs) (*Collection, error) {
	if collectionSlug == "" {
		return nil, validate.RequiredError("slug", "Missing collection slug")
	}

	items, err := s.CollectionsData(ctx, args, false)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Slug == collectionSlug {
			return &items[i], nil
		}
	}

	return nil, apperr.NotFound("Collection")
}

// FindArtistBySlug resolves an artist by slug.
//
// # Resolution
//
// A numeric id embedded in the slug (either the whole slug or its last
// hyphen-separated segment) is tried first as a direct lookup. Failing that,
// one page of each scan order is fetched and every record's canonical slug
// is rebuilt and compared. The last upstream error across attempts, the
// direct lookup included, is reported only when no strategy produced a match.
func (s *Service) FindArtistBySlug(ctx context.Context, artistSlug string) (*Artist, error) {
	if artistSlug == "" {
		return nil, validate.RequiredError("slug", "Missing artist slug")
	}

	var lastErr error

	if artistID := ExtractArtistID(artistSlug); artistID > 0 {
		artist, err := s.artistByID(ctx, artistID)
		if err == nil && artist != nil {
			return artist, nil
		}
		if err != nil && !apperr.IsNotFound(err) {
			lastErr = err
			s.logger.Warn("direct artist lookup failed, falling back to listing scan",
				slog.Int("artist_id", artistID), slog.Any("error", err))
		}
	}

	for _, order := range artistScanOrders {
		response, err := s.api.GetArtists(ctx, pictufy.ArtistParams{Order: order})
		if err != nil {
			lastErr = err
			continue
		}

		for _, record := range pictufy.DecodeArtists(response.Items) {
			if BuildArtistSlug(record) == artistSlug {
				artist := NormalizeArtist(record)
				return &artist, nil
			}
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, apperr.NotFound("Artist")
}

// artistByID fetches and normalizes a single artist record.
func (s *Service) artistByID(ctx context.Context, artistID int) (*Artist, error) {
	response, err := s.api.GetArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	records := pictufy.DecodeArtists(response.Items)
	if len(records) == 0 {
		return nil, apperr.NotFound("Artist")
	}

	artist := NormalizeArtist(records[0])
	return &artist, nil
}

// Artists returns one normalized page of the artists listing, or the whole
// roster when all is set.
func (s *Service) Artists(ctx context.Context, params pictufy.ArtistParams, all bool) ([]Artist, bool, error) {
	var (
		response *pictufy.Response
		err      error
	)
	if all {
		response, err = s.api.GetAllArtists(ctx, params)
	} else {
		response, err = s.api.GetArtists(ctx, params)
	}
	if err != nil {
		return nil, false, err
	}

	records := pictufy.DecodeArtists(response.Items)
	artists := make([]Artist, 0, len(records))
	for _, record := range records {
		artists = append(artists, NormalizeArtist(record))
	}

	hasMore := !all && params.PerPage > 0 && pagination.HasMore(response.Returned(), params.PerPage)
	return artists, hasMore, nil
}

// ArtworkQuery narrows a normalized artworks page.
type ArtworkQuery struct {
	Page    int
	PerPage int
	Order   string
	Filters map[string]any
}

// Artworks returns one normalized artworks page for a loose query.
//
// Page and per_page are clamped to the listing bounds, filters are reduced
// to the allow-listed typed set, and has_more follows the full-page rule:
// a page shorter than per_page is the last one. An omitted per_page takes
// the listing default rather than the raw client default.
func (s *Service) Artworks(ctx context.Context, q ArtworkQuery) ([]Artwork, bool, error) {
	if q.PerPage == 0 {
		q.PerPage = pagination.DefaultPerPage
	}
	params := pagination.Clamp(q.Page, q.PerPage)

	response, err := s.api.GetArtworks(ctx, pictufy.ArtworkParams{
		Page:    params.Page,
		PerPage: params.PerPage,
		Order:   q.Order,
		Filters: NormalizeArtworkFilters(q.Filters),
	})
	if err != nil {
		return nil, false, err
	}

	items := NormalizeArtworks(pictufy.DecodeArtworks(response.Items))
	return items, pagination.HasMore(response.Returned(), params.PerPage), nil
}

// ArtistArtworks returns one normalized page of an artist's artworks.
func (s *Service) ArtistArtworks(ctx context.Context, artistID, page, perPage int) ([]Artwork, bool, error) {
	if perPage == 0 {
		perPage = constants.ArtistArtworksPerPage
	}
	params := pagination.Clamp(page, perPage)

	response, err := s.api.GetArtistArtworks(ctx, artistID, params.Page, params.PerPage)
	if err != nil {
		return nil, false, err
	}

	items := NormalizeArtworks(pictufy.DecodeArtworks(response.Items))
	return items, pagination.HasMore(response.Returned(), params.PerPage), nil
}

// Categories returns the normalized category listing.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	response, err := s.api.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	return NormalizeCategories(pictufy.DecodeCategories(response.Items)), nil
}
