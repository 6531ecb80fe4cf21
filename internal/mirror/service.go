package mirror

import (
	"context"
	"log/slog"

	"github.com/totmarc/pictufy-mirror/internal/catalog"
	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/validate"
)

// ArtworkCache is the slice of the catalog cache the mirror needs: dropping
// the cached payload of a removed artwork.
type ArtworkCache interface {
	DeleteArtwork(ctx context.Context, artworkID string)
}

// RemovedListener observes a completed expiry removal. EntryID is zero when
// no local entry mirrored the expired artwork.
type RemovedListener func(ctx context.Context, item pictufy.ExpiredRecord, entryID int)

// Service owns the mirror write paths: importing artworks and removing
// expired ones.
type Service struct {
	repository Repository
	cache      ArtworkCache
	logger     *slog.Logger

	// removedListeners fire after every removal, in registration order,
	// whether or not a local entry existed.
	removedListeners []RemovedListener
}

// NewService creates a mirror service.
func NewService(repository Repository, cache ArtworkCache, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, logger: logger}
}

// OnRemoved registers a listener for completed expiry removals.
func (s *Service) OnRemoved(listener RemovedListener) {
	s.removedListeners = append(s.removedListeners, listener)
}

// Import mirrors one normalized artwork as a published entry with its
// image attachments.
func (s *Service) Import(ctx context.Context, artwork catalog.Artwork) (*Entry, error) {
	if artwork.ID == "" {
		return nil, validate.RequiredError("id", "Missing artwork ID")
	}

	entry := &Entry{
		ArtworkID:  artwork.ID,
		Title:      artwork.Title,
		ArtistID:   artwork.ArtistID,
		ArtistName: artwork.Artist,
	}

	var media []Media
	if artwork.Image != "" {
		media = append(media, Media{URL: artwork.Image, Role: MediaRoleCover})
	}
	if artwork.ImageLarge != "" && artwork.ImageLarge != artwork.Image {
		media = append(media, Media{URL: artwork.ImageLarge, Role: MediaRoleGallery})
	}

	if err := s.repository.Create(ctx, entry, media); err != nil {
		return nil, err
	}

	s.logger.Info("artwork imported into mirror",
		slog.String("artwork_id", entry.ArtworkID),
		slog.Int("entry_id", entry.ID),
	)

	return entry, nil
}

// Entries returns one page of published mirror entries.
func (s *Service) Entries(ctx context.Context, limit, offset int) ([]Entry, error) {
	return s.repository.List(ctx, limit, offset)
}

// HandleExpired removes the local traces of one expired artwork.
//
// The entry, when present, is trashed and its media deleted; the cached
// artwork payload is dropped either way, and removed listeners fire either
// way so downstream observers always see the expiry. Storage failures abort
// before the listeners.
func (s *Service) HandleExpired(ctx context.Context, item pictufy.ExpiredRecord) {
	artworkID := string(item.ArtworkID)
	if artworkID == "" {
		return
	}

	entryID := 0
	entry, err := s.repository.FindByArtworkID(ctx, artworkID)
	switch {
	case err == nil:
		if err := s.repository.Trash(ctx, entry.ID); err != nil {
			s.logger.Error("expired entry trash failed",
				slog.String("artwork_id", artworkID), slog.Any("error", err))
			return
		}
		if err := s.repository.DeleteMedia(ctx, entry.ID); err != nil {
			s.logger.Error("expired entry media delete failed",
				slog.String("artwork_id", artworkID), slog.Any("error", err))
			return
		}
		entryID = entry.ID

	case apperr.IsNotFound(err):
		// No local entry; the cache and listeners still need the expiry.

	default:
		s.logger.Error("expired entry lookup failed",
			slog.String("artwork_id", artworkID), slog.Any("error", err))
		return
	}

	s.cache.DeleteArtwork(ctx, artworkID)

	for _, listener := range s.removedListeners {
		listener(ctx, item, entryID)
	}

	s.logger.Info("expired artwork removed",
		slog.String("artwork_id", artworkID),
		slog.Int("entry_id", entryID),
	)
}
