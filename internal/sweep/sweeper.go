// Package sweep walks the upstream expired-artworks feed and fans every
// newly seen expiry out to registered listeners.
//
// A run pages through the feed until a short page or an upstream failure.
// Failures abort the run without touching anything local; the next scheduled
// run starts over from the first page.
package sweep

import (
	"context"
	"log/slog"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
)

// ExpiredFeed is the slice of the upstream client the sweeper consumes.
type ExpiredFeed interface {
	GetExpiredArtworks(ctx context.Context, page, perPage int) (*pictufy.Response, error)
}

// ExpiredListener observes one newly seen expired artwork.
type ExpiredListener func(ctx context.Context, item pictufy.ExpiredRecord)

// Stats summarizes one sweep run.
type Stats struct {
	Pages      int
	Processed  int
	Duplicates int
	Aborted    bool
}

// Sweeper drives the expired-artworks walk.
type Sweeper struct {
	feed    ExpiredFeed
	perPage int
	logger  *slog.Logger

	// expiredListeners fire once per distinct artwork id per run, in
	// registration order.
	expiredListeners []ExpiredListener
}

// NewSweeper creates a sweeper over the given feed.
func NewSweeper(feed ExpiredFeed, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		feed:    feed,
		perPage: constants.SweepPerPage,
		logger:  logger,
	}
}

// OnExpired registers a listener for newly seen expired artworks.
func (s *Sweeper) OnExpired(listener ExpiredListener) {
	s.expiredListeners = append(s.expiredListeners, listener)
}

// Run walks the feed from the first page until it is exhausted.
//
// Each page is processed before the short-page check, so the items of a
// final partial page are never skipped. Ids already seen earlier in the same
// run are dropped; the feed is allowed to repeat entries across pages.
func (s *Sweeper) Run(ctx context.Context) Stats {
	var stats Stats
	seen := make(map[string]struct{})

	for page := 1; ; page++ {
		response, err := s.feed.GetExpiredArtworks(ctx, page, s.perPage)
		if err != nil {
			s.logger.Error("expired sweep aborted",
				slog.Int("page", page), slog.Any("error", err))
			stats.Aborted = true
			return stats
		}

		if len(response.Items) == 0 {
			return stats
		}
		stats.Pages++

		for _, item := range pictufy.DecodeExpired(response.Items) {
			artworkID := string(item.ArtworkID)
			if artworkID == "" {
				continue
			}
			if _, dup := seen[artworkID]; dup {
				stats.Duplicates++
				continue
			}
			seen[artworkID] = struct{}{}

			for _, listener := range s.expiredListeners {
				listener(ctx, item)
			}
			stats.Processed++
		}

		if response.Returned() < s.perPage {
			s.logger.Info("expired sweep finished",
				slog.Int("pages", stats.Pages),
				slog.Int("processed", stats.Processed),
				slog.Int("duplicates", stats.Duplicates),
			)
			return stats
		}
	}
}
