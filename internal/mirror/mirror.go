// Package mirror maintains the local Postgres mirror of imported artworks.
//
// A mirror entry is a locally published copy of one upstream artwork,
// together with its media attachments. The package owns the import path and
// the expiry removal path: when the upstream reports an artwork expired, its
// entry is trashed, its media deleted, and its cached payload dropped.
package mirror

import (
	"context"
	"time"
)

// Entry statuses.
const (
	StatusPublished = "published"
	StatusTrashed   = "trashed"
)

// Media roles.
const (
	MediaRoleCover   = "cover"
	MediaRoleGallery = "gallery"
)

// Entry is one locally mirrored artwork.
type Entry struct {
	ID         int        `json:"id"`
	ArtworkID  string     `json:"artwork_id"`
	Title      string     `json:"title"`
	ArtistID   int        `json:"artist_id"`
	ArtistName string     `json:"artist_name"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	TrashedAt  *time.Time `json:"trashed_at,omitempty"`
}

// Media is one media attachment of a mirrored artwork.
type Media struct {
	ID        int       `json:"id"`
	EntryID   int       `json:"entry_id"`
	URL       string    `json:"url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is the persistence boundary of the mirror.
type Repository interface {
	// Create inserts a published entry with its media in one transaction.
	Create(ctx context.Context, entry *Entry, media []Media) error

	// FindByArtworkID loads the published entry mirroring an upstream
	// artwork id. Absence maps to a not-found error.
	FindByArtworkID(ctx context.Context, artworkID string) (*Entry, error)

	// Trash marks an entry trashed and stamps the trash time.
	Trash(ctx context.Context, entryID int) error

	// DeleteMedia removes every media attachment of an entry.
	DeleteMedia(ctx context.Context, entryID int) error

	// List returns published entries, newest first.
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}
