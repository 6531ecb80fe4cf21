package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/pkg/slug"
)

// Artist is the flat, display-ready shape of one catalog artist.
type Artist struct {
	ID                 int    `json:"id"`
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	Type               string `json:"type"`
	Avatar             string `json:"avatar"`
	DetailURL          string `json:"detail_url"`
	ArtworksCount      int    `json:"artworks_count"`
	ArtworksCountLabel string `json:"artworks_count_label"`
}

// NormalizeArtist maps one wire record to its display shape.
func NormalizeArtist(record pictufy.ArtistRecord) Artist {
	artistID := int(record.ArtistID)
	artistSlug := BuildArtistSlug(record)

	artworksCount := int(record.Artworks)
	artworksLabel := ""
	if artworksCount > 0 {
		artworksLabel = artworksCountLabel(artworksCount)
	}

	detailURL := ""
	if artistSlug != "" {
		detailURL = ArtistDetailURL(artistSlug, 1)
	}

	return Artist{
		ID:                 artistID,
		Slug:               artistSlug,
		Name:               record.Name,
		Username:           record.Username,
		Type:               record.Type,
		Avatar:             firstNonEmpty(record.ProfilePicture, record.Image),
		DetailURL:          detailURL,
		ArtworksCount:      artworksCount,
		ArtworksCountLabel: artworksLabel,
	}
}

// BuildArtistSlug derives the canonical artist slug.
//
// The textual part comes from the username when present, the display name
// otherwise. When the record carries a numeric artist id it is appended as
// the last hyphen-separated segment so the id can be recovered from the
// slug alone; records without an id keep the bare name slug.
func BuildArtistSlug(record pictufy.ArtistRecord) string {
	artistID := int(record.ArtistID)
	base := slug.From(firstNonEmpty(record.Username, record.Name))

	if artistID <= 0 {
		return base
	}
	if base == "" {
		return strconv.Itoa(artistID)
	}
	return fmt.Sprintf("%s-%d", base, artistID)
}

// ExtractArtistID recovers the numeric artist id embedded in a slug.
//
// A purely numeric slug is the id itself; otherwise the segment after the
// last hyphen is tried. Zero means the slug carries no usable id.
func ExtractArtistID(artistSlug string) int {
	artistSlug = strings.TrimSpace(artistSlug)
	if artistSlug == "" {
		return 0
	}

	if id, err := strconv.Atoi(artistSlug); err == nil && id > 0 {
		return id
	}

	if idx := strings.LastIndex(artistSlug, "-"); idx >= 0 {
		if id, err := strconv.Atoi(artistSlug[idx+1:]); err == nil && id > 0 {
			return id
		}
	}

	return 0
}

// ArtistDetailURL builds the pretty URL for an artist detail page.
func ArtistDetailURL(artistSlug string, page int) string {
	if artistSlug == "" {
		return ""
	}

	base := "/artist/" + artistSlug + "/"
	if page > 1 {
		return fmt.Sprintf("%spage/%d/", base, page)
	}
	return base
}
