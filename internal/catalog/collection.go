package catalog

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/pkg/pointer"
	"github.com/totmarc/pictufy-mirror/pkg/slug"
)

const excerptWordLimit = 20

var (
	// stripPolicy removes every HTML tag from upstream descriptions.
	stripPolicy = bluemonday.StrictPolicy()

	// countPrinter renders grouped artwork counts ("1,240 artworks").
	countPrinter = message.NewPrinter(language.English)
)

// Collection is the flat, display-ready shape of one catalog collection.
type Collection struct {
	ID                 string `json:"id"`
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Excerpt            string `json:"excerpt"`
	Cover              string `json:"cover"`
	CardImage          string `json:"card_image"`
	ExternalURL        string `json:"external_url"`
	DetailURL          string `json:"detail_url"`
	ArtworksCount      int    `json:"artworks_count"`
	ArtworksCountLabel string `json:"artworks_count_label"`
}

// NormalizeCollection maps one wire record to its display shape.
//
// # Slug Priority
//
// The explicit slug field wins; a missing slug falls back to the basename of
// the record's canonical URL; a missing URL falls back to the id. The slug
// is non-empty whenever any of the three is derivable.
func NormalizeCollection(record pictufy.CollectionRecord) Collection {
	derivedSlug := slug.From(record.Slug)

	if derivedSlug == "" && record.URL != "" {
		derivedSlug = slug.FromURLPath(record.URL)
	}

	if derivedSlug == "" && record.ID != "" {
		derivedSlug = slug.From(string(record.ID))
	}

	description := ""
	if record.Description != "" {
		description = stripTags(record.Description)
	}

	excerpt := ""
	if description != "" {
		excerpt = trimWords(description, excerptWordLimit, "...")
	}

	// Card image prefers the small variants; cover prefers the large ones.
	cardImage := firstNonEmpty(record.Thumb, record.CoverSmall)
	cover := firstNonEmpty(record.Cover, record.CoverLarge, record.Thumb)
	if cardImage == "" {
		cardImage = cover
	}

	artworksCount := int(pointer.Val(record.Artworks))
	artworksLabel := ""
	if artworksCount > 0 {
		artworksLabel = artworksCountLabel(artworksCount)
	}

	detailURL := ""
	if derivedSlug != "" {
		detailURL = CollectionDetailURL(derivedSlug, 1)
	}

	return Collection{
		ID:                 string(record.ID),
		Slug:               derivedSlug,
		Name:               record.Name,
		Description:        description,
		Excerpt:            excerpt,
		Cover:              cover,
		CardImage:          cardImage,
		ExternalURL:        record.URL,
		DetailURL:          detailURL,
		ArtworksCount:      artworksCount,
		ArtworksCountLabel: artworksLabel,
	}
}

// FlattenCollections expands every nested group of a collections listing
// into one flat display list.
func FlattenCollections(groups []pictufy.CollectionGroup) []Collection {
	var flattened []Collection
	for _, group := range groups {
		for _, record := range group.Collections {
			flattened = append(flattened, NormalizeCollection(record))
		}
	}
	return flattened
}

// CollectionDetailURL builds the pretty URL for a collection detail page.
func CollectionDetailURL(collectionSlug string, page int) string {
	if collectionSlug == "" {
		return ""
	}

	base := "/collection/" + collectionSlug + "/"
	if page > 1 {
		return fmt.Sprintf("%spage/%d/", base, page)
	}
	return base
}

// stripTags reduces an HTML fragment to plain text.
func stripTags(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(fragment)))
}

// trimWords truncates text to the given word count, appending the marker
// only when something was cut.
func trimWords(text string, limit int, marker string) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:limit], " ") + marker
}

// artworksCountLabel formats a pluralized, grouped artwork count.
func artworksCountLabel(count int) string {
	if count == 1 {
		return "1 artwork"
	}
	return countPrinter.Sprintf("%d artworks", count)
}

// firstNonEmpty returns the first non-empty string of its arguments.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
