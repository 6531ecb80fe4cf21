package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/pkg/convert"
	"github.com/totmarc/pictufy-mirror/pkg/query"
	"github.com/totmarc/pictufy-mirror/pkg/slice"
)

const keywordLimit = 20

// Artwork is the flat, display-ready shape of one catalog artwork.
type Artwork struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	ArtistID    int      `json:"artist_id"`
	ArtistURL   string   `json:"artist_url"`
	Category    string   `json:"category"`
	CategoryID  string   `json:"category_id"`
	Keywords    []string `json:"keywords"`
	Published   string   `json:"published"`
	ArtworkType string   `json:"artwork_type"`
	Geometry    string   `json:"geometry"`
	Color       string   `json:"color"`
	Image       string   `json:"image"`
	ImageLarge  string   `json:"image_large"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Resolution  string   `json:"resolution"`
}

// Category is the display shape of one artwork category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NormalizeArtwork maps one wire record to its display shape.
//
// # Image Priority
//
// The listing image prefers the square thumb, then the plain thumb, then the
// medium variant, then the record's flat image field. The large image walks
// the same chain from the other end.
func NormalizeArtwork(record pictufy.ArtworkRecord) Artwork {
	urls := record.URLs
	image := firstNonEmpty(urls.ThumbSquare, urls.Thumb, urls.Medium, record.Image)
	imageLarge := firstNonEmpty(urls.High, record.Image)

	width := int(record.Width)
	height := int(record.Height)
	resolution := ""
	if width > 0 && height > 0 {
		resolution = fmt.Sprintf("%d × %d", width, height)
	}

	artistURL := ""
	if artistID := int(record.ArtistID); artistID > 0 {
		artistURL = ArtistDetailURL(BuildArtistSlug(pictufy.ArtistRecord{
			ArtistID: record.ArtistID,
			Name:     record.Artist,
		}), 1)
	}

	return Artwork{
		ID:          string(record.ID),
		Title:       string(record.Title),
		Artist:      record.Artist,
		ArtistID:    int(record.ArtistID),
		ArtistURL:   artistURL,
		Category:    record.Category,
		CategoryID:  string(record.CategoryID),
		Keywords:    NormalizeKeywords(string(record.Keywords)),
		Published:   record.Published,
		ArtworkType: record.ArtworkType,
		Geometry:    record.Geometry,
		Color:       firstEnabledColor(record.Color),
		Image:       image,
		ImageLarge:  imageLarge,
		Width:       width,
		Height:      height,
		Resolution:  resolution,
	}
}

// NormalizeArtworks maps a decoded artworks page to display shapes.
func NormalizeArtworks(records []pictufy.ArtworkRecord) []Artwork {
	return slice.Map(records, NormalizeArtwork)
}

// NormalizeCategories maps decoded category records to display shapes.
func NormalizeCategories(records []pictufy.CategoryRecord) []Category {
	return slice.Map(records, func(record pictufy.CategoryRecord) Category {
		return Category{ID: string(record.CategoryID), Name: record.Name}
	})
}

// NormalizeKeywords splits a comma-joined keyword string into trimmed,
// non-empty keywords, capped at the display limit.
func NormalizeKeywords(raw string) []string {
	return slice.Cap(query.StringSlice(raw), keywordLimit)
}

// firstEnabledColor returns the first enabled flag in document order.
func firstEnabledColor(flags pictufy.ColorFlags) string {
	for _, flag := range flags {
		if flag.Enabled {
			return flag.Name
		}
	}
	return ""
}

// allowedFilters is the allow-list of client-supplied artwork filter keys.
var allowedFilters = map[string]struct{}{
	"artwork_type":     {},
	"geometry":         {},
	"color":            {},
	"resolution":       {},
	"order":            {},
	"category":         {},
	"search":           {},
	"people":           {},
	"animals":          {},
	"buildings":        {},
	"nudity":           {},
	"custom_interiors": {},
	"grade":            {},
	"collection_id":    {},
	"artist_id":        {},
}

// integerFilters are coerced to integers before forwarding upstream.
var integerFilters = map[string]struct{}{
	"resolution": {},
	"grade":      {},
	"artist_id":  {},
}

// NormalizeArtworkFilters reduces loose client-supplied filter pairs to the
// allow-listed, typed set the upstream accepts. Unknown keys and empty
// values are dropped.
func NormalizeArtworkFilters(raw map[string]any) url.Values {
	normalized := url.Values{}

	for key, value := range raw {
		if _, ok := allowedFilters[key]; !ok {
			continue
		}

		var text string
		switch {
		case key == "custom_interiors":
			text = "0"
			if truthyFilter(value) {
				text = "1"
			}
		default:
			if _, ok := integerFilters[key]; ok {
				if n := convert.AnyToInt(value); n != 0 {
					text = strconv.Itoa(n)
				}
			} else {
				text = strings.TrimSpace(convert.AnyToString(value))
			}
		}

		if text == "" {
			continue
		}
		normalized.Set(key, text)
	}

	return normalized
}

// truthyFilter applies loose truthiness to a client-supplied filter value.
func truthyFilter(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != "" && v != "0" && v != "false"
	default:
		return false
	}
}
