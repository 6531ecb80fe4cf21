package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/pkg/pointer"
)

/* TestNormalizeCollection_SlugPriority verifies the explicit slug wins, the
URL basename is the first fallback, and the id is the last resort. */
func TestNormalizeCollection_SlugPriority(t *testing.T) {
	testCases := []struct {
		name     string
		record   pictufy.CollectionRecord
		expected string
	}{
		{
			name: "explicit_slug_wins",
			record: pictufy.CollectionRecord{
				ID:   "42",
				Slug: "Neon Dreams",
				URL:  "https://pictufy.com/collections/other-name/",
			},
			expected: "neon-dreams",
		},
		{
			name: "url_basename_fallback",
			record: pictufy.CollectionRecord{
				ID:  "42",
				URL: "https://pictufy.com/collections/Neon%20Dreams/",
			},
			expected: "neon-dreams",
		},
		{
			name:     "id_last_resort",
			record:   pictufy.CollectionRecord{ID: "42"},
			expected: "42",
		},
		{
			name:     "nothing_derivable",
			record:   pictufy.CollectionRecord{Name: "Unnamed"},
			expected: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			collection := NormalizeCollection(testCase.record)
			assert.Equal(t, testCase.expected, collection.Slug)
		})
	}
}

/* TestNormalizeCollection_Excerpt verifies tag stripping and the twenty-word
truncation marker. */
func TestNormalizeCollection_Excerpt(t *testing.T) {
	longDescription := "<p>one two three four five six seven eight nine ten " +
		"eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen " +
		"nineteen twenty twenty-one</p>"

	collection := NormalizeCollection(pictufy.CollectionRecord{
		ID:          "7",
		Slug:        "long",
		Description: longDescription,
	})

	assert.NotContains(t, collection.Description, "<p>")
	assert.Equal(t,
		"one two three four five six seven eight nine ten eleven twelve "+
			"thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty...",
		collection.Excerpt)

	short := NormalizeCollection(pictufy.CollectionRecord{
		ID:          "8",
		Slug:        "short",
		Description: "just a few words",
	})
	assert.Equal(t, "just a few words", short.Excerpt)
}

/* TestNormalizeCollection_ImagesAndCount verifies the card/cover fallback
chains and the pluralized count label. */
func TestNormalizeCollection_ImagesAndCount(t *testing.T) {
	collection := NormalizeCollection(pictufy.CollectionRecord{
		ID:         "9",
		Slug:       "imgs",
		CoverSmall: "https://cdn/small.jpg",
		CoverLarge: "https://cdn/large.jpg",
		Artworks:   pointer.To(pictufy.FlexInt(1240)),
	})

	assert.Equal(t, "https://cdn/small.jpg", collection.CardImage)
	assert.Equal(t, "https://cdn/large.jpg", collection.Cover)
	assert.Equal(t, "1,240 artworks", collection.ArtworksCountLabel)

	single := NormalizeCollection(pictufy.CollectionRecord{
		ID:       "10",
		Slug:     "one",
		Artworks: pointer.To(pictufy.FlexInt(1)),
	})
	assert.Equal(t, "1 artwork", single.ArtworksCountLabel)
	assert.Equal(t, "/collection/one/", single.DetailURL)
}

/* TestBuildArtistSlug verifies the username-over-name preference and the
mandatory numeric suffix. */
func TestBuildArtistSlug(t *testing.T) {
	testCases := []struct {
		name     string
		record   pictufy.ArtistRecord
		expected string
	}{
		{
			name:     "username_preferred",
			record:   pictufy.ArtistRecord{ArtistID: 42, Name: "Ada Lovelace", Username: "ada.lovelace"},
			expected: "ada-lovelace-42",
		},
		{
			name:     "name_fallback",
			record:   pictufy.ArtistRecord{ArtistID: 42, Name: "Ada Lovelace"},
			expected: "ada-lovelace-42",
		},
		{
			name:     "id_only",
			record:   pictufy.ArtistRecord{ArtistID: 42},
			expected: "42",
		},
		{
			name:     "no_id_keeps_name_slug",
			record:   pictufy.ArtistRecord{Name: "Ada Lovelace"},
			expected: "ada-lovelace",
		},
		{
			name:     "empty_record",
			record:   pictufy.ArtistRecord{},
			expected: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, BuildArtistSlug(testCase.record))
		})
	}
}

/* TestExtractArtistID verifies the slug round trip: the id embedded when
building a slug is recovered without any listing scan. */
func TestExtractArtistID(t *testing.T) {
	testCases := []struct {
		slug     string
		expected int
	}{
		{"ada-lovelace-42", 42},
		{"42", 42},
		{"triple-part-name-7", 7},
		{"no-id-here", 0},
		{"", 0},
		{"-", 0},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, ExtractArtistID(testCase.slug), "slug %q", testCase.slug)
	}

	// Round trip through the builder.
	record := pictufy.ArtistRecord{ArtistID: 977, Username: "frida"}
	assert.Equal(t, 977, ExtractArtistID(BuildArtistSlug(record)))
}

/* TestNormalizeArtwork verifies image priority, resolution formatting,
keyword extraction, and first-enabled color selection. */
func TestNormalizeArtwork(t *testing.T) {
	var record pictufy.ArtworkRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 314,
		"title": {"en": "Spiral"},
		"artist": "Frida",
		"artist_id": "977",
		"keywords": "cat, dog ,  , bird",
		"color": {"red": 0, "teal": "1", "blue": true},
		"urls": {"img_thumb": "https://cdn/t.jpg", "img_medium": "https://cdn/m.jpg"},
		"image": "https://cdn/flat.jpg",
		"width": 4000,
		"height": "2500"
	}`), &record))

	artwork := NormalizeArtwork(record)

	assert.Equal(t, "314", artwork.ID)
	assert.Equal(t, "Spiral", artwork.Title)
	assert.Equal(t, 977, artwork.ArtistID)
	assert.Equal(t, "/artist/frida-977/", artwork.ArtistURL)
	assert.Equal(t, []string{"cat", "dog", "bird"}, artwork.Keywords)
	assert.Equal(t, "teal", artwork.Color)
	assert.Equal(t, "https://cdn/t.jpg", artwork.Image)
	assert.Equal(t, "4000 × 2500", artwork.Resolution)

	// No URL variants at all falls back to the flat image.
	bare := NormalizeArtwork(pictufy.ArtworkRecord{Image: "https://cdn/flat.jpg"})
	assert.Equal(t, "https://cdn/flat.jpg", bare.Image)
	assert.Empty(t, bare.Resolution)
}

/* TestNormalizeKeywords verifies trimming, empty-segment dropping, and the
twenty-keyword cap. */
func TestNormalizeKeywords(t *testing.T) {
	assert.Equal(t, []string{"cat", "dog", "bird"}, NormalizeKeywords("cat, dog ,  , bird"))
	assert.Empty(t, NormalizeKeywords("  , ,"))

	oversize := ""
	for i := 0; i < 30; i++ {
		if i > 0 {
			oversize += ","
		}
		oversize += "kw"
	}
	assert.Len(t, NormalizeKeywords(oversize), 20)
}

/* TestNormalizeArtworkFilters verifies the allow-list, integer coercion,
boolean flattening, and empty-value dropping. */
func TestNormalizeArtworkFilters(t *testing.T) {
	normalized := NormalizeArtworkFilters(map[string]any{
		"artwork_type":     "photo",
		"resolution":       "4000",
		"grade":            3.0,
		"artist_id":        "abc",
		"custom_interiors": true,
		"search":           " neon ",
		"category":         "",
		"dangerous":        "drop-me",
	})

	assert.Equal(t, "photo", normalized.Get("artwork_type"))
	assert.Equal(t, "4000", normalized.Get("resolution"))
	assert.Equal(t, "3", normalized.Get("grade"))
	assert.Equal(t, "1", normalized.Get("custom_interiors"))
	assert.Equal(t, "neon", normalized.Get("search"))

	// Non-numeric integers and empty strings are dropped entirely.
	assert.False(t, normalized.Has("artist_id"))
	assert.False(t, normalized.Has("category"))
	assert.False(t, normalized.Has("dangerous"))
}
