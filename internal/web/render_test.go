package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/catalog"
)

/* TestRenderContext_StylesEmitOnce verifies a section's styles appear only
on the first request within one render. */
func TestRenderContext_StylesEmitOnce(t *testing.T) {
	render := NewRenderContext()

	first := render.Styles("artwork-grid")
	assert.Contains(t, string(first), "artwork-grid")
	assert.True(t, render.Emitted("artwork-grid"))

	assert.Empty(t, render.Styles("artwork-grid"))

	// Unknown sections emit nothing but are still marked.
	assert.Empty(t, render.Styles("no-such-section"))
	assert.True(t, render.Emitted("no-such-section"))
}

/* TestRenderer_CollectionPage verifies the collection template renders the
header, the grid, the pager, and the embedded nonce, with each style section
inlined exactly once. */
func TestRenderer_CollectionPage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	data := collectionPageData{
		Render: NewRenderContext(),
		Collection: &catalog.Collection{
			Name:               "Neon Dreams",
			Excerpt:            "City lights after rain...",
			ArtworksCountLabel: "42 artworks",
		},
		Artworks: []catalog.Artwork{
			{ID: "1", Title: "Spiral", Artist: "Frida", ArtistURL: "/artist/frida-977/", Image: "https://cdn/t.jpg"},
			{ID: "2", Title: "Harbor", Artist: "Vince", Image: "https://cdn/h.jpg"},
		},
		Page:    2,
		PrevURL: "/collection/neon-dreams/",
		NextURL: "/collection/neon-dreams/page/3/",
		Nonce:   "token-123",
	}

	var buffer bytes.Buffer
	require.NoError(t, renderer.Render(&buffer, "collection", data))
	page := buffer.String()

	assert.Contains(t, page, "Neon Dreams")
	assert.Contains(t, page, "42 artworks")
	assert.Contains(t, page, `data-nonce="token-123"`)
	assert.Contains(t, page, `href="/artist/frida-977/"`)
	assert.Contains(t, page, `href="/collection/neon-dreams/page/3/"`)
	assert.Contains(t, page, "Page 2")

	assert.Equal(t, 1, strings.Count(page, `data-section="artwork-grid"`))
	assert.Equal(t, 1, strings.Count(page, `data-section="layout"`))
	assert.Equal(t, 1, strings.Count(page, `data-section="grid-loader"`))
}

/* TestRenderer_ArtistPage verifies the artist template renders the profile
header and hides the pager links on a single-page roster. */
func TestRenderer_ArtistPage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	data := artistPageData{
		Render: NewRenderContext(),
		Artist: &catalog.Artist{
			Name:   "Frida",
			Avatar: "https://cdn/frida.jpg",
		},
		Artworks: []catalog.Artwork{{ID: "1", Title: "Spiral", Image: "https://cdn/t.jpg"}},
		Page:     1,
		Nonce:    "token-456",
	}

	var buffer bytes.Buffer
	require.NoError(t, renderer.Render(&buffer, "artist", data))
	page := buffer.String()

	assert.Contains(t, page, "Frida")
	assert.Contains(t, page, `src="https://cdn/frida.jpg"`)
	assert.NotContains(t, page, "pager-prev")
	assert.NotContains(t, page, "pager-next")
}
