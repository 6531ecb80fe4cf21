package pictufy_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/pictufy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// artistPage fabricates one artists page with n items.
func artistPage(n int) string {
	items := make([]json.RawMessage, n)
	for i := 0; i < n; i++ {
		items[i] = json.RawMessage(fmt.Sprintf(`{"artist_id": %d, "name": "Artist %d"}`, i+1, i+1))
	}

	page, _ := json.Marshal(map[string]any{
		"items":  items,
		"status": map[string]any{"returned_items": n, "code": 200},
	})
	return string(page)
}

/*
TestClient_ArtworksDefaults verifies that each operation supplies its own
defaults and that caller values win over them.
*/
func TestClient_ArtworksDefaults(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "secret", r.Header.Get("X-AUTH-KEY"))

		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}
		fmt.Fprint(w, `{"items": [], "status": {"returned_items": 0, "code": 200}}`)
	}))
	defer server.Close()

	client := pictufy.NewClient(server.URL, "secret", discardLogger())

	// Defaults only.
	_, err := client.GetArtworks(context.Background(), pictufy.ArtworkParams{})
	require.NoError(t, err)
	assert.Equal(t, "1", gotForm["page"])
	assert.Equal(t, "80", gotForm["per_page"])
	assert.Equal(t, "recommended", gotForm["order"])

	// Caller overrides win, filters pass through.
	_, err = client.GetArtworks(context.Background(), pictufy.ArtworkParams{
		Page:    3,
		PerPage: 24,
		Order:   "newest",
		Filters: map[string][]string{"category": {"abstract"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "3", gotForm["page"])
	assert.Equal(t, "24", gotForm["per_page"])
	assert.Equal(t, "newest", gotForm["order"])
	assert.Equal(t, "abstract", gotForm["category"])
}

/*
TestClient_GetAllArtists verifies the page walk terminates on a short page
and returns the union in page order: pages of [60,60,60,30] with per_page 60
must yield 210 items with exactly 4 fetches.
*/
func TestClient_GetAllArtists(t *testing.T) {
	pageSizes := []int{60, 60, 60, 30}
	fetches := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fetches++
		pageNum := fetches
		require.LessOrEqual(t, pageNum, len(pageSizes), "no fetch may occur past the short page")
		require.Equal(t, fmt.Sprint(pageNum), r.PostForm.Get("page"))

		fmt.Fprint(w, artistPage(pageSizes[pageNum-1]))
	}))
	defer server.Close()

	client := pictufy.NewClient(server.URL, "secret", discardLogger())

	response, err := client.GetAllArtists(context.Background(), pictufy.ArtistParams{PerPage: 60})
	require.NoError(t, err)

	assert.Equal(t, 4, fetches)
	assert.Len(t, response.Items, 210)
	assert.Equal(t, 210, response.Returned())

	// Page order is preserved: first item of page 1 leads the union.
	artists := pictufy.DecodeArtists(response.Items[:1])
	require.Len(t, artists, 1)
	assert.Equal(t, "Artist 1", artists[0].Name)
}

/*
TestClient_GetAllArtists_ErrorShortCircuits verifies that a failing page
discards the partial aggregate.
*/
func TestClient_GetAllArtists_ErrorShortCircuits(t *testing.T) {
	fetches := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		if fetches == 2 {
			fmt.Fprint(w, `{"error": "upstream on fire"}`)
			return
		}
		fmt.Fprint(w, artistPage(60))
	}))
	defer server.Close()

	client := pictufy.NewClient(server.URL, "secret", discardLogger())

	response, err := client.GetAllArtists(context.Background(), pictufy.ArtistParams{PerPage: 60})
	require.Error(t, err)
	assert.Nil(t, response)
	assert.Equal(t, 2, fetches)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
	assert.Equal(t, "upstream on fire", ae.Message)
}

/*
TestClient_DecodeErrors verifies the fixed diagnostics for malformed and
non-object payloads.
*/
func TestClient_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed_json", `{"items": [`, "Invalid JSON response from API"},
		{"html_error_page", `<html>502</html>`, "Invalid JSON response from API"},
		{"array_payload", `[1, 2, 3]`, "Unexpected API response format"},
		{"scalar_payload", `"ok"`, "Unexpected API response format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := pictufy.NewClient(server.URL, "secret", discardLogger())

			_, err := client.GetCategories(context.Background())
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "DECODE_ERROR", ae.Code)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

/*
TestClient_TransportError verifies that a connection failure degrades to an
UPSTREAM_ERROR result rather than a panic or a hang.
*/
func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := pictufy.NewClient(server.URL, "secret", discardLogger())

	_, err := client.GetCategories(context.Background())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
}

/*
TestClient_GetArtist_MissingID verifies the required-identifier guard.
*/
func TestClient_GetArtist_MissingID(t *testing.T) {
	client := pictufy.NewClient("http://unused.invalid/", "secret", discardLogger())

	_, err := client.GetArtist(context.Background(), 0)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestClient_GetCollections verifies the category is only sent when present.
*/
func TestClient_GetCollections(t *testing.T) {
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		fmt.Fprint(w, `{"items": [], "status": {"returned_items": 0, "code": 200}}`)
	}))
	defer server.Close()

	client := pictufy.NewClient(server.URL, "secret", discardLogger())

	_, err := client.GetCollections(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "curated", gotForm["order"][0])
	assert.NotContains(t, gotForm, "collection_category")

	_, err = client.GetCollections(context.Background(), "nature", "newest")
	require.NoError(t, err)
	assert.Equal(t, "newest", gotForm["order"][0])
	assert.Equal(t, "nature", gotForm["collection_category"][0])
}
