// Package pictufy implements the HTTP client for the remote Pictufy catalog
// API.
//
// Every call shares one contract: requests carry the static X-AUTH-KEY
// header and a fixed timeout; responses are decoded into a uniform
// [Response] or a typed error. The client never panics and never returns a
// payload-and-error pair — exactly one of the two is set.
package pictufy

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
	"github.com/totmarc/pictufy-mirror/internal/platform/validate"
)

// Fixed decode diagnostics; the raw upstream body is never surfaced.
const (
	msgInvalidJSON      = "Invalid JSON response from API"
	msgUnexpectedFormat = "Unexpected API response format"
)

const authHeader = "X-AUTH-KEY"

// Client talks to the remote Pictufy catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a catalog client for the given base URL and key.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.UpstreamTimeout,
		},
		logger: logger,
	}
}

// request issues one catalog call.
//
// GET encodes params into the query string; POST sends them form-encoded in
// the body. Transport failures become UPSTREAM_ERROR results carrying the
// transport message; invalid or non-object JSON becomes DECODE_ERROR with a
// fixed diagnostic; an in-band upstream error member becomes UPSTREAM_ERROR
// with the upstream's message.
func (c *Client) request(ctx context.Context, endpoint, method string, params url.Values) (*Response, error) {
	var httpRequest *http.Request
	var err error

	if method == http.MethodGet {
		requestURL := c.baseURL + endpoint
		if len(params) > 0 {
			requestURL += "?" + params.Encode()
		}
		httpRequest, err = http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	} else {
		httpRequest, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	httpRequest.Header.Set(authHeader, c.apiKey)

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, apperr.Upstream(err.Error(), err)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, apperr.Upstream(err.Error(), err)
	}

	// The payload must decode to a JSON object; arrays, scalars, and garbage
	// all degrade to a typed decode error.
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, apperr.Decode(msgInvalidJSON)
	}
	if _, isObject := probe.(map[string]any); !isObject {
		return nil, apperr.Decode(msgUnexpectedFormat)
	}

	response := &Response{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, apperr.Decode(msgInvalidJSON)
	}

	if response.ErrorMessage != "" {
		return nil, apperr.Upstream(response.ErrorMessage, nil)
	}

	return response, nil
}

// # Domain Operations
//
// Each operation supplies its own defaults and lets caller-provided values
// win over them.

// ArtistParams narrows an artists listing call.
// Zero values fall back to the operation defaults.
type ArtistParams struct {
	Order   string
	Page    int
	PerPage int
}

// ArtworkParams narrows an artworks listing call.
// Filters carries pre-normalized filter pairs; explicit fields win over it.
type ArtworkParams struct {
	Page    int
	PerPage int
	Order   string
	Filters url.Values
}

// GetCollections fetches the nested collection listing.
// Order defaults to "curated"; an empty category is omitted entirely.
func (c *Client) GetCollections(ctx context.Context, category, order string) (*Response, error) {
	if order == "" {
		order = "curated"
	}

	params := url.Values{}
	params.Set("order", order)
	if category != "" {
		params.Set("collection_category", category)
	}

	return c.request(ctx, "collections/", http.MethodPost, params)
}

// GetArtists fetches one page of the artists listing.
// Order defaults to "trending"; page and per_page are sent only when set.
func (c *Client) GetArtists(ctx context.Context, p ArtistParams) (*Response, error) {
	params := url.Values{}
	params.Set("order", "trending")

	if p.Order != "" {
		params.Set("order", p.Order)
	}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(p.PerPage))
	}

	return c.request(ctx, "artists/", http.MethodPost, params)
}

// GetAllArtists walks every page of the artists listing and returns the
// union in page order.
//
// The walk stops when a page comes back shorter than requested or empty. An
// error on any page discards the partial aggregate and short-circuits the
// whole call.
func (c *Client) GetAllArtists(ctx context.Context, p ArtistParams) (*Response, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage < 1 {
		perPage = constants.ArtistsDefaultPerPage
	}

	var allItems []json.RawMessage

	for {
		p.Page = page
		p.PerPage = perPage

		response, err := c.GetArtists(ctx, p)
		if err != nil {
			return nil, err
		}

		allItems = append(allItems, response.Items...)

		if response.Returned() < perPage || len(response.Items) == 0 {
			break
		}
		page++
	}

	total := len(allItems)
	return &Response{
		Items:  allItems,
		Status: Status{ReturnedItems: &total, Code: http.StatusOK},
	}, nil
}

// GetArtist fetches a single artist by id.
func (c *Client) GetArtist(ctx context.Context, artistID int) (*Response, error) {
	if artistID == 0 {
		return nil, validate.RequiredError("artist_id", "Missing artist ID")
	}

	params := url.Values{}
	params.Set("artist_id", strconv.Itoa(artistID))

	return c.request(ctx, "artist/", http.MethodPost, params)
}

// GetArtistArtworks fetches one page of a single artist's artworks.
// Defaults: page 1, per_page 24.
func (c *Client) GetArtistArtworks(ctx context.Context, artistID, page, perPage int) (*Response, error) {
	if artistID == 0 {
		return nil, validate.RequiredError("artist_id", "Missing artist ID")
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = constants.ArtistArtworksPerPage
	}

	params := url.Values{}
	params.Set("artist_id", strconv.Itoa(artistID))
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	return c.request(ctx, "artworks/", http.MethodPost, params)
}

// GetCategories fetches the category listing.
func (c *Client) GetCategories(ctx context.Context) (*Response, error) {
	return c.request(ctx, "categories/", http.MethodPost, url.Values{})
}

// GetArtworks fetches one page of the artworks listing.
// Defaults: page 1, per_page 80, order "recommended".
func (c *Client) GetArtworks(ctx context.Context, p ArtworkParams) (*Response, error) {
	params := url.Values{}
	for key, values := range p.Filters {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	params.Set("page", "1")
	params.Set("per_page", strconv.Itoa(constants.ArtworksDefaultPerPage))
	if params.Get("order") == "" {
		params.Set("order", "recommended")
	}

	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Order != "" {
		params.Set("order", p.Order)
	}

	return c.request(ctx, "artworks/", http.MethodPost, params)
}

// GetExpiredArtworks fetches one page of the expired-artworks feed.
// Defaults: page 1, per_page 200.
func (c *Client) GetExpiredArtworks(ctx context.Context, page, perPage int) (*Response, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = constants.SweepPerPage
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	return c.request(ctx, "expired/", http.MethodPost, params)
}
