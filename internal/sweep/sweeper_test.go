package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
)

// stubFeed serves canned expired pages and records the requested page numbers.
type stubFeed struct {
	pages     map[int]*pictufy.Response
	errOnPage int
	requested []int
}

func (f *stubFeed) GetExpiredArtworks(_ context.Context, page, _ int) (*pictufy.Response, error) {
	f.requested = append(f.requested, page)
	if f.errOnPage != 0 && page == f.errOnPage {
		return nil, apperr.Upstream("upstream timeout", nil)
	}
	if response := f.pages[page]; response != nil {
		return response, nil
	}
	return &pictufy.Response{}, nil
}

func expiredPage(t *testing.T, ids ...string) *pictufy.Response {
	t.Helper()

	items := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		items = append(items, json.RawMessage(fmt.Sprintf(`{"artwork_id": %q}`, id)))
	}
	return &pictufy.Response{Items: items}
}

// fullPage pads a page up to the sweep page size so the walk continues.
func fullPage(t *testing.T, ids ...string) *pictufy.Response {
	t.Helper()

	response := expiredPage(t, ids...)
	for len(response.Items) < 200 {
		id := fmt.Sprintf("pad-%d", len(response.Items))
		response.Items = append(response.Items, json.RawMessage(fmt.Sprintf(`{"artwork_id": %q}`, id)))
	}
	return response
}

func newTestSweeper(feed ExpiredFeed) *Sweeper {
	return NewSweeper(feed, slog.New(slog.DiscardHandler))
}

/* TestRun_DedupAcrossPages verifies an id repeated on a later page fires its
listeners exactly once per run. */
func TestRun_DedupAcrossPages(t *testing.T) {
	feed := &stubFeed{pages: map[int]*pictufy.Response{
		1: fullPage(t, "7", "8"),
		2: expiredPage(t, "7", "9"),
	}}
	sweeper := newTestSweeper(feed)

	var fired []string
	sweeper.OnExpired(func(_ context.Context, item pictufy.ExpiredRecord) {
		fired = append(fired, string(item.ArtworkID))
	})

	stats := sweeper.Run(context.Background())

	assert.False(t, stats.Aborted)
	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Contains(t, fired, "9")
	assert.Equal(t, 1, countOf(fired, "7"))
	assert.Equal(t, 201, stats.Processed)
}

/* TestRun_ShortPageStops verifies a partial page is processed and then ends
the walk without requesting a further page. */
func TestRun_ShortPageStops(t *testing.T) {
	feed := &stubFeed{pages: map[int]*pictufy.Response{
		1: expiredPage(t, "1", "2", "3"),
	}}
	sweeper := newTestSweeper(feed)

	var fired []string
	sweeper.OnExpired(func(_ context.Context, item pictufy.ExpiredRecord) {
		fired = append(fired, string(item.ArtworkID))
	})

	stats := sweeper.Run(context.Background())

	assert.Equal(t, []string{"1", "2", "3"}, fired)
	assert.Equal(t, []int{1}, feed.requested)
	assert.Equal(t, 3, stats.Processed)
}

/* TestRun_EmptyFirstPage verifies an empty feed is a clean no-op run. */
func TestRun_EmptyFirstPage(t *testing.T) {
	feed := &stubFeed{}
	sweeper := newTestSweeper(feed)

	fired := false
	sweeper.OnExpired(func(context.Context, pictufy.ExpiredRecord) { fired = true })

	stats := sweeper.Run(context.Background())

	assert.False(t, fired)
	assert.Equal(t, 0, stats.Pages)
	assert.False(t, stats.Aborted)
}

/* TestRun_UpstreamFailureAborts verifies a mid-walk failure stops the run
without firing anything further. */
func TestRun_UpstreamFailureAborts(t *testing.T) {
	feed := &stubFeed{
		pages:     map[int]*pictufy.Response{1: fullPage(t, "7")},
		errOnPage: 2,
	}
	sweeper := newTestSweeper(feed)

	var fired []string
	sweeper.OnExpired(func(_ context.Context, item pictufy.ExpiredRecord) {
		fired = append(fired, string(item.ArtworkID))
	})

	stats := sweeper.Run(context.Background())

	assert.True(t, stats.Aborted)
	assert.Equal(t, []int{1, 2}, feed.requested)
	require.NotEmpty(t, fired)
	assert.Equal(t, 200, stats.Processed)
}

func countOf(values []string, target string) int {
	count := 0
	for _, value := range values {
		if value == target {
			count++
		}
	}
	return count
}
