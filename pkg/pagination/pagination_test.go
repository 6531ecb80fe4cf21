// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totmarc/pictufy-mirror/pkg/pagination"
)

/*
TestClamp verifies that page and per-page are forced into their valid ranges.
*/
func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"in_range", 3, 60, 3, 60},
		{"page_floor", 0, 60, 1, 60},
		{"negative_page", -5, 60, 1, 60},
		{"per_page_floor", 1, 0, 1, 1},
		{"per_page_ceiling", 1, 500, 1, 120},
		{"both_bounds", -1, 121, 1, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Clamp(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPerPage, params.PerPage)
		})
	}
}

/*
TestHasMore verifies the short-page continuation heuristic.
*/
func TestHasMore(t *testing.T) {
	assert.True(t, pagination.HasMore(60, 60), "full page signals more data")
	assert.True(t, pagination.HasMore(61, 60))
	assert.False(t, pagination.HasMore(30, 60), "short page signals last page")
	assert.False(t, pagination.HasMore(0, 60))
}
