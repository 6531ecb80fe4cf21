// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/platform/apperr"
	"github.com/totmarc/pictufy-mirror/internal/platform/dberr"
)

/* TestWrap verifies the row-missing mapping, the generic internal mapping,
and that the failed action stays in the internal chain for logs. */
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	assert.True(t, apperr.IsNotFound(dberr.Wrap(pgx.ErrNoRows, "find_mirror_entry_by_artwork")))

	wrapped := dberr.Wrap(errors.New("connection reset"), "list_mirror_entries")
	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
	assert.ErrorContains(t, appError.Cause, "list_mirror_entries")
}
