// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totmarc/pictufy-mirror/internal/platform/sec"
)

/*
TestNonce_RoundTrip verifies that an issued nonce passes verification for the
same action and fails for a different one.
*/
func TestNonce_RoundTrip(t *testing.T) {
	service, err := sec.NewNonceService("test-secret", "pictufy-mirror", time.Hour)
	require.NoError(t, err)

	token, err := service.Issue("artworks")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, service.Verify(token, "artworks"))
	assert.Error(t, service.Verify(token, "collections"))
}

/*
TestNonce_Expired verifies that an expired nonce is rejected.
*/
func TestNonce_Expired(t *testing.T) {
	service, err := sec.NewNonceService("test-secret", "pictufy-mirror", -time.Minute)
	require.NoError(t, err)

	token, err := service.Issue("artworks")
	require.NoError(t, err)

	assert.Error(t, service.Verify(token, "artworks"))
}

/*
TestNonce_WrongSecret verifies that tokens signed with a different secret fail.
*/
func TestNonce_WrongSecret(t *testing.T) {
	issuing, err := sec.NewNonceService("secret-a", "pictufy-mirror", time.Hour)
	require.NoError(t, err)
	verifying, err := sec.NewNonceService("secret-b", "pictufy-mirror", time.Hour)
	require.NoError(t, err)

	token, err := issuing.Issue("artworks")
	require.NoError(t, err)

	assert.Error(t, verifying.Verify(token, "artworks"))
}

/*
TestNonce_EmptySecret verifies that the constructor rejects empty secrets.
*/
func TestNonce_EmptySecret(t *testing.T) {
	_, err := sec.NewNonceService("", "pictufy-mirror", time.Hour)
	assert.Error(t, err)
}
