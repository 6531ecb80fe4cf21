// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totmarc/pictufy-mirror/pkg/slug"
)

/*
TestFrom verifies the slugification pipeline across accents, case, and
punctuation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Neon Dreams", "neon-dreams"},
		{"accents", "Café à Paris", "cafe-a-paris"},
		{"punctuation", "Art & Design: 2024!", "art-design-2024"},
		{"multi_hyphen", "a  --  b", "a-b"},
		{"leading_trailing", "  hello  ", "hello"},
		{"empty", "", ""},
		{"numeric", "42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestFromURLPath verifies basename extraction from canonical catalog URLs.
*/
func TestFromURLPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing_slash", "https://x/y/neon-dreams/", "neon-dreams"},
		{"no_trailing_slash", "https://x/y/neon-dreams", "neon-dreams"},
		{"root_only", "https://x/", ""},
		{"empty", "", ""},
		{"encoded_space", "https://x/Collections/Neon%20Dreams/", "neon-dreams"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.FromURLPath(tt.input))
		})
	}
}
