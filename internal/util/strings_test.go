// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	tests := []struct {
		method   string
		uri      string
		expected string
	}{
		{"GET", "/api/v1/me", "GET_api_v1_me"},
		{"POST", "/api/comment", "POST_api_comment"},
		{"GET", "/r/{subreddit}/about.json", "GET_r_subreddit_about_json"},
		{"GET", "/", "GET"},
		{"GET", "", "GET"},
		{"GET", "/by_id/{names}", "GET_by_id_names"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.expected, Anchor(tt.method, tt.uri))
		})
	}
}

func TestTitleCaser(t *testing.T) {
	title := TitleCaser("en")
	assert.Equal(t, "Links & Comments", title("links & comments"))
	assert.Equal(t, "Private Messages", title("private messages"))

	fallback := TitleCaser("not a tag!")
	assert.Equal(t, "Account", fallback("account"))
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "links & comments", Identity("links & comments"))
}
