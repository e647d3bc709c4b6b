// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"api.endpoints.yaml", "yaml"},
		{"api.endpoints.YML", "yaml"},
		{"front.endpoints.json", "json"},
		{"listing.endpoints.toml", "toml"},
		{"readme.md", ""},
		{"Makefile", ""},
		{"/path/to/api.yaml", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.path))
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".json", ".toml", ".yaml", ".yml"}, SupportedExtensions())
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("a.toml"))
	assert.False(t, IsSupportedFile("a.go"))
}
