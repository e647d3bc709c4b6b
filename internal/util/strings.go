// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers for rendering.
package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Anchor builds an HTML anchor id for an endpoint, e.g. GET /api/v1/me
// becomes "GET_api_v1_me".
func Anchor(method, uri string) string {
	var b strings.Builder
	b.WriteString(method)
	sep := true
	for _, r := range uri {
		isWord := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
		if !isWord {
			if !sep {
				b.WriteByte('_')
				sep = true
			}
			continue
		}
		if sep && b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		sep = false
	}
	return strings.TrimSuffix(b.String(), "_")
}

// TitleCaser returns a function converting text to title case for the given
// BCP 47 language tag. Unparseable tags fall back to English.
func TitleCaser(lang string) func(string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	caser := cases.Title(tag)
	return caser.String
}

// Identity returns s unchanged.
func Identity(s string) string {
	return s
}
