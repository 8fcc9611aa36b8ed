// Copyright (c) 2026 Agrio India. All rights reserved.

// Package slug turns arbitrary Unicode text into ASCII URL slugs, the
// human-readable identifiers for products and crops (e.g. "npk-gold").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything outside lowercase ASCII letters, digits
	// and hyphens.
	disallowed = regexp.MustCompile(`[^a-z0-9-]+`)
	// hyphenRuns collapses consecutive hyphens.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// From converts text into a URL-safe ASCII slug: accents are stripped via
// NFD decomposition, everything is lowercased, runs of other characters
// become single hyphens, and leading/trailing hyphens are trimmed.
func From(text string) string {
	// Decompose accented characters and drop the combining marks.
	stripped, _, _ := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isCombiningMark)), text)

	lowered := strings.ToLower(stripped)

	hyphenated := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, lowered)

	cleaned := disallowed.ReplaceAllString(hyphenated, "-")
	cleaned = hyphenRuns.ReplaceAllString(cleaned, "-")

	return strings.Trim(cleaned, "-")
}

func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
