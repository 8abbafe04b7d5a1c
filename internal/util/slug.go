// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches runs of characters that are not lowercase alphanumerics.
	nonAlphanumericRunRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a category name to its canonical slug. The slug is
// computed client-side before create/update and sent with the payload.
//
// Rules:
//  1. Lowercase
//  2. Collapse every run of non-alphanumeric characters to a single hyphen
//  3. Trim leading/trailing hyphens
//
// Examples:
//
//	"Hello, World!"    → "hello-world"
//	"  Already-slug  " → "already-slug"
//	"Go & Rust"        → "go-rust"
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumericRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
