package utils

import (
	"regexp"
	"strings"
)

var slugInvalidRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into its URL slug form:
// lowercase, every run of non-alphanumeric characters collapsed into a
// single hyphen, leading and trailing hyphens stripped.
//
//	"Home & Garden!!" → "home-garden"
//
// The function is idempotent: applying it to an existing slug returns
// the slug unchanged.
func Slugify(input string) string {
	lower := strings.ToLower(input)
	hyphenated := slugInvalidRuns.ReplaceAllString(lower, "-")
	return strings.Trim(hyphenated, "-")
}
