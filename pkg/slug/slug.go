package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name: lower-cased, with
// runs of non-alphanumeric characters collapsed into single hyphens and
// leading/trailing hyphens trimmed.
//
// Examples:
//   - "Gaming Laptops" → "gaming-laptops"
//   - "  TVs & Audio!! " → "tvs-audio"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
