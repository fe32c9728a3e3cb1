package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of spaces, tabs and newlines with a
// single space and trims the ends. Applying it twice gives the same result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// NormalizeName lowercases a person name and collapses its whitespace,
// so names from different sources compare equal before fuzzy matching.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// Beautify trims whitespace and drops a single trailing comma, the usual
// cleanup for comma-joined aggregate fields.
func Beautify(value string) string {
	value = strings.TrimSpace(value)
	return strings.TrimSuffix(value, ",")
}
