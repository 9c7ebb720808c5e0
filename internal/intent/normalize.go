package intent

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize prepares raw input for predicate evaluation:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// normalizeAll normalizes every phrase and drops the ones that end up empty.
func normalizeAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
