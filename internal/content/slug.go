package content

import (
	"regexp"
	"strings"
)

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9_\- ]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// BuildID turns a title into the URL-safe slug used for anchors and ids.
//
// The steps are: trim, lowercase, replace every character outside
// [a-z0-9_- ] with a space, collapse whitespace runs into one hyphen and
// strip hyphens from both ends.
func BuildID(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = slugWhitespace.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
