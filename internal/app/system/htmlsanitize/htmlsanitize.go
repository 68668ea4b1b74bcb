// Package htmlsanitize strips dangerous HTML from user-supplied content.
//
// Announcement messages are rendered verbatim in every viewer's browser,
// so scripts, event handlers, and javascript: URLs must never reach the
// store. Safe formatting (paragraphs, emphasis, links, lists, tables) is
// kept. Messages with no markup at all bypass the sanitizer entirely,
// which keeps plain text byte-identical — including bare < and >.
package htmlsanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}()

// tagPattern matches anything that looks like an HTML tag. A bare "<" or
// ">" in prose (e.g. "5 < 10") does not count.
var tagPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if IsPlainText(s) {
		return s
	}
	return policy.Sanitize(s)
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !tagPattern.MatchString(s)
}
