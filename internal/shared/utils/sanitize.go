package utils

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// maxSanitizePasses bounds the unescape/sanitize loop for nested encodings.
const maxSanitizePasses = 4

// SanitizeText strips every tag from user-supplied text (entry body, bio,
// follow message) and trims surrounding whitespace. Output is JSON, not HTML,
// so entities are decoded; decoding can surface encoded markup, so the policy
// runs again until the text is stable. Text still changing after the last
// pass is returned escaped.
func SanitizeText(s string) string {
	out := s
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strict().Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	return strings.TrimSpace(strict().Sanitize(out))
}

// SanitizeLine is SanitizeText for single-line fields: inner whitespace runs
// collapse to one space.
func SanitizeLine(s string) string {
	return strings.Join(strings.Fields(SanitizeText(s)), " ")
}
