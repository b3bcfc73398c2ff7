package security

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

const maxContentLength = 5000

// SanitizePostContent strips HTML and control garbage from
// user-authored post content before it enters the local cache or the
// wire.
func SanitizePostContent(input string) string {
	input = htmlPolicy.Sanitize(input)
	return clamp(input)
}

// SanitizeCodeSnippet trims and clamps a code snippet without HTML
// stripping, since angle brackets are legitimate in code. The snippet
// is rendered as text, never as markup.
func SanitizeCodeSnippet(input string) string {
	return clamp(input)
}

func clamp(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > maxContentLength {
		// Back off to a rune boundary so the cut never leaves a
		// partial multi-byte sequence behind.
		cut := maxContentLength
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}
	return input
}
