package journal

import (
	"html"
	"regexp"
	"strings"
)

var (
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)
	openParaRe   = regexp.MustCompile(`<p[^>]*>`)
	closeParaRe  = regexp.MustCompile(`</p>`)
	lineBreakRe  = regexp.MustCompile(`<br[^>]*>`)
	newlineRunRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// StripTags removes markup tags with a simple tag-removal pass. Entities are
// left as-is, so word counts stay stable regardless of how the editor
// escaped the text.
func StripTags(markup string) string {
	return anyTagRe.ReplaceAllString(markup, "")
}

// CountWords counts whitespace-delimited tokens in the markup after
// stripping tags.
func CountWords(markup string) int {
	if strings.TrimSpace(markup) == "" {
		return 0
	}
	return len(strings.Fields(StripTags(markup)))
}

// StripHTML converts description markup to plain text for rendering:
// paragraph closes become blank lines, line breaks become newlines, all
// remaining tags are removed, entities are decoded, and runs of three or
// more newlines collapse to two.
func StripHTML(markup string) string {
	if markup == "" {
		return ""
	}

	text := openParaRe.ReplaceAllString(markup, "")
	text = closeParaRe.ReplaceAllString(text, "\n\n")
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = anyTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
