package domain

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptTags is the default HTML allowlist for excerpts.
var DefaultExcerptTags = []string{"p", "a", "strong", "em", "ul", "li", "br"}

// Excerpter produces bounded, sanitized summaries from raw HTML.
type Excerpter struct {
	policy *bluemonday.Policy
	limit  int
}

// NewExcerpter builds an excerpter allowing exactly the given tags.
// Anchor tags keep their href so excerpts stay clickable in feed readers.
func NewExcerpter(allowedTags []string, limit int) *Excerpter {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(allowedTags...)
	for _, tag := range allowedTags {
		if tag == "a" {
			policy.AllowAttrs("href").OnElements("a")
		}
	}
	return &Excerpter{policy: policy, limit: limit}
}

// Excerpt sanitizes raw HTML down to the allowlist and truncates the result
// to the configured rune limit, appending an ellipsis when cut short.
func (e *Excerpter) Excerpt(rawHTML string) string {
	cleaned := strings.TrimSpace(e.policy.Sanitize(rawHTML))
	runes := []rune(cleaned)
	if len(runes) <= e.limit {
		return cleaned
	}
	return string(runes[:e.limit]) + "..."
}

// StripTags removes every HTML tag, returning whitespace-normalized text.
func StripTags(rawHTML string) string {
	text := bluemonday.StrictPolicy().Sanitize(rawHTML)
	return strings.Join(strings.Fields(text), " ")
}
