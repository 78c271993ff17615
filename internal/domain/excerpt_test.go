package domain_test

import (
	"strings"
	"testing"

	"github.com/ekamil/links-to-epub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestExcerpter_Excerpt(t *testing.T) {
	t.Run("Disallowed tags are stripped, allowed kept", func(t *testing.T) {
		e := domain.NewExcerpter(domain.DefaultExcerptTags, 200)
		got := e.Excerpt(`<script>evil()</script><p>Hello <strong>world</strong></p>`)
		assert.Equal(t, "<p>Hello <strong>world</strong></p>", got)
	})

	t.Run("Anchors keep href", func(t *testing.T) {
		e := domain.NewExcerpter(domain.DefaultExcerptTags, 200)
		got := e.Excerpt(`<a href="https://example.com/" onclick="x()">link</a>`)
		assert.Contains(t, got, `href="https://example.com/"`)
		assert.NotContains(t, got, "onclick")
	})

	t.Run("Long content is truncated with ellipsis", func(t *testing.T) {
		e := domain.NewExcerpter(domain.DefaultExcerptTags, 10)
		got := e.Excerpt(strings.Repeat("a", 50))
		assert.Equal(t, "aaaaaaaaaa...", got)
	})

	t.Run("Short content is returned as-is", func(t *testing.T) {
		e := domain.NewExcerpter(domain.DefaultExcerptTags, 10)
		assert.Equal(t, "short", e.Excerpt("short"))
	})
}

func TestStripTags(t *testing.T) {
	got := domain.StripTags("<div><p>one</p>\n<p>two   three</p></div>")
	assert.Equal(t, "one two three", got)
}
