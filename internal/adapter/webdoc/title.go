package webdoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TitleScraper extracts titles from raw page HTML with goquery.
type TitleScraper struct{}

// NewTitleScraper creates a TitleScraper.
func NewTitleScraper() *TitleScraper {
	return &TitleScraper{}
}

func (s *TitleScraper) Scrape(html string) string {
	return ExtractTitle(html)
}

// ExtractTitle extracts the page title from HTML content.
// Priority order: <title> tag, og:title meta tag, first <h1> tag.
// Returns empty string if no title found.
func ExtractTitle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	ogTitle, exists := doc.Find("meta[property='og:title']").First().Attr("content")
	if exists && strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	return ""
}
