package webdoc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/time/rate"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// maxFetchBytes caps how much of a remote page is read.
const maxFetchBytes = 10 << 20

// Converter is the default DocumentConverter: it fetches the URL, extracts
// the main content with readability and renders HTML and Markdown
// representations. External fetches are rate limited so a burst of
// submissions does not hammer remote hosts.
type Converter struct {
	client   *http.Client
	limiter  *rate.Limiter
	markdown *md.Converter
	logger   *slog.Logger
}

// NewConverter builds the converter. fetchRate is outbound requests per
// second.
func NewConverter(client *http.Client, fetchRate float64, logger *slog.Logger) *Converter {
	return &Converter{
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(fetchRate), 1),
		markdown: md.NewConverter("", true, nil),
		logger:   logger,
	}
}

var _ domain.DocumentConverter = (*Converter)(nil)

// Convert fetches and converts one URL. Transport failures, non-2xx
// responses and timeouts all surface as *domain.ConversionError; the
// context deadline is preserved through the error chain.
func (c *Converter) Convert(ctx context.Context, rawURL string) (*domain.ConvertedDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &domain.ConversionError{URL: rawURL, Err: fmt.Errorf("unsupported url")}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.ConversionError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.ConversionError{URL: rawURL, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.ConversionError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ConversionError{URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, &domain.ConversionError{URL: rawURL, Err: err}
	}
	rawHTML := string(body)

	title := ExtractTitle(rawHTML)
	contentHTML := c.extractContent(rawHTML)
	markdown := c.renderMarkdown(contentHTML)

	c.logger.Info("document converted", "url", rawURL, "title", title, "content_length", len(contentHTML))

	return &domain.ConvertedDocument{
		Name:     title,
		HTML:     contentHTML,
		Markdown: markdown,
	}, nil
}

// extractContent runs readability over the page and returns the cleaned
// content HTML, falling back to the full page when extraction fails.
func (c *Converter) extractContent(rawHTML string) string {
	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		c.logger.Debug("readability extraction failed, using full page", "error", err)
		return rawHTML
	}

	var buf strings.Builder
	if err := article.RenderHTML(&buf); err != nil {
		return rawHTML
	}
	if html := strings.TrimSpace(buf.String()); html != "" {
		return html
	}
	return rawHTML
}

// renderMarkdown converts content HTML to Markdown, degrading to plain
// text when the converter chokes on the input.
func (c *Converter) renderMarkdown(contentHTML string) string {
	markdown, err := c.markdown.ConvertString(contentHTML)
	if err != nil {
		c.logger.Debug("markdown rendering failed, stripping tags", "error", err)
		return domain.StripTags(contentHTML)
	}
	return strings.TrimSpace(markdown)
}
