package rest_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekamil/links-to-epub/internal/adapter/rest"
	"github.com/ekamil/links-to-epub/internal/adapter/store"
	"github.com/ekamil/links-to-epub/internal/domain"
	"github.com/ekamil/links-to-epub/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubConverter feeds the pipeline without a network.
type stubConverter struct{}

func (stubConverter) Convert(ctx context.Context, url string) (*domain.ConvertedDocument, error) {
	return &domain.ConvertedDocument{
		Name:     "Example",
		HTML:     "<html><head><title>Example</title></head><body><p>Example body</p></body></html>",
		Markdown: "Example body",
	}, nil
}

type stubScraper struct{}

func (stubScraper) Scrape(html string) string { return "" }

// fakeEpubConverter stands in for the external binary.
type fakeEpubConverter struct{}

func (fakeEpubConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	return os.WriteFile(outputPath, []byte("fake epub"), 0o644)
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	s, err := store.NewFileLedgerStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	var writerMu sync.Mutex
	synth := usecase.NewSynthesizeUsecase(s, fakeEpubConverter{}, usecase.FeedConfig{
		Title:       "EPUB Downloads Feed",
		Description: "Submitted documents as EPUB",
		BaseURL:     "http://localhost:8080",
	}, testLogger())

	submit := usecase.NewSubmitUsecase(
		s,
		stubConverter{},
		domain.NewIdentityPolicy(),
		domain.NewExcerpter(domain.DefaultExcerptTags, 200),
		stubScraper{},
		synth,
		&writerMu,
		30*time.Second,
		testLogger(),
	)
	refresh := usecase.NewRefreshUsecase(s, synth, &writerMu, testLogger())
	listing := usecase.NewListingUsecase(s)
	clear := usecase.NewClearUsecase(s, &writerMu, testLogger())

	e := echo.New()
	rest.NewHandler(submit, refresh, listing, clear, s, testLogger()).Register(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubmitEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Example", out["title"])
	assert.Equal(t, "https://example.com/", out["url"])
	assert.True(t, strings.HasPrefix(out["id"], "req-"))
}

func TestSubmitEndpoint_EmptyURL(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/submit", `{"url":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedEndpoint_BeforeAnySubmission(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/feed/rss", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedEndpoint_UnknownFormat(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/feed/bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bogus")
}

func TestFeedEndpoint_ServesArtifacts(t *testing.T) {
	e := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`).Code)

	cases := map[string]string{
		"rss":  "application/rss+xml",
		"atom": "application/atom+xml",
		"epub": "application/epub+zip",
	}
	for format, contentType := range cases {
		rec := doJSON(e, http.MethodGet, "/feed/"+format, "")
		require.Equal(t, http.StatusOK, rec.Code, format)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), contentType)
		assert.NotEmpty(t, rec.Header().Get("ETag"))
		assert.NotEmpty(t, rec.Header().Get("Last-Modified"))
		assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.NotEmpty(t, rec.Body.Bytes())
	}
}

func TestFeedEndpoint_ETagStable(t *testing.T) {
	e := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`).Code)

	first := doJSON(e, http.MethodGet, "/feed/rss", "")
	second := doJSON(e, http.MethodGet, "/feed/rss", "")
	assert.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
}

func TestListingEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`).Code)

	rec = doJSON(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ledger domain.Ledger
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ledger))
	require.Len(t, ledger.Entries, 1)
	assert.Equal(t, domain.RedactedPlaceholder, ledger.Entries[0].Content)
	assert.Equal(t, "Example", ledger.Entries[0].Title)
}

func TestRefreshEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/refresh-feeds", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`).Code)

	rec = doJSON(e, http.MethodPost, "/refresh-feeds", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClearEndpoint(t *testing.T) {
	e := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/submit", `{"url":"https://example.com/"}`).Code)

	rec := doJSON(e, http.MethodDelete, "/", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Everything is gone afterwards.
	assert.Equal(t, http.StatusNotFound, doJSON(e, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(e, http.MethodGet, "/feed/rss", "").Code)
}
