package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekamil/links-to-epub/internal/adapter/store"
	"github.com/ekamil/links-to-epub/internal/domain"
	"github.com/ekamil/links-to-epub/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *store.FileLedgerStore {
	t.Helper()
	s, err := store.NewFileLedgerStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	return s
}

func testFeedConfig() usecase.FeedConfig {
	return usecase.FeedConfig{
		Title:       "EPUB Downloads Feed",
		Description: "Submitted documents as EPUB",
		BaseURL:     "http://localhost:8080",
	}
}

// stubConverter returns a canned document or error.
type stubConverter struct {
	doc   *domain.ConvertedDocument
	err   error
	calls int
}

func (s *stubConverter) Convert(ctx context.Context, url string) (*domain.ConvertedDocument, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

// fakeEpubConverter writes a marker file instead of running a real tool.
type fakeEpubConverter struct {
	err    error
	inputs []string
}

func (f *fakeEpubConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	f.inputs = append(f.inputs, inputPath)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("fake epub"), 0o644)
}

// stubScraper returns a fixed title for any HTML.
type stubScraper struct {
	title string
}

func (s *stubScraper) Scrape(html string) string { return s.title }
