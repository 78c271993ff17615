package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// FallbackTitle is used when no title can be resolved for a submission.
const FallbackTitle = "Untitled"

// maxContentRunes bounds the plain-text content stored in the ledger.
const maxContentRunes = 2000

// TitleScraper extracts a human-readable title from raw page HTML.
type TitleScraper interface {
	Scrape(html string) string
}

// SubmitInput is one URL submission. Title is optional.
type SubmitInput struct {
	URL   string
	Title string
}

// SubmitOutput identifies the accepted submission.
type SubmitOutput struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SubmitUsecase runs the full submission pipeline: convert the URL,
// persist the raw renderings, resolve a title, upsert the ledger entry and
// regenerate every feed artifact.
type SubmitUsecase interface {
	Execute(ctx context.Context, input SubmitInput) (*SubmitOutput, error)
}

type submitUsecase struct {
	store     domain.LedgerStore
	converter domain.DocumentConverter
	identity  domain.IdentityPolicy
	excerpter *domain.Excerpter
	scraper   TitleScraper
	synth     SynthesizeUsecase

	// writerMu serializes every load-upsert-save-synthesize sequence.
	// The store itself is last-write-wins; without this lock two
	// concurrent submissions could drop each other's entry.
	writerMu *sync.Mutex

	convertTimeout time.Duration
	clock          func() time.Time
	logger         *slog.Logger
}

// NewSubmitUsecase wires the submission orchestrator. writerMu is shared
// with every other mutating usecase.
func NewSubmitUsecase(
	store domain.LedgerStore,
	converter domain.DocumentConverter,
	identity domain.IdentityPolicy,
	excerpter *domain.Excerpter,
	scraper TitleScraper,
	synth SynthesizeUsecase,
	writerMu *sync.Mutex,
	convertTimeout time.Duration,
	logger *slog.Logger,
) SubmitUsecase {
	return &submitUsecase{
		store:          store,
		converter:      converter,
		identity:       identity,
		excerpter:      excerpter,
		scraper:        scraper,
		synth:          synth,
		writerMu:       writerMu,
		convertTimeout: convertTimeout,
		clock:          time.Now,
		logger:         logger,
	}
}

func (u *submitUsecase) Execute(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, domain.ErrEmptyURL
	}

	id := u.identity.Compute(url)
	log := u.logger.With("id", id, "url", url)
	log.Info("submission received")

	convertCtx, cancel := context.WithTimeout(ctx, u.convertTimeout)
	defer cancel()

	doc, err := u.converter.Convert(convertCtx, url)
	if err != nil {
		var convErr *domain.ConversionError
		if !errors.As(err, &convErr) {
			err = &domain.ConversionError{URL: url, Err: err}
		}
		log.Error("conversion failed", "error", err)
		return nil, err
	}

	if err := u.store.SaveRaw(id, doc.HTML, doc.Markdown); err != nil {
		return nil, fmt.Errorf("failed to persist raw artifacts: %w", err)
	}

	title := u.resolveTitle(input.Title, doc)
	entry := domain.Entry{
		ID:           id,
		Title:        title,
		OriginalLink: url,
		Content:      boundedContent(doc.HTML),
		Excerpt:      u.excerpter.Excerpt(doc.HTML),
	}

	u.writerMu.Lock()
	defer u.writerMu.Unlock()

	now := u.clock()
	ledger, err := u.store.LoadOrInit(ctx, now)
	if err != nil {
		return nil, err
	}
	ledger.Upsert(entry, now)
	if err := u.store.Save(ctx, ledger); err != nil {
		return nil, err
	}

	result, err := u.synth.Execute(ctx, ledger)
	if err != nil {
		return nil, err
	}
	if result.DigestErr != nil {
		return nil, result.DigestErr
	}

	log.Info("submission done", "title", title, "entries", len(ledger.Entries))
	return &SubmitOutput{ID: id, URL: url, Title: title}, nil
}

// resolveTitle applies the title priority: caller-supplied, then the
// converter-reported name, then a scrape of the raw page, then a literal
// fallback. Each step runs only when the previous yielded nothing usable.
func (u *submitUsecase) resolveTitle(callerTitle string, doc *domain.ConvertedDocument) string {
	if title := strings.TrimSpace(callerTitle); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Name); title != "" {
		return title
	}
	if title := strings.TrimSpace(u.scraper.Scrape(doc.HTML)); title != "" {
		return title
	}
	return FallbackTitle
}

func boundedContent(html string) string {
	text := domain.StripTags(html)
	runes := []rune(text)
	if len(runes) <= maxContentRunes {
		return text
	}
	return string(runes[:maxContentRunes])
}
