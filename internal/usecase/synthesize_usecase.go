package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// FeedConfig carries the feed-level fields of the published artifacts.
type FeedConfig struct {
	Title       string
	Description string
	// BaseURL is the public base for self-links and enclosure links.
	BaseURL string
}

// SynthesisResult reports what was regenerated. RSS and Atom are always
// produced from in-ledger text; the EPUB digest needs the raw Markdown
// files and may fail independently (DigestErr).
type SynthesisResult struct {
	RSS       []byte
	Atom      []byte
	DigestErr error
}

// SynthesizeUsecase deterministically projects the ledger into the RSS,
// Atom and merged-EPUB artifacts and persists them through the store.
type SynthesizeUsecase interface {
	Execute(ctx context.Context, ledger *domain.Ledger) (*SynthesisResult, error)
}

type synthesizeUsecase struct {
	store    domain.LedgerStore
	epubConv domain.EpubConverter
	feedCfg  FeedConfig
	logger   *slog.Logger
}

// NewSynthesizeUsecase wires the feed synthesizer.
func NewSynthesizeUsecase(
	store domain.LedgerStore,
	epubConv domain.EpubConverter,
	feedCfg FeedConfig,
	logger *slog.Logger,
) SynthesizeUsecase {
	return &synthesizeUsecase{
		store:    store,
		epubConv: epubConv,
		feedCfg:  feedCfg,
		logger:   logger,
	}
}

// Execute regenerates every derived artifact from the ledger. The same
// ledger always yields byte-identical RSS/Atom documents: nothing here
// reads the clock, all timestamps come from ledger.Updated.
//
// RSS/Atom failures are fatal. Digest failures (a missing raw file, a
// failing EPUB tool) are isolated into SynthesisResult.DigestErr so one
// broken entry cannot take the XML feeds down with it.
func (u *synthesizeUsecase) Execute(ctx context.Context, ledger *domain.Ledger) (*SynthesisResult, error) {
	result := &SynthesisResult{}

	rss, err := u.renderFeed(ledger, domain.ArtifactRSS)
	if err != nil {
		return nil, fmt.Errorf("failed to render rss: %w", err)
	}
	if err := u.store.WriteArtifact(domain.ArtifactRSS, rss); err != nil {
		return nil, err
	}
	result.RSS = rss

	atom, err := u.renderFeed(ledger, domain.ArtifactAtom)
	if err != nil {
		return nil, fmt.Errorf("failed to render atom: %w", err)
	}
	if err := u.store.WriteArtifact(domain.ArtifactAtom, atom); err != nil {
		return nil, err
	}
	result.Atom = atom

	result.DigestErr = u.synthesizeDigest(ctx, ledger)
	if result.DigestErr != nil {
		u.logger.Warn("epub digest synthesis failed", "error", result.DigestErr)
	}

	return result, nil
}

// renderFeed builds the RSS or Atom document. Each ledger entry becomes one
// item: id, title, alternate link to the source, an enclosure pointing at
// the downloadable EPUB digest, and the excerpt as description.
func (u *synthesizeUsecase) renderFeed(ledger *domain.Ledger, kind domain.ArtifactKind) ([]byte, error) {
	feed := &feeds.Feed{
		Id:          "urn:epubfeed",
		Title:       u.feedCfg.Title,
		Description: u.feedCfg.Description,
		Link:        &feeds.Link{Href: u.selfLink(kind), Rel: "self"},
		Updated:     ledger.Updated,
		Created:     ledger.Updated,
	}

	epubLink := u.feedCfg.BaseURL + "/feed/epub"
	for _, entry := range ledger.Entries {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          entry.ID,
			Title:       entry.Title,
			Link:        &feeds.Link{Href: entry.OriginalLink, Rel: "alternate"},
			Description: itemDescription(entry),
			Enclosure: &feeds.Enclosure{
				Url:    epubLink,
				Type:   "application/epub+zip",
				Length: "0",
			},
			Updated: ledger.Updated,
		})
	}

	var (
		rendered string
		err      error
	)
	switch kind {
	case domain.ArtifactAtom:
		rendered, err = feed.ToAtom()
	default:
		rendered, err = feed.ToRss()
	}
	if err != nil {
		return nil, err
	}
	return []byte(rendered), nil
}

// synthesizeDigest concatenates the raw Markdown of every entry, oldest
// first, into digest.md and hands it to the EPUB converter.
func (u *synthesizeUsecase) synthesizeDigest(ctx context.Context, ledger *domain.Ledger) error {
	sections := make([]string, 0, len(ledger.Entries))
	// Entries are stored newest-first; the digest reads oldest-first.
	for i := len(ledger.Entries) - 1; i >= 0; i-- {
		entry := ledger.Entries[i]
		body, err := u.store.ReadRawMarkdown(entry.ID)
		if err != nil {
			return err
		}
		sections = append(sections, domain.DigestSection(entry.Title, entry.OriginalLink, body))
	}

	digest := strings.Join(sections, "\n")
	if err := u.store.WriteArtifact(domain.ArtifactDigest, []byte(digest)); err != nil {
		return err
	}

	return u.epubConv.Convert(ctx,
		u.store.ArtifactPath(domain.ArtifactDigest),
		u.store.ArtifactPath(domain.ArtifactEpub),
	)
}

func (u *synthesizeUsecase) selfLink(kind domain.ArtifactKind) string {
	return fmt.Sprintf("%s/feed/%s", u.feedCfg.BaseURL, kind)
}

func itemDescription(entry domain.Entry) string {
	summary := entry.Excerpt
	if summary == "" {
		summary = entry.Content
	}
	return fmt.Sprintf("%s<br><br>Source: <a href=%q>%s</a>",
		summary, entry.OriginalLink, entry.OriginalLink)
}
