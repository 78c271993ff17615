package di

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ekamil/links-to-epub/internal/adapter/convertext"
	"github.com/ekamil/links-to-epub/internal/adapter/rest"
	"github.com/ekamil/links-to-epub/internal/adapter/store"
	"github.com/ekamil/links-to-epub/internal/adapter/webdoc"
	"github.com/ekamil/links-to-epub/internal/domain"
	"github.com/ekamil/links-to-epub/internal/infra/config"
	"github.com/ekamil/links-to-epub/internal/infra/httpclient"
	"github.com/ekamil/links-to-epub/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Store domain.LedgerStore

	Submit  usecase.SubmitUsecase
	Refresh usecase.RefreshUsecase
	Listing usecase.ListingUsecase
	Clear   usecase.ClearUsecase

	Handler *rest.Handler
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	convertTimeout := time.Duration(cfg.ConvertTimeoutSec) * time.Second
	epubTimeout := time.Duration(cfg.EpubTimeoutSec) * time.Second

	ledgerStore, err := store.NewFileLedgerStore(cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	fetchClient := httpclient.NewPooledClient(convertTimeout)
	converter := webdoc.NewConverter(fetchClient, cfg.FetchRatePerSecond, log)
	scraper := webdoc.NewTitleScraper()
	epubConverter := convertext.NewConverter(cfg.ConvertextBin, epubTimeout, log)

	identity := domain.NewIdentityPolicy()
	excerpter := domain.NewExcerpter(cfg.ExcerptAllowedTags, cfg.ExcerptLimit)

	feedCfg := usecase.FeedConfig{
		Title:       cfg.FeedTitle,
		Description: cfg.FeedDescription,
		BaseURL:     cfg.BaseURL,
	}
	synthesize := usecase.NewSynthesizeUsecase(ledgerStore, epubConverter, feedCfg, log)

	// One mutex guards every ledger mutation so writes serialize across
	// submit, refresh and clear.
	writerMu := &sync.Mutex{}

	submit := usecase.NewSubmitUsecase(
		ledgerStore, converter, identity, excerpter, scraper,
		synthesize, writerMu, convertTimeout, log,
	)
	refresh := usecase.NewRefreshUsecase(ledgerStore, synthesize, writerMu, log)
	listing := usecase.NewListingUsecase(ledgerStore)
	clear := usecase.NewClearUsecase(ledgerStore, writerMu, log)

	handler := rest.NewHandler(submit, refresh, listing, clear, ledgerStore, log)

	return &ApplicationComponents{
		Store:   ledgerStore,
		Submit:  submit,
		Refresh: refresh,
		Listing: listing,
		Clear:   clear,
		Handler: handler,
	}, nil
}
