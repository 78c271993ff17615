package usecase

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// RefreshUsecase deletes the generated feed artifacts and regenerates them
// from the current ledger. Safe to call repeatedly; concurrent calls are
// coalesced into a single regeneration.
type RefreshUsecase interface {
	Execute(ctx context.Context) error
}

type refreshUsecase struct {
	store    domain.LedgerStore
	synth    SynthesizeUsecase
	writerMu *sync.Mutex
	group    singleflight.Group
	logger   *slog.Logger
}

// NewRefreshUsecase wires the feed refresher.
func NewRefreshUsecase(store domain.LedgerStore, synth SynthesizeUsecase, writerMu *sync.Mutex, logger *slog.Logger) RefreshUsecase {
	return &refreshUsecase{
		store:    store,
		synth:    synth,
		writerMu: writerMu,
		logger:   logger,
	}
}

func (u *refreshUsecase) Execute(ctx context.Context) error {
	_, err, shared := u.group.Do("refresh", func() (any, error) {
		return nil, u.refresh(ctx)
	})
	if shared {
		u.logger.Debug("refresh request coalesced")
	}
	return err
}

func (u *refreshUsecase) refresh(ctx context.Context) error {
	u.writerMu.Lock()
	defer u.writerMu.Unlock()

	ledger, err := u.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := u.store.RemoveArtifacts(); err != nil {
		return err
	}

	result, err := u.synth.Execute(ctx, ledger)
	if err != nil {
		return err
	}
	if result.DigestErr != nil {
		// RSS/Atom were regenerated; only the EPUB digest is stale.
		return result.DigestErr
	}

	u.logger.Info("feed artifacts regenerated", "entries", len(ledger.Entries))
	return nil
}
