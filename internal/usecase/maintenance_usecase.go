package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// ListingUsecase returns the ledger for the listing endpoint, with
// per-entry content redacted.
type ListingUsecase interface {
	Execute(ctx context.Context) (*domain.Ledger, error)
}

type listingUsecase struct {
	store domain.LedgerStore
}

// NewListingUsecase wires the ledger listing.
func NewListingUsecase(store domain.LedgerStore) ListingUsecase {
	return &listingUsecase{store: store}
}

func (u *listingUsecase) Execute(ctx context.Context) (*domain.Ledger, error) {
	ledger, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Redacted(), nil
}

// ClearUsecase wipes the whole state: ledger, raw files, artifacts.
type ClearUsecase interface {
	Execute(ctx context.Context) error
}

type clearUsecase struct {
	store    domain.LedgerStore
	writerMu *sync.Mutex
	logger   *slog.Logger
}

// NewClearUsecase wires the state clearer.
func NewClearUsecase(store domain.LedgerStore, writerMu *sync.Mutex, logger *slog.Logger) ClearUsecase {
	return &clearUsecase{store: store, writerMu: writerMu, logger: logger}
}

func (u *clearUsecase) Execute(ctx context.Context) error {
	u.writerMu.Lock()
	defer u.writerMu.Unlock()

	if err := u.store.Clear(ctx); err != nil {
		u.logger.Error("clear failed", "error", err)
		return err
	}
	return nil
}
