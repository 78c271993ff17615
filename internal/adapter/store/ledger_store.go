package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ekamil/links-to-epub/internal/domain"
)

const (
	ledgerFile = "ledger.json"
	rawDir     = "raw"
)

var artifactFiles = map[domain.ArtifactKind]string{
	domain.ArtifactRSS:    "rss.xml",
	domain.ArtifactAtom:   "atom.xml",
	domain.ArtifactEpub:   "digest.epub",
	domain.ArtifactDigest: "digest.md",
}

// FileLedgerStore persists the ledger and its artifacts under one data
// directory:
//
//	<dataDir>/ledger.json
//	<dataDir>/raw/<id>.html, <dataDir>/raw/<id>.md
//	<dataDir>/rss.xml, atom.xml, digest.md, digest.epub
//
// Every write goes through a temp file + rename so a concurrent reader
// never observes a torn file.
type FileLedgerStore struct {
	dataDir string
	logger  *slog.Logger
}

// NewFileLedgerStore creates the store and its directories.
func NewFileLedgerStore(dataDir string, logger *slog.Logger) (*FileLedgerStore, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, rawDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileLedgerStore{dataDir: dataDir, logger: logger}, nil
}

var _ domain.LedgerStore = (*FileLedgerStore)(nil)

// Load reads the persisted ledger. A missing file is ErrLedgerNotFound; an
// unparseable file is a StateCorruptionError, never an empty ledger.
func (s *FileLedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	path := s.ledgerPath()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrLedgerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, &domain.StateCorruptionError{Path: path, Err: err}
	}
	if ledger.Entries == nil {
		ledger.Entries = []domain.Entry{}
	}
	return &ledger, nil
}

// LoadOrInit is Load, except absence yields a fresh empty ledger.
func (s *FileLedgerStore) LoadOrInit(ctx context.Context, now time.Time) (*domain.Ledger, error) {
	ledger, err := s.Load(ctx)
	if errors.Is(err, domain.ErrLedgerNotFound) {
		return domain.NewLedger(now), nil
	}
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// Save atomically replaces the persisted ledger.
func (s *FileLedgerStore) Save(ctx context.Context, ledger *domain.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := s.writeAtomic(s.ledgerPath(), data); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	s.logger.Debug("ledger saved", "entries", len(ledger.Entries))
	return nil
}

// SaveRaw persists the raw HTML and Markdown renderings for an entry.
func (s *FileLedgerStore) SaveRaw(id, html, markdown string) error {
	if err := s.writeAtomic(s.rawPath(id, "html"), []byte(html)); err != nil {
		return fmt.Errorf("failed to save raw html for %s: %w", id, err)
	}
	if err := s.writeAtomic(s.rawPath(id, "md"), []byte(markdown)); err != nil {
		return fmt.Errorf("failed to save raw markdown for %s: %w", id, err)
	}
	return nil
}

// ReadRawMarkdown returns the raw Markdown for an entry.
func (s *FileLedgerStore) ReadRawMarkdown(id string) (string, error) {
	path := s.rawPath(id, "md")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &domain.MissingArtifactError{EntryID: id, Path: path}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read raw markdown for %s: %w", id, err)
	}
	return string(data), nil
}

// WriteArtifact atomically writes a derived artifact.
func (s *FileLedgerStore) WriteArtifact(kind domain.ArtifactKind, data []byte) error {
	if err := s.writeAtomic(s.ArtifactPath(kind), data); err != nil {
		return fmt.Errorf("failed to write %s artifact: %w", kind, err)
	}
	return nil
}

// ArtifactPath returns the on-disk path for a derived artifact.
func (s *FileLedgerStore) ArtifactPath(kind domain.ArtifactKind) string {
	return filepath.Join(s.dataDir, artifactFiles[kind])
}

// RemoveArtifacts deletes all derived artifacts. Absent files are fine.
func (s *FileLedgerStore) RemoveArtifacts() error {
	var errs []error
	for kind := range artifactFiles {
		if err := os.Remove(s.ArtifactPath(kind)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

// Clear removes the ledger, every raw file and every derived artifact.
// Every deletion is attempted even if an earlier one fails.
func (s *FileLedgerStore) Clear(ctx context.Context) error {
	var errs []error

	if err := os.Remove(s.ledgerPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("remove ledger: %w", err))
	}

	if err := s.RemoveArtifacts(); err != nil {
		errs = append(errs, err)
	}

	rawEntries, err := os.ReadDir(filepath.Join(s.dataDir, rawDir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("list raw dir: %w", err))
	}
	for _, entry := range rawEntries {
		path := filepath.Join(s.dataDir, rawDir, entry.Name())
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", entry.Name(), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("clear incomplete: %w", errors.Join(errs...))
	}
	s.logger.Info("state cleared", "data_dir", s.dataDir)
	return nil
}

func (s *FileLedgerStore) ledgerPath() string {
	return filepath.Join(s.dataDir, ledgerFile)
}

func (s *FileLedgerStore) rawPath(id, ext string) string {
	return filepath.Join(s.dataDir, rawDir, id+"."+ext)
}

// writeAtomic writes to a uniquely named temp file in the target directory
// and renames it into place, so readers see either the old or the new
// content, never a partial write.
func (s *FileLedgerStore) writeAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
