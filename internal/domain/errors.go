package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is().
var (
	// ErrLedgerNotFound indicates no ledger has been persisted yet.
	ErrLedgerNotFound = errors.New("ledger not found")

	// ErrInvalidFormat indicates an unrecognized feed format was requested.
	ErrInvalidFormat = errors.New("invalid feed format")

	// ErrEmptyURL indicates a submission without a URL.
	ErrEmptyURL = errors.New("url cannot be empty")
)

// ConversionError wraps a failure of the URL-to-document collaborator.
// It is a caller-facing request failure and is never retried.
type ConversionError struct {
	URL string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %v", e.URL, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// EpubConversionError wraps a failure of the EPUB-rendering collaborator:
// non-zero exit, missing output, or timeout.
type EpubConversionError struct {
	Output string
	Stderr string
	Err    error
}

func (e *EpubConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("epub conversion failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("epub conversion failed: %v", e.Err)
}

func (e *EpubConversionError) Unwrap() error { return e.Err }

// StateCorruptionError indicates the ledger file exists but cannot be
// parsed. It must never be masked as an empty ledger.
type StateCorruptionError struct {
	Path string
	Err  error
}

func (e *StateCorruptionError) Error() string {
	return fmt.Sprintf("ledger state corrupt at %s: %v", e.Path, e.Err)
}

func (e *StateCorruptionError) Unwrap() error { return e.Err }

// MissingArtifactError indicates an entry's backing raw file is absent
// during synthesis. It isolates the failure to the EPUB artifact only.
type MissingArtifactError struct {
	EntryID string
	Path    string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing raw artifact for entry %s: %s", e.EntryID, e.Path)
}
