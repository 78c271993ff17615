package domain

import (
	"context"
	"time"
)

// ConvertedDocument is the result of the URL-to-document collaborator.
type ConvertedDocument struct {
	// Name is the document title as reported by the converter. May be empty.
	Name string
	// HTML is the full HTML rendering of the document.
	HTML string
	// Markdown is the Markdown rendering of the document.
	Markdown string
}

// DocumentConverter turns a URL into a structured document. Implementations
// are expected to be slow (network fetch plus rendering) and must honor the
// context deadline.
type DocumentConverter interface {
	Convert(ctx context.Context, url string) (*ConvertedDocument, error)
}

// EpubConverter renders a Markdown file into an EPUB file. Implementations
// invoke an external tool and must honor the context deadline.
type EpubConverter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// ArtifactKind names a derived feed artifact.
type ArtifactKind string

const (
	ArtifactRSS    ArtifactKind = "rss"
	ArtifactAtom   ArtifactKind = "atom"
	ArtifactEpub   ArtifactKind = "epub"
	ArtifactDigest ArtifactKind = "digest"
)

// ParseArtifactKind maps a feed format string from the HTTP surface to an
// ArtifactKind. Only rss, atom and epub are exposed externally.
func ParseArtifactKind(fmt string) (ArtifactKind, error) {
	switch fmt {
	case "rss":
		return ArtifactRSS, nil
	case "atom":
		return ArtifactAtom, nil
	case "epub":
		return ArtifactEpub, nil
	default:
		return "", ErrInvalidFormat
	}
}

// LedgerStore is the durable state store: one JSON ledger plus per-entry
// raw files and derived feed artifacts under a single data directory.
type LedgerStore interface {
	// Load reads the persisted ledger. ErrLedgerNotFound when absent,
	// *StateCorruptionError when present but unparseable.
	Load(ctx context.Context) (*Ledger, error)
	// LoadOrInit is Load, except absence yields a fresh empty ledger.
	// Corruption still fails.
	LoadOrInit(ctx context.Context, now time.Time) (*Ledger, error)
	// Save atomically replaces the persisted ledger.
	Save(ctx context.Context, ledger *Ledger) error

	// SaveRaw persists the raw HTML and Markdown renderings for an entry.
	SaveRaw(id, html, markdown string) error
	// ReadRawMarkdown returns the raw Markdown for an entry.
	// *MissingArtifactError when the backing file is absent.
	ReadRawMarkdown(id string) (string, error)

	// WriteArtifact atomically writes a derived artifact.
	WriteArtifact(kind ArtifactKind, data []byte) error
	// ArtifactPath returns the on-disk path for a derived artifact.
	ArtifactPath(kind ArtifactKind) string
	// RemoveArtifacts deletes all derived artifacts, ignoring absent files.
	RemoveArtifacts() error

	// Clear removes the ledger, every raw file and every derived artifact.
	// All deletions are attempted; failures are collected and joined.
	Clear(ctx context.Context) error
}
