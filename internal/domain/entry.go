package domain

import "time"

// Entry is one submitted document in the ledger.
type Entry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	OriginalLink string `json:"original_link"`
	Content      string `json:"content"`
	Excerpt      string `json:"excerpt"`
}

// Ledger is the durable, ordered collection of all submitted documents.
// Entries are stored most-recently-added first. The ledger is the single
// source of truth; RSS/Atom/EPUB artifacts are projections of it.
type Ledger struct {
	Updated time.Time `json:"updated"`
	Entries []Entry   `json:"entries"`
}

// NewLedger returns a fresh empty ledger.
func NewLedger(now time.Time) *Ledger {
	return &Ledger{Updated: now, Entries: []Entry{}}
}

// Upsert inserts or replaces an entry keyed by its ID.
//
// When an entry with the same ID already exists it is replaced in place,
// keeping the chronological rank of its first appearance while refreshing
// content. New ids are inserted at the front so the newest submission is
// first. Updated is bumped on every call.
func (l *Ledger) Upsert(e Entry, now time.Time) {
	defer func() {
		if now.After(l.Updated) {
			l.Updated = now
		}
	}()

	for i := range l.Entries {
		if l.Entries[i].ID == e.ID {
			l.Entries[i] = e
			return
		}
	}

	l.Entries = append([]Entry{e}, l.Entries...)
}

// Find returns the entry with the given id, or nil.
func (l *Ledger) Find(id string) *Entry {
	for i := range l.Entries {
		if l.Entries[i].ID == id {
			return &l.Entries[i]
		}
	}
	return nil
}

// Redacted returns a copy of the ledger with per-entry content replaced by
// a placeholder. Used by the listing endpoint, which exposes metadata only.
func (l *Ledger) Redacted() *Ledger {
	out := &Ledger{Updated: l.Updated, Entries: make([]Entry, len(l.Entries))}
	copy(out.Entries, l.Entries)
	for i := range out.Entries {
		if out.Entries[i].Content != "" {
			out.Entries[i].Content = RedactedPlaceholder
		}
	}
	return out
}

// RedactedPlaceholder replaces entry content in listings.
const RedactedPlaceholder = "[redacted]"
