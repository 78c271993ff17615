package domain_test

import (
	"testing"
	"time"

	"github.com/ekamil/links-to-epub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Upsert(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("New entry is inserted at the front", func(t *testing.T) {
		ledger := domain.NewLedger(base)
		ledger.Upsert(domain.Entry{ID: "req-b", Title: "B"}, base.Add(time.Minute))
		ledger.Upsert(domain.Entry{ID: "req-a", Title: "A"}, base.Add(2*time.Minute))

		require.Len(t, ledger.Entries, 2)
		assert.Equal(t, "req-a", ledger.Entries[0].ID)
		assert.Equal(t, "req-b", ledger.Entries[1].ID)
	})

	t.Run("Existing entry is replaced in place", func(t *testing.T) {
		ledger := domain.NewLedger(base)
		ledger.Upsert(domain.Entry{ID: "req-b", Title: "B"}, base.Add(time.Minute))
		ledger.Upsert(domain.Entry{ID: "req-a", Title: "A"}, base.Add(2*time.Minute))

		// Resubmitting req-b refreshes content but keeps its rank.
		ledger.Upsert(domain.Entry{ID: "req-b", Title: "B v2"}, base.Add(3*time.Minute))

		require.Len(t, ledger.Entries, 2)
		assert.Equal(t, "req-a", ledger.Entries[0].ID)
		assert.Equal(t, "req-b", ledger.Entries[1].ID)
		assert.Equal(t, "B v2", ledger.Entries[1].Title)
	})

	t.Run("Exactly one entry per id", func(t *testing.T) {
		ledger := domain.NewLedger(base)
		for i := 0; i < 5; i++ {
			ledger.Upsert(domain.Entry{ID: "req-a"}, base.Add(time.Duration(i)*time.Minute))
		}
		assert.Len(t, ledger.Entries, 1)
	})

	t.Run("Updated is monotonically non-decreasing", func(t *testing.T) {
		ledger := domain.NewLedger(base)
		ledger.Upsert(domain.Entry{ID: "req-a"}, base.Add(time.Hour))
		assert.Equal(t, base.Add(time.Hour), ledger.Updated)

		// A clock running backwards must not move Updated back.
		ledger.Upsert(domain.Entry{ID: "req-b"}, base.Add(time.Minute))
		assert.Equal(t, base.Add(time.Hour), ledger.Updated)
	})
}

func TestLedger_Redacted(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ledger := domain.NewLedger(base)
	ledger.Upsert(domain.Entry{
		ID:           "req-a",
		Title:        "A",
		OriginalLink: "https://example.com/a",
		Content:      "full body text",
		Excerpt:      "full body...",
	}, base)

	redacted := ledger.Redacted()

	assert.Equal(t, domain.RedactedPlaceholder, redacted.Entries[0].Content)
	assert.Equal(t, "A", redacted.Entries[0].Title)
	assert.Equal(t, "https://example.com/a", redacted.Entries[0].OriginalLink)

	// The original ledger must be untouched.
	assert.Equal(t, "full body text", ledger.Entries[0].Content)
}
