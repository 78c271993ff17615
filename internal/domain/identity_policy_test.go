package domain_test

import (
	"testing"

	"github.com/ekamil/links-to-epub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIdentityPolicy_Compute(t *testing.T) {
	policy := domain.NewIdentityPolicy()

	t.Run("Same URL produces same id", func(t *testing.T) {
		id1 := policy.Compute("https://example.com/")
		id2 := policy.Compute("https://example.com/")
		assert.Equal(t, id1, id2)
	})

	t.Run("Whitespace differences are normalized", func(t *testing.T) {
		id1 := policy.Compute("https://example.com/")
		id2 := policy.Compute("  https://example.com/\n")
		assert.Equal(t, id1, id2)
	})

	t.Run("Different URLs produce different ids", func(t *testing.T) {
		id1 := policy.Compute("https://example.com/a")
		id2 := policy.Compute("https://example.com/b")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("Known digest", func(t *testing.T) {
		// MD5 of the URL, prefixed so ids are recognizable in file names.
		id := policy.Compute("https://essekkat.pl/")
		assert.Equal(t, "req-dfd275036d2869caa7072e47ab5a9fe1", id)
	})
}
