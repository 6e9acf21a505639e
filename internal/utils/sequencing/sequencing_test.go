package sequencing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournalScopeAndNumber(t *testing.T) {
	aug := time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)
	scope := JournalScope(aug)
	assert.Equal(t, "JV-2025-08", scope)
	assert.Equal(t, "JV-2025-08-0001", JournalNumber(scope, 1))
	assert.Equal(t, "JV-2025-08-0042", JournalNumber(scope, 42))
	assert.Equal(t, "JV-2025-08-12345", JournalNumber(scope, 12345))

	// Month rollover starts a new scope.
	sep := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "JV-2025-09", JournalScope(sep))
}

func TestCertificateScopeAndNumber(t *testing.T) {
	scope := CertificateScope(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2025", scope)
	assert.Equal(t, "2025/0001", CertificateNumber(scope, 1))

	// Sequence restarts with the calendar year.
	next := CertificateScope(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026", next)
	assert.Equal(t, "2026/0001", CertificateNumber(next, 1))
}

func TestSuffixValue(t *testing.T) {
	n, err := SuffixValue("JV-2025-08-0042", "JV-2025-08", "-")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = SuffixValue("2025/0007", "2025", "/")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestSuffixValue_MalformedFailsLoudly(t *testing.T) {
	// A non-numeric tail must error out, never silently reset to 1.
	_, err := SuffixValue("JV-2025-08-00XX", "JV-2025-08", "-")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")

	_, err = SuffixValue("JV-2025-08-", "JV-2025-08", "-")
	assert.Error(t, err)

	_, err = SuffixValue("JV-2025-09-0001", "JV-2025-08", "-")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scope")
}
