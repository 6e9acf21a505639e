// Package sequencing builds and parses the period-scoped document numbers
// used for journal entries (JV-YYYY-MM-NNNN) and withholding certificates
// (YYYY/NNNN). Allocation of the numeric suffix lives in the sequence
// repository; this package only handles the textual format.
package sequencing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// JournalScope returns the monthly scope key for journal numbering,
// e.g. "JV-2025-08". Journal sequences restart each month.
func JournalScope(t time.Time) string {
	return fmt.Sprintf("JV-%04d-%02d", t.Year(), int(t.Month()))
}

// JournalNumber formats a full journal number from its scope and sequence
// value, e.g. "JV-2025-08-0001".
func JournalNumber(scope string, n int64) string {
	return fmt.Sprintf("%s-%04d", scope, n)
}

// CertificateScope returns the yearly scope key for certificate book
// numbering, e.g. "2025". Certificate sequences restart each calendar year.
func CertificateScope(t time.Time) string {
	return fmt.Sprintf("%04d", t.Year())
}

// CertificateNumber formats a certificate book number from its scope and
// sequence value, e.g. "2025/0001".
func CertificateNumber(scope string, n int64) string {
	return fmt.Sprintf("%s/%04d", scope, n)
}

// SuffixValue extracts the numeric tail of a stored document number given its
// scope prefix and separator. A malformed suffix fails loudly: silently
// restarting at 1 would mint a duplicate number and violate uniqueness.
func SuffixValue(number, scope, sep string) (int64, error) {
	prefix := scope + sep
	if !strings.HasPrefix(number, prefix) {
		return 0, fmt.Errorf("document number %q does not belong to scope %q", number, scope)
	}
	suffix := strings.TrimPrefix(number, prefix)
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("document number %q has a malformed sequence suffix %q", number, suffix)
	}
	return n, nil
}
