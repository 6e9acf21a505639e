package accounting

import (
	"fmt"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineTotals sums the debit and credit sides of a set of journal lines.
// The balance check is order-independent, so line order carries no weight here.
func LineTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateLine checks that a single journal line carries exactly one of
// debit/credit, and that the carried side is strictly positive.
func ValidateLine(line domain.JournalLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line for account %s has a negative amount", apperrors.ErrValidation, line.AccountID)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet == creditSet {
		// Either both sides carry an amount or neither does. Zero-value lines
		// are omitted upstream, not written as no-op rows.
		return fmt.Errorf("%w: line for account %s must carry exactly one of debit or credit", apperrors.ErrValidation, line.AccountID)
	}
	return nil
}

// ValidateJournalBalance verifies that a candidate set of journal lines is
// well-formed and nets to zero. Equality is exact decimal comparison to the
// minor currency unit; there is no floating-point tolerance window.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	totalDebit, totalCredit := LineTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return nil
}

// IsBalanced reports whether the lines net to zero without diagnosing why.
func IsBalanced(lines []domain.JournalLine) bool {
	totalDebit, totalCredit := LineTotals(lines)
	return totalDebit.Equal(totalCredit)
}
