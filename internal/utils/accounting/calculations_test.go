package accounting

import (
	"testing"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitLine(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{
		AccountID: accountID,
		Debit:     decimal.RequireFromString(amount),
		Credit:    decimal.Zero,
	}
}

func creditLine(accountID, amount string) domain.JournalLine {
	return domain.JournalLine{
		AccountID: accountID,
		Debit:     decimal.Zero,
		Credit:    decimal.RequireFromString(amount),
	}
}

func TestValidateJournalBalance_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("acc-ar", "1070.00"),
		creditLine("acc-rev", "1000.00"),
		creditLine("acc-vat", "70.00"),
	}
	assert.NoError(t, ValidateJournalBalance(lines))
	assert.True(t, IsBalanced(lines))
}

func TestValidateJournalBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("acc-ar", "1070.00"),
		creditLine("acc-rev", "1000.00"),
	}
	err := ValidateJournalBalance(lines)
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
	assert.Contains(t, err.Error(), "1070")
	assert.Contains(t, err.Error(), "1000")
	assert.False(t, IsBalanced(lines))
}

func TestValidateJournalBalance_ExactMinorUnit(t *testing.T) {
	// A one-cent mismatch must fail; accounting equality has no tolerance window.
	lines := []domain.JournalLine{
		debitLine("acc-ar", "100.00"),
		creditLine("acc-rev", "99.99"),
	}
	assert.ErrorIs(t, ValidateJournalBalance(lines), apperrors.ErrUnbalanced)

	lines[1].Credit = decimal.RequireFromString("100.00")
	assert.NoError(t, ValidateJournalBalance(lines))
}

func TestValidateJournalBalance_MinLines(t *testing.T) {
	err := ValidateJournalBalance([]domain.JournalLine{debitLine("acc-ar", "10.00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateLine_BothSidesSet(t *testing.T) {
	line := domain.JournalLine{
		AccountID: "acc-1",
		Debit:     decimal.RequireFromString("5.00"),
		Credit:    decimal.RequireFromString("5.00"),
	}
	assert.ErrorIs(t, ValidateLine(line), apperrors.ErrValidation)
}

func TestValidateLine_NeitherSideSet(t *testing.T) {
	line := domain.JournalLine{AccountID: "acc-1", Debit: decimal.Zero, Credit: decimal.Zero}
	assert.ErrorIs(t, ValidateLine(line), apperrors.ErrValidation)
}

func TestValidateLine_NegativeAmount(t *testing.T) {
	line := domain.JournalLine{
		AccountID: "acc-1",
		Debit:     decimal.RequireFromString("-5.00"),
		Credit:    decimal.Zero,
	}
	assert.ErrorIs(t, ValidateLine(line), apperrors.ErrValidation)
}

func TestLineTotals(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("a", "0.01"),
		debitLine("b", "0.02"),
		creditLine("c", "0.03"),
	}
	totalDebit, totalCredit := LineTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.RequireFromString("0.03")))
	assert.True(t, totalCredit.Equal(decimal.RequireFromString("0.03")))
}
