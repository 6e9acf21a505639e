package repositories

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
)

// ListJournalEntriesParams holds token-pagination parameters for journal listings.
type ListJournalEntriesParams struct {
	Limit     int
	NextToken *string
}

// JournalEntryReader defines read operations for posted journal entries
type JournalEntryReader interface {
	// FindJournalEntryByNo retrieves a journal header by its journal number.
	FindJournalEntryByNo(ctx context.Context, journalNo string) (*domain.JournalEntry, error)

	// FindLinesByJournalID retrieves the lines of one journal in insertion order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournalEntries retrieves a paginated list of journal headers, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListJournalEntries(ctx context.Context, params ListJournalEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveJournalEntry allocates the next journal number for the entry's date
	// scope and persists header and lines as one atomic transaction. It returns
	// the assigned journal number. A failed save never consumes a number.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error)
}

// JournalEntryRepositoryFacade combines all journal repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
