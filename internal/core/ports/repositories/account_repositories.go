package repositories

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
)

// ListAccountsFilter narrows an account listing. Zero values mean "no filter".
type ListAccountsFilter struct {
	AccountType  domain.AccountType
	PostableOnly bool
}

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an active account by its chart code (e.g. "11300").
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves active accounts ordered by code.
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
