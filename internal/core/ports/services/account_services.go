package services

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/siamerp/finpost/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves active accounts ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetAccountTree assembles the account hierarchy from the flat account set.
	GetAccountTree(ctx context.Context) ([]dto.AccountTreeNode, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account after hierarchy validation.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, actingUserID string) error
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
