package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
)

// accountService maintains the chart of accounts.
type accountService struct {
	repo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{repo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account node. The parent reference is validated
// against the arena and the level is derived from the parent when not given.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.repo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}

	level := req.AccountLevel
	if req.ParentAccountID != "" {
		parent, err := s.repo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account %s: %w", req.ParentAccountID, err)
		}
		if parent.AccountType != domain.AccountType(req.AccountType) {
			return nil, fmt.Errorf("%w: account type %s does not match parent type %s", apperrors.ErrValidation, req.AccountType, parent.AccountType)
		}
		if level == 0 {
			level = parent.AccountLevel + 1
		}
	}
	if level == 0 {
		level = 1
	}

	postable := true
	if req.IsPostable != nil {
		postable = *req.IsPostable
	}

	normalBalance := domain.NormalBalance(req.NormalBalance)
	if normalBalance == "" {
		normalBalance = defaultNormalBalance(domain.AccountType(req.AccountType))
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		NameTH:          req.NameTH,
		NameEN:          req.NameEN,
		AccountType:     domain.AccountType(req.AccountType),
		AccountLevel:    level,
		IsPostable:      postable,
		NormalBalance:   normalBalance,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves active accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx, portsrepo.ListAccountsFilter{
		AccountType:  domain.AccountType(params.AccountType),
		PostableOnly: params.PostableOnly,
	})
}

// GetAccountTree assembles the account hierarchy from the flat account arena.
// Parent references are resolved by id lookup; a dangling or cyclic parent
// chain surfaces as a validation error instead of infinite recursion.
func (s *accountService) GetAccountTree(ctx context.Context) ([]dto.AccountTreeNode, error) {
	accounts, err := s.repo.ListAccounts(ctx, portsrepo.ListAccountsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for tree: %w", err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	childIDs := make(map[string][]string)
	for i := range accounts {
		byID[accounts[i].AccountID] = &accounts[i]
	}

	var rootIDs []string
	for i := range accounts {
		account := &accounts[i]
		if account.ParentAccountID == "" {
			rootIDs = append(rootIDs, account.AccountID)
			continue
		}
		if _, ok := byID[account.ParentAccountID]; !ok {
			return nil, fmt.Errorf("%w: account %s references missing parent %s", apperrors.ErrValidation, account.Code, account.ParentAccountID)
		}
		childIDs[account.ParentAccountID] = append(childIDs[account.ParentAccountID], account.AccountID)
	}

	if err := detectCycles(byID); err != nil {
		return nil, err
	}

	var build func(id string) dto.AccountTreeNode
	build = func(id string) dto.AccountTreeNode {
		account := byID[id]
		node := dto.AccountTreeNode{
			AccountID:     account.AccountID,
			Code:          account.Code,
			NameTH:        account.NameTH,
			NameEN:        account.NameEN,
			AccountType:   string(account.AccountType),
			AccountLevel:  account.AccountLevel,
			IsPostable:    account.IsPostable,
			NormalBalance: string(account.NormalBalance),
			Children:      []dto.AccountTreeNode{},
		}
		ids := childIDs[id]
		sortByCode(ids, byID)
		for _, childID := range ids {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	sortByCode(rootIDs, byID)
	tree := make([]dto.AccountTreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		tree = append(tree, build(id))
	}
	return tree, nil
}

// DeactivateAccount marks an account inactive. Accounts are never deleted so
// historical journal lines keep a valid target.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.repo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.repo.DeactivateAccount(ctx, accountID, actingUserID); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// defaultNormalBalance returns the conventional balance side for a category.
func defaultNormalBalance(accountType domain.AccountType) domain.NormalBalance {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.NormalDebit
	default:
		return domain.NormalCredit
	}
}

// detectCycles walks every parent chain with a visited set. Chains longer than
// the arena or revisiting a node indicate corrupted hierarchy data.
func detectCycles(byID map[string]*domain.Account) error {
	for startID := range byID {
		seen := map[string]struct{}{startID: {}}
		current := byID[startID]
		for current.ParentAccountID != "" {
			parent, ok := byID[current.ParentAccountID]
			if !ok {
				break
			}
			if _, visited := seen[parent.AccountID]; visited {
				return fmt.Errorf("%w: account hierarchy contains a cycle through %s", apperrors.ErrValidation, parent.Code)
			}
			seen[parent.AccountID] = struct{}{}
			current = parent
		}
	}
	return nil
}

// sortByCode orders account ids by their chart code for stable tree rendering.
func sortByCode(ids []string, byID map[string]*domain.Account) {
	sort.Slice(ids, func(i, j int) bool {
		return byID[ids[i]].Code < byID[ids[j]].Code
	})
}
