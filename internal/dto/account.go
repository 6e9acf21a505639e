package dto

import (
	"github.com/siamerp/finpost/internal/core/domain"
)

// CreateAccountRequest carries the fields for a new chart-of-accounts node.
type CreateAccountRequest struct {
	Code            string `json:"code" binding:"required"`
	NameTH          string `json:"nameTH" binding:"required"`
	NameEN          string `json:"nameEN"`
	AccountType     string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountLevel    int    `json:"accountLevel"`
	IsPostable      *bool  `json:"isPostable"`
	NormalBalance   string `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID string `json:"parentAccountID"`
	Description     string `json:"description"`
}

// ListAccountsParams filters an account listing.
type ListAccountsParams struct {
	AccountType  string `form:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	PostableOnly bool   `form:"postableOnly"`
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	AccountID       string `json:"accountID"`
	Code            string `json:"code"`
	NameTH          string `json:"nameTH"`
	NameEN          string `json:"nameEN,omitempty"`
	AccountType     string `json:"accountType"`
	AccountLevel    int    `json:"accountLevel"`
	IsPostable      bool   `json:"isPostable"`
	NormalBalance   string `json:"normalBalance"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Description     string `json:"description,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// AccountTreeNode is one node of the rendered account hierarchy.
type AccountTreeNode struct {
	AccountID     string            `json:"accountID"`
	Code          string            `json:"code"`
	NameTH        string            `json:"nameTH"`
	NameEN        string            `json:"nameEN,omitempty"`
	AccountType   string            `json:"accountType"`
	AccountLevel  int               `json:"accountLevel"`
	IsPostable    bool              `json:"isPostable"`
	NormalBalance string            `json:"normalBalance"`
	Children      []AccountTreeNode `json:"children"`
}

// ToAccountResponse converts a domain.Account to its API shape.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       account.AccountID,
		Code:            account.Code,
		NameTH:          account.NameTH,
		NameEN:          account.NameEN,
		AccountType:     string(account.AccountType),
		AccountLevel:    account.AccountLevel,
		IsPostable:      account.IsPostable,
		NormalBalance:   string(account.NormalBalance),
		ParentAccountID: account.ParentAccountID,
		Description:     account.Description,
		IsActive:        account.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts to API shapes.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
