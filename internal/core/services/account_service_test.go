package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/core/services"
	"github.com/siamerp/finpost/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedByUserID string) error {
	args := m.Called(ctx, accountID, updatedByUserID)
	return args.Error(0)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "11300",
		NameTH:      "ลูกหนี้การค้า",
		NameEN:      "Accounts Receivable",
		AccountType: string(domain.Asset),
	}

	suite.mockRepo.On("FindAccountByCode", ctx, req.Code).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == req.Code &&
			a.AccountType == domain.Asset &&
			a.NormalBalance == domain.NormalDebit &&
			a.IsPostable &&
			a.IsActive &&
			a.AccountLevel == 1 &&
			a.CreatedBy == creatorUserID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(domain.NormalDebit, account.NormalBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "11300", AccountType: string(domain.Asset)}

	suite.mockRepo.On("FindAccountByCode", ctx, req.Code).Return(&domain.Account{Code: req.Code}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesLevelFromParent() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:    uuid.NewString(),
		Code:         "11000",
		AccountType:  domain.Asset,
		AccountLevel: 1,
	}
	req := dto.CreateAccountRequest{
		Code:            "11300",
		AccountType:     string(domain.Asset),
		ParentAccountID: parent.AccountID,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, req.Code).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountLevel == 2 && a.ParentAccountID == parent.AccountID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(2, account.AccountLevel)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "41000",
		AccountType: domain.Revenue,
	}
	req := dto.CreateAccountRequest{
		Code:            "11300",
		AccountType:     string(domain.Asset),
		ParentAccountID: parent.AccountID,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, req.Code).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree_BuildsHierarchySortedByCode() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childAID := uuid.NewString()
	childBID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: childBID, Code: "11200", AccountType: domain.Asset, ParentAccountID: rootID},
		{AccountID: rootID, Code: "11000", AccountType: domain.Asset},
		{AccountID: childAID, Code: "11100", AccountType: domain.Asset, ParentAccountID: rootID},
	}

	suite.mockRepo.On("ListAccounts", ctx, portsrepo.ListAccountsFilter{}).Return(accounts, nil).Once()

	tree, err := suite.service.GetAccountTree(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(tree, 1)
	suite.Equal("11000", tree[0].Code)
	suite.Require().Len(tree[0].Children, 2)
	suite.Equal("11100", tree[0].Children[0].Code)
	suite.Equal("11200", tree[0].Children[1].Code)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree_DetectsCycle() {
	ctx := context.Background()
	aID := uuid.NewString()
	bID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: aID, Code: "11000", AccountType: domain.Asset, ParentAccountID: bID},
		{AccountID: bID, Code: "11100", AccountType: domain.Asset, ParentAccountID: aID},
	}

	suite.mockRepo.On("ListAccounts", ctx, portsrepo.ListAccountsFilter{}).Return(accounts, nil).Once()

	tree, err := suite.service.GetAccountTree(ctx)

	suite.Require().Error(err)
	suite.Nil(tree)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree_MissingParent() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "11100", AccountType: domain.Asset, ParentAccountID: uuid.NewString()},
	}

	suite.mockRepo.On("ListAccounts", ctx, portsrepo.ListAccountsFilter{}).Return(accounts, nil).Once()

	tree, err := suite.service.GetAccountTree(ctx)

	suite.Require().Error(err)
	suite.Nil(tree)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "11300", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, account.AccountID, actingUserID).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, actingUserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
