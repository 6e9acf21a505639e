package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/core/services"
	"github.com/siamerp/finpost/internal/dto"
)

// --- Mock DeterminationRepository ---
type MockDeterminationRepository struct {
	mock.Mock
}

func (m *MockDeterminationRepository) FindDetermination(ctx context.Context, profileName, processKey string) (*domain.GLDetermination, error) {
	args := m.Called(ctx, profileName, processKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLDetermination), args.Error(1)
}

func (m *MockDeterminationRepository) ListDeterminations(ctx context.Context, profileName string) ([]domain.GLDetermination, error) {
	args := m.Called(ctx, profileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLDetermination), args.Error(1)
}

func (m *MockDeterminationRepository) UpsertDetermination(ctx context.Context, det domain.GLDetermination) error {
	args := m.Called(ctx, det)
	return args.Error(0)
}

// --- Test Suite ---
type DeterminationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDeterminationRepository
	service  portssvc.DeterminationSvcFacade
}

func (suite *DeterminationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDeterminationRepository)
	suite.service = services.NewDeterminationService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *DeterminationServiceTestSuite) TestResolveAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	det := &domain.GLDetermination{
		ProfileName: services.DefaultProfile,
		ProcessKey:  domain.ProcessSalesRevenue,
		AccountID:   accountID,
	}

	suite.mockRepo.On("FindDetermination", ctx, services.DefaultProfile, domain.ProcessSalesRevenue).Return(det, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, domain.ProcessSalesRevenue, "", nil)

	suite.Require().NoError(err)
	suite.Equal(accountID, resolved)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DeterminationServiceTestSuite) TestResolveAccount_CachesSecondLookup() {
	ctx := context.Background()
	accountID := uuid.NewString()
	det := &domain.GLDetermination{
		ProfileName: services.DefaultProfile,
		ProcessKey:  domain.ProcessARDomestic,
		AccountID:   accountID,
	}

	// Only one repository hit is expected for two resolutions.
	suite.mockRepo.On("FindDetermination", ctx, services.DefaultProfile, domain.ProcessARDomestic).Return(det, nil).Once()

	first, err := suite.service.ResolveAccount(ctx, domain.ProcessARDomestic, "", nil)
	suite.Require().NoError(err)
	second, err := suite.service.ResolveAccount(ctx, domain.ProcessARDomestic, "", nil)
	suite.Require().NoError(err)

	suite.Equal(accountID, first)
	suite.Equal(accountID, second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DeterminationServiceTestSuite) TestResolveAccount_MissingConfiguration() {
	ctx := context.Background()

	suite.mockRepo.On("FindDetermination", ctx, services.DefaultProfile, domain.ProcessWHTPayable).Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveAccount(ctx, domain.ProcessWHTPayable, "", nil)

	suite.Require().Error(err)
	suite.Empty(resolved)
	suite.ErrorIs(err, apperrors.ErrConfigurationMissing)
	suite.ErrorContains(err, domain.ProcessWHTPayable)
	suite.ErrorContains(err, services.DefaultProfile)
}

func (suite *DeterminationServiceTestSuite) TestResolveAccount_EmptyProcessKey() {
	resolved, err := suite.service.ResolveAccount(context.Background(), "", "", nil)

	suite.Require().Error(err)
	suite.Empty(resolved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDetermination", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeterminationServiceTestSuite) TestResolveAccount_NamedProfile() {
	ctx := context.Background()
	accountID := uuid.NewString()
	det := &domain.GLDetermination{
		ProfileName: "BranchA",
		ProcessKey:  domain.ProcessSalesVAT,
		AccountID:   accountID,
	}

	suite.mockRepo.On("FindDetermination", ctx, "BranchA", domain.ProcessSalesVAT).Return(det, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, domain.ProcessSalesVAT, "BranchA", nil)

	suite.Require().NoError(err)
	suite.Equal(accountID, resolved)
}

func (suite *DeterminationServiceTestSuite) TestUpsertDetermination_InvalidatesCache() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	oldAccountID := uuid.NewString()
	newAccountID := uuid.NewString()

	suite.mockRepo.On("FindDetermination", ctx, services.DefaultProfile, domain.ProcessSalesRevenue).
		Return(&domain.GLDetermination{AccountID: oldAccountID}, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, domain.ProcessSalesRevenue, "", nil)
	suite.Require().NoError(err)
	suite.Equal(oldAccountID, resolved)

	suite.mockRepo.On("UpsertDetermination", ctx, mock.MatchedBy(func(d domain.GLDetermination) bool {
		return d.ProfileName == services.DefaultProfile &&
			d.ProcessKey == domain.ProcessSalesRevenue &&
			d.AccountID == newAccountID &&
			d.CreatedBy == actingUserID
	})).Return(nil).Once()

	_, err = suite.service.UpsertDetermination(ctx, dto.UpsertDeterminationRequest{
		ProcessKey: domain.ProcessSalesRevenue,
		AccountID:  newAccountID,
	}, actingUserID)
	suite.Require().NoError(err)

	// The next resolution must hit the repository again and see the new account.
	suite.mockRepo.On("FindDetermination", ctx, services.DefaultProfile, domain.ProcessSalesRevenue).
		Return(&domain.GLDetermination{AccountID: newAccountID}, nil).Once()

	resolved, err = suite.service.ResolveAccount(ctx, domain.ProcessSalesRevenue, "", nil)
	suite.Require().NoError(err)
	suite.Equal(newAccountID, resolved)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DeterminationServiceTestSuite) TestUpsertDetermination_MissingFields() {
	det, err := suite.service.UpsertDetermination(context.Background(), dto.UpsertDeterminationRequest{
		ProcessKey: domain.ProcessSalesRevenue,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(det)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDetermination", mock.Anything, mock.Anything)
}

func (suite *DeterminationServiceTestSuite) TestListDeterminations_DefaultsProfile() {
	ctx := context.Background()
	expected := []domain.GLDetermination{{ProcessKey: domain.ProcessSalesRevenue}}

	suite.mockRepo.On("ListDeterminations", ctx, services.DefaultProfile).Return(expected, nil).Once()

	dets, err := suite.service.ListDeterminations(ctx, "")

	suite.Require().NoError(err)
	suite.Equal(expected, dets)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestDeterminationService(t *testing.T) {
	suite.Run(t, new(DeterminationServiceTestSuite))
}
