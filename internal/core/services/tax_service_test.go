package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/core/services"
	"github.com/siamerp/finpost/internal/dto"
)

// --- Mock TaxRepository ---
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.WHTTaxCode, error) {
	args := m.Called(ctx, taxCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WHTTaxCode), args.Error(1)
}

func (m *MockTaxRepository) ListTaxCodes(ctx context.Context) ([]domain.WHTTaxCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WHTTaxCode), args.Error(1)
}

func (m *MockTaxRepository) FindTaxGroupByCode(ctx context.Context, code string) (*domain.TaxGroup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxGroup), args.Error(1)
}

func (m *MockTaxRepository) ListTaxGroups(ctx context.Context, direction *domain.VATDirection) ([]domain.TaxGroup, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxGroup), args.Error(1)
}

func (m *MockTaxRepository) FindCertificateByID(ctx context.Context, certificateID string) (*domain.WHTCertificate, error) {
	args := m.Called(ctx, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WHTCertificate), args.Error(1)
}

func (m *MockTaxRepository) ListCertificates(ctx context.Context, limit int, nextToken *string) ([]domain.WHTCertificate, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var certs []domain.WHTCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.WHTCertificate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return certs, token, args.Error(2)
}

func (m *MockTaxRepository) SaveCertificate(ctx context.Context, cert domain.WHTCertificate) (string, error) {
	args := m.Called(ctx, cert)
	return args.String(0), args.Error(1)
}

func (m *MockTaxRepository) UpdateCertificateStatus(ctx context.Context, certificateID string, fromStatus, toStatus domain.CertificateStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, certificateID, fromStatus, toStatus, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Test Suite ---
type TaxServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTaxRepository
	service  portssvc.TaxSvcFacade
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaxRepository)
	suite.service = services.NewTaxService(suite.mockRepo)
}

func issueRequest(taxCodeID string, baseAmount string) dto.IssueCertificateRequest {
	return dto.IssueCertificateRequest{
		TaxCodeID:  taxCodeID,
		BaseAmount: decimal.RequireFromString(baseAmount),
		PayerTaxID: "0105551234567",
		PayerName:  "Siam Retail Co., Ltd.",
		PayeeTaxID: "0105559876543",
		PayeeName:  "Bangkok Services Ltd.",
	}
}

// --- Test Cases ---

func (suite *TaxServiceTestSuite) TestIssueCertificate_ComputesWithholding() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	taxCode := &domain.WHTTaxCode{
		TaxCodeID:      uuid.NewString(),
		Code:           "W3",
		Rate:           decimal.RequireFromString("3.00"),
		IncomeTypeCode: "40(2)",
		IsActive:       true,
	}
	req := issueRequest(taxCode.TaxCodeID, "1000.00")

	suite.mockRepo.On("FindTaxCodeByID", ctx, taxCode.TaxCodeID).Return(taxCode, nil).Once()
	suite.mockRepo.On("SaveCertificate", ctx, mock.MatchedBy(func(c domain.WHTCertificate) bool {
		return c.TaxAmount.Equal(decimal.RequireFromString("30.00")) &&
			c.BaseAmount.Equal(decimal.RequireFromString("1000.00")) &&
			c.Status == domain.CertificateIssued &&
			c.PayerTaxID == req.PayerTaxID &&
			c.PayeeName == req.PayeeName &&
			c.CreatedBy == actingUserID
	})).Return("2025/0001", nil).Once()

	cert, err := suite.service.IssueCertificate(ctx, req, actingUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(cert)
	suite.Equal("2025/0001", cert.BookNumber)
	suite.True(cert.TaxAmount.Equal(decimal.RequireFromString("30.00")))
	suite.Equal(domain.CertificateIssued, cert.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestIssueCertificate_DefaultsHeadOfficeBranch() {
	ctx := context.Background()
	taxCode := &domain.WHTTaxCode{
		TaxCodeID: uuid.NewString(),
		Code:      "W5",
		Rate:      decimal.RequireFromString("5.00"),
		IsActive:  true,
	}
	req := issueRequest(taxCode.TaxCodeID, "200.00")

	suite.mockRepo.On("FindTaxCodeByID", ctx, taxCode.TaxCodeID).Return(taxCode, nil).Once()
	suite.mockRepo.On("SaveCertificate", ctx, mock.MatchedBy(func(c domain.WHTCertificate) bool {
		return c.PayerBranch == "00000" && c.PayeeBranch == "00000"
	})).Return("2025/0002", nil).Once()

	cert, err := suite.service.IssueCertificate(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("00000", cert.PayerBranch)
	suite.Equal("00000", cert.PayeeBranch)
}

func (suite *TaxServiceTestSuite) TestIssueCertificate_NonPositiveBase() {
	req := issueRequest(uuid.NewString(), "0.00")

	cert, err := suite.service.IssueCertificate(context.Background(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCertificate", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestIssueCertificate_TaxCodeNotFound() {
	ctx := context.Background()
	req := issueRequest(uuid.NewString(), "1000.00")

	suite.mockRepo.On("FindTaxCodeByID", ctx, req.TaxCodeID).Return(nil, apperrors.ErrNotFound).Once()

	cert, err := suite.service.IssueCertificate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxServiceTestSuite) TestIssueCertificate_InactiveTaxCode() {
	ctx := context.Background()
	taxCode := &domain.WHTTaxCode{
		TaxCodeID: uuid.NewString(),
		Code:      "W1",
		Rate:      decimal.RequireFromString("1.00"),
		IsActive:  false,
	}
	req := issueRequest(taxCode.TaxCodeID, "1000.00")

	suite.mockRepo.On("FindTaxCodeByID", ctx, taxCode.TaxCodeID).Return(taxCode, nil).Once()

	cert, err := suite.service.IssueCertificate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCertificate", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestCancelCertificate_FlipsOnlyStatus() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	cert := &domain.WHTCertificate{
		CertificateID: uuid.NewString(),
		BookNumber:    "2025/0001",
		PayerName:     "Siam Retail Co., Ltd.",
		BaseAmount:    decimal.RequireFromString("1000.00"),
		TaxAmount:     decimal.RequireFromString("30.00"),
		Status:        domain.CertificateIssued,
	}

	suite.mockRepo.On("FindCertificateByID", ctx, cert.CertificateID).Return(cert, nil).Once()
	suite.mockRepo.On("UpdateCertificateStatus", ctx, cert.CertificateID, domain.CertificateIssued, domain.CertificateCancelled, actingUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelCertificate(ctx, cert.CertificateID, actingUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.CertificateCancelled, cancelled.Status)
	suite.Equal("2025/0001", cancelled.BookNumber)
	suite.True(cancelled.BaseAmount.Equal(decimal.RequireFromString("1000.00")))
	suite.True(cancelled.TaxAmount.Equal(decimal.RequireFromString("30.00")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCancelCertificate_AlreadyCancelled() {
	ctx := context.Background()
	cert := &domain.WHTCertificate{
		CertificateID: uuid.NewString(),
		BookNumber:    "2025/0003",
		Status:        domain.CertificateCancelled,
	}

	suite.mockRepo.On("FindCertificateByID", ctx, cert.CertificateID).Return(cert, nil).Once()

	cancelled, err := suite.service.CancelCertificate(ctx, cert.CertificateID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCertificateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestCancelCertificate_LosesRaceToConcurrentCancel() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	cert := &domain.WHTCertificate{
		CertificateID: uuid.NewString(),
		BookNumber:    "2025/0004",
		Status:        domain.CertificateIssued,
	}

	// The read sees ISSUED but another request cancels first; the conditional
	// update reports the lost race.
	raceErr := fmt.Errorf("%w: certificate %s is already CANCELLED", apperrors.ErrConflict, cert.CertificateID)
	suite.mockRepo.On("FindCertificateByID", ctx, cert.CertificateID).Return(cert, nil).Once()
	suite.mockRepo.On("UpdateCertificateStatus", ctx, cert.CertificateID, domain.CertificateIssued, domain.CertificateCancelled, actingUserID, mock.AnythingOfType("time.Time")).Return(raceErr).Once()

	cancelled, err := suite.service.CancelCertificate(ctx, cert.CertificateID, actingUserID)

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCancelCertificate_NotFound() {
	ctx := context.Background()
	certificateID := uuid.NewString()

	suite.mockRepo.On("FindCertificateByID", ctx, certificateID).Return(nil, apperrors.ErrNotFound).Once()

	cancelled, err := suite.service.CancelCertificate(ctx, certificateID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxServiceTestSuite) TestListTaxGroups_FiltersDirection() {
	ctx := context.Background()
	direction := domain.VATOutput
	expected := []domain.TaxGroup{{Code: "V7", Direction: domain.VATOutput}}

	suite.mockRepo.On("ListTaxGroups", ctx, &direction).Return(expected, nil).Once()

	groups, err := suite.service.ListTaxGroups(ctx, &direction)

	suite.Require().NoError(err)
	suite.Equal(expected, groups)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestTaxService(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
