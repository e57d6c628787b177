package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, fromDate, toDate)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetTypeActivity(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, companyID, accountType, fromDate, toDate, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowEntries(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time, cashCategories []string) ([]domain.EntryCashMovement, error) {
	args := m.Called(ctx, companyID, fromDate, toDate, cashCategories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryCashMovement), args.Error(1)
}

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.BalanceSvcFacade
	companyID         string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.mockReportingRepo)
	suite.companyID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestAccountBalance_AssetIncludesOpening() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		CompanyID:      suite.companyID,
		AccountType:    domain.Asset,
		OpeningBalance: decimal.NewFromInt(500),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID, accountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(300), decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.companyID, accountID, nil, nil)

	suite.Require().NoError(err)
	// 500 opening + (300 debits - 100 credits), debit-normal
	suite.True(balance.Equal(decimal.NewFromInt(700)), "got %s", balance)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_RevenueCreditNormal() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:   accountID,
		CompanyID:   suite.companyID,
		AccountType: domain.Revenue,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID, accountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(50), decimal.NewFromInt(400), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.companyID, accountID, nil, nil)

	suite.Require().NoError(err)
	// credit-normal: credits grow the balance
	suite.True(balance.Equal(decimal.NewFromInt(350)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_WindowExcludesOpening() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		CompanyID:      suite.companyID,
		AccountType:    domain.Asset,
		OpeningBalance: decimal.NewFromInt(500),
	}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID, accountID, &from, &to).
		Return(decimal.NewFromInt(300), decimal.NewFromInt(100), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.companyID, accountID, &from, &to)

	suite.Require().NoError(err)
	// opening balance excluded when the window has a start
	suite.True(balance.Equal(decimal.NewFromInt(200)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_ForeignAccountHidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:   accountID,
		CompanyID:   uuid.NewString(),
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	_, err := suite.service.AccountBalance(ctx, suite.companyID, accountID, nil, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountActivity")
}

func (suite *BalanceServiceTestSuite) TestTypeTotals_SumsSignedNets() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		{
			AccountID:      uuid.NewString(),
			AccountCode:    "2000",
			AccountName:    "Accounts Payable",
			AccountType:    domain.Liability,
			OpeningBalance: decimal.NewFromInt(100),
			Debits:         decimal.NewFromInt(40),
			Credits:        decimal.NewFromInt(240),
		},
		{
			AccountID:   uuid.NewString(),
			AccountCode: "2100",
			AccountName: "Loans Payable",
			AccountType: domain.Liability,
			Debits:      decimal.Zero,
			Credits:     decimal.NewFromInt(1000),
		},
	}

	suite.mockReportingRepo.On("GetTypeActivity", ctx, suite.companyID, domain.Liability, (*time.Time)(nil), (*time.Time)(nil), false).
		Return(activities, nil).Once()

	rows, total, err := suite.service.TypeTotals(ctx, suite.companyID, domain.Liability, nil, nil, false)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	// 100 opening + (240-40) credit-normal = 300
	suite.True(rows[0].NetAmount.Equal(decimal.NewFromInt(300)), "got %s", rows[0].NetAmount)
	suite.True(rows[1].NetAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(total.Equal(decimal.NewFromInt(1300)), "got %s", total)
}

func (suite *BalanceServiceTestSuite) TestTypeTotals_InvalidType() {
	ctx := context.Background()

	_, _, err := suite.service.TypeTotals(ctx, suite.companyID, domain.AccountType("NONSENSE"), nil, nil, false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTypeActivity")
}

func (suite *BalanceServiceTestSuite) TestPeriodTotals_CoversAllTypes() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for _, accountType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		suite.mockReportingRepo.On("GetTypeActivity", ctx, suite.companyID, accountType, &from, &to, false).
			Return([]domain.AccountActivity{}, nil).Once()
	}

	totals, err := suite.service.PeriodTotals(ctx, suite.companyID, from, to)

	suite.Require().NoError(err)
	suite.Len(totals, 5)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
