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

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockReportingRepository
	service   portssvc.ReportingSvcFacade
	companyID string
	asOf      time.Time
	from      time.Time
	to        time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo,
		services.WithCashFlowRules(domain.CashFlowRules{
			Version:        1,
			CashCategories: []string{"Cash", "Bank"},
			EntryTypes: map[string]domain.CashFlowBucket{
				string(domain.EntryTypeJournal): domain.CashFlowOperating,
			},
			ReferenceTypes: map[string]domain.CashFlowBucket{
				"LOAN":           domain.CashFlowFinancing,
				"ASSET_PURCHASE": domain.CashFlowInvesting,
			},
			DefaultBucket: domain.CashFlowOperating,
		}),
	)
	suite.companyID = uuid.NewString()
	suite.asOf = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	suite.from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
}

func activity(code, name string, accountType domain.AccountType, opening, debits, credits int64) domain.AccountActivity {
	return domain.AccountActivity{
		AccountID:      uuid.NewString(),
		AccountCode:    code,
		AccountName:    name,
		AccountType:    accountType,
		OpeningBalance: decimal.NewFromInt(opening),
		Debits:         decimal.NewFromInt(debits),
		Credits:        decimal.NewFromInt(credits),
	}
}

// --- Trial Balance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	activities := []domain.AccountActivity{
		activity("1000", "Cash", domain.Asset, 0, 500, 200),
		activity("4000", "Sales", domain.Revenue, 0, 0, 500),
		activity("5000", "Rent", domain.Expense, 0, 200, 0),
		activity("1100", "Dormant", domain.Asset, 0, 0, 0), // zero balance, dropped
	}

	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Len(report.Rows, 3)
	suite.True(report.Balanced)
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(500)), "got %s", report.TotalDebits)
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(500)), "got %s", report.TotalCredits)

	// Cash: debit-normal net 300 sits in the debit column.
	suite.Equal("1000", report.Rows[0].AccountCode)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(300)))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_CorruptLedgerStillReturnsReport() {
	activities := []domain.AccountActivity{
		activity("1000", "Cash", domain.Asset, 0, 500, 0),
		activity("4000", "Sales", domain.Revenue, 0, 0, 400),
	}

	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.companyID, suite.asOf)

	// Both the report and the integrity error come back.
	suite.Require().Error(err)
	suite.Require().NotNil(report)
	suite.False(report.Balanced)

	var integrity *apperrors.LedgerIntegrityError
	suite.Require().ErrorAs(err, &integrity)
	suite.Equal(suite.companyID, integrity.CompanyID)
	suite.True(integrity.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(integrity.TotalCredits.Equal(decimal.NewFromInt(400)))
	suite.ErrorIs(err, apperrors.ErrLedgerIntegrity)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyLedger() {
	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return([]domain.AccountActivity{}, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Timeout() {
	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return(nil, context.DeadlineExceeded).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.companyID, suite.asOf)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrTimeout)
}

// --- Income Statement ---

func (suite *ReportingServiceTestSuite) TestIncomeStatement_Math() {
	revenue := []domain.AccountActivity{
		activity("4000", "Sales", domain.Revenue, 0, 0, 500),
	}
	expenses := []domain.AccountActivity{
		activity("5000", "Rent", domain.Expense, 0, 150, 0),
		activity("5100", "Utilities", domain.Expense, 0, 50, 0),
	}
	expenses[0].AccountCategory = "Occupancy"
	expenses[1].AccountCategory = "Occupancy"

	suite.mockRepo.On("GetTypeActivity", mock.Anything, suite.companyID, domain.Revenue, &suite.from, &suite.to, false).
		Return(revenue, nil).Once()
	suite.mockRepo.On("GetTypeActivity", mock.Anything, suite.companyID, domain.Expense, &suite.from, &suite.to, false).
		Return(expenses, nil).Once()

	report, err := suite.service.IncomeStatement(context.Background(), suite.companyID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(200)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(300)), "got %s", report.NetIncome)
	suite.True(report.ExpensesByCategory["Occupancy"].Equal(decimal.NewFromInt(200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_UncategorizedBucket() {
	expenses := []domain.AccountActivity{
		activity("5000", "Misc", domain.Expense, 0, 75, 0),
	}

	suite.mockRepo.On("GetTypeActivity", mock.Anything, suite.companyID, domain.Revenue, &suite.from, &suite.to, false).
		Return([]domain.AccountActivity{}, nil).Once()
	suite.mockRepo.On("GetTypeActivity", mock.Anything, suite.companyID, domain.Expense, &suite.from, &suite.to, false).
		Return(expenses, nil).Once()

	report, err := suite.service.IncomeStatement(context.Background(), suite.companyID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.ExpensesByCategory["Uncategorized"].Equal(decimal.NewFromInt(75)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(-75)))
}

// --- Balance Sheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RetainedEarningsCloseTheIdentity() {
	// Assets 800, Liabilities 300, Equity 200, net income 300.
	activities := []domain.AccountActivity{
		activity("1000", "Cash", domain.Asset, 0, 800, 0),
		activity("2000", "Payable", domain.Liability, 0, 0, 300),
		activity("3000", "Capital", domain.Equity, 0, 0, 200),
		activity("4000", "Sales", domain.Revenue, 0, 0, 500),
		activity("5000", "Rent", domain.Expense, 0, 200, 0),
	}

	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(800)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(300)))
	suite.True(report.RetainedEarnings.Equal(decimal.NewFromInt(300)), "got %s", report.RetainedEarnings)
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(500)), "got %s", report.TotalEquity)
	suite.True(report.BalanceOK)

	// The synthetic retained earnings row has no account behind it.
	last := report.Equity[len(report.Equity)-1]
	suite.Equal("Retained Earnings", last.Name)
	suite.Empty(last.AccountID)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IdentityViolation() {
	// Assets 800 with nothing on the other side.
	activities := []domain.AccountActivity{
		activity("1000", "Cash", domain.Asset, 800, 0, 0),
	}

	suite.mockRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.companyID, suite.asOf)

	suite.Require().Error(err)
	suite.Require().NotNil(report)
	suite.False(report.BalanceOK)
	suite.ErrorIs(err, apperrors.ErrLedgerIntegrity)
}

// --- Cash Flow ---

func movement(number string, entryType domain.EntryType, referenceType string, amount int64) domain.EntryCashMovement {
	return domain.EntryCashMovement{
		EntryID:       uuid.NewString(),
		EntryNumber:   number,
		EntryType:     entryType,
		ReferenceType: referenceType,
		Description:   "entry " + number,
		Movement:      decimal.NewFromInt(amount),
	}
}

func (suite *ReportingServiceTestSuite) TestCashFlow_Classification() {
	movements := []domain.EntryCashMovement{
		movement("JE-000001", domain.EntryTypeJournal, "", 400),
		movement("JE-000002", domain.EntryTypePayment, "LOAN", 1000),
		movement("JE-000003", domain.EntryTypePayment, "ASSET_PURCHASE", -600),
		movement("JE-000004", domain.EntryTypeJournal, "", 0), // no cash effect, dropped
	}

	suite.mockRepo.On("GetCashFlowEntries", mock.Anything, suite.companyID, suite.from, suite.to, []string{"Cash", "Bank"}).
		Return(movements, nil).Once()

	report, err := suite.service.CashFlow(context.Background(), suite.companyID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Len(report.Operating, 1)
	suite.Len(report.Financing, 1)
	suite.Len(report.Investing, 1)
	suite.True(report.TotalOperating.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalFinancing.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalInvesting.Equal(decimal.NewFromInt(-600)))
	suite.True(report.NetChangeInCash.Equal(decimal.NewFromInt(800)), "got %s", report.NetChangeInCash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlow_ReferenceTypeWins() {
	// Entry type maps to operating, reference type to financing.
	movements := []domain.EntryCashMovement{
		movement("JE-000001", domain.EntryTypeJournal, "LOAN", 250),
	}

	suite.mockRepo.On("GetCashFlowEntries", mock.Anything, suite.companyID, suite.from, suite.to, []string{"Cash", "Bank"}).
		Return(movements, nil).Once()

	report, err := suite.service.CashFlow(context.Background(), suite.companyID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(report.Operating)
	suite.Len(report.Financing, 1)
	suite.True(report.TotalFinancing.Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NoRulesConfigured() {
	bare := services.NewReportingService(suite.mockRepo)

	report, err := bare.CashFlow(context.Background(), suite.companyID, suite.from, suite.to)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetCashFlowEntries")
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
