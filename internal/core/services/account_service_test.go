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
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/core/services"
	"github.com/paperledger/paper_ledger_app/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
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

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountCode)
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

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, filter portsrepo.AccountListFilter) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, companyID string, accountID string) error {
	args := m.Called(ctx, companyID, accountID)
	return args.Error(0)
}

// MockBalanceSvc is a mock type for the BalanceSvcFacade interface
type MockBalanceSvc struct {
	mock.Mock
}

func (m *MockBalanceSvc) AccountBalance(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, fromDate, toDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceSvc) TypeTotals(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountAmount, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountType, fromDate, toDate, activeOnly)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).([]domain.AccountAmount), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockBalanceSvc) PeriodTotals(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	args := m.Called(ctx, companyID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountType][]domain.AccountAmount), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockBalanceSvc *MockBalanceSvc
	service        portssvc.AccountSvcFacade
	companyID      string
	userID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockBalanceSvc = new(MockBalanceSvc)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockBalanceSvc)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:     "1000",
		Name:            "Cash on Hand",
		AccountType:     domain.Asset,
		AccountCategory: "Cash",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(suite.companyID, created.CompanyID)
	suite.Equal(req.AccountCode, created.AccountCode)
	suite.Equal(req.AccountType, created.AccountType)
	suite.True(created.IsActive)
	suite.True(created.OpeningBalance.IsZero())
	suite.Equal(suite.userID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:     "1000",
		Name:            "Cash on Hand",
		AccountType:     domain.Asset,
		AccountCategory: "Cash",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:     "1000",
		Name:            "Broken",
		AccountType:     domain.AccountType("NONSENSE"),
		AccountCategory: "Cash",
	}

	created, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{
		AccountID:   parentID,
		CompanyID:   suite.companyID,
		AccountType: domain.Liability,
	}
	req := dto.CreateAccountRequest{
		AccountCode:     "1100",
		Name:            "Child Asset",
		AccountType:     domain.Asset,
		AccountCategory: "Bank",
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentOtherCompany() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{
		AccountID:   parentID,
		CompanyID:   uuid.NewString(), // different tenant
		AccountType: domain.Asset,
	}
	req := dto.CreateAccountRequest{
		AccountCode:     "1100",
		Name:            "Child Asset",
		AccountType:     domain.Asset,
		AccountCategory: "Bank",
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	// A foreign parent reads the same as a missing one.
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.NotContains(err.Error(), parent.CompanyID)
}

func (suite *AccountServiceTestSuite) existingAccount(accountID string) *domain.Account {
	return &domain.Account{
		AccountID:       accountID,
		CompanyID:       suite.companyID,
		AccountCode:     "1000",
		Name:            "Cash on Hand",
		AccountType:     domain.Asset,
		AccountCategory: "Cash",
		OpeningBalance:  decimal.NewFromInt(500),
		IsActive:        true,
	}
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	newName := "Petty Cash"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ImmutableType() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	newType := domain.Expense

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrImmutableField)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ImmutableCode() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	newCode := "9999"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{AccountCode: &newCode}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrImmutableField)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_EchoedImmutableValueAllowed() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	sameCode := existing.AccountCode
	sameBalance := decimal.NewFromInt(500) // equal in value to the stored one
	newName := "Cash Drawer"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{
		AccountCode:    &sameCode,
		OpeningBalance: &sameBalance,
		Name:           &newName,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SystemAccountProtected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	existing.IsSystemAccount = true
	inactive := false

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SystemAccountRenameAllowed() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	existing.IsSystemAccount = true
	newName := "Opening Balance Equity"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParentRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	selfRef := accountID

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{ParentAccountID: &selfRef}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CycleRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	childID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	// childID's parent chain leads back to accountID.
	child := &domain.Account{
		AccountID:       childID,
		CompanyID:       suite.companyID,
		AccountType:     domain.Asset,
		ParentAccountID: accountID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, childID).Return(child, nil)

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, dto.UpdateAccountRequest{ParentAccountID: &childID}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.companyID, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_InUse() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.companyID, accountID).Return(apperrors.ErrAccountInUse).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SystemAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := suite.existingAccount(accountID)
	existing.IsSystemAccount = true

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount")
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherCompanyHidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	foreign := suite.existingAccount(accountID)
	foreign.CompanyID = uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(foreign, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.companyID, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCurrentBalance_DelegatesWithAsOf() {
	ctx := context.Background()
	accountID := uuid.NewString()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockBalanceSvc.On("AccountBalance", ctx, suite.companyID, accountID, (*time.Time)(nil), &asOf).
		Return(decimal.NewFromInt(1250), nil).Once()

	balance, err := suite.service.CurrentBalance(ctx, suite.companyID, accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1250)))
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
