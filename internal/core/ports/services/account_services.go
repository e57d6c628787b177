package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/paperledger/paper_ledger_app/internal/dto"
)

// AccountSvc defines read operations on the chart of accounts
type AccountSvc interface {
	// GetAccountByID retrieves a single account for a company.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a company's accounts ordered by code,
	// optionally filtered by type and activation state.
	ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error)

	// CurrentBalance computes an account's signed balance as of a point in
	// time (inclusive), opening balance included.
	CurrentBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// AccountSvcMutator defines write operations on the chart of accounts
type AccountSvcMutator interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, createdBy string) (*domain.Account, error)

	// UpdateAccount applies mutable-field changes to an account. Attempts
	// to change type or opening balance fail with apperrors.ErrImmutableField.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, updatedBy string) (*domain.Account, error)

	// DeleteAccount removes an account that no journal line references.
	DeleteAccount(ctx context.Context, companyID string, accountID string, deletedBy string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountSvc
	AccountSvcMutator
}
