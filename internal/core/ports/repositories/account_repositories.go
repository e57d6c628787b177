package repositories

import (
	"context"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// AccountListFilter narrows ListAccounts results.
type AccountListFilter struct {
	AccountType *domain.AccountType
	ActiveOnly  bool
}

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a company.
	FindAccountByCode(ctx context.Context, companyID string, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a company, optionally filtered by
	// type and activation state, ordered by account code.
	ListAccounts(ctx context.Context, companyID string, filter AccountListFilter) ([]domain.Account, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate (company_id,
	// account_code) pair fails with apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. The reference check and the delete
	// run in one transaction; a referenced account fails with
	// apperrors.ErrAccountInUse.
	DeleteAccount(ctx context.Context, companyID string, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
