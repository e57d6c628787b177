package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// ReportingRepository defines aggregation queries used by balances and
// reports. Implementations aggregate in the database, never per-account.
type ReportingRepository interface {
	// GetAccountActivity sums debits and credits for one account over an
	// optional date window (inclusive on both ends).
	GetAccountActivity(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (debits decimal.Decimal, credits decimal.Decimal, err error)

	// GetTypeActivity returns per-account activity for all accounts of a
	// type over an optional date window. Accounts with no activity in the
	// window are still returned so opening balances count.
	GetTypeActivity(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountActivity, error)

	// GetTrialBalanceData returns per-account activity for every account of
	// the company up to and including asOf.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error)

	// GetCashFlowEntries returns the net cash movement per entry over the
	// period, considering only lines that hit accounts whose category is in
	// cashCategories.
	GetCashFlowEntries(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time, cashCategories []string) ([]domain.EntryCashMovement, error)
}
