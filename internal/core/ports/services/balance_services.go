package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// BalanceSvcFacade defines derived balance computations. Balances are never
// stored; every figure is an aggregation over journal lines.
type BalanceSvcFacade interface {
	// AccountBalance computes an account's signed balance. The opening
	// balance is included only when fromDate is unset; both dates are
	// inclusive.
	AccountBalance(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (decimal.Decimal, error)

	// TypeTotals computes per-account signed balances for all accounts of a
	// type, plus the type total.
	TypeTotals(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountAmount, decimal.Decimal, error)

	// PeriodTotals computes per-account activity (excluding opening
	// balances) for all account types over a period.
	PeriodTotals(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time) (map[domain.AccountType][]domain.AccountAmount, error)
}
