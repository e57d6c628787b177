package services

import (
	"context"
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines financial report generation.
//
// When the ledger fails its integrity check, TrialBalance and BalanceSheet
// return BOTH the fully built report AND a *apperrors.LedgerIntegrityError;
// callers that want to surface corrupted figures check for a non-nil report
// alongside the error.
type ReportingSvcFacade interface {
	// TrialBalance builds the trial balance as of a date, every account in
	// its natural column.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement builds revenue and expense activity over a period.
	IncomeStatement(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time) (*domain.IncomeStatementReport, error)

	// BalanceSheet builds the financial position as of a date, retained
	// earnings folded into equity.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlow builds a cash movement report over a period, entries
	// classified into operating, investing and financing buckets by the
	// configured rules.
	CashFlow(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time) (*domain.CashFlowReport, error)
}
