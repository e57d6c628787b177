package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/utils/accounting"
)

// defaultReportTimeout bounds report queries when no timeout is configured.
const defaultReportTimeout = 30 * time.Second

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	cashFlowRules domain.CashFlowRules
	reportTimeout time.Duration
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportTimeout bounds every report query with the given timeout.
func WithReportTimeout(timeout time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		if timeout > 0 {
			s.reportTimeout = timeout
		}
	}
}

// WithCashFlowRules supplies the cash flow classification rules.
func WithCashFlowRules(rules domain.CashFlowRules) ReportingServiceOption {
	return func(s *reportingService) {
		s.cashFlowRules = rules
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: repo,
		reportTimeout: defaultReportTimeout,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// boundCtx wraps the context with the configured report timeout.
func (s *reportingService) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.reportTimeout)
}

// mapReportErr converts a deadline hit into the retriable timeout sentinel.
func mapReportErr(err error, what string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s exceeded the report timeout", apperrors.ErrTimeout, what)
	}
	return fmt.Errorf("failed to retrieve %s data: %w", what, err)
}

// signedBalance folds raw activity into the account's natural sign and adds
// the opening balance.
func signedBalance(act domain.AccountActivity) decimal.Decimal {
	return signedNet(act.Debits, act.Credits, act.AccountType).Add(act.OpeningBalance)
}

// TrialBalance generates a trial balance report as of a specific date. When
// the global debit and credit columns disagree the report is still returned,
// flagged, together with a *apperrors.LedgerIntegrityError.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	activities, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", companyID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, mapReportErr(err, "trial balance")
	}

	report := &domain.TrialBalanceReport{
		Rows:         make([]domain.TrialBalanceRow, 0, len(activities)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, act := range activities {
		net := signedBalance(act)
		if net.IsZero() {
			continue
		}
		debit, credit := accounting.NaturalColumns(net, act.AccountType)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   act.AccountID,
			AccountCode: act.AccountCode,
			AccountName: act.AccountName,
			AccountType: act.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebits = report.TotalDebits.Add(debit)
		report.TotalCredits = report.TotalCredits.Add(credit)
	}

	report.Balanced = report.TotalDebits.Equal(report.TotalCredits)

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.Balanced))

	if !report.Balanced {
		integrityErr := &apperrors.LedgerIntegrityError{
			CompanyID:    companyID,
			Detail:       "trial balance debits and credits do not agree",
			TotalDebits:  report.TotalDebits,
			TotalCredits: report.TotalCredits,
		}
		s.LogError(ctx, integrityErr, "Trial balance integrity violation",
			slog.String("company_id", companyID))
		return report, integrityErr
	}
	return report, nil
}

// IncomeStatement generates revenue and expense activity over a period,
// including the expense breakdown by account category.
func (s *reportingService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	revenueActs, err := s.reportingRepo.GetTypeActivity(ctx, companyID, domain.Revenue, &from, &to, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue activity", slog.String("company_id", companyID))
		return nil, mapReportErr(err, "income statement")
	}
	expenseActs, err := s.reportingRepo.GetTypeActivity(ctx, companyID, domain.Expense, &from, &to, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense activity", slog.String("company_id", companyID))
		return nil, mapReportErr(err, "income statement")
	}

	report := &domain.IncomeStatementReport{
		Revenue:            make([]domain.AccountAmount, 0, len(revenueActs)),
		Expenses:           make([]domain.AccountAmount, 0, len(expenseActs)),
		ExpensesByCategory: make(map[string]decimal.Decimal),
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
	}

	for _, act := range revenueActs {
		// Period flow only, opening balances excluded.
		net := signedNet(act.Debits, act.Credits, act.AccountType)
		if net.IsZero() {
			continue
		}
		report.Revenue = append(report.Revenue, domain.AccountAmount{
			AccountID:       act.AccountID,
			AccountCode:     act.AccountCode,
			Name:            act.AccountName,
			AccountCategory: act.AccountCategory,
			NetAmount:       net,
		})
		report.TotalIncome = report.TotalIncome.Add(net)
	}

	for _, act := range expenseActs {
		net := signedNet(act.Debits, act.Credits, act.AccountType)
		if net.IsZero() {
			continue
		}
		report.Expenses = append(report.Expenses, domain.AccountAmount{
			AccountID:       act.AccountID,
			AccountCode:     act.AccountCode,
			Name:            act.AccountName,
			AccountCategory: act.AccountCategory,
			NetAmount:       net,
		})
		report.TotalExpenses = report.TotalExpenses.Add(net)

		category := act.AccountCategory
		if category == "" {
			category = "Uncategorized"
		}
		report.ExpensesByCategory[category] = report.ExpensesByCategory[category].Add(net)
	}

	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("company_id", companyID),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet generates the financial position as of a date. Current-period
// net income is folded into equity as retained earnings so the accounting
// identity can hold without a closing process. An identity violation flags
// the report and surfaces a *apperrors.LedgerIntegrityError.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	activities, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("company_id", companyID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, mapReportErr(err, "balance sheet")
	}

	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}

	for _, act := range activities {
		net := signedBalance(act)
		row := domain.AccountAmount{
			AccountID:       act.AccountID,
			AccountCode:     act.AccountCode,
			Name:            act.AccountName,
			AccountCategory: act.AccountCategory,
			NetAmount:       net,
		}
		switch act.AccountType {
		case domain.Asset:
			if !net.IsZero() {
				report.Assets = append(report.Assets, row)
			}
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			if !net.IsZero() {
				report.Liabilities = append(report.Liabilities, row)
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			if !net.IsZero() {
				report.Equity = append(report.Equity, row)
			}
			report.TotalEquity = report.TotalEquity.Add(net)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(net)
		case domain.Expense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(net)
		}
	}

	if !report.RetainedEarnings.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			Name:      "Retained Earnings",
			NetAmount: report.RetainedEarnings,
		})
	}
	report.TotalEquity = report.TotalEquity.Add(report.RetainedEarnings)
	report.BalanceOK = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("company_id", companyID),
		slog.Bool("balance_ok", report.BalanceOK))

	if !report.BalanceOK {
		integrityErr := &apperrors.LedgerIntegrityError{
			CompanyID:    companyID,
			Detail:       "assets do not equal liabilities plus equity",
			TotalDebits:  report.TotalAssets,
			TotalCredits: report.TotalLiabilities.Add(report.TotalEquity),
		}
		s.LogError(ctx, integrityErr, "Balance sheet identity violation",
			slog.String("company_id", companyID))
		return report, integrityErr
	}
	return report, nil
}

// CashFlow generates a cash movement report over a period. Entries are
// classified into Operating/Investing/Financing by the configured rules;
// cash accounts are those whose category is in the configured cash set.
func (s *reportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowReport, error) {
	if len(s.cashFlowRules.CashCategories) == 0 {
		return nil, fmt.Errorf("%w: no cash categories configured for cash flow reporting", apperrors.ErrValidation)
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	movements, err := s.reportingRepo.GetCashFlowEntries(ctx, companyID, from, to, s.cashFlowRules.CashCategories)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash flow data", slog.String("company_id", companyID))
		return nil, mapReportErr(err, "cash flow")
	}

	report := &domain.CashFlowReport{
		Operating:       []domain.CashFlowItem{},
		Investing:       []domain.CashFlowItem{},
		Financing:       []domain.CashFlowItem{},
		TotalOperating:  decimal.Zero,
		TotalInvesting:  decimal.Zero,
		TotalFinancing:  decimal.Zero,
		NetChangeInCash: decimal.Zero,
	}

	for _, m := range movements {
		if m.Movement.IsZero() {
			continue
		}
		item := domain.CashFlowItem{
			EntryID:     m.EntryID,
			EntryNumber: m.EntryNumber,
			EntryType:   m.EntryType,
			Description: m.Description,
			Amount:      m.Movement,
		}
		switch s.cashFlowRules.Classify(m.EntryType, m.ReferenceType) {
		case domain.CashFlowInvesting:
			report.Investing = append(report.Investing, item)
			report.TotalInvesting = report.TotalInvesting.Add(m.Movement)
		case domain.CashFlowFinancing:
			report.Financing = append(report.Financing, item)
			report.TotalFinancing = report.TotalFinancing.Add(m.Movement)
		default:
			report.Operating = append(report.Operating, item)
			report.TotalOperating = report.TotalOperating.Add(m.Movement)
		}
	}

	report.NetChangeInCash = report.TotalOperating.Add(report.TotalInvesting).Add(report.TotalFinancing)

	s.LogInfo(ctx, "Cash flow report generated",
		slog.String("company_id", companyID),
		slog.Int("entry_count", len(movements)))
	return report, nil
}
