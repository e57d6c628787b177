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
)

// balanceService derives balances from journal lines. Nothing here writes;
// every figure is recomputed from the ledger on demand.
type balanceService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// signedNet converts raw debit/credit sums into the account type's natural
// sign: debit-normal accounts grow with debits, credit-normal accounts grow
// with credits.
func signedNet(debits, credits decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	raw := debits.Sub(credits)
	if accountType.IsDebitNormal() {
		return raw
	}
	return raw.Neg()
}

// AccountBalance computes an account's signed balance over a window. The
// opening balance participates only when fromDate is unset, so period windows
// report pure flow.
// Implements portssvc.BalanceSvcFacade
func (s *balanceService) AccountBalance(ctx context.Context, companyID string, accountID string, fromDate *time.Time, toDate *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return decimal.Zero, fmt.Errorf("failed to fetch account: %w", err)
	}
	if account.CompanyID != companyID {
		return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	debits, credits, err := s.reportingRepo.GetAccountActivity(ctx, companyID, accountID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	balance := signedNet(debits, credits, account.AccountType)
	if fromDate == nil {
		balance = balance.Add(account.OpeningBalance)
	}
	return balance, nil
}

// TypeTotals computes per-account signed balances for every account of a type
// in one grouped query, plus the type total.
// Implements portssvc.BalanceSvcFacade
func (s *balanceService) TypeTotals(ctx context.Context, companyID string, accountType domain.AccountType, fromDate *time.Time, toDate *time.Time, activeOnly bool) ([]domain.AccountAmount, decimal.Decimal, error) {
	if !domain.ValidAccountType(accountType) {
		return nil, decimal.Zero, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, accountType)
	}

	activities, err := s.reportingRepo.GetTypeActivity(ctx, companyID, accountType, fromDate, toDate, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate type activity",
			slog.String("company_id", companyID),
			slog.String("account_type", string(accountType)))
		return nil, decimal.Zero, fmt.Errorf("failed to aggregate type activity: %w", err)
	}

	rows := make([]domain.AccountAmount, len(activities))
	total := decimal.Zero
	for i, act := range activities {
		net := signedNet(act.Debits, act.Credits, act.AccountType)
		if fromDate == nil {
			net = net.Add(act.OpeningBalance)
		}
		rows[i] = domain.AccountAmount{
			AccountID:       act.AccountID,
			AccountCode:     act.AccountCode,
			Name:            act.AccountName,
			AccountCategory: act.AccountCategory,
			NetAmount:       net,
		}
		total = total.Add(net)
	}
	return rows, total, nil
}

// PeriodTotals computes per-account period flow for all five account types.
// Opening balances are excluded: the result is activity within the window.
// Implements portssvc.BalanceSvcFacade
func (s *balanceService) PeriodTotals(ctx context.Context, companyID string, fromDate time.Time, toDate time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	result := make(map[domain.AccountType][]domain.AccountAmount, 5)
	for _, accountType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		rows, _, err := s.TypeTotals(ctx, companyID, accountType, &fromDate, &toDate, false)
		if err != nil {
			return nil, err
		}
		result[accountType] = rows
	}
	return result, nil
}
