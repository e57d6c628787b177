package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/dto"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	balanceSvc  portssvc.BalanceSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceSvc portssvc.BalanceSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		balanceSvc:  balanceSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// validateParent checks that a parent account exists, belongs to the same
// company and shares the child's account type.
func (s *accountService) validateParent(ctx context.Context, companyID string, parentID string, childType domain.AccountType) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrInvalidHierarchy, parentID)
		}
		return nil, fmt.Errorf("failed to fetch parent account: %w", err)
	}
	if parent.CompanyID != companyID {
		// Do not leak the other tenant's account; report it as missing.
		return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrInvalidHierarchy, parentID)
	}
	if parent.AccountType != childType {
		return nil, fmt.Errorf("%w: parent account type %s does not match child type %s", apperrors.ErrInvalidHierarchy, parent.AccountType, childType)
	}
	return parent, nil
}

// checkNoCycle walks the parent chain from newParentID and fails if it passes
// through accountID. Chains are short in practice; the walk is bounded anyway
// to survive pre-existing corruption.
func (s *accountService) checkNoCycle(ctx context.Context, accountID string, newParentID string) error {
	const maxDepth = 100
	current := newParentID
	for i := 0; i < maxDepth && current != ""; i++ {
		if current == accountID {
			return fmt.Errorf("%w: account %s cannot be its own ancestor", apperrors.ErrInvalidHierarchy, accountID)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk account hierarchy: %w", err)
		}
		current = parent.ParentAccountID
	}
	if current != "" {
		return fmt.Errorf("%w: account hierarchy too deep", apperrors.ErrInvalidHierarchy)
	}
	return nil
}

// CreateAccount creates a new account after validation.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance != nil {
		openingBalance = *req.OpeningBalance
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.validateParent(ctx, companyID, parentID, req.AccountType); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		AccountCode:     req.AccountCode,
		Name:            req.Name,
		AccountType:     req.AccountType,
		AccountCategory: req.AccountCategory,
		ParentAccountID: parentID,
		OpeningBalance:  openingBalance,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.AccountCode)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode),
		slog.String("company_id", companyID))
	return &account, nil
}

// UpdateAccount applies mutable-field changes to an existing account.
// Implements portssvc.AccountSvcFacade
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	// Immutable fields: the caller may echo the current value back, only an
	// actual change is rejected.
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		return nil, fmt.Errorf("%w: accountType cannot be changed", apperrors.ErrImmutableField)
	}
	if req.AccountCode != nil && *req.AccountCode != account.AccountCode {
		return nil, fmt.Errorf("%w: accountCode cannot be changed", apperrors.ErrImmutableField)
	}
	if req.OpeningBalance != nil && !req.OpeningBalance.Equal(account.OpeningBalance) {
		return nil, fmt.Errorf("%w: openingBalance cannot be changed", apperrors.ErrImmutableField)
	}

	// System accounts accept cosmetic edits only.
	if account.IsSystemAccount {
		if req.ParentAccountID != nil || req.IsActive != nil || req.AccountCategory != nil {
			return nil, fmt.Errorf("%w: system account %s", apperrors.ErrProtectedAccount, accountID)
		}
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.AccountCategory != nil {
		account.AccountCategory = *req.AccountCategory
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil {
		newParent := *req.ParentAccountID
		if newParent == "" {
			account.ParentAccountID = ""
		} else if newParent != account.ParentAccountID {
			if newParent == accountID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrInvalidHierarchy)
			}
			if _, err := s.validateParent(ctx, companyID, newParent, account.AccountType); err != nil {
				return nil, err
			}
			if err := s.checkNoCycle(ctx, accountID, newParent); err != nil {
				return nil, err
			}
			account.ParentAccountID = newParent
		}
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account that no journal line references.
// Implements portssvc.AccountSvcFacade
func (s *accountService) DeleteAccount(ctx context.Context, companyID string, accountID string, deleterUserID string) error {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: system account %s cannot be deleted", apperrors.ErrProtectedAccount, accountID)
	}

	// The repository re-checks for referencing lines inside the delete
	// transaction, so a concurrent posting cannot slip through.
	if err := s.accountRepo.DeleteAccount(ctx, companyID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrAccountInUse) {
			return fmt.Errorf("%w: account %s has journal lines", apperrors.ErrAccountInUse, accountID)
		}
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("deleted_by", deleterUserID))
	return nil
}

// GetAccountByID retrieves a single account scoped to a company.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if account.CompanyID != companyID {
		// Cross-tenant reads look identical to missing rows.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return account, nil
}

// ListAccounts retrieves a company's accounts ordered by code.
// Implements portssvc.AccountSvcFacade
func (s *accountService) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error) {
	if accountType != nil && !domain.ValidAccountType(*accountType) {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, *accountType)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, portsrepo.AccountListFilter{
		AccountType: accountType,
		ActiveOnly:  activeOnly,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CurrentBalance computes an account's signed balance as of a point in time.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CurrentBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	var toDate *time.Time
	if !asOf.IsZero() {
		toDate = &asOf
	}
	return s.balanceSvc.AccountBalance(ctx, companyID, accountID, nil, toDate)
}
