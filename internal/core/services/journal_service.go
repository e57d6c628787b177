package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portsrepo "github.com/paperledger/paper_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/dto"
	"github.com/paperledger/paper_ledger_app/internal/utils/accounting"
)

var (
	ErrEntryMinLines       = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts    = errors.New("journal entry must affect at least two different accounts")
	ErrDescriptionMissing  = errors.New("journal entry description is required")
	ErrLineDirection       = errors.New("journal line must carry a positive amount on exactly one side")
	ErrEntryAccountMissing = errors.New("account not found")
)

// journalService provides posting and ledger read operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateEntryBalance checks the double-entry invariant across the lines.
// Exact decimal equality, no tolerance.
func (s *journalService) validateEntryBalance(lines []domain.JournalLine) error {
	debits, credits := accounting.SumDebitsCredits(lines)
	if !debits.Equal(credits) {
		return &apperrors.UnbalancedEntryError{Debits: debits, Credits: credits}
	}
	return nil
}

// PostEntry validates and atomically persists a balanced journal entry.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	// --- Basic Validation ---
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w", ErrEntryMinLines)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w", ErrDescriptionMissing)
	}
	if !domain.ValidEntryType(req.EntryType) {
		return nil, fmt.Errorf("%w: invalid entry type %q", apperrors.ErrValidation, req.EntryType)
	}

	accountSet := make(map[string]bool)
	for _, line := range req.Lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, fmt.Errorf("%w", ErrEntryMinAccounts)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	// Prepare domain lines from the DTO
	domainLines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	for i, lineReq := range req.Lines {
		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
			Description:  lineReq.Description,
			CreatedAt:    now,
		}
		if !line.ValidateDirection() {
			return nil, fmt.Errorf("%w: account %s", ErrLineDirection, lineReq.AccountID)
		}
		domainLines[i] = line
	}

	// Double-entry check before touching the database
	if err := s.validateEntryBalance(domainLines); err != nil {
		return nil, err
	}

	// --- Fetch accounts and validate tenancy and activation ---
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for posting", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrEntryAccountMissing, id)
		}
		if acc.CompanyID != companyID {
			s.LogDebug(ctx, "Posting referenced a foreign account",
				slog.String("account_id", id),
				slog.String("company_id", companyID))
			return nil, fmt.Errorf("%w: ID %s", ErrEntryAccountMissing, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		CompanyID:     companyID,
		EntryDate:     req.EntryDate,
		EntryType:     req.EntryType,
		Description:   req.Description,
		Notes:         req.Notes,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Persist header, lines and the entry-number allocation atomically
	saved, err := s.journalRepo.SaveEntry(ctx, entry, domainLines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.Int("line_count", len(saved.Lines)))
	return saved, nil
}

// GetEntry retrieves an entry header with its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to fetch journal entry: %w", err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	entry.Lines = lines
	entry.LineCount = len(lines)
	return entry, nil
}

// ListEntries retrieves a page of entry headers for a company, newest first.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListEntries(ctx context.Context, companyID string, startDate *time.Time, endDate *time.Time, entryType *domain.EntryType, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if entryType != nil && !domain.ValidEntryType(*entryType) {
		return nil, "", fmt.Errorf("%w: invalid entry type %q", apperrors.ErrValidation, *entryType)
	}
	if limit <= 0 {
		limit = 20
	}

	entries, token, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, portsrepo.EntryListFilter{
		StartDate: startDate,
		EndDate:   endDate,
		EntryType: entryType,
	}, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		return nil, "", fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, token, nil
}

// ListLinesByAccount retrieves a page of lines touching one account.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListLinesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken string) ([]domain.JournalLine, string, error) {
	if limit <= 0 {
		limit = 20
	}

	// Verify the account exists within the tenant before listing
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, "", fmt.Errorf("failed to fetch account: %w", err)
	}
	if account.CompanyID != companyID {
		return nil, "", apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	lines, token, err := s.journalRepo.ListLinesByAccountID(ctx, companyID, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal lines", slog.String("account_id", accountID))
		return nil, "", fmt.Errorf("failed to list journal lines: %w", err)
	}
	return lines, token, nil
}
