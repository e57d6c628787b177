package services

import (
	"context"
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/paperledger/paper_ledger_app/internal/dto"
)

// JournalSvc defines read operations on the ledger
type JournalSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers for a company, newest first, with
	// keyset pagination.
	ListEntries(ctx context.Context, companyID string, startDate *time.Time, endDate *time.Time, entryType *domain.EntryType, limit int, nextToken string) ([]domain.JournalEntry, string, error)

	// ListLinesByAccount retrieves the lines that touched an account, newest
	// entry first, each carrying its entry header context.
	ListLinesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken string) ([]domain.JournalLine, string, error)
}

// JournalSvcMutator defines write operations on the ledger
type JournalSvcMutator interface {
	// PostEntry validates and atomically persists a balanced journal entry.
	// Unbalanced entries fail with *apperrors.UnbalancedEntryError and
	// nothing is written.
	PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, createdBy string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalSvc
	JournalSvcMutator
}
