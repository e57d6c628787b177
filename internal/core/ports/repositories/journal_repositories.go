package repositories

import (
	"context"
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// EntryListFilter narrows ListEntriesByCompany results.
type EntryListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	EntryType *domain.EntryType
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByCompany retrieves entry headers for a company ordered by
	// entry date then creation time descending, newest first. nextToken pages
	// through results keyset-style.
	ListEntriesByCompany(ctx context.Context, companyID string, filter EntryListFilter, limit int, nextToken string) ([]domain.JournalEntry, string, error)

	// ListLinesByAccountID retrieves lines touching an account, newest entry
	// first, with joined entry header context on each line.
	ListLinesByAccountID(ctx context.Context, companyID string, accountID string, limit int, nextToken string) ([]domain.JournalLine, string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists a balanced entry with its lines atomically,
	// allocating the company-scoped entry number inside the same
	// transaction. Returns the stored entry with number and IDs filled in.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
