package dto

import (
	"time"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryLine defines one debit or credit posting within a new entry.
// Exactly one of debitAmount/creditAmount must be positive; validation
// happens in the service where the whole entry is checked for balance.
type PostEntryLine struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// PostEntryRequest defines the data needed to post a new journal entry.
type PostEntryRequest struct {
	EntryDate     time.Time        `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	EntryType     domain.EntryType `json:"entryType" binding:"required,oneof=JOURNAL_ENTRY INVOICE PAYMENT EXPENSE ADJUSTMENT"`
	Description   string           `json:"description" binding:"required"`
	Notes         string           `json:"notes"`
	ReferenceType string           `json:"referenceType"`
	ReferenceID   string           `json:"referenceID"`
	Lines         []PostEntryLine  `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`

	// Entry context, populated on per-account listings.
	EntryDate        *time.Time `json:"entryDate,omitempty"`
	EntryNumber      string     `json:"entryNumber,omitempty"`
	EntryDescription string     `json:"entryDescription,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	CompanyID     string                `json:"companyID"`
	EntryNumber   string                `json:"entryNumber"`
	EntryDate     time.Time             `json:"entryDate"`
	EntryType     domain.EntryType      `json:"entryType"`
	Description   string                `json:"description"`
	Notes         string                `json:"notes,omitempty"`
	ReferenceType string                `json:"referenceType,omitempty"`
	ReferenceID   string                `json:"referenceID,omitempty"`
	LineCount     int                   `json:"lineCount,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	EntryType *string    `form:"entryType"`
	Limit     int        `form:"limit,default=20"`
	NextToken string     `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ListLinesParams defines query parameters for per-account line listings.
type ListLinesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListLinesResponse wraps a page of lines with the cursor for the next page.
type ListLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	resp := JournalLineResponse{
		LineID:           l.LineID,
		EntryID:          l.EntryID,
		AccountID:        l.AccountID,
		DebitAmount:      l.DebitAmount,
		CreditAmount:     l.CreditAmount,
		Description:      l.Description,
		EntryNumber:      l.EntryNumber,
		EntryDescription: l.EntryDescription,
	}
	if !l.EntryDate.IsZero() {
		d := l.EntryDate
		resp.EntryDate = &d
	}
	return resp
}

// ToJournalLineResponses converts a slice of domain.JournalLine to []JournalLineResponse
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToJournalLineResponse(&l)
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     e.EntryDate,
		EntryType:     e.EntryType,
		Description:   e.Description,
		Notes:         e.Notes,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		LineCount:     e.LineCount,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		Lines:         ToJournalLineResponses(e.Lines),
	}
}

// ToListEntriesResponse converts a page of domain entries to a ListEntriesResponse
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken string) ListEntriesResponse {
	res := ListEntriesResponse{
		Entries:   make([]JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i, e := range entries {
		res.Entries[i] = ToJournalEntryResponse(&e)
	}
	return res
}
