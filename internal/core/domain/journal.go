package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a journal entry with the kind of event that produced it.
// External producers (invoicing, payments, expenses) post with their own type;
// corrections are new ADJUSTMENT entries referencing the original.
type EntryType string

const (
	EntryTypeJournal    EntryType = "JOURNAL_ENTRY"
	EntryTypeInvoice    EntryType = "INVOICE"
	EntryTypePayment    EntryType = "PAYMENT"
	EntryTypeExpense    EntryType = "EXPENSE"
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// ValidEntryType reports whether t is a known entry type.
func ValidEntryType(t EntryType) bool {
	switch t {
	case EntryTypeJournal, EntryTypeInvoice, EntryTypePayment, EntryTypeExpense, EntryTypeAdjustment:
		return true
	}
	return false
}

// JournalEntry represents a single, balanced financial event composed of
// journal lines. Entries are append-only: once posted they are never updated
// in place.
type JournalEntry struct {
	EntryID       string    `json:"entryID"`       // Primary key (UUID)
	CompanyID     string    `json:"companyID"`     // Tenant scope (NON-NULL)
	EntryNumber   string    `json:"entryNumber"`   // Generated, unique and monotonic per company
	EntryDate     time.Time `json:"entryDate"`     // Date the event occurred
	EntryType     EntryType `json:"entryType"`     // JOURNAL_ENTRY, INVOICE, ...
	Description   string    `json:"description"`   // User description
	Notes         string    `json:"notes"`         // Optional free-form notes
	ReferenceType string    `json:"referenceType"` // Optional pointer to the producing document
	ReferenceID   string    `json:"referenceID"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately

	// LineCount is populated by listing queries so callers can show entry
	// size without loading lines.
	LineCount int `json:"lineCount,omitempty"`
}

// JournalLine is a single debit or credit posting within an entry, affecting
// one account. Exactly one of DebitAmount/CreditAmount is nonzero.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary key (UUID)
	EntryID      string          `json:"entryID"` // Owning entry (NON-NULL)
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`

	CreatedAt time.Time `json:"createdAt"`

	// Populated by per-account listing queries for display; not columns of the
	// journal_lines table.
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryNumber      string    `json:"entryNumber,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the nonzero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// ValidateDirection checks the single-direction invariant: a line must carry
// a positive amount on exactly one side and zero on the other.
func (l JournalLine) ValidateDirection() bool {
	if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
		return false
	}
	return l.DebitAmount.IsPositive() != l.CreditAmount.IsPositive()
}
