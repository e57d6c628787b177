package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a journal entry with the kind of event that produced it.
type EntryType string

const (
	EntryTypeJournal    EntryType = "JOURNAL_ENTRY"
	EntryTypeInvoice    EntryType = "INVOICE"
	EntryTypePayment    EntryType = "PAYMENT"
	EntryTypeExpense    EntryType = "EXPENSE"
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// JournalEntry is the journal_entries table row. Rows are append-only; no
// update statement exists for this table outside of migrations.
type JournalEntry struct {
	EntryID       string    `db:"entry_id"`
	CompanyID     string    `db:"company_id"`
	EntryNumber   string    `db:"entry_number"`
	EntryDate     time.Time `db:"entry_date"`
	EntryType     EntryType `db:"entry_type"`
	Description   string    `db:"description"`
	Notes         string    `db:"notes"`
	ReferenceType string    `db:"reference_type"` // Nullable
	ReferenceID   string    `db:"reference_id"`   // Nullable
	AuditFields
	// LineCount is populated by list queries; it is not a column.
	LineCount int `db:"line_count"`
}

// JournalLine is the journal_lines table row.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
	CreatedAt    time.Time       `db:"created_at"`

	// Joined entry columns, populated by per-account listing queries.
	EntryDate        time.Time `db:"entry_date"`
	EntryNumber      string    `db:"entry_number"`
	EntryDescription string    `db:"entry_description"`
}
