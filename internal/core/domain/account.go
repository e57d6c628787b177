package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
// It is fixed at creation; changing it would invalidate historical balances.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type grows on the debit side.
// Asset and Expense accounts are debit normal; Liability, Equity and Revenue
// accounts are credit normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents one node of a company's chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary key (UUID)
	CompanyID       string          `json:"companyID"`       // Tenant scope (NON-NULL)
	AccountCode     string          `json:"accountCode"`     // Unique per company, immutable
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc., immutable
	AccountCategory string          `json:"accountCategory"` // Free-text grouping, e.g. "Cash"
	ParentAccountID string          `json:"parentAccountID"` // Nullable self reference, same type as parent
	OpeningBalance  decimal.Decimal `json:"openingBalance"`  // In the account's natural sign convention
	Description     string          `json:"description"`     // Optional free text
	IsActive        bool            `json:"isActive"`        // Deactivated accounts reject new postings
	IsSystemAccount bool            `json:"isSystemAccount"` // Protected from end-user edits and deletion
	AuditFields
}
